package snapshot

import (
	"testing"

	"trs80m3-periph/internal/cassette"
	"trs80m3-periph/internal/clock"
	"trs80m3-periph/internal/fdc"
	"trs80m3-periph/internal/interrupts"
)

func newSystem() (*System, *clock.Clock) {
	clk := clock.New()
	sched := clock.NewScheduler(clk)
	ints := interrupts.NewManager()

	sys := &System{
		Cassette: cassette.New(clk, sched, ints, nil),
		FDC:      fdc.New(clk, sched, ints, nil),
	}
	return sys, clk
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sys, _ := newSystem()

	sys.Cassette.LoadTape(make([]byte, 0x800))
	sys.Cassette.SetMotorEngaged(true)
	sys.FDC.Enabled = true
	sys.FDC.TrackReg = 12
	sys.FDC.SectorReg = 3
	sys.FDC.CurrentDrive = 1

	data, err := sys.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Save returned empty data")
	}

	sys.FDC.TrackReg = 99
	sys.FDC.SectorReg = 99
	sys.FDC.CurrentDrive = fdc.NoDrive

	fresh, _ := newSystem()
	if err := fresh.Load(data); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if fresh.FDC.TrackReg != 12 {
		t.Errorf("TrackReg = %d, want 12", fresh.FDC.TrackReg)
	}
	if fresh.FDC.SectorReg != 3 {
		t.Errorf("SectorReg = %d, want 3", fresh.FDC.SectorReg)
	}
	if fresh.FDC.CurrentDrive != 1 {
		t.Errorf("CurrentDrive = %d, want 1", fresh.FDC.CurrentDrive)
	}
	if !fresh.FDC.Enabled {
		t.Error("Enabled = false, want true")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	sys, _ := newSystem()
	if err := sys.Load([]byte("not a snapshot")); err == nil {
		t.Fatal("expected error decoding garbage data")
	}
}

func TestVersionPreUpgradeInfersEnabled(t *testing.T) {
	sys, _ := newSystem()

	state := SaveState{
		Version:       9,
		CassetteState: sys.Cassette.State(),
		FDCState:      sys.FDC.State(),
	}
	state.FDCState.Version = 9
	state.FDCState.Enabled = false
	state.FDCState.Drives[0].Loaded = true

	sys.FDC.Restore(state.FDCState)
	if !sys.FDC.Enabled {
		t.Error("expected Enabled inferred true from a loaded drive on a pre-version-10 snapshot")
	}
}
