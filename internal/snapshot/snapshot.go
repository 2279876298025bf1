// Package snapshot serializes and restores the combined cassette and FDC
// peripheral state, the way internal/emulator's savestate.go serializes
// the CPU/PPU/APU/memory/input state: a single versioned gob-encoded
// struct, one field per peripheral's exported State mirror.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"trs80m3-periph/internal/cassette"
	"trs80m3-periph/internal/fdc"
)

func init() {
	gob.Register(cassette.State{})
	gob.Register(fdc.State{})
	gob.Register(SaveState{})
}

// FormatVersion is the version this build writes. Snapshots older than
// version 10 lack the FDC Enabled field; fdc.Controller.Restore infers it
// from whether any drive has media loaded.
const FormatVersion = fdc.CurrentStateVersion

// SaveState is the complete, versioned on-disk snapshot of both
// peripherals.
type SaveState struct {
	Version       int
	CassetteState cassette.State
	FDCState      fdc.State
}

// System is the pair of peripherals a snapshot covers.
type System struct {
	Cassette *cassette.Cassette
	FDC      *fdc.Controller
}

// Save serializes the current state of both peripherals to a byte slice.
func (s *System) Save() ([]byte, error) {
	state := SaveState{
		Version:       FormatVersion,
		CassetteState: s.Cassette.State(),
		FDCState:      s.FDC.State(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Load decodes data and restores both peripherals' state. On decode
// failure the peripherals are left untouched and the error is returned;
// per §6, the caller is responsible for not driving the emulation further
// on a failed load.
func (s *System) Load(data []byte) error {
	var state SaveState
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&state); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	s.Cassette.Restore(state.CassetteState)
	s.FDC.Restore(state.FDCState)
	return nil
}
