package fdc

import (
	"trs80m3-periph/internal/clock"
)

// DriveState mirrors floppy.Drive for gob encoding (§4.8 Snapshot format).
type DriveState struct {
	PhysicalTrack  int
	WriteProtected bool
	Loaded         bool
}

// PulseState captures enough of a pending PulseReq to re-register it
// against a live scheduler after restore, without serializing its
// callback: the callback is rebound from (Command, OpStatus, IsPolling)
// per §4.8's "(enum, is_polling) pair resolved at load" rule.
type PulseState struct {
	Active        bool
	RemainingTick uint64
}

// State is the gob-friendly mirror of Controller, consumed by the
// snapshot package. Fields are listed in the order of §3: registers,
// status flags, decode flags, current selection and per-drive state,
// address scratch, operation and poll state, Enabled, then pending pulse
// requests.
type State struct {
	Version int

	TrackReg  byte
	SectorReg byte
	Command   byte
	DataReg   byte

	Busy           bool
	DRQ            bool
	SeekError      bool
	CrcError       bool
	LostData       bool
	WriteProtected bool
	MotorOnFlag    bool
	SectorDeleted  bool
	DoubleDensity  bool
	LastStepDirUp  bool

	Verify            bool
	Delay             bool
	UpdateRegisters   bool
	SideSelectVerify  bool
	SideOneExpected   bool
	MarkSectorDeleted bool
	MultipleRecords   bool
	StepRateIndex     byte

	CurrentDrive    int
	SideOneSelected bool
	Drives          [4]DriveState

	ReadAddressData  [6]byte
	ReadAddressIndex int
	SectorLength     int
	BytesRead        int
	BytesToWrite     int
	WriteCount       int
	CRC              uint16
	CRCCalc          uint16

	ActiveCommand Command
	OpStatus      OpStatus

	IsPolling       bool
	TargetDataIndex int

	Enabled bool

	CommandPulse  PulseState
	MotorOnPulse  PulseState
	MotorOffPulse PulseState
}

// CurrentStateVersion is the snapshot format version this build writes.
// Version 10 added Enabled; earlier versions infer it from whether any
// drive has media loaded (§4.8).
const CurrentStateVersion = 10

// State captures the controller's full state for serialization.
func (c *Controller) State() State {
	s := State{
		Version: CurrentStateVersion,

		TrackReg:  c.TrackReg,
		SectorReg: c.SectorReg,
		Command:   c.command,
		DataReg:   c.DataReg,

		Busy:           c.busy,
		DRQ:            c.drq,
		SeekError:      c.seekError,
		CrcError:       c.crcError,
		LostData:       c.lostData,
		WriteProtected: c.writeProtected,
		MotorOnFlag:    c.motorOnFlag,
		SectorDeleted:  c.sectorDeleted,
		DoubleDensity:  c.doubleDensity,
		LastStepDirUp:  c.lastStepDirUp,

		Verify:            c.verify,
		Delay:             c.delay,
		UpdateRegisters:   c.updateRegisters,
		SideSelectVerify:  c.sideSelectVerify,
		SideOneExpected:   c.sideOneExpected,
		MarkSectorDeleted: c.markSectorDeleted,
		MultipleRecords:   c.multipleRecords,
		StepRateIndex:     c.stepRateIndex,

		CurrentDrive:    c.CurrentDrive,
		SideOneSelected: c.SideOneSelected,

		ReadAddressData:  c.readAddressData,
		ReadAddressIndex: c.readAddressIndex,
		SectorLength:     c.sectorLength,
		BytesRead:        c.bytesRead,
		BytesToWrite:     c.bytesToWrite,
		WriteCount:       c.writeCount,
		CRC:              c.crc,
		CRCCalc:          c.crcCalc,

		ActiveCommand: c.activeCommand,
		OpStatus:      c.opStatus,

		IsPolling:       c.isPolling,
		TargetDataIndex: c.targetDataIndex,

		Enabled: c.Enabled,
	}

	for i := range c.drives {
		s.Drives[i] = DriveState{
			PhysicalTrack:  c.drives[i].PhysicalTrack,
			WriteProtected: c.drives[i].WriteProtected,
			Loaded:         c.drives[i].Loaded(),
		}
	}

	s.CommandPulse = capturePulse(c.commandPulseReq, c.clk.TickCount)
	s.MotorOnPulse = capturePulse(c.motorOnPulseReq, c.clk.TickCount)
	s.MotorOffPulse = capturePulse(c.motorOffPulseReq, c.clk.TickCount)

	return s
}

func capturePulse(p *clock.PulseReq, now uint64) PulseState {
	if p == nil || !p.Active() {
		return PulseState{}
	}
	ft := p.FireTick()
	remaining := uint64(0)
	if ft > now {
		remaining = ft - now
	}
	return PulseState{Active: true, RemainingTick: remaining}
}

// Restore reinstates a previously captured State, inferring Enabled for
// pre-version-10 snapshots from whether any drive has media loaded, and
// rebinding pending pulse callbacks from (ActiveCommand, OpStatus,
// IsPolling) against the live scheduler.
func (c *Controller) Restore(s State) {
	c.TrackReg = s.TrackReg
	c.SectorReg = s.SectorReg
	c.command = s.Command
	c.DataReg = s.DataReg

	c.busy = s.Busy
	c.drq = s.DRQ
	c.seekError = s.SeekError
	c.crcError = s.CrcError
	c.lostData = s.LostData
	c.writeProtected = s.WriteProtected
	c.motorOnFlag = s.MotorOnFlag
	c.sectorDeleted = s.SectorDeleted
	c.doubleDensity = s.DoubleDensity
	c.lastStepDirUp = s.LastStepDirUp

	c.verify = s.Verify
	c.delay = s.Delay
	c.updateRegisters = s.UpdateRegisters
	c.sideSelectVerify = s.SideSelectVerify
	c.sideOneExpected = s.SideOneExpected
	c.markSectorDeleted = s.MarkSectorDeleted
	c.multipleRecords = s.MultipleRecords
	c.stepRateIndex = s.StepRateIndex

	c.CurrentDrive = s.CurrentDrive
	c.SideOneSelected = s.SideOneSelected

	for i := range c.drives {
		c.drives[i].PhysicalTrack = s.Drives[i].PhysicalTrack
		c.drives[i].WriteProtected = s.Drives[i].WriteProtected
	}

	c.readAddressData = s.ReadAddressData
	c.readAddressIndex = s.ReadAddressIndex
	c.sectorLength = s.SectorLength
	c.bytesRead = s.BytesRead
	c.bytesToWrite = s.BytesToWrite
	c.writeCount = s.WriteCount
	c.crc = s.CRC
	c.crcCalc = s.CRCCalc

	c.activeCommand = s.ActiveCommand
	c.opStatus = s.OpStatus

	c.isPolling = s.IsPolling
	c.targetDataIndex = s.TargetDataIndex

	if s.Version >= 10 {
		c.Enabled = s.Enabled
	} else {
		loaded := false
		for _, d := range s.Drives {
			if d.Loaded {
				loaded = true
				break
			}
		}
		c.Enabled = loaded
	}

	c.rearmPendingRequest(s)
}
