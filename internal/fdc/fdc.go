// Package fdc emulates a WD179x-class floppy disk controller driving up
// to four drives: the Type I-IV command state machine, the rotating-media
// timing model, CRC computation, index-pulse synthesis, and the
// NMI-driven completion path.
package fdc

import (
	"trs80m3-periph/internal/clock"
	"trs80m3-periph/internal/debug"
	"trs80m3-periph/internal/floppy"
	"trs80m3-periph/internal/interrupts"
)

// OpStatus is the controller's progress through the currently executing
// command; snapshot restore dispatches on it in resolveContinuation.
type OpStatus int

const (
	OpDone OpStatus = iota
	OpPrepare
	OpStep
	OpCheckVerify
	OpSeekingIDAM
	OpReadingAddressData
	OpVerifyTrack
	OpDelay
	OpSeekingDAM
	OpReadingData
	OpReadCRCHigh
	OpReadCRCLow
	OpWriteDRQWait
	OpWritingFiller
	OpWritingSync
	OpWritingDAM
	OpWritingData
	OpWritingCRC
	OpWritingTrailer
	OpAwaitIndex
	OpStreamingTrack
	OpNMI
)

// Address-field scratch indices (§3 FDC data model).
const (
	AddrTrack = iota
	AddrSide
	AddrSector
	AddrSizeCode
	AddrCRCHi
	AddrCRCLo
)

// Timing constants (§9 configuration table).
const (
	NMIDelayUsec    = 30
	StandardDelayMs = 30
	HeadLoadDelayMs = 50
	MotorOnDelayUsec = 10
	MotorOffDelaySec = 2
	DiskRPM          = 300
	MaxSeekRevolutions = 5
)

// NoDrive is the sentinel "no drive selected" value for CurrentDrive.
const NoDrive = 0xFF

// Local aliases to keep the command-family files terse.
const (
	basisTicks = clock.BasisTicks
	basisUsec  = clock.BasisMicroseconds
	basisMs    = clock.BasisMilliseconds

	logTrace = debug.LogLevelTrace
	logInfo  = debug.LogLevelInfo
	logWarn  = debug.LogLevelWarning
)

// Controller is the WD179x emulation core.
type Controller struct {
	clk    *clock.Clock
	sched  *clock.PulseScheduler
	ints   *interrupts.Manager
	logger *debug.Logger

	Enabled bool

	// Hardware registers.
	TrackReg  byte
	SectorReg byte
	command   byte
	DataReg   byte

	// Status flags.
	busy           bool
	drq            bool
	seekError      bool
	crcError       bool
	lostData       bool
	writeProtected bool
	motorOnFlag    bool
	sectorDeleted  bool
	doubleDensity  bool
	lastStepDirUp  bool

	// Per-command decode flags.
	verify            bool
	delay             bool
	updateRegisters   bool
	sideSelectVerify  bool
	sideOneExpected   bool
	markSectorDeleted bool
	multipleRecords   bool
	stepRateIndex     byte

	// Selection.
	CurrentDrive    int
	SideOneSelected bool
	drives          [4]floppy.Drive

	// Address-field scratch.
	readAddressData  [6]byte
	readAddressIndex int
	idamBytesFound    int
	damBytesChecked   int
	sectorLength      int
	bytesRead         int
	bytesToWrite      int
	writeCount        int
	crc               uint16
	crcCalc           uint16

	// Operation state.
	activeCommand Command
	opStatus      OpStatus

	// Poll state.
	isPolling           bool
	targetDataIndex     int
	indexCheckStartTick uint64
	pollDone            func()

	// Scheduled requests.
	commandPulseReq *clock.PulseReq
	motorOnPulseReq  *clock.PulseReq
	motorOffPulseReq *clock.PulseReq

	lastFault error
	sound     SoundSink
}

// New returns a disabled (no media, no command in progress) controller.
func New(clk *clock.Clock, sched *clock.PulseScheduler, ints *interrupts.Manager, logger *debug.Logger) *Controller {
	c := &Controller{
		clk:          clk,
		sched:        sched,
		ints:         ints,
		logger:       logger,
		CurrentDrive: NoDrive,
		opStatus:     OpDone,
	}
	c.resetIndexCount()
	return c
}

// Busy reports §3's invariant: a command is executing (op_status != OpDone
// or a pulse request is still pending).
func (c *Controller) Busy() bool {
	return c.opStatus != OpDone || (c.commandPulseReq != nil && c.commandPulseReq.Active())
}

// DRQ reports whether the controller is requesting a data-byte transfer.
func (c *Controller) DRQ() bool { return c.drq }

// SeekError, CrcError, LostData, WriteProtectedFlag report the
// corresponding status bits for tests and diagnostics.
func (c *Controller) SeekError() bool       { return c.seekError }
func (c *Controller) CrcError() bool        { return c.crcError }
func (c *Controller) LostData() bool        { return c.lostData }
func (c *Controller) WriteProtectedFlag() bool { return c.writeProtected }
func (c *Controller) DoubleDensity() bool   { return c.doubleDensity }

// Drive returns the drive state for index i (0-3).
func (c *Controller) Drive(i int) *floppy.Drive {
	return &c.drives[i]
}

// ActiveDrive returns the currently selected drive, or nil if none is
// selected.
func (c *Controller) ActiveDrive() *floppy.Drive {
	if c.CurrentDrive == NoDrive || c.CurrentDrive < 0 || c.CurrentDrive > 3 {
		return nil
	}
	return &c.drives[c.CurrentDrive]
}

func (c *Controller) logf(level debug.LogLevel, format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.LogFDCf(level, format, args...)
	}
}
