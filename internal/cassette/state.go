package cassette

// State is the exported, gob-friendly snapshot of a Cassette, consumed by
// internal/snapshot. It mirrors the data model in spec §3 field for field;
// the live Transition/PulseReq are not captured here — the scheduler
// callback is rebuilt by internal/snapshot by re-arming a read transition
// if the restored state says the motor was on and in read mode.
type State struct {
	Data       []byte
	ByteCursor int
	BitCursor  int
	IsBlank    bool

	Speed           Speed
	MotorEngaged    bool
	MotorOnSignal   bool
	MotorOn         bool
	RecordInvoked   bool
	OverflowStopped bool

	LastWritePositive      uint64
	NextLastWritePositive  uint64
	HasPreviousPositive    bool
	LastWritePolarity      Polarity
	HighSpeedWriteEvidence int
	SkippedLast            bool

	ConsecutiveFiftyFives int
	ConsecutiveZeros      int
}

// State captures the current snapshot-relevant fields.
func (c *Cassette) State() State {
	return State{
		Data:                   append([]byte(nil), c.data...),
		ByteCursor:             c.byteCursor,
		BitCursor:              c.bitCursor,
		IsBlank:                c.isBlank,
		Speed:                  c.speed,
		MotorEngaged:           c.motorEngaged,
		MotorOnSignal:          c.motorOnSignal,
		MotorOn:                c.motorOn,
		RecordInvoked:          c.recordInvoked,
		OverflowStopped:        c.overflowStopped,
		LastWritePositive:      c.lastWritePositive,
		NextLastWritePositive:  c.nextLastWritePositive,
		HasPreviousPositive:    c.hasPreviousPositive,
		LastWritePolarity:      c.lastWritePolarity,
		HighSpeedWriteEvidence: c.highSpeedWriteEvidence,
		SkippedLast:            c.skippedLast,
		ConsecutiveFiftyFives:  c.consecutiveFiftyFives,
		ConsecutiveZeros:       c.consecutiveZeros,
	}
}

// Restore reinstates a prior State. If the restored state has the motor
// running in read mode, a fresh read Transition is armed against the
// current scheduler, matching the "deserialization rebinds callback
// pointers" rule in §6.
func (c *Cassette) Restore(s State) {
	c.data = append([]byte(nil), s.Data...)
	c.byteCursor = s.ByteCursor
	c.bitCursor = s.BitCursor
	c.isBlank = s.IsBlank
	c.speed = s.Speed
	c.motorEngaged = s.MotorEngaged
	c.motorOnSignal = s.MotorOnSignal
	c.motorOn = s.MotorOn
	c.recordInvoked = s.RecordInvoked
	c.overflowStopped = s.OverflowStopped
	c.lastWritePositive = s.LastWritePositive
	c.nextLastWritePositive = s.NextLastWritePositive
	c.hasPreviousPositive = s.HasPreviousPositive
	c.lastWritePolarity = s.LastWritePolarity
	c.highSpeedWriteEvidence = s.HighSpeedWriteEvidence
	c.skippedLast = s.SkippedLast
	c.consecutiveFiftyFives = s.ConsecutiveFiftyFives
	c.consecutiveZeros = s.ConsecutiveZeros

	c.transition = nil
	c.readPulseReq = nil
	if c.motorOn && !c.recordInvoked {
		c.startReadTransition()
	}
}
