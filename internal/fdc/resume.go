package fdc

import "trs80m3-periph/internal/clock"

// rearmPendingRequest rebinds the one pending command-phase callback
// after a snapshot restore, resolved from (ActiveCommand, OpStatus,
// IsPolling) rather than a serialized function pointer (§4.8). Resume
// re-enters at the start of the current sub-phase rather than mid-byte;
// WD179x snapshot fidelity is not bit-exact at that grain, only at the
// command-phase grain spec.md actually enumerates.
func (c *Controller) rearmPendingRequest(s State) {
	if !s.CommandPulse.Active {
		c.commandPulseReq = nil
	} else {
		cont := c.resolveContinuation(s)
		if cont != nil {
			c.commandPulseReq = c.scheduleResumed(s.CommandPulse.RemainingTick, s.IsPolling, s.TargetDataIndex, cont)
		}
	}

	if s.MotorOnPulse.Active {
		c.motorOnPulseReq = c.sched.Register(clock.BasisTicks, s.MotorOnPulse.RemainingTick, c.motorOnFired)
	} else {
		c.motorOnPulseReq = nil
	}

	if s.MotorOffPulse.Active {
		c.motorOffPulseReq = c.sched.Register(clock.BasisTicks, s.MotorOffPulse.RemainingTick, c.motorOffFired)
	} else {
		c.motorOffPulseReq = nil
	}
}

func (c *Controller) scheduleResumed(remaining uint64, polling bool, targetIndex int, cont func()) *clock.PulseReq {
	if polling {
		c.targetDataIndex = targetIndex
		c.pollDone = cont
		c.isPolling = true
		return c.sched.Register(clock.BasisTicks, remaining, c.poll)
	}
	return c.sched.Register(clock.BasisTicks, remaining, cont)
}

// resolveContinuation maps the captured (ActiveCommand, OpStatus) pair to
// the method that resumes that sub-phase. Most phases resume by
// re-entering the named phase function, which restarts that phase's scan
// or transfer from its own beginning.
func (c *Controller) resolveContinuation(s State) func() {
	switch s.OpStatus {
	case OpStep:
		return c.typeOneStep
	case OpCheckVerify, OpVerifyTrack:
		return c.beginVerify
	case OpNMI:
		return c.doNMI
	}

	switch s.ActiveCommand {
	case CmdRestore, CmdSeek, CmdStep:
		switch s.OpStatus {
		case OpSeekingIDAM:
			return c.beginVerify
		}
	case CmdReadSector:
		switch s.OpStatus {
		case OpDelay:
			return c.seekNextIDAMForSector
		case OpSeekingIDAM, OpReadingAddressData:
			return c.seekNextIDAMForSector
		case OpSeekingDAM:
			return c.seekDAM
		case OpReadingData:
			return c.beginReadData
		case OpReadCRCHigh:
			return c.readCRCHigh
		case OpReadCRCLow:
			return c.readCRCLow
		}
	case CmdWriteSector:
		switch s.OpStatus {
		case OpDelay, OpSeekingIDAM, OpReadingAddressData:
			return func() { c.seekNextIDAM(c.checkWriteIDAMMatchesSector, c.onSeekError) }
		case OpWriteDRQWait:
			return c.beginWriteDRQWait
		case OpWritingFiller:
			return func() { c.writeLoop(0x00, c.fillerBytesForDensity(), c.startSync) }
		case OpWritingSync:
			return c.startSync
		case OpWritingDAM:
			return c.writeDAM
		case OpWritingData:
			return c.writeDataByte
		case OpWritingCRC:
			return c.writeCRC
		case OpWritingTrailer:
			return func() { c.writeLoop(0xFF, 1, c.completeSectorWrite) }
		}
	case CmdReadAddress:
		switch s.OpStatus {
		case OpDelay, OpSeekingIDAM, OpReadingAddressData:
			return func() { c.seekNextIDAM(c.readAddressForAddressCommand, c.onSeekError) }
		}
	case CmdReadTrack:
		switch s.OpStatus {
		case OpAwaitIndex:
			return func() {
				c.awaitIndexThen(func() {
					c.opStatus = OpStreamingTrack
					c.bytesRead = 0
					c.streamReadTrackByte()
				})
			}
		case OpStreamingTrack:
			return c.streamReadTrackByte
		}
	case CmdWriteTrack:
		switch s.OpStatus {
		case OpAwaitIndex:
			return func() {
				c.awaitIndexThen(func() {
					c.opStatus = OpStreamingTrack
					c.bytesRead = 0
					c.crcCalc = CRCReset
					c.streamWriteTrackByte()
				})
			}
		case OpStreamingTrack:
			return c.streamWriteTrackByte
		}
	}

	return nil
}
