package fdc

// startTypeOne begins Restore, Seek, or Step (§4.2 Type I state machine:
// Prepare -> Step -> CheckVerify -> (seek IDAM / verify)* -> NMI).
func (c *Controller) startTypeOne() {
	c.seekError = false
	c.crcError = false
	c.busy = true

	if c.activeCommand == CmdRestore {
		c.TrackReg = 0xFF
		c.DataReg = 0
	}

	c.opStatus = OpPrepare
	c.typeOneStep()
}

// typeOneStep drives one iteration of the Type I step loop: compare the
// data and track registers (Restore/Seek) or step once unconditionally
// (Step), then schedule the next step after the selected step rate.
func (c *Controller) typeOneStep() {
	d := c.ActiveDrive()

	switch c.activeCommand {
	case CmdRestore, CmdSeek:
		if c.TrackReg == c.DataReg {
			c.afterTypeOneSteps()
			return
		}
		// The track register follows each step so the comparison above
		// converges on the data register.
		if c.DataReg < c.TrackReg {
			c.TrackReg--
			c.stepDown(d)
		} else {
			c.TrackReg++
			c.stepUp(d)
		}
		if d != nil && d.PhysicalTrack == 0 && c.DataReg <= c.TrackReg {
			// Stepping down hit physical track zero; Restore/Seek both
			// treat this as having arrived.
			c.TrackReg = 0
			c.afterTypeOneSteps()
			return
		}
	case CmdStep:
		if c.lastStepDirUp {
			c.stepUp(d)
		} else {
			c.stepDown(d)
		}
		c.afterTypeOneSteps()
		return
	}

	c.opStatus = OpStep
	rate := stepRates[c.stepRateIndex]
	c.commandPulseReq = c.scheduleDelay(basisMs, rate, c.typeOneStep)
}

// afterTypeOneSteps runs once stepping is finished: update TrackReg if
// requested, then either verify or complete.
func (c *Controller) afterTypeOneSteps() {
	if c.updateRegisters {
		if d := c.ActiveDrive(); d != nil {
			c.TrackReg = byte(d.PhysicalTrack)
		}
	}

	rate := stepRates[c.stepRateIndex]
	c.commandPulseReq = c.scheduleDelay(basisMs, rate, func() {
		if c.verify {
			c.opStatus = OpCheckVerify
			c.beginVerify()
			return
		}
		c.finishCommand()
	})
}

// beginVerify starts the shared IDAM-seek-and-compare loop used by Type I
// verify (§4.2: "Verify seeks any IDAM and compares
// readAddressData[TRACK] == track_register").
func (c *Controller) beginVerify() {
	c.resetIndexCount()
	c.seekNextIDAM(c.verifyCheckIDAM, c.onSeekError)
}

func (c *Controller) verifyCheckIDAM() {
	c.opStatus = OpVerifyTrack
	c.readAddressFieldThen(func() {
		if c.readAddressData[AddrTrack] == c.TrackReg {
			c.finishCommand()
			return
		}
		c.seekNextIDAM(c.verifyCheckIDAM, c.onSeekError)
	})
}

// onSeekError is the shared IDAM-seek failure path (§4.2 IDAM-seek
// termination / §5 Timeouts: seek_error after 5 unsuccessful revolutions).
func (c *Controller) onSeekError() {
	c.seekError = true
	c.finishCommand()
}

