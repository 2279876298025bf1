package fdc

// IssueCommand decodes and dispatches a just-written command register byte
// (§4.2 Command dispatch). Type IV commands (ForceInterrupt,
// ForceInterruptImmediate, Reset) always take effect immediately, even
// while a command is in progress; any other command is ignored while the
// controller is busy.
func (c *Controller) IssueCommand(reg byte) {
	c.decodeCommand(reg)

	switch c.activeCommand {
	case CmdForceInterrupt, CmdForceInterruptImmediate:
		c.forceInterrupt()
		return
	case CmdReset:
		c.reset()
		return
	}

	if c.Busy() {
		c.logf(logWarn, "command %s ignored: controller busy", c.activeCommand)
		return
	}

	c.drq = false
	c.seekError = false
	c.crcError = false
	c.lostData = false

	switch c.activeCommand.Family() {
	case FamilyI:
		c.startTypeOne()
	case FamilyII:
		if c.activeCommand == CmdReadSector {
			c.startReadSector()
		} else {
			c.startWriteSector()
		}
	case FamilyIII:
		switch c.activeCommand {
		case CmdReadAddress:
			c.startReadAddress()
		case CmdReadTrack:
			c.startReadTrack()
		case CmdWriteTrack:
			c.startWriteTrack()
		}
	}
}
