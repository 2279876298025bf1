package fdc

import "trs80m3-periph/internal/interrupts"

// finishCommand arms the NMI-delay pulse that ends every command (§4.2
// Completion path).
func (c *Controller) finishCommand() {
	c.opStatus = OpNMI
	c.commandPulseReq = c.scheduleDelay(basisUsec, NMIDelayUsec, c.doNMI)
}

// doNMI implements §4.2's completion path: clears busy and DRQ and latches
// FdcNmi.
func (c *Controller) doNMI() {
	c.opStatus = OpDone
	c.drq = false
	c.commandPulseReq = nil
	c.ints.Latch(interrupts.LineFdcNmi).Set()
	c.logf(logInfo, "command %s complete (seekError=%v crcError=%v lostData=%v writeProtected=%v)",
		c.activeCommand, c.seekError, c.crcError, c.lostData, c.writeProtected)
}

// abortToNMI jumps straight to the completion path; it is equivalent to
// finishCommand, which the write-protect and seek-error terminations call
// directly.
func (c *Controller) abortToNMI() {
	c.finishCommand()
}

// forceInterrupt implements Type IV: abort any running command and latch
// FdcNmi unconditionally, without advancing state. Two consecutive
// ForceInterruptImmediate commands are idempotent (§8): both just clear
// busy/drq and latch NMI.
func (c *Controller) forceInterrupt() {
	if c.commandPulseReq != nil {
		c.commandPulseReq.Expire()
		c.commandPulseReq = nil
	}
	c.opStatus = OpDone
	c.drq = false
	c.isPolling = false
	c.pollDone = nil
	c.ints.Latch(interrupts.LineFdcNmi).Set()
	c.logf(logInfo, "force interrupt (immediate=%v)", c.activeCommand == CmdForceInterruptImmediate)
}

// reset implements the Type IV Reset sub-command (command byte 0xD0):
// abort any running command, same as force interrupt, without latching
// NMI (Reset is a controller-level reinitialization, not a completion
// signal).
func (c *Controller) reset() {
	if c.commandPulseReq != nil {
		c.commandPulseReq.Expire()
		c.commandPulseReq = nil
	}
	c.opStatus = OpDone
	c.drq = false
	c.isPolling = false
	c.pollDone = nil
	c.seekError = false
	c.crcError = false
	c.lostData = false
	c.TrackReg = 0
	c.logf(logInfo, "reset")
}
