package fdc

import "trs80m3-periph/internal/interrupts"

// DiskSelect implements port 0xF4 (§4.2 Disk select): bits 0-3 select a
// drive (first set bit wins), bit 4 selects the side, bit 6 is the CPU
// wait flag, bit 7 selects double density. A write (re)arms the
// motor-on/motor-off timers regardless of whether the selected drive
// changed.
func (c *Controller) DiskSelect(value byte) {
	c.CurrentDrive = NoDrive
	for i := 0; i < 4; i++ {
		if value&(1<<uint(i)) != 0 {
			c.CurrentDrive = i
			break
		}
	}
	c.SideOneSelected = value&0x10 != 0
	c.doubleDensity = value&0x80 != 0
	// Bit 6 (CPU wait) is not modeled as controller state.

	if c.motorOffPulseReq != nil {
		c.motorOffPulseReq.Expire()
		c.motorOffPulseReq = nil
	}

	if !c.motorOnFlag {
		if c.motorOnPulseReq != nil {
			c.motorOnPulseReq.Expire()
		}
		c.motorOnPulseReq = c.scheduleDelay(basisUsec, MotorOnDelayUsec, c.motorOnFired)
		return
	}

	c.motorOffPulseReq = c.scheduleDelay(basisMs, MotorOffDelaySec*1000, c.motorOffFired)
}

func (c *Controller) motorOnFired() {
	c.motorOnFlag = true
	c.motorOnPulseReq = nil
	if c.sound != nil {
		c.sound.DriveMotorRunning(true)
	}
	c.motorOffPulseReq = c.scheduleDelay(basisMs, MotorOffDelaySec*1000, c.motorOffFired)
}

func (c *Controller) motorOffFired() {
	c.motorOnFlag = false
	c.motorOffPulseReq = nil
	if c.sound != nil {
		c.sound.DriveMotorRunning(false)
	}
	c.ints.Latch(interrupts.LineFdcMotorOffNmi).Set()
}

// InterruptEnablePort handles ports 0xE4-0xE7 (FDC interrupt enable
// status). Writes are logged and otherwise ignored, and reads return 0xFF;
// the controller keeps no interrupt-enable state, and the NMI lines are
// latched directly by the completion and motor-off paths.
type InterruptEnablePort struct {
	FDC *Controller
}

func (h InterruptEnablePort) In() uint8 { return 0xFF }
func (h InterruptEnablePort) Out(value uint8) {
	h.FDC.logf(logTrace, "interrupt enable write %#02x", value)
}

// CommandStatusPort handles port 0xF0: writes issue a command, reads
// return the assembled status register.
type CommandStatusPort struct{ FDC *Controller }

func (h CommandStatusPort) In() uint8 {
	if !h.FDC.Enabled {
		return 0xFF
	}
	return h.FDC.AssembleStatus()
}
func (h CommandStatusPort) Out(value uint8) {
	if !h.FDC.Enabled {
		return
	}
	h.FDC.IssueCommand(value)
}

// TrackPort handles port 0xF1.
type TrackPort struct{ FDC *Controller }

func (h TrackPort) In() uint8 {
	if !h.FDC.Enabled {
		return 0xFF
	}
	return h.FDC.TrackReg
}
func (h TrackPort) Out(value uint8) {
	if h.FDC.Enabled {
		h.FDC.TrackReg = value
	}
}

// SectorPort handles port 0xF2.
type SectorPort struct{ FDC *Controller }

func (h SectorPort) In() uint8 {
	if !h.FDC.Enabled {
		return 0xFF
	}
	return h.FDC.SectorReg
}
func (h SectorPort) Out(value uint8) {
	if h.FDC.Enabled {
		h.FDC.SectorReg = value
	}
}

// DataPort handles port 0xF3: reading clears DRQ.
type DataPort struct{ FDC *Controller }

func (h DataPort) In() uint8 {
	if !h.FDC.Enabled {
		return 0xFF
	}
	v := h.FDC.DataReg
	h.FDC.drq = false
	return v
}
func (h DataPort) Out(value uint8) {
	if !h.FDC.Enabled {
		return
	}
	h.FDC.DataReg = value
	h.FDC.drq = false
}

// DiskSelectPort handles port 0xF4 (write-only per §9).
type DiskSelectPort struct{ FDC *Controller }

func (h DiskSelectPort) In() uint8 { return 0xFF }
func (h DiskSelectPort) Out(value uint8) {
	if h.FDC.Enabled {
		h.FDC.DiskSelect(value)
	}
}
