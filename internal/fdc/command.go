package fdc

// Command identifies a decoded WD179x command, tagged by family. Spec §9
// models the source's per-command callback references as an explicit enum
// dispatched on in one advance function per family, the same way cpu.go's
// central fetch/decode loop switches on opcode rather than keeping a
// function-pointer table.
type Command int

const (
	CmdNone Command = iota
	CmdRestore
	CmdSeek
	CmdStep
	CmdReadSector
	CmdWriteSector
	CmdReadAddress
	CmdReadTrack
	CmdWriteTrack
	CmdForceInterrupt
	CmdForceInterruptImmediate
	CmdReset
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "None"
	case CmdRestore:
		return "Restore"
	case CmdSeek:
		return "Seek"
	case CmdStep:
		return "Step"
	case CmdReadSector:
		return "ReadSector"
	case CmdWriteSector:
		return "WriteSector"
	case CmdReadAddress:
		return "ReadAddress"
	case CmdReadTrack:
		return "ReadTrack"
	case CmdWriteTrack:
		return "WriteTrack"
	case CmdForceInterrupt:
		return "ForceInterrupt"
	case CmdForceInterruptImmediate:
		return "ForceInterruptImmediate"
	case CmdReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Family groups commands for status-register assembly and for picking the
// right advance function.
type Family int

const (
	FamilyI Family = iota
	FamilyII
	FamilyIII
	FamilyIV
)

func (c Command) Family() Family {
	switch c {
	case CmdRestore, CmdSeek, CmdStep:
		return FamilyI
	case CmdReadSector, CmdWriteSector:
		return FamilyII
	case CmdReadAddress, CmdReadTrack, CmdWriteTrack:
		return FamilyIII
	default:
		return FamilyIV
	}
}

// stepRates maps the low two command bits to a step rate in milliseconds
// (§4.2 Command families, §9 configuration table).
var stepRates = [4]uint64{6, 12, 20, 30}

// decodeCommand classifies a just-written command register byte and
// populates the controller's decode flags (§4.2 Command decoding).
func (c *Controller) decodeCommand(reg byte) {
	c.command = reg

	highNibble := reg >> 4

	switch {
	case highNibble == 0x0:
		c.activeCommand = CmdRestore
		c.updateRegisters = true
		c.verify = reg&0x04 != 0
		c.stepRateIndex = reg & 0x03
	case highNibble == 0x1:
		c.activeCommand = CmdSeek
		c.updateRegisters = true
		c.verify = reg&0x04 != 0
		c.stepRateIndex = reg & 0x03
	case highNibble >= 0x2 && highNibble <= 0x7:
		c.activeCommand = CmdStep
		c.verify = reg&0x04 != 0
		c.updateRegisters = reg&0x10 != 0
		c.stepRateIndex = reg & 0x03
		// Bits 5-6 select Step-In (0x40/0x50, toward higher tracks) or
		// Step-Out (0x60/0x70, toward track 0); plain Step (0x20/0x30)
		// leaves the previous direction in effect.
		switch reg & 0x60 {
		case 0x40:
			c.lastStepDirUp = true
		case 0x60:
			c.lastStepDirUp = false
		}
	case highNibble == 0x8 || highNibble == 0x9:
		c.activeCommand = CmdReadSector
		c.delay = reg&0x04 != 0
		c.sideSelectVerify = reg&0x02 != 0
		c.sideOneExpected = reg&0x08 != 0
		c.multipleRecords = reg&0x10 != 0
	case highNibble == 0xA || highNibble == 0xB:
		c.activeCommand = CmdWriteSector
		c.delay = reg&0x04 != 0
		c.sideSelectVerify = reg&0x02 != 0
		c.sideOneExpected = reg&0x08 != 0
		c.multipleRecords = reg&0x10 != 0
		c.markSectorDeleted = reg&0x01 != 0
	case highNibble == 0xC:
		c.activeCommand = CmdReadAddress
		c.delay = reg&0x04 != 0
	case highNibble == 0xE:
		c.activeCommand = CmdReadTrack
		c.delay = reg&0x04 != 0
	case highNibble == 0xF:
		c.activeCommand = CmdWriteTrack
		c.delay = reg&0x04 != 0
	case highNibble == 0xD:
		switch reg {
		case 0xD0:
			c.activeCommand = CmdReset
		case 0xD8:
			c.activeCommand = CmdForceInterruptImmediate
		default:
			c.activeCommand = CmdForceInterrupt
		}
	default:
		c.activeCommand = CmdNone
	}
}
