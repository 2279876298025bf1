package fdc

// AssembleStatus builds the WD179x status register. Bit layout follows the
// standard WD1793 datasheet assignment (spec.md names the flags but not
// their bit positions, so this is taken from the chip's own documented
// register map rather than invented):
//
//	bit 7  Not Ready       (no drive selected / motor off)
//	bit 6  Write Protect   (drive flag for Type I, command flag otherwise)
//	bit 5  Head Loaded / Record Type (command-dependent)
//	bit 4  Seek Error / Record Not Found
//	bit 3  CRC Error
//	bit 2  Track 0 (Type I) / Lost Data (Type II/III)
//	bit 1  Index (Type I) / DRQ (Type II/III)
//	bit 0  Busy
func (c *Controller) AssembleStatus() byte {
	var s byte

	notReady := c.ActiveDrive() == nil || !c.motorOnFlag
	if notReady {
		s |= 0x80
	}

	if c.Busy() {
		s |= 0x01
	}

	switch c.activeCommand.Family() {
	case FamilyI:
		if c.indexDetect() {
			s |= 0x02
		}
		if d := c.ActiveDrive(); d != nil && d.PhysicalTrack == 0 {
			s |= 0x04
		}
		if c.seekError {
			s |= 0x10
		}
		if c.motorOnFlag {
			s |= 0x20
		}
		if d := c.ActiveDrive(); d != nil && d.WriteProtected {
			s |= 0x40
		}
	default:
		if c.drq {
			s |= 0x02
		}
		if c.lostData {
			s |= 0x04
		}
		if c.seekError {
			s |= 0x10
		}
		if c.sectorDeleted {
			s |= 0x20
		}
		if c.writeProtected {
			s |= 0x40
		}
	}

	if c.crcError {
		s |= 0x08
	}

	return s
}
