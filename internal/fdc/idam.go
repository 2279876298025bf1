package fdc

import "trs80m3-periph/internal/floppy"

// activeTrack returns the floppy.Track under the head right now, or nil if
// no image is mounted.
func (c *Controller) activeTrack() *floppy.Track {
	d := c.ActiveDrive()
	if d == nil || d.Image == nil || !d.Image.Loaded() {
		return nil
	}
	side := 0
	if c.SideOneSelected {
		side = 1
	}
	return d.Image.TrackData(d.PhysicalTrack, side)
}

// seekNextIDAM scans forward one byte at a time (via the byte-based Poll
// mechanism) looking for the next IDAM. It calls onFound once one is
// located, or onFail once indexesFound reaches MaxSeekRevolutions without
// one (§4.2 IDAM-seek termination).
func (c *Controller) seekNextIDAM(onFound, onFail func()) {
	c.opStatus = OpSeekingIDAM
	c.idamScanStep(onFound, onFail)
}

func (c *Controller) idamScanStep(onFound, onFail func()) {
	// A missing track (no image mounted, or an unloaded drive) never
	// finds an IDAM, but it still has to run the seek out to
	// MaxSeekRevolutions the same as a loaded, blank track — the Open
	// Question resolution seek-errors regardless of load state, so there
	// is no short-circuit here (§9).
	if track := c.activeTrack(); track != nil && track.HasIDAMAt(c.trackDataIndex(), c.doubleDensity) {
		onFound()
		return
	}

	if c.indexesFound() >= MaxSeekRevolutions {
		onFail()
		return
	}

	c.schedulePoll(1, func() {
		c.idamScanStep(onFound, onFail)
	})
}

// readAddressFieldThen reads the 6-byte address field (track, side,
// sector, size code, CRC-hi, CRC-lo) starting at the current head
// position, byte by byte via Poll, and invokes onDone once all 6 bytes
// have been captured into readAddressData (§3 Address-field scratch).
func (c *Controller) readAddressFieldThen(onDone func()) {
	c.opStatus = OpReadingAddressData
	c.readAddressIndex = 0
	c.crcCalc = CRCReset
	if c.doubleDensity {
		c.crcCalc = crcResetA1A1A1
	}
	c.readAddressByte(onDone)
}

func (c *Controller) readAddressByte(onDone func()) {
	track := c.activeTrack()
	if track == nil {
		onDone()
		return
	}

	c.schedulePoll(1, func() {
		b := track.ReadByte(c.trackDataIndex(), c.doubleDensity)
		if c.readAddressIndex < len(c.readAddressData) {
			c.readAddressData[c.readAddressIndex] = b
		}
		if c.readAddressIndex < AddrCRCHi {
			c.crcCalc = updateCRC(c.crcCalc, b)
		}
		c.readAddressIndex++
		if c.readAddressIndex >= len(c.readAddressData) {
			storedCRC := uint16(c.readAddressData[AddrCRCHi])<<8 | uint16(c.readAddressData[AddrCRCLo])
			if storedCRC != c.crcCalc {
				c.crcError = true
			}
			c.sectorLength = sectorLengthForCode(c.readAddressData[AddrSizeCode])
			onDone()
			return
		}
		c.readAddressByte(onDone)
	})
}

// sectorLengthForCode maps the WD179x size code byte to a sector length in
// bytes (§4.2 Type II ReadSector: "sector_length comes from the size-code
// byte of the address field").
func sectorLengthForCode(code byte) int {
	switch code & 0x03 {
	case 0:
		return 128
	case 1:
		return 256
	case 2:
		return 512
	default:
		return 1024
	}
}
