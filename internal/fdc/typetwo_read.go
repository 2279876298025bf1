package fdc

// damScanLimit is how many bytes past the IDAM's CRC a ReadSector/WriteSector
// scans for a Data Address Mark before giving up (§4.2 Type II ReadSector).
func (c *Controller) damScanLimit() int {
	if c.doubleDensity {
		return 43
	}
	return 30
}

// startReadSector begins Type II ReadSector (§4.2): Prepare -> [Delay] ->
// SeekingIDAM -> ReadingAddressData -> SeekingDAM -> ReadingData ->
// ReadCRCHigh -> ReadCRCLow -> (loop on multipleRecords or NMI).
func (c *Controller) startReadSector() {
	c.busy = true
	c.seekError = false
	c.crcError = false
	c.lostData = false
	c.sectorDeleted = false
	c.opStatus = OpPrepare
	c.resetIndexCount()

	start := func() {
		c.seekNextIDAMForSector()
	}
	if c.delay {
		c.opStatus = OpDelay
		c.commandPulseReq = c.scheduleDelay(basisMs, HeadLoadDelayMs, start)
		return
	}
	start()
}

// seekNextIDAMForSector scans IDAMs until one matches the selected sector
// (and, if side_select_verify is set, the selected side).
func (c *Controller) seekNextIDAMForSector() {
	c.seekNextIDAM(c.checkIDAMMatchesSector, c.onSeekError)
}

func (c *Controller) checkIDAMMatchesSector() {
	c.readAddressFieldThen(func() {
		if c.crcError {
			c.finishCommand()
			return
		}
		if c.readAddressData[AddrSector] != c.SectorReg {
			c.seekNextIDAMForSector()
			return
		}
		if c.sideSelectVerify {
			wantSide := byte(0)
			if c.SideOneSelected {
				wantSide = 1
			}
			if c.readAddressData[AddrSide] != wantSide {
				c.seekNextIDAMForSector()
				return
			}
		}
		c.crcError = false
		c.seekDAM()
	})
}

// seekDAM scans up to damScanLimit bytes past the address field's CRC for
// a Data Address Mark (0xFB normal, 0xF8 deleted).
func (c *Controller) seekDAM() {
	c.opStatus = OpSeekingDAM
	c.damBytesChecked = 0
	c.seekDAMStep()
}

func (c *Controller) seekDAMStep() {
	track := c.activeTrack()
	if track == nil {
		c.onSeekError()
		return
	}
	if c.damBytesChecked >= c.damScanLimit() {
		c.onSeekError()
		return
	}
	c.schedulePoll(1, func() {
		b := track.ReadByte(c.trackDataIndex(), c.doubleDensity)
		c.damBytesChecked++
		switch b {
		case 0xFB:
			c.sectorDeleted = false
			c.beginReadData()
		case 0xF8:
			c.sectorDeleted = true
			c.beginReadData()
		default:
			c.seekDAMStep()
		}
	})
}

func (c *Controller) beginReadData() {
	c.opStatus = OpReadingData
	c.bytesRead = 0
	c.crcCalc = CRCReset
	if c.doubleDensity {
		c.crcCalc = crcResetA1A1A1
	}
	dam := byte(0xFB)
	if c.sectorDeleted {
		dam = 0xF8
	}
	c.crcCalc = updateCRC(c.crcCalc, dam)
	c.readDataByte()
}

func (c *Controller) readDataByte() {
	track := c.activeTrack()
	c.schedulePoll(1, func() {
		if track == nil {
			c.onSeekError()
			return
		}
		b := track.ReadByte(c.trackDataIndex(), c.doubleDensity)
		c.crcCalc = updateCRC(c.crcCalc, b)
		if c.drq {
			c.lostData = true
		}
		c.DataReg = b
		c.drq = true
		c.bytesRead++
		if c.bytesRead >= c.sectorLength {
			c.opStatus = OpReadCRCHigh
			c.readCRCHigh()
			return
		}
		c.readDataByte()
	})
}

func (c *Controller) readCRCHigh() {
	track := c.activeTrack()
	c.schedulePoll(1, func() {
		if track != nil {
			c.readAddressData[AddrCRCHi] = track.ReadByte(c.trackDataIndex(), c.doubleDensity)
		}
		c.opStatus = OpReadCRCLow
		c.readCRCLow()
	})
}

func (c *Controller) readCRCLow() {
	track := c.activeTrack()
	c.schedulePoll(1, func() {
		if track != nil {
			c.readAddressData[AddrCRCLo] = track.ReadByte(c.trackDataIndex(), c.doubleDensity)
		}
		stored := uint16(c.readAddressData[AddrCRCHi])<<8 | uint16(c.readAddressData[AddrCRCLo])
		if stored != c.crcCalc {
			c.crcError = true
			c.finishCommand()
			return
		}
		c.completeSectorTransfer()
	})
}

func (c *Controller) completeSectorTransfer() {
	if c.multipleRecords {
		c.SectorReg++
		c.seekNextIDAMForSector()
		return
	}
	c.finishCommand()
}
