package fdc

// startWriteSector begins Type II WriteSector (§4.2). Aborted immediately
// with write_protected if the drive flag is set, before any media
// mutation.
func (c *Controller) startWriteSector() {
	c.busy = true
	c.seekError = false
	c.crcError = false
	c.lostData = false
	c.opStatus = OpPrepare
	c.resetIndexCount()

	if d := c.ActiveDrive(); d != nil && d.WriteProtected {
		c.writeProtected = true
		c.finishCommand()
		return
	}
	c.writeProtected = false

	start := func() {
		c.seekNextIDAM(c.checkWriteIDAMMatchesSector, c.onSeekError)
	}
	if c.delay {
		c.opStatus = OpDelay
		c.commandPulseReq = c.scheduleDelay(basisMs, HeadLoadDelayMs, start)
		return
	}
	start()
}

func (c *Controller) checkWriteIDAMMatchesSector() {
	c.readAddressFieldThen(func() {
		if c.crcError {
			c.finishCommand()
			return
		}
		if c.readAddressData[AddrSector] != c.SectorReg {
			c.seekNextIDAM(c.checkWriteIDAMMatchesSector, c.onSeekError)
			return
		}
		c.crcError = false
		c.beginWriteDRQWait()
	})
}

// fillerBytesForDensity is the filler count written before the sync/DAM
// sequence (§4.2 Type II WriteSector: 12 for DD, 6 for SD).
func (c *Controller) fillerBytesForDensity() int {
	if c.doubleDensity {
		return 12
	}
	return 6
}

// beginWriteDRQWait asserts DRQ and waits 8 bytes for the CPU to have
// written the first data byte, per §4.2.
func (c *Controller) beginWriteDRQWait() {
	c.opStatus = OpWriteDRQWait
	c.drq = true
	c.schedulePoll(8, func() {
		if c.drq {
			// CPU never serviced the request.
			c.lostData = true
		}
		c.writeCount = 0
		c.opStatus = OpWritingFiller
		c.writeLoop(0x00, c.fillerBytesForDensity(), c.startSync)
	})
}

// writeLoop writes `count` copies of `b` to the active track, one byte per
// Poll step, then invokes next.
func (c *Controller) writeLoop(b byte, count int, next func()) {
	if c.writeCount >= count {
		c.writeCount = 0
		next()
		return
	}
	c.schedulePoll(1, func() {
		if track := c.activeTrack(); track != nil {
			track.WriteByte(c.trackDataIndex(), c.doubleDensity, b)
		}
		c.writeCount++
		c.writeLoop(b, count, next)
	})
}

func (c *Controller) startSync() {
	c.opStatus = OpWritingSync
	if !c.doubleDensity {
		c.writeDAM()
		return
	}
	c.writeLoop(0xA1, 3, c.writeDAM)
}

func (c *Controller) writeDAM() {
	c.opStatus = OpWritingDAM
	dam := byte(0xFB)
	if c.markSectorDeleted {
		dam = 0xF8
	}
	c.sectorDeleted = c.markSectorDeleted
	c.crcCalc = CRCReset
	if c.doubleDensity {
		c.crcCalc = crcResetA1A1A1
	}
	c.crcCalc = updateCRC(c.crcCalc, dam)

	c.schedulePoll(1, func() {
		if track := c.activeTrack(); track != nil {
			track.WriteByte(c.trackDataIndex(), c.doubleDensity, dam)
		}
		c.bytesRead = 0
		c.opStatus = OpWritingData
		c.writeDataByte()
	})
}

func (c *Controller) writeDataByte() {
	if c.bytesRead >= c.sectorLength {
		c.writeCRC()
		return
	}
	c.schedulePoll(1, func() {
		b := byte(0x00)
		if c.drq {
			c.lostData = true
		} else {
			b = c.DataReg
		}
		c.drq = true
		c.crcCalc = updateCRC(c.crcCalc, b)
		if track := c.activeTrack(); track != nil {
			track.WriteByte(c.trackDataIndex(), c.doubleDensity, b)
		}
		c.bytesRead++
		c.writeDataByte()
	})
}

func (c *Controller) writeCRC() {
	c.opStatus = OpWritingCRC
	hi := byte(c.crcCalc >> 8)
	lo := byte(c.crcCalc & 0xFF)
	c.schedulePoll(1, func() {
		if track := c.activeTrack(); track != nil {
			track.WriteByte(c.trackDataIndex(), c.doubleDensity, hi)
		}
		c.schedulePoll(1, func() {
			if track := c.activeTrack(); track != nil {
				track.WriteByte(c.trackDataIndex(), c.doubleDensity, lo)
			}
			c.opStatus = OpWritingTrailer
			c.writeLoop(0xFF, 1, c.completeSectorWrite)
		})
	})
}

func (c *Controller) completeSectorWrite() {
	if c.multipleRecords {
		c.SectorReg++
		c.seekNextIDAM(c.checkWriteIDAMMatchesSector, c.onSeekError)
		return
	}
	c.finishCommand()
}
