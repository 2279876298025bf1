package fdc

// startReadAddress begins Type III ReadAddress (§4.2): find one IDAM,
// transfer its 6 address bytes to the CPU via DRQ, copy TRACK/SECTOR into
// the track/sector registers, then NMI.
func (c *Controller) startReadAddress() {
	c.busy = true
	c.seekError = false
	c.crcError = false
	c.opStatus = OpPrepare
	c.resetIndexCount()

	start := func() {
		c.seekNextIDAM(c.readAddressForAddressCommand, c.onSeekError)
	}
	if c.delay {
		c.opStatus = OpDelay
		c.commandPulseReq = c.scheduleDelay(basisMs, HeadLoadDelayMs, start)
		return
	}
	start()
}

func (c *Controller) readAddressForAddressCommand() {
	c.readAddressFieldThen(func() {
		c.TrackReg = c.readAddressData[AddrTrack]
		c.SectorReg = c.readAddressData[AddrSector]
		c.transferAddressFieldToCPU(0)
	})
}

// transferAddressFieldToCPU presents the 6 captured address bytes to the
// CPU one at a time via DRQ, matching the byte-by-byte transfer the real
// controller performs even though the bytes were already captured during
// the preceding readAddressFieldThen scan.
func (c *Controller) transferAddressFieldToCPU(i int) {
	if i >= len(c.readAddressData) {
		c.finishCommand()
		return
	}
	c.schedulePoll(1, func() {
		if c.drq {
			c.lostData = true
		}
		c.DataReg = c.readAddressData[i]
		c.drq = true
		c.transferAddressFieldToCPU(i + 1)
	})
}

// startReadTrack begins Type III ReadTrack: await the index pulse, then
// stream every byte of the track to the CPU via DRQ until the next index
// pulse.
func (c *Controller) startReadTrack() {
	c.busy = true
	c.opStatus = OpAwaitIndex
	c.resetIndexCount()
	c.awaitIndexThen(func() {
		c.opStatus = OpStreamingTrack
		c.bytesRead = 0
		c.streamReadTrackByte()
	})
}

func (c *Controller) streamReadTrackByte() {
	length := c.trackLength()
	if c.bytesRead >= length {
		c.finishCommand()
		return
	}
	c.schedulePoll(1, func() {
		if c.drq {
			c.lostData = true
		}
		if track := c.activeTrack(); track != nil {
			c.DataReg = track.ReadByte(c.trackDataIndex(), c.doubleDensity)
		}
		c.drq = true
		c.bytesRead++
		c.streamReadTrackByte()
	})
}

// awaitIndexThen schedules callback for the next time the index pulse is
// detected (i.e. the head reaches the start of the track).
func (c *Controller) awaitIndexThen(callback func()) {
	length := c.trackLength()
	if length == 0 {
		callback()
		return
	}
	delay := ticksUntilIndex(c.diskAngle(), 0, length, ticksPerRev())
	if delay == 0 {
		delay = ticksPerRev()
	}
	c.commandPulseReq = c.scheduleDelay(basisTicks, delay, callback)
}

// startWriteTrack begins Type III WriteTrack: await the index pulse, then
// write every byte of the track from the CPU's data register, applying
// the marker-byte transforms described in §4.2.
func (c *Controller) startWriteTrack() {
	c.busy = true

	if d := c.ActiveDrive(); d != nil && d.WriteProtected {
		c.writeProtected = true
		c.finishCommand()
		return
	}
	c.writeProtected = false

	c.opStatus = OpAwaitIndex
	c.resetIndexCount()
	c.awaitIndexThen(func() {
		c.opStatus = OpStreamingTrack
		c.bytesRead = 0
		c.crcCalc = CRCReset
		c.streamWriteTrackByte()
	})
}

func (c *Controller) streamWriteTrackByte() {
	length := c.trackLength()
	if c.bytesRead >= length {
		c.finishCommand()
		return
	}
	c.schedulePoll(1, func() {
		raw := byte(0x00)
		if c.drq {
			c.lostData = true
		} else {
			raw = c.DataReg
		}
		c.drq = true
		c.bytesRead++

		track := c.activeTrack()
		suppressNextDRQRecompute := false

		switch {
		case c.doubleDensity && raw == 0xF5:
			raw = 0xA1
		case c.doubleDensity && raw == 0xF6:
			raw = 0xC2
		case raw == 0xF7:
			hi := byte(c.crcCalc >> 8)
			lo := byte(c.crcCalc & 0xFF)
			if track != nil {
				track.WriteByte(c.trackDataIndex(), c.doubleDensity, hi)
			}
			c.bytesRead++
			if c.bytesRead < length {
				c.schedulePoll(1, func() {
					if track != nil {
						track.WriteByte(c.trackDataIndex(), c.doubleDensity, lo)
					}
					c.streamWriteTrackByte()
				})
			}
			suppressNextDRQRecompute = true
		case !c.doubleDensity && markerResetsCRC(raw):
			c.crcCalc = CRCReset
		}

		if suppressNextDRQRecompute {
			return
		}
		if track != nil {
			track.WriteByte(c.trackDataIndex(), c.doubleDensity, raw)
		}
		c.crcCalc = updateCRC(c.crcCalc, raw)
		c.streamWriteTrackByte()
	})
}
