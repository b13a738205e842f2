package cdrom

// IRQ type numbers used by the first/second response protocol (spec §5):
// INT1 = data-ready/read result, INT2 = second response, INT3 = normal
// acknowledge ("first response"), INT5 = error.
const (
	irqDataReady    = 1
	irqSecondResp   = 2
	irqAcknowledge  = 3
	irqDataEnd      = 4
	irqError        = 5
)

// executeCommand decodes one command byte and schedules its responses
// (spec §5 "two-phase first/second response IRQ protocol"), grounded on
// the original implementation's run_cmd dispatch table.
func (c *Controller) executeCommand(cmd byte, delay int) {
	params := append([]byte(nil), c.paramFIFO...)
	c.paramFIFO = c.paramFIFO[:0]

	switch cmd {
	case 0x00: // Sync
		c.ackOnly(delay)
	case 0x01: // GetStat
		c.respondFirst(delay, []byte{c.currentStatus()})
	case 0x02: // SetLoc
		c.cmdSetLoc(delay, params)
	case 0x03: // Play
		c.cmdPlay(delay, params)
	case 0x04, 0x05: // Forward / Backward
		c.respondFirst(delay, []byte{c.currentStatus()})
	case 0x06, 0x1B: // ReadN / ReadS
		c.cmdRead(delay)
	case 0x07: // MotorOn
		c.statusReg |= statMotorOn
		c.ackOnly(delay)
	case 0x08: // Stop
		c.reading, c.playing = false, false
		c.statusReg &^= statMotorOn
		c.ackOnly(delay)
	case 0x09: // Pause
		c.cmdPause(delay)
	case 0x0A: // Init
		c.cmdInit(delay)
	case 0x0B: // Mute
		c.adpcm.muted = true
		c.ackOnly(delay)
	case 0x0C: // Demute
		c.adpcm.muted = false
		c.ackOnly(delay)
	case 0x0D: // Setfilter
		if len(params) >= 2 {
			c.adpcm.filterFile = params[0]
			c.adpcm.filterChannel = params[1]
		}
		c.ackOnly(delay)
	case 0x0E: // Setmode
		if len(params) >= 1 {
			c.mode = params[0]
			c.doubleSpeed = c.mode&0x80 != 0
		}
		c.ackOnly(delay)
	case 0x0F: // Getparam
		c.respondFirst(delay, []byte{c.currentStatus(), c.mode, 0, c.adpcm.filterFile, c.adpcm.filterChannel})
	case 0x10: // GetlocL
		c.cmdGetLocL(delay)
	case 0x11: // GetlocP
		c.cmdGetLocP(delay)
	case 0x12: // Setsession
		c.ackOnly(delay)
	case 0x13: // GetTN
		c.cmdGetTN(delay)
	case 0x14: // GetTD
		c.cmdGetTD(delay, params)
	case 0x15: // SeekL
		c.cmdSeek(delay, true)
	case 0x16: // SeekP
		c.cmdSeek(delay, false)
	case 0x19: // Test
		c.cmdTest(delay, params)
	case 0x1A: // GetID
		c.cmdGetID(delay)
	case 0x1C: // Reset
		c.cmdInit(delay)
	case 0x1D: // GetQ
		c.respondFirst(delay, []byte{c.currentStatus()})
	case 0x1E: // ReadTOC
		c.ackOnly(delay)
	default:
		c.warn("cdrom: unknown command 0x%02X", cmd)
		c.respondError(delay, 0x40, 0x01)
	}
}

func (c *Controller) ackOnly(delay int) {
	c.queueResponse(irqAcknowledge, delay, []byte{c.currentStatus()}, nil)
}

func (c *Controller) respondFirst(delay int, bytes []byte) {
	c.queueResponse(irqAcknowledge, delay, bytes, nil)
}

// respondError queues an INT5 error response (spec §5 "error_disc_missing").
func (c *Controller) respondError(delay int, statusBit, code byte) {
	c.statusReg |= statError
	c.queueResponse(irqError, delay, []byte{c.currentStatus(), code}, nil)
}

func bcd(v byte) byte { return ((v / 10) << 4) | (v % 10) }

func (c *Controller) cmdSetLoc(delay int, params []byte) {
	if len(params) < 3 {
		c.respondError(delay, 0, 0x10)
		return
	}
	mm, ss, ff := params[0], params[1], params[2]
	lba := uint32((mm>>4)*10+(mm&0xF))*60*75 + uint32((ss>>4)*10+(ss&0xF))*75 + uint32((ff>>4)*10+(ff&0xF))
	if lba >= 150 {
		lba -= 150 // 2-second lead-in (spec §4.4 "MSF addressing")
	}
	c.seekTarget = lba
	c.ackOnly(delay)
}

func (c *Controller) cmdPlay(delay int, params []byte) {
	c.playing = true
	c.statusReg |= statPlay
	if len(params) >= 1 && params[0] != 0 && c.disc != nil {
		if lba, ok := c.disc.TrackStart(int(params[0])); ok {
			c.curLBA = lba
		}
	}
	c.ackOnly(delay)
}

func (c *Controller) cmdRead(delay int) {
	c.reading = true
	c.statusReg |= statRead
	c.curLBA = c.seekTarget
	readDelay := ccReadSingleSpeed
	if c.doubleSpeed {
		readDelay = ccReadDoubleSpeed
	}
	c.queueResponse(irqAcknowledge, delay, []byte{c.currentStatus()}, func(ctrl *Controller) {
		ctrl.queueResponse(irqDataReady, readDelay, []byte{ctrl.currentStatus()}, func(c2 *Controller) {
			c2.deliverSector()
			if c2.reading {
				c2.queueResponse(irqDataReady, readDelay, []byte{c2.currentStatus()}, nil)
			}
		})
	})
}

// deliverSector pulls the next sector via the two-level buffer (spec
// §4.4 "two-level sector read buffer"): one slot is being filled while
// the other is drained to the data FIFO / ADPCM decoder.
func (c *Controller) deliverSector() {
	if c.disc == nil {
		return
	}
	data, ok := c.disc.ReadSector(c.curLBA)
	if !ok {
		c.respondError(0, 0, 0x04)
		return
	}
	c.curLBA++
	fillIdx := 1 - c.activeBuf
	c.sectorBuf[fillIdx] = data
	c.sectorFull[fillIdx] = true
	c.activeBuf = fillIdx

	if c.mode&0x40 != 0 && isXAADPCMSector(data) {
		c.decodeXASector(data)
		return
	}
	c.dataFIFO = append(c.dataFIFO[:0], data...)
}

func (c *Controller) loadDataFIFO() {
	c.dataFIFO = append(c.dataFIFO[:0], c.sectorBuf[c.activeBuf]...)
}

func (c *Controller) cmdPause(delay int) {
	c.reading, c.playing = false, false
	c.statusReg &^= statRead | statPlay
	c.queueResponse(irqAcknowledge, delay, []byte{c.currentStatus()}, func(ctrl *Controller) {
		ctrl.queueResponse(irqSecondResp, ccFirstResponse, []byte{ctrl.currentStatus()}, nil)
	})
}

func (c *Controller) cmdInit(delay int) {
	c.reading, c.playing = false, false
	c.statusReg = statMotorOn
	c.mode = 0
	c.queueResponse(irqAcknowledge, delay, []byte{c.currentStatus()}, func(ctrl *Controller) {
		ctrl.queueResponse(irqSecondResp, ccFirstResponse, []byte{ctrl.currentStatus()}, nil)
	})
}

func (c *Controller) cmdGetLocL(delay int) {
	if len(c.sectorBuf[c.activeBuf]) < 8 {
		c.respondError(delay, 0, 0x80)
		return
	}
	hdr := append([]byte(nil), c.sectorBuf[c.activeBuf][:8]...)
	c.respondFirst(delay, hdr)
}

func (c *Controller) cmdGetLocP(delay int) {
	if c.disc == nil {
		c.respondError(delay, 0, 0x80)
		return
	}
	pos := c.curLBA
	if c.disc.Tell() != 0 {
		pos = c.disc.Tell()
	}
	track, index, rel, abs, ok := c.disc.ReadSubchannelQ(pos)
	if !ok {
		c.respondError(delay, 0, 0x80)
		return
	}
	relMM, relSS, relFF := lbaToMSF(rel)
	absMM, absSS, absFF := lbaToMSF(abs)
	c.respondFirst(delay, []byte{
		bcd(byte(track)), bcd(byte(index)),
		bcd(relMM), bcd(relSS), bcd(relFF),
		bcd(absMM), bcd(absSS), bcd(absFF),
	})
}

func lbaToMSF(lba uint32) (mm, ss, ff byte) {
	lba += 150
	ff = byte(lba % 75)
	lba /= 75
	ss = byte(lba % 60)
	mm = byte(lba / 60)
	return
}

func (c *Controller) cmdGetTN(delay int) {
	n := 1
	if c.disc != nil {
		n = c.disc.TrackCount()
	}
	c.respondFirst(delay, []byte{c.currentStatus(), bcd(1), bcd(byte(n))})
}

func (c *Controller) cmdGetTD(delay int, params []byte) {
	track := 0
	if len(params) >= 1 {
		track = int(params[0])
	}
	var lba uint32
	if c.disc != nil {
		if l, ok := c.disc.TrackStart(track); ok {
			lba = l
		}
	}
	mm, ss, _ := lbaToMSF(lba)
	c.respondFirst(delay, []byte{c.currentStatus(), bcd(mm), bcd(ss)})
}

func (c *Controller) cmdSeek(delay int, dataMode bool) {
	c.statusReg |= statSeek
	seekDelay := ccSeekSecond
	c.queueResponse(irqAcknowledge, delay, []byte{c.currentStatus()}, func(ctrl *Controller) {
		ctrl.curLBA = ctrl.seekTarget
		if ctrl.disc != nil {
			ctrl.disc.Seek(ctrl.curLBA)
		}
		ctrl.statusReg &^= statSeek
		ctrl.queueResponse(irqSecondResp, seekDelay, []byte{ctrl.currentStatus()}, nil)
	})
}

func (c *Controller) cmdTest(delay int, params []byte) {
	if len(params) == 0 {
		c.respondError(delay, 0, 0x10)
		return
	}
	switch params[0] {
	case 0x20: // get BIOS date/version, a fixed calibration value (spec §9)
		c.respondFirst(delay, []byte{0x94, 0x09, 0x19, 0xC0})
	default:
		c.respondFirst(delay, []byte{c.currentStatus()})
	}
}

func (c *Controller) cmdGetID(delay int) {
	c.queueResponse(irqAcknowledge, delay, []byte{c.currentStatus()}, func(ctrl *Controller) {
		if ctrl.disc == nil || !ctrl.disc.Inserted() {
			ctrl.queueResponse(irqError, ccFirstResponse, []byte{0x08, 0x40, 0, 0, 0, 0, 0, 0}, nil)
			return
		}
		ctrl.queueResponse(irqSecondResp, ccFirstResponse, []byte{0x02, 0x00, 0x20, 0x00, 'S', 'C', 'E', 'A'}, nil)
	})
}
