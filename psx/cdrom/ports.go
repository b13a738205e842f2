package cdrom

// Read implements memmap.Ports for the four CD-ROM ports (spec §4.4
// "4 index-addressed ports"), grounded on the original implementation's
// PSX_cd_status/port1_read/port2_read/port3_read.
func (c *Controller) Read(port uint32, width int) (uint32, bool) {
	switch port {
	case 0:
		return uint32(c.statusRegister()), true
	case 1:
		return uint32(c.popResponse()), true
	case 2:
		return uint32(c.popData()), true
	case 3:
		switch c.index {
		case 0, 2:
			return uint32(c.irqEnable | 0xE0), true
		default:
			return uint32(c.irqFlags | 0xE0), true
		}
	}
	return 0xFF, true
}

// Write implements memmap.Ports for the four CD-ROM ports.
func (c *Controller) Write(port uint32, width int, value uint32) bool {
	b := byte(value)
	switch port {
	case 0:
		c.index = b & 0x3
	case 1:
		c.writePort1(b)
	case 2:
		c.writePort2(b)
	case 3:
		c.writePort3(b)
	}
	return true
}

// StatusByte exposes the I/O status register for diagnostics (e.g. a
// headless runner's live status view); ordinary reads go through Read.
func (c *Controller) StatusByte() byte { return c.statusRegister() }

// statusRegister returns the I/O status byte (index bits, FIFO
// empty/full flags, and the command-busy bit).
func (c *Controller) statusRegister() byte {
	var ret byte
	ret = c.index
	if len(c.paramFIFO) == 0 {
		ret |= 1 << 3
	}
	if len(c.paramFIFO) != fifoSize {
		ret |= 1 << 4
	}
	if len(c.responseFIFO) != 0 {
		ret |= 1 << 5
	}
	if len(c.dataFIFO) != 0 {
		ret |= 1 << 6
	}
	if c.busy {
		ret |= 1 << 7
	}
	return ret
}

func (c *Controller) popResponse() byte {
	if len(c.responseFIFO) == 0 {
		return 0
	}
	v := c.responseFIFO[0]
	c.responseFIFO = c.responseFIFO[1:]
	return v
}

func (c *Controller) popData() byte {
	if len(c.dataFIFO) == 0 {
		return 0
	}
	v := c.dataFIFO[0]
	c.dataFIFO = c.dataFIFO[1:]
	return v
}

func (c *Controller) writePort1(b byte) {
	switch c.index {
	case 0: // Command Register
		if c.busy {
			c.warn("cdrom: command %02X ignored while busy", b)
			return
		}
		c.curCmd = b
		c.busy = true
		delay := ccFirstResponse + len(c.paramFIFO)*1815
		c.executeCommand(b, delay)
	case 3: // right-CD-out -> right-SPU-in volume
		c.volume.tmpR2R = b
	}
}

func (c *Controller) writePort2(b byte) {
	switch c.index {
	case 0: // Parameter FIFO
		if len(c.paramFIFO) >= fifoSize {
			c.warn("cdrom: parameter fifo full, write dropped")
			return
		}
		c.paramFIFO = append(c.paramFIFO, b)
	case 1: // Interrupt Enable Register
		c.irqEnable = b & 0x1F
	case 2: // left-CD-out -> left-SPU-in volume
		c.volume.tmpL2L = b
	case 3: // right-CD-out -> left-SPU-in volume
		c.volume.tmpR2L = b
	}
}

func (c *Controller) writePort3(b byte) {
	switch c.index {
	case 0: // Request Register
		bfrd := b&0x80 != 0
		if bfrd {
			c.loadDataFIFO()
		} else {
			c.dataFIFO = c.dataFIFO[:0]
		}
	case 1: // Interrupt Flag Register: write-1-to-clear, plus ack semantics
		c.irqFlags &^= b
		if c.irqFlags&0x7 == 0 {
			c.busy = false
		}
		if b&0x40 != 0 { // reset parameter FIFO
			c.paramFIFO = c.paramFIFO[:0]
		}
	case 2: // left-CD-out -> left-SPU-in volume (apply)
		c.volume.l2l = c.volume.tmpL2L
	case 3: // volume apply / audio mute latch
		c.volume.r2r = c.volume.tmpR2R
		c.volume.r2l = c.volume.tmpR2L
	}
}
