package mdec

// totalBlocksFor reports how many 8x8 blocks make up one macroblock for
// a given output depth (spec §4.5: mono outputs decode a single Y
// block, colour outputs decode Cr, Cb, then four Y blocks).
func totalBlocksFor(depth Depth) int {
	if depth == Depth4Bit || depth == Depth8Bit {
		return 1
	}
	return blockCount
}

func signExtend10(v uint16) int32 {
	x := int32(v & 0x3FF)
	if x&0x200 != 0 {
		x -= 0x400
	}
	return x
}

func clampCoeff(v int32) int32 {
	if v < -1024 {
		return -1024
	}
	if v > 1023 {
		return 1023
	}
	return v
}

// feedDecode consumes one 32-bit FIFO word as two deinterleaved 16-bit
// run-length symbols (spec §4.5 "Decode").
func (d *Decoder) feedDecode(word uint32) {
	d.consumeValue(uint16(word & 0xFFFF))
	if d.state == cmdDecode {
		d.consumeValue(uint16(word >> 16))
	}
	if d.remain != 0xFFFF {
		d.remain--
	}
	if d.remain == 0xFFFF && d.state == cmdDecode && d.blockIdx == 0 && !d.haveDC {
		d.state = cmdNone
	}
}

func (d *Decoder) consumeValue(v uint16) {
	if d.state != cmdDecode {
		return
	}
	if v == 0xFE00 {
		return // padding between blocks
	}

	total := totalBlocksFor(d.depth)
	idx := d.blockIdx
	if total == 1 {
		idx = blockY1
	}
	blk := &d.coeffs[idx]

	if !d.haveDC {
		d.q = int32((v >> 10) & 0x3F)
		dc := signExtend10(v & 0x3FF)
		for i := range blk {
			blk[i] = 0
		}
		blk[0] = float64(dc)
		d.coeffPos = 1
		d.haveDC = true
		return
	}

	run := int((v >> 10) & 0x3F)
	d.coeffPos += run
	if d.coeffPos > 63 {
		d.finishBlock()
		return
	}
	ac := signExtend10(v & 0x3FF)
	qt := &d.qtLuma
	if idx == blockCr || idx == blockCb {
		qt = &d.qtChroma
	}
	k := d.coeffPos
	coeff := clampCoeff((ac*int32(qt[k])*d.q + 4) / 8)
	pos := 0
	for i, z := range zigzag {
		if z == k {
			pos = i
			break
		}
	}
	blk[pos] = float64(coeff)
	d.coeffPos++
}

func (d *Decoder) finishBlock() {
	d.haveDC = false
	d.coeffPos = 0
	d.blockIdx++
	if d.blockIdx >= totalBlocksFor(d.depth) {
		d.blockIdx = 0
		d.completeMacroblock()
	}
}

// completeMacroblock runs the inverse DCT, colour conversion and
// output packing for one finished macroblock (spec §4.5), then applies
// the fixed decode-rate throttle.
func (d *Decoder) completeMacroblock() {
	var cr, cb, y [4][64]float64
	total := totalBlocksFor(d.depth)
	if total == 1 {
		idct(&d.coeffs[blockY1], &d.st, &y[0])
		d.packMono(&y[0])
	} else {
		idct(&d.coeffs[blockCr], &d.st, &cr[0])
		idct(&d.coeffs[blockCb], &d.st, &cb[0])
		idct(&d.coeffs[blockY1], &d.st, &y[0])
		idct(&d.coeffs[blockY2], &d.st, &y[1])
		idct(&d.coeffs[blockY3], &d.st, &y[2])
		idct(&d.coeffs[blockY4], &d.st, &y[3])
		d.packColor(&cr[0], &cb[0], &y)
	}

	d.restCycles += cyclesPerBlock

	if d.remain == 0xFFFF {
		d.state = cmdNone
	}
}

// pushOut appends a byte to fifo_out a word at a time, matching the
// MDEC's 32-bit-wide output port.
type outAccumulator struct {
	buf  uint32
	n    int
	dest *Decoder
}

func (a *outAccumulator) push(b byte) {
	a.buf |= uint32(b) << (8 * uint(a.n))
	a.n++
	if a.n == 4 {
		a.dest.fifoOut = append(a.dest.fifoOut, a.buf)
		a.buf, a.n = 0, 0
	}
}

func (a *outAccumulator) flush() {
	if a.n > 0 {
		a.dest.fifoOut = append(a.dest.fifoOut, a.buf)
		a.buf, a.n = 0, 0
	}
}
