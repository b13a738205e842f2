package gte

// funcs maps a COP2 GTE function number (the low 6 bits of the
// instruction word) to its handler. Unused slots are nil and reported
// via GTE.warn, mirroring jeebie/cpu/mapping.go's opcodeMap for bytes
// the CPU decoder has no handler for.
var funcs = [64]op{
	0x01: opRTPS,
	0x06: opNCLIP,
	0x0C: opOP,
	0x10: opDPCS,
	0x11: opINTPL,
	0x12: opMVMVA,
	0x13: opNCDS,
	0x14: opCDP,
	0x16: opNCDT,
	0x1B: opNCCS,
	0x1C: opCC,
	0x1E: opNCS,
	0x20: opNCT,
	0x28: opSQR,
	0x29: opDCPL,
	0x2A: opDPCT,
	0x2D: opAVSZ3,
	0x2E: opAVSZ4,
	0x30: opRTPT,
	0x3D: opGPF,
	0x3E: opGPL,
	0x3F: opNCCT,
}

// costs is the per-function declared cycle cost table of spec §6.4
// (derived from the original implementation's gte_exec dispatch).
var costs = [64]int{
	0x01: 15,
	0x06: 8,
	0x0C: 6,
	0x10: 8,
	0x11: 8,
	0x12: 8,
	0x13: 19,
	0x14: 13,
	0x16: 44,
	0x1B: 17,
	0x1C: 11,
	0x1E: 14,
	0x20: 30,
	0x28: 5,
	0x29: 8,
	0x2A: 17,
	0x2D: 5,
	0x2E: 5,
	0x30: 23,
	0x3D: 5,
	0x3E: 5,
	0x3F: 39,
}

func sclamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// setMAC stores the low 32 bits of tmp into MACi (i = 0..3) and records
// flagPos/flagNeg when tmp overflows the register's range: ±2^31 for
// MAC0, ±2^43 for MAC1/2/3. The stored value is not saturated.
func (g *GTE) setMAC(i int, tmp int64, flagNeg, flagPos uint) int32 {
	limit := int64(1) << 43
	if i == 0 {
		limit = int64(1) << 31
	}
	if tmp > limit-1 {
		g.setFlagBit(flagPos)
	} else if tmp < -limit {
		g.setFlagBit(flagNeg)
	}
	v := int32(int64(uint64(tmp) & 0xFFFFFFFF))
	g.data[rMAC1+i-1] = uint32(v)
	return v
}

// setIR saturates a MACn value into IRn (class B/C, lm controls the
// lower bound).
func (g *GTE) setIR(i int, tmp int32, lm bool, flagBit uint) int16 {
	var v int16
	if lm {
		if tmp > 0x7FFF {
			g.setFlagBit(flagBit)
			v = 0x7FFF
		} else if tmp < -0x8000 {
			g.setFlagBit(flagBit)
			v = -0x8000
		} else {
			v = int16(tmp)
		}
	} else {
		if tmp > 0x7FFF {
			g.setFlagBit(flagBit)
			v = 0x7FFF
		} else if tmp < 0 {
			g.setFlagBit(flagBit)
			v = 0
		} else {
			v = int16(tmp)
		}
	}
	g.data[rIR1+i-1] = uint32(uint16(v))
	return v
}

func (g *GTE) ir(i int) int32 { return int32(int16(g.data[rIR1+i-1])) }
func (g *GTE) mac(i int) int32 { return int32(g.data[rMAC1+i-1]) }

func (g *GTE) vxy(n int) (int32, int32) {
	w := g.data[rVXY0+2*n]
	return int32(int16(uint16(w))), int32(int16(uint16(w >> 16)))
}
func (g *GTE) vz(n int) int32 { return int32(int16(uint16(g.data[rVZ0+2*n]))) }

func (g *GTE) rgbc() (r, gr, b, code uint32) {
	w := g.data[rRGBC]
	return w & 0xFF, (w >> 8) & 0xFF, (w >> 16) & 0xFF, (w >> 24) & 0xFF
}

// matrix selects one of the four rotation/light/colour/"special" 3x3
// matrices addressed by opts.mx (spec §6.1 "MVMVA matrix select").
func (g *GTE) matrix(mx int) [3][3]int32 {
	var m [3][3]int32
	switch mx {
	case 0: // rotation
		m[0][0] = int32(int16(uint16(g.ctrl[cRT11RT12])))
		m[0][1] = int32(int16(uint16(g.ctrl[cRT11RT12] >> 16)))
		m[0][2] = int32(int16(uint16(g.ctrl[cRT13RT21])))
		m[1][0] = int32(int16(uint16(g.ctrl[cRT13RT21] >> 16)))
		m[1][1] = int32(int16(uint16(g.ctrl[cRT22RT23])))
		m[1][2] = int32(int16(uint16(g.ctrl[cRT22RT23] >> 16)))
		m[2][0] = int32(int16(uint16(g.ctrl[cRT31RT32])))
		m[2][1] = int32(int16(uint16(g.ctrl[cRT31RT32] >> 16)))
		m[2][2] = int32(int16(uint16(g.ctrl[cRT33])))
	case 1: // light
		m[0][0] = int32(int16(uint16(g.ctrl[cL11L12])))
		m[0][1] = int32(int16(uint16(g.ctrl[cL11L12] >> 16)))
		m[0][2] = int32(int16(uint16(g.ctrl[cL13L21])))
		m[1][0] = int32(int16(uint16(g.ctrl[cL13L21] >> 16)))
		m[1][1] = int32(int16(uint16(g.ctrl[cL22L23])))
		m[1][2] = int32(int16(uint16(g.ctrl[cL22L23] >> 16)))
		m[2][0] = int32(int16(uint16(g.ctrl[cL31L32])))
		m[2][1] = int32(int16(uint16(g.ctrl[cL31L32] >> 16)))
		m[2][2] = int32(int16(uint16(g.ctrl[cL33])))
	case 2: // colour
		m[0][0] = int32(int16(uint16(g.ctrl[cLR1LR2])))
		m[0][1] = int32(int16(uint16(g.ctrl[cLR1LR2] >> 16)))
		m[0][2] = int32(int16(uint16(g.ctrl[cLR3LG1])))
		m[1][0] = int32(int16(uint16(g.ctrl[cLR3LG1] >> 16)))
		m[1][1] = int32(int16(uint16(g.ctrl[cLG2LG3])))
		m[1][2] = int32(int16(uint16(g.ctrl[cLG2LG3] >> 16)))
		m[2][0] = int32(int16(uint16(g.ctrl[cLB1LB2])))
		m[2][1] = int32(int16(uint16(g.ctrl[cLB1LB2] >> 16)))
		m[2][2] = int32(int16(uint16(g.ctrl[cLB3])))
	default: // "garbage"/reserved matrix: all zero per spec §6.4 note
	}
	return m
}

func (g *GTE) translation(cv int) [3]int32 {
	switch cv {
	case 0:
		return [3]int32{int32(g.ctrl[cTRX]), int32(g.ctrl[cTRY]), int32(g.ctrl[cTRZ])}
	case 1:
		return [3]int32{int32(g.ctrl[cRBK]), int32(g.ctrl[cGBK]), int32(g.ctrl[cBBK])}
	case 2:
		return [3]int32{int32(g.ctrl[cRFC]), int32(g.ctrl[cGFC]), int32(g.ctrl[cBFC])}
	default:
		return [3]int32{}
	}
}

// mulMatrixVec performs the shared "M * V (+ translation) -> MAC1-3"
// step used by MVMVA, RTPS/RTPT and the lighting opcodes (spec §6.4).
func (g *GTE) mulMatrixVec(m [3][3]int32, v [3]int32, t [3]int32, sf bool, lm bool, noTrans bool) {
	shift := uint(0)
	if sf {
		shift = 12
	}
	for row := 0; row < 3; row++ {
		var acc int64
		if !noTrans {
			acc = int64(t[row]) << 12
		}
		acc += int64(m[row][0]) * int64(v[0])
		acc += int64(m[row][1]) * int64(v[1])
		acc += int64(m[row][2]) * int64(v[2])
		acc >>= shift
		mv := g.setMAC(row+1, acc, flagMAC1Neg-uint(row), flagMAC1Pos-uint(row))
		g.setIR(row+1, mv, lm, flagIR1Sat-uint(row))
	}
}

// perspectiveDivide computes 1/SZ3 via the Newton-Raphson UNR
// approximation of spec §6.4's perspective transform, grounded on the
// original calc_div()/UNR_TABLE pair.
func (g *GTE) perspectiveDivide(sz3 int32) int64 {
	h := int64(g.ctrl[cH] & 0xFFFF)
	num := h
	den := int64(sz3)
	if den <= 0 {
		den = 0
	}
	if num < den*2 {
		z := clz16(den)
		n := num << uint(z)
		d := den << uint(z)
		idx := (d - 0x7FC0) >> 7
		if idx < 0 {
			idx = 0
		}
		if idx > 0x100 {
			idx = 0x100
		}
		u := int64(unrTable[idx]) + 0x101
		d2 := (0x2000080 - (d * u)) >> 8
		d2 = (0x80 + (d2 * u)) >> 8
		ret := ((n * d2) + 0x8000) >> 16
		if ret > 0x1FFFF {
			ret = 0x1FFFF
		}
		return ret
	}
	g.setFlagBit(17)
	return 0x1FFFF
}

func clz16(v int64) int {
	if v == 0 {
		return 15
	}
	i := 0
	for ; i < 16; i++ {
		if v&0x8000 != 0 {
			break
		}
		v <<= 1
	}
	return i
}

// pushSZ shifts a new screen-Z value into the SZ0-3 FIFO.
func (g *GTE) pushSZ(v uint32) {
	g.data[rSZ0] = g.data[rSZ1]
	g.data[rSZ1] = g.data[rSZ2]
	g.data[rSZ2] = g.data[rSZ3]
	g.data[rSZ3] = v
}

// pushSXY shifts a new screen-XY value into the SXY0-2 FIFO.
func (g *GTE) pushSXY(x, y int32) {
	g.data[rSXY0] = g.data[rSXY1]
	g.data[rSXY1] = g.data[rSXY2]
	g.data[rSXY2] = uint32(uint16(x)) | uint32(uint16(y))<<16
}

// pushRGB shifts a new colour value into the RGB0-2 FIFO, reusing the
// low colour/code byte from RGBC (spec §6.4 "colour FIFO").
func (g *GTE) pushRGB(r, gr, b uint32) {
	_, _, _, code := g.rgbc()
	g.data[rRGB0] = g.data[rRGB1]
	g.data[rRGB1] = g.data[rRGB2]
	g.data[rRGB2] = r | gr<<8 | b<<16 | code<<24
}

func clampColor(v int32) (uint32, bool) {
	if v < 0 {
		return 0, true
	}
	if v > 255 {
		return 255, true
	}
	return uint32(v), false
}

// rtpsOne runs the perspective transform for a single vertex, shared by
// RTPS and RTPT (spec §6.4 "RTPS/RTPT").
func (g *GTE) rtpsOne(n int, lastOTZ bool, sf bool) {
	x, y := g.vxy(n)
	z := g.vz(n)
	rot := g.matrix(0)
	g.mulMatrixVec(rot, [3]int32{x, y, z}, g.translation(0), sf, false, false)

	sz := g.mac(3) >> 2
	var szClamped uint32
	if sz > 0xFFFF {
		g.setFlagBit(flagSZ3OTZSat)
		szClamped = 0xFFFF
	} else if sz < 0 {
		g.setFlagBit(flagSZ3OTZSat)
		szClamped = 0
	} else {
		szClamped = uint32(sz)
	}
	g.pushSZ(szClamped)
	if lastOTZ {
		g.data[rOTZ] = szClamped
	}

	divided := g.perspectiveDivide(int32(szClamped))
	ofx := int64(int32(g.ctrl[cOFX]))
	ofy := int64(int32(g.ctrl[cOFY]))
	sx := (divided*int64(g.ir(1)) + ofx) >> 16
	sy := (divided*int64(g.ir(2)) + ofy) >> 16
	sxC := sclamp(sx, -0x400, 0x3FF)
	syC := sclamp(sy, -0x400, 0x3FF)
	if sx != sxC {
		g.setFlagBit(flagSX2Sat)
	}
	if sy != syC {
		g.setFlagBit(flagSY2Sat)
	}
	g.pushSXY(int32(sxC), int32(syC))

	dqa := int64(int16(uint16(g.ctrl[cDQA])))
	dqb := int64(int32(g.ctrl[cDQB]))
	mac0 := dqb + dqa*divided
	g.setMAC(0, mac0, flagMAC0Neg, flagMAC0Pos)
	ir0 := mac0 >> 12
	if ir0 < 0 {
		g.setFlagBit(flagIR0Sat)
		g.data[rIR0] = 0
	} else if ir0 > 0x1000 {
		g.setFlagBit(flagIR0Sat)
		g.data[rIR0] = 0x1000
	} else {
		g.data[rIR0] = uint32(ir0)
	}
}

func opRTPS(g *GTE, o mvmvaOptions) { g.rtpsOne(0, true, true) }

func opRTPT(g *GTE, o mvmvaOptions) {
	g.rtpsOne(0, false, true)
	g.rtpsOne(1, false, true)
	g.rtpsOne(2, true, true)
}

func opMVMVA(g *GTE, o mvmvaOptions) {
	var v [3]int32
	switch o.v {
	case 0:
		x, y := g.vxy(0)
		v = [3]int32{x, y, g.vz(0)}
	case 1:
		x, y := g.vxy(1)
		v = [3]int32{x, y, g.vz(1)}
	case 2:
		x, y := g.vxy(2)
		v = [3]int32{x, y, g.vz(2)}
	case 3:
		v = [3]int32{g.ir(1), g.ir(2), g.ir(3)}
	}
	m := g.matrix(o.mx)
	t := g.translation(o.cv)
	g.mulMatrixVec(m, v, t, o.sf, o.lm, o.cv == 3)
}

func opNCLIP(g *GTE, o mvmvaOptions) {
	x0, y0 := g.vxyFromSXY(0)
	x1, y1 := g.vxyFromSXY(1)
	x2, y2 := g.vxyFromSXY(2)
	acc := int64(x0)*int64(y1-y2) + int64(x1)*int64(y2-y0) + int64(x2)*int64(y0-y1)
	g.setMAC(0, acc, flagMAC0Neg, flagMAC0Pos)
}

func (g *GTE) vxyFromSXY(n int) (int32, int32) {
	w := g.data[rSXY0+n]
	return int32(int16(uint16(w))), int32(int16(uint16(w >> 16)))
}

func opAVSZ3(g *GTE, o mvmvaOptions) {
	zsf3 := int64(int16(uint16(g.ctrl[cZSF3])))
	acc := zsf3 * (int64(g.data[rSZ1]) + int64(g.data[rSZ2]) + int64(g.data[rSZ3]))
	g.setMAC(0, acc, flagMAC0Neg, flagMAC0Pos)
	otz := acc >> 12
	g.setOTZFromMAC0(otz)
}

func opAVSZ4(g *GTE, o mvmvaOptions) {
	zsf4 := int64(int16(uint16(g.ctrl[cZSF4])))
	acc := zsf4 * (int64(g.data[rSZ0]) + int64(g.data[rSZ1]) + int64(g.data[rSZ2]) + int64(g.data[rSZ3]))
	g.setMAC(0, acc, flagMAC0Neg, flagMAC0Pos)
	otz := acc >> 12
	g.setOTZFromMAC0(otz)
}

func (g *GTE) setOTZFromMAC0(v int64) {
	if v > 0xFFFF {
		g.setFlagBit(flagSZ3OTZSat)
		g.data[rOTZ] = 0xFFFF
	} else if v < 0 {
		g.setFlagBit(flagSZ3OTZSat)
		g.data[rOTZ] = 0
	} else {
		g.data[rOTZ] = uint32(v)
	}
}

func opSQR(g *GTE, o mvmvaOptions) {
	shift := uint(0)
	if o.sf {
		shift = 12
	}
	for i := 0; i < 3; i++ {
		v := int64(g.ir(i + 1))
		acc := (v * v) >> shift
		mv := g.setMAC(i+1, acc, flagMAC1Neg-uint(i), flagMAC1Pos-uint(i))
		g.setIR(i+1, mv, true, flagIR1Sat-uint(i))
	}
}

func opOP(g *GTE, o mvmvaOptions) {
	rt := g.matrix(0)
	d1, d2, d3 := rt[0][0], rt[1][1], rt[2][2]
	ir1, ir2, ir3 := int64(g.ir(1)), int64(g.ir(2)), int64(g.ir(3))
	shift := uint(0)
	if o.sf {
		shift = 12
	}
	m1 := (ir3*int64(d2) - ir2*int64(d3)) >> shift
	m2 := (ir1*int64(d3) - ir3*int64(d1)) >> shift
	m3 := (ir2*int64(d1) - ir1*int64(d2)) >> shift
	mv1 := g.setMAC(1, m1, flagMAC1Neg, flagMAC1Pos)
	mv2 := g.setMAC(2, m2, flagMAC2Neg, flagMAC2Pos)
	mv3 := g.setMAC(3, m3, flagMAC3Neg, flagMAC3Pos)
	g.setIR(1, mv1, o.lm, flagIR1Sat)
	g.setIR(2, mv2, o.lm, flagIR2Sat)
	g.setIR(3, mv3, o.lm, flagIR3Sat)
}

// colorDepthCue is the shared MAC/IR/colour-FIFO tail used by
// DPCS/DPCT/DCPL/INTPL (spec §6.4 "depth cueing").
func (g *GTE) colorDepthCue(r0, g0, b0 int64, sf bool, lm bool) {
	farR := int64(int16(uint16(g.ctrl[cRFC])))
	farG := int64(int16(uint16(g.ctrl[cGFC])))
	farB := int64(int16(uint16(g.ctrl[cBFC])))
	ir0 := int64(int16(uint16(g.data[rIR0])))

	shift := uint(0)
	if sf {
		shift = 12
	}
	c1 := ((farR<<12 - r0<<12) >> shift)
	c2 := ((farG<<12 - g0<<12) >> shift)
	c3 := ((farB<<12 - b0<<12) >> shift)

	m1 := (r0 << 12) + ir0*c1>>shift
	m2 := (g0 << 12) + ir0*c2>>shift
	m3 := (b0 << 12) + ir0*c3>>shift
	m1 >>= shift
	m2 >>= shift
	m3 >>= shift

	mv1 := g.setMAC(1, m1, flagMAC1Neg, flagMAC1Pos)
	mv2 := g.setMAC(2, m2, flagMAC2Neg, flagMAC2Pos)
	mv3 := g.setMAC(3, m3, flagMAC3Neg, flagMAC3Pos)
	g.setIR(1, mv1, lm, flagIR1Sat)
	g.setIR(2, mv2, lm, flagIR2Sat)
	g.setIR(3, mv3, lm, flagIR3Sat)

	rC, satR := clampColor(mv1 >> 4)
	gC, satG := clampColor(mv2 >> 4)
	bC, satB := clampColor(mv3 >> 4)
	if satR {
		g.setFlagBit(flagColorRSat)
	}
	if satG {
		g.setFlagBit(flagColorGSat)
	}
	if satB {
		g.setFlagBit(flagColorBSat)
	}
	g.pushRGB(rC, gC, bC)
}

func opDPCS(g *GTE, o mvmvaOptions) {
	r, gr, b, _ := g.rgbc()
	g.colorDepthCue(int64(r), int64(gr), int64(b), o.sf, o.lm)
}

func opDPCT(g *GTE, o mvmvaOptions) {
	for i := 0; i < 3; i++ {
		r := g.data[rRGB0] & 0xFF
		gr := (g.data[rRGB0] >> 8) & 0xFF
		b := (g.data[rRGB0] >> 16) & 0xFF
		g.colorDepthCue(int64(r), int64(gr), int64(b), o.sf, o.lm)
	}
}

func opDCPL(g *GTE, o mvmvaOptions) {
	r, gr, b, _ := g.rgbc()
	ir1, ir2, ir3 := int64(g.ir(1)), int64(g.ir(2)), int64(g.ir(3))
	g.colorDepthCue(int64(r)*ir1, int64(gr)*ir2, int64(b)*ir3, o.sf, o.lm)
}

func opINTPL(g *GTE, o mvmvaOptions) {
	ir1, ir2, ir3 := int64(g.ir(1)), int64(g.ir(2)), int64(g.ir(3))
	g.colorDepthCue(ir1<<12, ir2<<12, ir3<<12, o.sf, o.lm)
}

// ncKind selects which of the three nc_body tails colorFromLight runs
// after the shared light/colour matrix pair (spec §6.4 "normal colour").
type ncKind int

const (
	ncPlain ncKind = iota // NCS/NCT: colour FIFO filled straight from the LCM*IR result, no RGBC multiply
	ncColor               // NCCS/NCCT: colour FIFO filled from RGBC*IR
	ncDepth               // NCDS/NCDT: depth-cued RGBC*IR
)

// colorFromLight runs the light/colour matrix pair shared by
// NCS/NCT/NCCS/NCCT/NCDS/NCDT (spec §6.4 "normal colour"), then one of
// three nc_body tails selected by kind.
func (g *GTE) colorFromLight(vx, vy, vz int32, kind ncKind, sf bool, lm bool) {
	lm1 := g.matrix(1)
	g.mulMatrixVec(lm1, [3]int32{vx, vy, vz}, [3]int32{}, sf, lm, true)
	ir1, ir2, ir3 := g.ir(1), g.ir(2), g.ir(3)

	lm2 := g.matrix(2)
	g.mulMatrixVec(lm2, [3]int32{ir1, ir2, ir3}, g.translation(1), sf, lm, false)

	switch kind {
	case ncPlain:
		// nc_body (non-colour): the colour FIFO is filled directly from
		// the BK + LCM*IR result already sitting in MAC1..3, no RGBC
		// multiply (_examples/original_source/src/gte.c:1131-1143).
		rC, satR := clampColor(g.mac(1) >> 4)
		gC, satG := clampColor(g.mac(2) >> 4)
		bC, satB := clampColor(g.mac(3) >> 4)
		if satR {
			g.setFlagBit(flagColorRSat)
		}
		if satG {
			g.setFlagBit(flagColorGSat)
		}
		if satB {
			g.setFlagBit(flagColorBSat)
		}
		g.pushRGB(rC, gC, bC)
		return
	case ncDepth:
		r, gr, b, _ := g.rgbc()
		g.colorDepthCue(int64(r)*int64(g.ir(1)), int64(gr)*int64(g.ir(2)), int64(b)*int64(g.ir(3)), sf, lm)
		return
	}

	// ncColor: color_fifo's (R*IR1)<<4 SAR sf chain
	// (_examples/original_source/src/gte.c:1203-1235).
	r, gr, b, _ := g.rgbc()
	shift := uint(0)
	if sf {
		shift = 12
	}
	m1 := (int64(r) * int64(g.ir(1))) << 4 >> shift
	m2 := (int64(gr) * int64(g.ir(2))) << 4 >> shift
	m3 := (int64(b) * int64(g.ir(3))) << 4 >> shift
	mv1 := g.setMAC(1, m1, flagMAC1Neg, flagMAC1Pos)
	mv2 := g.setMAC(2, m2, flagMAC2Neg, flagMAC2Pos)
	mv3 := g.setMAC(3, m3, flagMAC3Neg, flagMAC3Pos)
	g.setIR(1, mv1, lm, flagIR1Sat)
	g.setIR(2, mv2, lm, flagIR2Sat)
	g.setIR(3, mv3, lm, flagIR3Sat)
	rC, satR := clampColor(mv1 >> 4)
	gC, satG := clampColor(mv2 >> 4)
	bC, satB := clampColor(mv3 >> 4)
	if satR {
		g.setFlagBit(flagColorRSat)
	}
	if satG {
		g.setFlagBit(flagColorGSat)
	}
	if satB {
		g.setFlagBit(flagColorBSat)
	}
	g.pushRGB(rC, gC, bC)
}

func opNCS(g *GTE, o mvmvaOptions) {
	x, y := g.vxy(0)
	g.colorFromLight(x, y, g.vz(0), ncPlain, o.sf, o.lm)
}

func opNCT(g *GTE, o mvmvaOptions) {
	for i := 0; i < 3; i++ {
		x, y := g.vxy(i)
		g.colorFromLight(x, y, g.vz(i), ncPlain, o.sf, o.lm)
	}
}

func opNCDS(g *GTE, o mvmvaOptions) {
	x, y := g.vxy(0)
	g.colorFromLight(x, y, g.vz(0), ncDepth, o.sf, o.lm)
}

func opNCDT(g *GTE, o mvmvaOptions) {
	for i := 0; i < 3; i++ {
		x, y := g.vxy(i)
		g.colorFromLight(x, y, g.vz(i), ncDepth, o.sf, o.lm)
	}
}

func opNCCS(g *GTE, o mvmvaOptions) {
	x, y := g.vxy(0)
	g.colorFromLight(x, y, g.vz(0), ncColor, o.sf, o.lm)
}

func opNCCT(g *GTE, o mvmvaOptions) {
	for i := 0; i < 3; i++ {
		x, y := g.vxy(i)
		g.colorFromLight(x, y, g.vz(i), ncColor, o.sf, o.lm)
	}
}

func opCC(g *GTE, o mvmvaOptions) {
	ir1, ir2, ir3 := g.ir(1), g.ir(2), g.ir(3)
	lm2 := g.matrix(2)
	g.mulMatrixVec(lm2, [3]int32{ir1, ir2, ir3}, g.translation(1), o.sf, o.lm, false)
	r, gr, b, _ := g.rgbc()
	shift := uint(0)
	if o.sf {
		shift = 12
	}
	m1 := (int64(r) * int64(g.ir(1))) << 4 >> shift
	m2 := (int64(gr) * int64(g.ir(2))) << 4 >> shift
	m3 := (int64(b) * int64(g.ir(3))) << 4 >> shift
	mv1 := g.setMAC(1, m1, flagMAC1Neg, flagMAC1Pos)
	mv2 := g.setMAC(2, m2, flagMAC2Neg, flagMAC2Pos)
	mv3 := g.setMAC(3, m3, flagMAC3Neg, flagMAC3Pos)
	g.setIR(1, mv1, o.lm, flagIR1Sat)
	g.setIR(2, mv2, o.lm, flagIR2Sat)
	g.setIR(3, mv3, o.lm, flagIR3Sat)
	rC, _ := clampColor(mv1 >> 4)
	gC, _ := clampColor(mv2 >> 4)
	bC, _ := clampColor(mv3 >> 4)
	g.pushRGB(rC, gC, bC)
}

func opCDP(g *GTE, o mvmvaOptions) {
	ir1, ir2, ir3 := g.ir(1), g.ir(2), g.ir(3)
	lm2 := g.matrix(2)
	g.mulMatrixVec(lm2, [3]int32{ir1, ir2, ir3}, g.translation(1), o.sf, o.lm, false)
	r, gr, b, _ := g.rgbc()
	g.colorDepthCue(int64(r)*int64(g.ir(1)), int64(gr)*int64(g.ir(2)), int64(b)*int64(g.ir(3)), o.sf, o.lm)
}

func opGPF(g *GTE, o mvmvaOptions) {
	ir0 := int64(int16(uint16(g.data[rIR0])))
	ir1, ir2, ir3 := int64(g.ir(1)), int64(g.ir(2)), int64(g.ir(3))
	shift := uint(0)
	if o.sf {
		shift = 12
	}
	mv1 := g.setMAC(1, (ir0*ir1)>>shift, flagMAC1Neg, flagMAC1Pos)
	mv2 := g.setMAC(2, (ir0*ir2)>>shift, flagMAC2Neg, flagMAC2Pos)
	mv3 := g.setMAC(3, (ir0*ir3)>>shift, flagMAC3Neg, flagMAC3Pos)
	g.setIR(1, mv1, o.lm, flagIR1Sat)
	g.setIR(2, mv2, o.lm, flagIR2Sat)
	g.setIR(3, mv3, o.lm, flagIR3Sat)
	rC, _ := clampColor(mv1 >> 4)
	gC, _ := clampColor(mv2 >> 4)
	bC, _ := clampColor(mv3 >> 4)
	g.pushRGB(rC, gC, bC)
}

func opGPL(g *GTE, o mvmvaOptions) {
	ir1, ir2, ir3 := int64(g.ir(1)), int64(g.ir(2)), int64(g.ir(3))
	shift := uint(0)
	if o.sf {
		shift = 12
	}
	m1 := int64(g.mac(1))<<shift + ir1
	m2 := int64(g.mac(2))<<shift + ir2
	m3 := int64(g.mac(3))<<shift + ir3
	mv1 := g.setMAC(1, m1>>shift, flagMAC1Neg, flagMAC1Pos)
	mv2 := g.setMAC(2, m2>>shift, flagMAC2Neg, flagMAC2Pos)
	mv3 := g.setMAC(3, m3>>shift, flagMAC3Neg, flagMAC3Pos)
	g.setIR(1, mv1, o.lm, flagIR1Sat)
	g.setIR(2, mv2, o.lm, flagIR2Sat)
	g.setIR(3, mv3, o.lm, flagIR3Sat)
	rC, _ := clampColor(mv1 >> 4)
	gC, _ := clampColor(mv2 >> 4)
	bC, _ := clampColor(mv3 >> 4)
	g.pushRGB(rC, gC, bC)
}
