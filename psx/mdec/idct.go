package mdec

import "math"

// idct runs a real separable 8x8 inverse discrete cosine transform,
// scaled by the active scale table (spec §4.5 "Apply a real 8x8 inverse
// DCT using the scale table").
func idct(coeffs *[64]float64, st *[64]float64, out *[64]float64) {
	var tmp [64]float64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			var sum float64
			for u := 0; u < 8; u++ {
				cu := scaleFactor[u]
				sum += cu * coeffs[u*8+x] * st[u*8+x] * math.Cos(float64(2*y+1)*float64(u)*math.Pi/16)
			}
			tmp[y*8+x] = sum * 0.5
		}
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			var sum float64
			for v := 0; v < 8; v++ {
				cv := scaleFactor[v]
				sum += cv * tmp[y*8+v] * math.Cos(float64(2*x+1)*float64(v)*math.Pi/16)
			}
			out[y*8+x] = sum * 0.5
		}
	}
}

func clampByte(v float64) byte {
	if v < -128 {
		return 0
	}
	if v > 127 {
		return 255
	}
	return byte(int32(v) + 128)
}

// yuvToRGB converts one macroblock's luma/chroma samples to 8-bit RGB
// using the coefficients of spec §4.5 ("r = 1.402*Cr; g = -0.3437*Cb -
// 0.7143*Cr; b = 1.772*Cb").
func yuvToRGB(y, cr, cb float64) (r, g, b byte) {
	r = clampByte(y + 1.402*cr)
	g = clampByte(y - 0.3437*cb - 0.7143*cr)
	b = clampByte(y + 1.772*cb)
	return
}

// packMono writes a single 8x8 luma block to fifo_out at the MDEC's
// output depth (4-bit or 8-bit monochrome, spec §4.5).
func (d *Decoder) packMono(y *[64]float64) {
	acc := &outAccumulator{dest: d}
	switch d.depth {
	case Depth4Bit:
		for i := 0; i < 64; i += 2 {
			lo := clampByte(y[i]) >> 4
			hi := clampByte(y[i+1]) >> 4
			acc.push(lo | hi<<4)
		}
	default: // Depth8Bit
		for i := 0; i < 64; i++ {
			acc.push(clampByte(y[i]))
		}
	}
	acc.flush()
}

// packColor upsamples the 8x8 Cr/Cb blocks to 16x16, combines with the
// four 8x8 luma blocks, and writes the macroblock at the MDEC's output
// depth (15-bit or 24-bit colour, spec §4.5).
func (d *Decoder) packColor(cr, cb *[64]float64, y *[4][64]float64) {
	acc := &outAccumulator{dest: d}

	sample := func(px, py int) (lum, crv, cbv float64) {
		bx, by := px/8, py/8
		blk := by*2 + bx
		lum = y[blk][(py%8)*8+(px%8)]
		cx, cy := px/2, py/2
		crv = cr[cy*8+cx]
		cbv = cb[cy*8+cx]
		return
	}

	for py := 0; py < 16; py++ {
		for px := 0; px < 16; px++ {
			lum, crv, cbv := sample(px, py)
			r, g, b := yuvToRGB(lum, crv, cbv)
			switch d.depth {
			case Depth24Bit:
				acc.push(r)
				acc.push(g)
				acc.push(b)
			default: // Depth15Bit
				r5 := uint16(r>>3) & 0x1F
				g5 := uint16(g>>3) & 0x1F
				b5 := uint16(b>>3) & 0x1F
				word := r5 | g5<<5 | b5<<10
				if d.bit15 {
					word |= 1 << 15
				}
				acc.push(byte(word))
				acc.push(byte(word >> 8))
			}
		}
	}
	acc.flush()
}
