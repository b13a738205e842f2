package cdrom

// volumeMatrix holds the four CD-audio mixing coefficients and the
// staged "tmp" values latched by port writes before being applied (spec
// §4.4 "volume matrix"), grounded on the original implementation's
// _audio.vol_l2l/r2r/l2r/r2l and tmp_vol_* pair.
type volumeMatrix struct {
	l2l, r2r, l2r, r2l       byte
	tmpL2L, tmpR2R, tmpR2L, tmpL2R byte
}

func defaultVolumeMatrix() volumeMatrix {
	return volumeMatrix{l2l: 0x80, r2r: 0x80}
}

// adpcmState is the XA-ADPCM decoder's filter selection and mute latch.
type adpcmState struct {
	muted         bool
	filterFile    byte
	filterChannel byte

	prev1, prev2 [2]int32 // per-channel predictor history (spec §4.4 "filter pairs")
	ring         [2][29]int32 // resampler history, one per channel
	ringPos      [2]int
	phase        int // which of the 7 polyphase kernels produces the next output sample
	out          [2]int16
}

// adpcmInterpolateTables is the polyphase resampling kernel (spec §4.4
// "37.8kHz -> 44.1kHz", 7 phases x 29 coefficients), transcribed
// verbatim from the original implementation's adpcm_interpolate_tables.
var adpcmInterpolateTables = [7][29]int64{
	{0x0, 0x0, 0x0, 0x0, 0x0, -0x0002, 0x000A, -0x0022, 0x0041, -0x0054,
		0x0034, 0x0009, -0x010A, 0x0400, -0x0A78, 0x234C, 0x6794, -0x1780,
		0x0BCD, -0x0623, 0x0350, -0x016D, 0x006B, 0x000A, -0x0010, 0x0011,
		-0x0008, 0x0003, -0x0001},
	{0x0, 0x0, 0x0, -0x0002, 0x0, 0x0003, -0x0013, 0x003C, -0x004B, 0x00A2,
		-0x00E3, 0x0132, -0x0043, -0x0267, 0x0C9D, 0x74BB, -0x11B4, 0x09B8,
		-0x05BF, 0x0372, -0x01A8, 0x00A6, -0x001B, 0x0005, 0x0006, -0x0008,
		0x0003, -0x0001, 0x0},
	{0x0, 0x0, -0x0001, 0x0003, -0x0002, -0x0005, 0x001F, -0x004A, 0x00B3,
		-0x0192, 0x02B1, -0x039E, 0x04F8, -0x05A6, 0x7939, -0x05A6, 0x04F8,
		-0x039E, 0x02B1, -0x0192, 0x00B3, -0x004A, 0x001F, -0x0005, -0x0002,
		0x0003, -0x0001, 0x0, 0x0},
	{0x0, -0x0001, 0x0003, -0x0008, 0x0006, 0x0005, -0x001B, 0x00A6, -0x01A8,
		0x0372, -0x05BF, 0x09B8, -0x11B4, 0x74BB, 0x0C9D, -0x0267, -0x0043,
		0x0132, -0x00E3, 0x00A2, -0x004B, 0x003C, -0x0013, 0x0003, 0x0, -0x0002,
		0x0, 0x0, 0x0},
	{-0x0001, 0x0003, -0x0008, 0x0011, -0x0010, 0x000A, 0x006B, -0x016D,
		0x0350, -0x0623, 0x0BCD, -0x1780, 0x6794, 0x234C, -0x0A78, 0x0400,
		-0x010A, 0x0009, 0x0034, -0x0054, 0x0041, -0x0022, 0x000A, -0x0001,
		0x0, 0x0001, 0x0, 0x0, 0x0},
	{0x0002, -0x0008, 0x0010, -0x0023, 0x002B, 0x001A, -0x00EB, 0x027B,
		-0x0548, 0x0AFA, -0x16FA, 0x53E0, 0x3C07, -0x1249, 0x080E, -0x0347,
		0x015B, -0x0044, -0x0017, 0x0046, -0x0023, 0x0011, -0x0005, 0x0, 0x0,
		0x0, 0x0, 0x0, 0x0},
	{-0x0005, 0x0011, -0x0023, 0x0046, -0x0017, -0x0044, 0x015B, -0x0347,
		0x080E, -0x1249, 0x3C07, 0x53E0, -0x16FA, 0x0AFA, -0x0548, 0x027B,
		-0x00EB, 0x001A, 0x002B, -0x0023, 0x0010, -0x0008, 0x0002, 0x0, 0x0,
		0x0, 0x0, 0x0, 0x0},
}

// xaFilterCoeffs are the four ADPCM predictor filter pairs (k1, k2),
// shared by 4-bit and 8-bit XA-ADPCM blocks (spec §4.4 "filter pairs").
var xaFilterCoeffs = [5][2]int32{
	{0, 0},
	{60, 0},
	{115, -52},
	{98, -55},
	{122, -60},
}

func isXAADPCMSector(sector []byte) bool {
	if len(sector) < 18 {
		return false
	}
	// Raw Mode-2 sector: the subheader starts at offset 16 (the same
	// offset decodeXASector uses), so the submode byte is at offset 18.
	return len(sector) >= 24 && sector[18]&0x4 != 0 // submode bit2 = audio
}

// decodeXASector demultiplexes one XA-ADPCM sector's 18 4-bit (or 8-bit)
// blocks into stereo/mono PCM, applies the predictor filter and the
// polyphase resampler, then feeds nextSoundSample's output queue (spec
// §4.4 "XA-ADPCM decode").
func (c *Controller) decodeXASector(sector []byte) {
	if c.adpcm.muted {
		return
	}
	const subheaderOff = 16
	if len(sector) < subheaderOff+8 {
		return
	}
	codingInfo := sector[subheaderOff+3]
	stereo := codingInfo&0x1 != 0
	bits8 := codingInfo&0x10 != 0

	dataOff := subheaderOff + 8
	for blk := 0; blk < 18 && dataOff+128 <= len(sector); blk++ {
		c.decodeXABlock(sector[dataOff:dataOff+128], stereo, bits8)
		dataOff += 128
	}
}

func (c *Controller) decodeXABlock(block []byte, stereo bool, bits8 bool) {
	if len(block) < 16 {
		return
	}
	for chunk := 0; chunk < 4; chunk++ {
		header := block[4+chunk]
		shift := header & 0xF
		filter := (header >> 4) & 0x3
		k1 := xaFilterCoeffs[filter][0]
		k2 := xaFilterCoeffs[filter][1]
		ch := chunk % 2
		if !stereo {
			ch = 0
		}
		for i := 0; i < 28; i++ {
			byteIdx := 16 + chunk + i*4
			if byteIdx >= len(block) {
				break
			}
			nibble := int32(block[byteIdx]&0xF) << 12
			sample := (nibble >> shift)
			pred := (c.adpcm.prev1[ch]*k1 + c.adpcm.prev2[ch]*k2) >> 6
			v := sample + pred
			if v > 32767 {
				v = 32767
			} else if v < -32768 {
				v = -32768
			}
			c.adpcm.prev2[ch] = c.adpcm.prev1[ch]
			c.adpcm.prev1[ch] = v
			c.pushResampleHistory(ch, v)
		}
	}
}

// pushResampleHistory feeds one freshly decoded sample into the
// channel's polyphase history ring and produces one output sample for
// every input sample, filtered through the next of the seven 29-tap
// kernels in turn. It does not change the sample rate: 37.8kHz input
// comes out at 37.8kHz.
func (c *Controller) pushResampleHistory(ch int, sample int32) {
	r := &c.adpcm.ring[ch]
	pos := c.adpcm.ringPos[ch]
	r[pos] = sample
	c.adpcm.ringPos[ch] = (pos + 1) % len(r)

	kernel := &adpcmInterpolateTables[c.adpcm.phase%len(adpcmInterpolateTables)]
	var acc int64
	for i, coeff := range kernel {
		acc += coeff * int64(r[(pos+1+i)%len(r)])
	}
	acc >>= 15
	if acc > 32767 {
		acc = 32767
	} else if acc < -32768 {
		acc = -32768
	}
	c.adpcm.out[ch] = int16(acc)
	c.adpcm.phase++
	if c.audioSink != nil {
		c.audioSink(c.adpcm.out[0], c.adpcm.out[1])
	}
}

// SetAudioSink installs a callback invoked with every freshly resampled
// stereo pair, for the SPU mixer external collaborator to consume in
// real time rather than polling NextSoundSample (spec §6
// "next_sound_sample() producing one stereo 16-bit sample at 44.1kHz").
func (c *Controller) SetAudioSink(f func(left, right int16)) {
	c.audioSink = f
}

// NextSoundSample returns the next resampled 44.1kHz stereo sample
// produced by the XA-ADPCM decoder (spec §4.4 "next_sound_sample()
// external interface"); the SPU mixer polls this every output tick.
func (c *Controller) NextSoundSample() (left, right int16) {
	return c.adpcm.out[0], c.adpcm.out[1]
}
