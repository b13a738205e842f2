package mdec

// defaultST holds the MDEC's built-in 8x8 scale table (spec §7.2
// "default scale table") as raw 16-bit patterns; interpret with
// int16(uint16(...)) to recover the signed coefficient.
var defaultST = [64]uint16{
	0x5A82, 0x5A82, 0x5A82, 0x5A82, 0x5A82, 0x5A82, 0x5A82, 0x5A82,
	0x7D8A, 0x6A6D, 0x471C, 0x18F8, 0xE707, 0xB8E3, 0x9592, 0x8275,
	0x7641, 0x30FB, 0xCF04, 0x89BE, 0x89BE, 0xCF04, 0x30FB, 0x7641,
	0x6A6D, 0xE707, 0x8275, 0xB8E3, 0x471C, 0x7D8A, 0x18F8, 0x9592,
	0x5A82, 0xA57D, 0xA57D, 0x5A82, 0x5A82, 0xA57D, 0xA57D, 0x5A82,
	0x471C, 0x8275, 0x18F8, 0x6A6D, 0x9592, 0xE707, 0x7D8A, 0xB8E3,
	0x30FB, 0x89BE, 0x7641, 0xCF04, 0xCF04, 0x7641, 0x89BE, 0x30FB,
	0x18F8, 0xB8E3, 0x6A6D, 0x8275, 0x7D8A, 0x9592, 0x471C, 0xE707,
}

// scaleFactor is the per-frequency-row IDCT scale coefficient (spec
// §7.2 "scale factor table").
var scaleFactor = [8]float64{
	1.000000000, 1.387039845, 1.306562965, 1.175875602,
	1.000000000, 0.785694958, 0.541196100, 0.275899379,
}

// zigzag maps a natural 8x8 block position to its run-length position
// (spec §7.2 "zigzag order"); the decoder looks up its inverse.
var zigzag = [64]int{
	0, 1, 5, 6, 14, 15, 27, 28,
	2, 4, 7, 13, 16, 26, 29, 42,
	3, 8, 12, 17, 25, 30, 41, 43,
	9, 11, 18, 24, 31, 40, 44, 53,
	10, 19, 23, 32, 39, 45, 52, 54,
	20, 22, 33, 38, 46, 51, 55, 60,
	21, 34, 37, 47, 50, 56, 59, 61,
	35, 36, 48, 49, 57, 58, 62, 63,
}
