package bit

import "testing"

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
	}

	for _, tt := range tests {
		if got := Combine(tt.high, tt.low); got != tt.expected {
			t.Errorf("Combine(%X, %X) = %X; want %X", tt.high, tt.low, got, tt.expected)
		}
	}
}

func TestSetClearReset(t *testing.T) {
	var b uint8 = 0
	b = Set(3, b)
	if !IsSet(3, b) {
		t.Fatal("expected bit 3 set")
	}
	b = Reset(3, b)
	if IsSet(3, b) {
		t.Fatal("expected bit 3 reset")
	}
}

func TestSet32Clear32(t *testing.T) {
	var v uint32 = 0
	v = Set32(24, v)
	v = Set32(28, v)
	if !IsSet32(24, v) || !IsSet32(28, v) {
		t.Fatal("expected bits 24 and 28 set")
	}
	v = Clear32(24, v)
	if IsSet32(24, v) {
		t.Fatal("expected bit 24 cleared")
	}
	if !IsSet32(28, v) {
		t.Fatal("expected bit 28 to remain set")
	}
}

func TestExtractBits(t *testing.T) {
	if got := ExtractBits(0b11010110, 6, 4); got != 0b101 {
		t.Errorf("ExtractBits = %b; want %b", got, 0b101)
	}
}

func TestExtractBits32(t *testing.T) {
	v := uint32(0xAB000000)
	if got := ExtractBits32(v, 31, 24); got != 0xAB {
		t.Errorf("ExtractBits32 = %X; want AB", got)
	}
}

func TestLeadingZeroes16(t *testing.T) {
	tests := []struct {
		in   uint16
		want int
	}{
		{0, 15},
		{0x8000, 0},
		{0x4000, 1},
		{0x0001, 15},
	}
	for _, tt := range tests {
		if got := LeadingZeroes16(tt.in); got != tt.want {
			t.Errorf("LeadingZeroes16(%X) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(100, 0, 50) != 50 {
		t.Fatal("expected clamp to upper bound")
	}
	if Clamp(-100, 0, 50) != 0 {
		t.Fatal("expected clamp to lower bound")
	}
	if Clamp(10, 0, 50) != 10 {
		t.Fatal("expected value unchanged within range")
	}
}
