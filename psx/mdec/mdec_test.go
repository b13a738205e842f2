package mdec

import "testing"

func TestStatusFifoOutEmptyBitSet(t *testing.T) {
	d := New(nil)
	if d.Status()&(1<<31) == 0 {
		t.Fatalf("expected fifo_out-empty status bit set on a fresh decoder")
	}
}

func TestControlResetClearsFifos(t *testing.T) {
	d := New(nil)
	d.fifoOut = append(d.fifoOut, 1, 2, 3)
	d.Control(0x80000000)
	if len(d.fifoOut) != 0 {
		t.Fatalf("expected reset to clear fifo_out")
	}
}

func TestSetQuantTableWritesSixtyFourBytes(t *testing.T) {
	d := New(nil)
	d.WriteData(0x40000000) // command header: set QT, 64 bytes (luma only)
	for i := 0; i < 16; i++ {
		d.WriteData(0x04030201)
	}
	if d.state != cmdNone {
		t.Fatalf("expected SET_QT command to complete after 16 words")
	}
	if d.qtLuma[0] != 0x01 || d.qtLuma[3] != 0x04 {
		t.Fatalf("qtLuma not populated as expected: %v", d.qtLuma[:4])
	}
}

func TestSetScaleTableTracksDifferenceBitmap(t *testing.T) {
	d := New(nil)
	d.WriteData(0x60000000) // command header: set ST
	// First word matches the default table exactly -> bits 0,1 clear.
	first := uint32(defaultST[0]) | uint32(defaultST[1])<<16
	d.WriteData(first)
	if d.stDiffer&0x3 != 0 {
		t.Fatalf("expected no difference bits set for a default-matching write, got %X", d.stDiffer)
	}
	for i := 0; i < 31; i++ {
		d.WriteData(0x00010001) // almost certainly not equal to defaultST
	}
	if d.state != cmdNone {
		t.Fatalf("expected SET_ST command to complete after 32 words")
	}
}

func TestDecodeMonoMacroblockProducesOutput(t *testing.T) {
	d := New(nil)
	// header: decode, depth=0 (4-bit), word count = 0x10 (arbitrary, just
	// needs to be long enough to not end the command before the block).
	d.WriteData(0x20000010)
	// DC-only block: Q=1, DC=100, then an overflowing run to close it.
	dcWord := uint32(uint16(1)<<10) | uint32(int16(100))&0x3FF
	d.WriteData(dcWord)
	eob := uint32(0x3F << 10) // run=63 forces coeffPos past 63
	d.WriteData(eob)

	if len(d.fifoOut) == 0 {
		t.Fatalf("expected a completed mono macroblock to produce output words")
	}
}
