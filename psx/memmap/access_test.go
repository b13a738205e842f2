package memmap

import "testing"

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	return New(Config{RAMSize: 2 * 1024 * 1024, BIOSSize: 512 * 1024}, func(string, ...any) {})
}

func TestWriteReadByteIdempotence(t *testing.T) {
	b := newTestBus(t)
	if !b.Write8(0x100, 0xAB) {
		t.Fatal("write8 failed")
	}
	v, ok := b.Read8(0x100)
	if !ok || v != 0xAB {
		t.Fatalf("read8 = %X, %v; want AB, true", v, ok)
	}
}

func TestWriteReadWord32MatchesFourByteReads(t *testing.T) {
	b := newTestBus(t)
	b.Write32(0x200, 0xDEADBEEF)

	v32, ok := b.Read32(0x200)
	if !ok || v32 != 0xDEADBEEF {
		t.Fatalf("read32 = %X; want DEADBEEF", v32)
	}

	b0, _ := b.Read8(0x200)
	b1, _ := b.Read8(0x201)
	b2, _ := b.Read8(0x202)
	b3, _ := b.Read8(0x203)
	got := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24
	if got != v32 {
		t.Fatalf("byte-wise reconstruction = %X; want %X", got, v32)
	}
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write8(0x300, 0x42)
	// RAM is mirrored every 2MB within the 8MB window.
	v, ok := b.Read8(0x300 + 0x200000)
	if !ok || v != 0x42 {
		t.Fatalf("mirrored read = %X, %v; want 42, true", v, ok)
	}
}

func TestBIOSIsReadOnly(t *testing.T) {
	b := newTestBus(t)
	bios := make([]byte, 512*1024)
	bios[0] = 0x55
	if err := b.LoadBIOS(bios); err != nil {
		t.Fatal(err)
	}
	b.Write8(0x1FC00000, 0xFF)
	v, ok := b.Read8(0x1FC00000)
	if !ok || v != 0x55 {
		t.Fatalf("BIOS write should be dropped: got %X; want 55", v)
	}
}

func TestScratchpadReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.Write32(0x1F800010, 0x12345678)
	v, ok := b.Read32(0x1F800010)
	if !ok || v != 0x12345678 {
		t.Fatalf("scratchpad read32 = %X; want 12345678", v)
	}
}

func TestUnalignedAccessRejected(t *testing.T) {
	b := newTestBus(t)
	if _, ok := b.Read32(0x1001); ok {
		t.Fatal("expected unaligned read32 to fail")
	}
	if ok := b.Write16(0x1001, 1); ok {
		t.Fatal("expected unaligned write16 to fail")
	}
}

func TestSPU8BitWritePromotesToFullHalfword(t *testing.T) {
	b := newTestBus(t)
	b.Write8(0x1F801C00, 0x7F)
	v, ok := b.Read16(0x1F801C00)
	if !ok || v != 0x7F7F {
		t.Fatalf("SPU 8-bit write should replicate into both halves: got %X; want 7F7F", v)
	}
}
