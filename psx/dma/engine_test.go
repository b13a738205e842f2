package dma

import "testing"

type fakeMem struct {
	ram map[uint32]uint32
}

func newFakeMem() *fakeMem { return &fakeMem{ram: map[uint32]uint32{}} }

func (m *fakeMem) Read32(addr uint32) (uint32, bool) { return m.ram[addr], true }
func (m *fakeMem) Write32(addr uint32, v uint32) bool {
	m.ram[addr] = v
	return true
}

type fakeBus struct{ cpuOnly bool }

func (b *fakeBus) SetBusOwner(cpuOnly bool) { b.cpuOnly = cpuOnly }

type fakeIRQ struct{ raised int }

func (f *fakeIRQ) RaiseDMA() { f.raised++ }

// TestOTCClear reproduces spec §8 scenario 3: program channel 6 with
// MADR=0x100100, BCR=4, CHCR=0x11000002, and expect the terminator chain
// plus the DICR channel-6 flag bit (30) set.
func TestOTCClear(t *testing.T) {
	mem := newFakeMem()
	bus := &fakeBus{}
	irq := &fakeIRQ{}
	e := New(mem, bus, irq, nil)

	e.Write(0x74, 4, 1<<(16+OTC)|1<<15) // enable channel 6's IRQ + master enable
	e.Write(OTC*0x10+0x0, 4, 0x100100)  // MADR
	e.Write(OTC*0x10+0x4, 4, 4)         // BCR = 4 words
	e.Write(OTC*0x10+0x8, 4, 0x11000002)

	for i := 0; i < 10 && e.Step(1000) > 0; i++ {
	}

	// Each word holds a back-pointer to the previous entry; the last
	// holds the end-of-table terminator (spec §4.3 "OTC").
	want := map[uint32]uint32{
		0x100100: 0x1000FC,
		0x1000FC: 0x1000F8,
		0x1000F8: 0x1000F4,
		0x1000F4: 0x00FFFFFF,
	}
	for addr, v := range want {
		if got := mem.ram[addr]; got != v {
			t.Errorf("mem[%08X] = %08X, want %08X", addr, got, v)
		}
	}

	flagBit := e.dicr & (1 << (24 + OTC))
	if flagBit == 0 {
		t.Fatalf("expected DICR channel-6 flag bit set, dicr=%X", e.dicr)
	}
	if irq.raised == 0 {
		t.Fatalf("expected master DMA IRQ to be raised")
	}
}

func TestModeBlockParksOnSyncFalse(t *testing.T) {
	mem := newFakeMem()
	e := New(mem, &fakeBus{}, &fakeIRQ{}, nil)
	dev := &parkingDevice{accept: false}
	e.AttachDevice(SPU, dev)

	e.Write(SPU*0x10+0x0, 4, 0x1000)
	e.Write(SPU*0x10+0x4, 4, (1<<16)|4) // 1 block of 4 words
	e.Write(SPU*0x10+0x8, 4, 0x11000201)

	e.Step(1000)

	ch := e.channels[SPU]
	if !ch.parked {
		t.Fatalf("expected channel to park when device rejects sync")
	}
}

type parkingDevice struct{ accept bool }

func (p *parkingDevice) Sync(nwords int) bool { return p.accept }
func (p *parkingDevice) Write(word uint32)     {}
func (p *parkingDevice) Read() uint32          { return 0 }

func TestModeBurstChoppingCompletesInSingleBurstWhenChopExceedsWords(t *testing.T) {
	mem := newFakeMem()
	e := New(mem, &fakeBus{}, &fakeIRQ{}, nil)
	dev := &parkingDevice{accept: true}
	e.AttachDevice(GPU, dev)

	e.Write(GPU*0x10+0x0, 4, 0x2000)
	e.Write(GPU*0x10+0x4, 4, 4) // 4 words
	// chop_ws = 1<<3 = 8 > nwords=4; chopping bit set (bit 8); dir FromRAM
	e.Write(GPU*0x10+0x8, 4, (3<<16)|(1<<8)|(1<<24)|1)

	total := 0
	for i := 0; i < 5; i++ {
		n := e.Step(1000)
		total += n
		if n == 0 {
			break
		}
	}

	ch := e.channels[GPU]
	if ch.running {
		t.Fatalf("expected burst to complete in one go when chop_ws > nwords")
	}
}
