package mdec

// InPort and OutPort adapt a Decoder to dma.Device for DMA channels 0
// (MDECin) and 1 (MDECout) respectively (spec §4.5 "interacts with the
// DMA in/out channels"). The real hardware wires two distinct channels
// to one decoder; a single Go type can't implement dma.Device's Write
// and the MMIO Write (different signatures) at once, so each direction
// gets its own thin adapter instead.
type InPort struct{ Decoder *Decoder }

// Sync always accepts: the input FIFO has no backpressure of its own
// (spec §4.5 command/parameter intake has no throttle).
func (p *InPort) Sync(nwords int) bool { return true }

func (p *InPort) Write(word uint32) { p.Decoder.WriteData(word) }

// Read is never called by the DMA engine for an in-only channel.
func (p *InPort) Read() uint32 { return 0 }

type OutPort struct{ Decoder *Decoder }

func (p *OutPort) Sync(nwords int) bool { return p.Decoder.syncOut(nwords) }

// Write is never called by the DMA engine for an out-only channel.
func (p *OutPort) Write(word uint32) {}

func (p *OutPort) Read() uint32 { return p.Decoder.ReadData() }
