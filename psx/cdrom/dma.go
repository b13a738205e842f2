package cdrom

// DMAPort adapts a Controller to dma.Device for DMA channel 3 (CD-ROM),
// which only ever transfers device-to-RAM (spec §4.3 channel table):
// Write is never called by the engine for this direction.
type DMAPort struct{ Controller *Controller }

// Sync reports whether at least nwords*4 bytes are waiting in the data
// FIFO (spec §6 "sync returns true to accept a transfer immediately").
func (p *DMAPort) Sync(nwords int) bool {
	return len(p.Controller.dataFIFO) >= nwords*4
}

func (p *DMAPort) Write(word uint32) {}

func (p *DMAPort) Read() uint32 {
	c := p.Controller
	var w uint32
	for i := 0; i < 4; i++ {
		w |= uint32(c.popData()) << (8 * i)
	}
	return w
}
