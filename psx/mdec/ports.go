package mdec

// Read implements memmap.Ports for the two MDEC I/O ports: data
// (0x1F801820) and status/control (0x1F801824).
func (d *Decoder) Read(port uint32, width int) (uint32, bool) {
	switch port {
	case 0x0:
		return d.ReadData(), true
	case 0x4:
		return d.Status(), true
	}
	return 0, true
}

// Write implements memmap.Ports for the two MDEC I/O ports.
func (d *Decoder) Write(port uint32, width int, value uint32) bool {
	switch port {
	case 0x0:
		d.WriteData(value)
	case 0x4:
		d.Control(value)
	}
	return true
}

// Name satisfies clock.Subsystem.
func (d *Decoder) Name() string { return "mdec" }

// NextEventCC satisfies clock.Subsystem: the throttle's outstanding
// rest period, if any.
func (d *Decoder) NextEventCC() int64 {
	if d.restCycles > 0 {
		return int64(d.restCycles)
	}
	return 1 << 30
}

// EndIter satisfies clock.Subsystem: expire one iteration's worth of
// throttle rest. It does not re-activate a parked DMA-out channel when
// the rest clears.
func (d *Decoder) EndIter(clock int64) {
	if d.restCycles <= 0 {
		return
	}
	d.restCycles -= cyclesPerBlock
	if d.restCycles < 0 {
		d.restCycles = 0
	}
}
