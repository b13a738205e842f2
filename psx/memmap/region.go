// Package memmap implements the physical address decode and MMIO
// dispatch described in spec §4.6: a linear 32-bit address space split
// into RAM, Scratchpad, MMIO, three expansion regions and BIOS, with
// byte/half/word access and endian-aware mirroring.
//
// The region-enum-plus-dispatch shape is grounded on jeebie/memory.MMU:
// a small region enum selects a handler, as MMU.regionMap does for the
// Game Boy's 16-bit space; here the region is chosen by a switch over
// address ranges rather than a table lookup.
package memmap

import (
	"fmt"
	"log/slog"
)

type region uint8

const (
	regionRAM region = iota
	regionScratchpad
	regionMMIO
	regionExpansion1
	regionExpansion2
	regionExpansion3
	regionBIOS
	regionUnmapped
)

// ramSizeTable implements spec §3's "RAM-size register chooses one of
// eight (ram_bytes, high-Z bytes) pairs" — grounded on the real PS1
// MEMCTRL2 RAM_SIZE semantics via original_source/src/mem.c.
var ramSizeTable = [8]struct {
	ramBytes  uint32
	highZBytes uint32
}{
	{1 * 1024 * 1024, 7 * 1024 * 1024},
	{1 * 1024 * 1024, 7 * 1024 * 1024},
	{1 * 1024 * 1024, 1 * 1024 * 1024},
	{1 * 1024 * 1024, 1 * 1024 * 1024},
	{2 * 1024 * 1024, 6 * 1024 * 1024},
	{2 * 1024 * 1024, 6 * 1024 * 1024},
	{4 * 1024 * 1024, 4 * 1024 * 1024},
	{8 * 1024 * 1024, 0},
}

// Config carries the bus's tunables: the RAM and BIOS sizes and the
// host byte order. It holds no timing or calibration constants.
type Config struct {
	RAMSize  uint32 // defaults to 2MB if zero
	BIOSSize uint32 // defaults to 512KB if zero
	BigEndianHost bool // true swaps sub-word accesses, per spec §4.6
}

// Warnf matches the warning-callback contract used across the core
// (spec §7): a formatted diagnostic, never an abort.
type Warnf func(format string, args ...any)

// Bus is the top-level physical memory map. It owns RAM, Scratchpad, and
// BIOS storage directly, and dispatches MMIO reads/writes to whichever
// device port is registered for that address.
type Bus struct {
	cfg Config
	warn Warnf

	ram        []byte
	ramSizeIdx uint8
	scratchpad [1024]byte
	bios       []byte

	mmio *mmioDispatch

	tracer func(addr uint32, width int, write bool, value uint32)
}

// New creates a Bus with RAM/Scratchpad/BIOS allocated per cfg.
func New(cfg Config, warn Warnf) *Bus {
	if cfg.RAMSize == 0 {
		cfg.RAMSize = 2 * 1024 * 1024
	}
	if cfg.BIOSSize == 0 {
		cfg.BIOSSize = 512 * 1024
	}
	if warn == nil {
		warn = func(format string, args ...any) { slog.Warn(fmt.Sprintf(format, args...)) }
	}
	b := &Bus{
		cfg:  cfg,
		warn: warn,
		ram:  make([]byte, cfg.RAMSize),
		bios: make([]byte, cfg.BIOSSize),
	}
	b.mmio = newMMIODispatch(b)
	return b
}

// SetTracer installs an access observer invoked on every Read/Write,
// per spec §4.6's "optional tracing variant".
func (b *Bus) SetTracer(f func(addr uint32, width int, write bool, value uint32)) {
	b.tracer = f
}

// LoadBIOS copies a BIOS image, byte-swapping once at load time for a
// big-endian host (spec §9 "Endianness").
func (b *Bus) LoadBIOS(data []byte) error {
	if len(data) > len(b.bios) {
		return fmt.Errorf("memmap: BIOS image too large: %d > %d", len(data), len(b.bios))
	}
	copy(b.bios, data)
	if b.cfg.BigEndianHost {
		swapWords(b.bios)
	}
	return nil
}

// WriteRAMSizeRegister selects one of the 8 (ram_bytes, high-Z bytes)
// pairs named in spec §3.
func (b *Bus) WriteRAMSizeRegister(v uint32) {
	b.ramSizeIdx = uint8(v&0x7) // low 3 bits select the pair per real hw layout
}

func (b *Bus) decode(physAddr uint32) (region, uint32) {
	a := physAddr & addrRegionMask
	switch {
	case a < ramRegionEnd(b):
		return regionRAM, a
	case a >= scratchpadBase && a < scratchpadBase+1024:
		return regionScratchpad, a - scratchpadBase
	case a >= mmioBase && a <= mmioEnd:
		return regionMMIO, a - mmioBase
	case a >= exp1Base && a < exp1Base+0x800000:
		return regionExpansion1, a - exp1Base
	case a >= exp2Base && a < exp2Base+0x2000:
		return regionExpansion2, a - exp2Base
	case a >= exp3Base && a < exp3Base+0x200000:
		return regionExpansion3, a - exp3Base
	case a >= biosBase && a < biosBase+uint32(len(b.bios)):
		return regionBIOS, a - biosBase
	default:
		return regionUnmapped, a
	}
}

func ramRegionEnd(b *Bus) uint32 {
	// RAM is mirrored 4x across 0x00000000-0x007FFFFF regardless of the
	// installed size; reads above the installed size land in the
	// high-Z "ram_bytes, high-Z bytes" pair of spec §3.
	return 0x00800000
}

const (
	addrRegionMask  uint32 = 0x1FFFFFFF
	scratchpadBase  uint32 = 0x1F800000
	mmioBase        uint32 = 0x1F801000
	mmioEnd         uint32 = 0x1F801FFF
	exp1Base        uint32 = 0x1F000000
	exp2Base        uint32 = 0x1F802000
	exp3Base        uint32 = 0x1FA00000
	biosBase        uint32 = 0x1FC00000
)
