// Package psx wires the scheduler, physical bus, DMA engine, CD-ROM
// controller, GTE, and MDEC into one Core (spec §1/§6 "hard core" plus
// the external-interface boundary). CPU decode, GPU rasterisation, SPU
// mixing, and BIOS loading stay external collaborators plugged in
// through the small interfaces below, the way jeebie.Emulator takes its
// video/audio/serial packages as collaborators of its own core loop
// rather than inlining them.
package psx

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-psx/psx/cdrom"
	"github.com/valerio/go-psx/psx/clock"
	"github.com/valerio/go-psx/psx/dma"
	"github.com/valerio/go-psx/psx/gte"
	"github.com/valerio/go-psx/psx/mdec"
	"github.com/valerio/go-psx/psx/memmap"
)

// CPUStepper is the external CPU decoder collaborator (spec §1 "CPU
// decode... remain external collaborators"): Step executes one
// instruction and returns the cycles it consumed.
type CPUStepper interface {
	Step() int
}

// CPUBus is the minimal contract the external CPU decoder needs from
// the core: word/half/byte memory access plus the COP2 coprocessor it
// dispatches GTE instructions into (spec §6 "CPU ↔ memory: mem_read/
// write at 8/16/32 bits"). *Core satisfies this directly.
type CPUBus interface {
	Read8(addr uint32) (byte, bool)
	Read16(addr uint32) (uint16, bool)
	Read32(addr uint32) (uint32, bool)
	Write8(addr uint32, value byte) bool
	Write16(addr uint32, value uint16) bool
	Write32(addr uint32, value uint32) bool
	COP2() *gte.GTE
}

// GPUPort is the external GPU rasteriser collaborator. The core only
// needs to route MMIO ports 0x1F801810-0x1F801817 and DMA channel 2 to
// it; memmap.Bus already reflects an idle status word when none is
// attached (spec §1 non-goal: no host-GPU acceleration here).
// memmap.Ports and dma.Device both declare Read/Write with different
// signatures, so no single Go type can satisfy both; the DMA side is
// reached through DMADevice instead.
type GPUPort interface {
	memmap.Ports
	DMADevice() dma.Device
}

// SPUPort is the external SPU mixer collaborator. PushSample receives
// one resampled stereo XA-ADPCM pair as the CD-ROM decodes it (spec §6
// "next_sound_sample() producing one stereo 16-bit sample at 44.1kHz").
// As with GPUPort, the DMA side is reached through DMADevice.
type SPUPort interface {
	memmap.Ports
	DMADevice() dma.Device
	PushSample(left, right int16)
}

// InterruptController is the external interrupt-controller collaborator
// (spec §1 "interrupt-controller register plumbing" non-goal): the core
// only ever needs to raise individual lines on it, never read/write its
// I_STAT/I_MASK registers itself.
type InterruptController interface {
	RaiseDMA()
	RaiseCDROM()
}

// Config carries the core's tunables (RAM and BIOS sizes, host byte
// order), following jeebie/memory/cartridge.go's pattern of a small
// typed config over a generic map. It holds no CD-ROM timing values.
type Config struct {
	RAMSize       uint32 // defaults to 2MB if zero
	BIOSSize      uint32 // defaults to 512KB if zero
	BigEndianHost bool
}

type busArbiter struct{ sched *clock.Scheduler }

func (b busArbiter) SetBusOwner(cpuOnly bool) {
	if cpuOnly {
		b.sched.SetBusOwner(clock.BusCPU)
	} else {
		b.sched.SetBusOwner(clock.BusDMA)
	}
}

// Core is the root struct owning every in-scope subsystem, mirroring
// jeebie/core.go's Emulator: one top-level value holding the hot
// single-instance state, constructed once and driven by RunCycles.
type Core struct {
	cfg  Config
	warn func(format string, args ...any)

	Scheduler *clock.Scheduler
	Bus       *memmap.Bus
	DMA       *dma.Engine
	CDROM     *cdrom.Controller
	GTE       *gte.GTE
	MDEC      *mdec.Decoder

	gpu GPUPort
	spu SPUPort
}

// New builds a Core with the DMA engine, CD-ROM controller and MDEC
// registered with the scheduler and wired onto the physical bus; the
// GTE is created but not registered, since it is driven only through
// COP2. disc and irqCtrl are
// required collaborators; gpu/spu may be attached later via AttachGPU/
// AttachSPU and are optional (memmap.Bus reflects idle status for an
// unattached GPU/SPU region).
func New(cfg Config, disc cdrom.Disc, irqCtrl InterruptController, warn func(string, ...any)) *Core {
	if warn == nil {
		warn = func(format string, args ...any) { slog.Warn(fmt.Sprintf(format, args...)) }
	}

	sched := clock.New()
	bus := memmap.New(memmap.Config{
		RAMSize:       cfg.RAMSize,
		BIOSSize:      cfg.BIOSSize,
		BigEndianHost: cfg.BigEndianHost,
	}, warn)

	dmaEngine := dma.New(bus, busArbiter{sched: sched}, irqCtrl, warn)
	cd := cdrom.New(disc, irqCtrl, warn)
	g := gte.New(warn)
	md := mdec.New(warn)

	dmaEngine.AttachDevice(dma.MDECin, &mdec.InPort{Decoder: md})
	dmaEngine.AttachDevice(dma.MDECout, &mdec.OutPort{Decoder: md})
	dmaEngine.AttachDevice(dma.CDROM, &cdrom.DMAPort{Controller: cd})

	bus.AttachDMA(dmaEngine)
	bus.AttachCDROM(cd)
	bus.AttachMDEC(md)

	sched.Register(dmaEngine)
	sched.Register(cd)
	sched.Register(md)

	return &Core{
		cfg:       cfg,
		warn:      warn,
		Scheduler: sched,
		Bus:       bus,
		DMA:       dmaEngine,
		CDROM:     cd,
		GTE:       g,
		MDEC:      md,
	}
}

// AttachGPU wires the external GPU collaborator onto DMA channel 2 and
// MMIO ports 0x1F801810-0x1F801817.
func (c *Core) AttachGPU(gpu GPUPort) {
	c.gpu = gpu
	c.DMA.AttachDevice(dma.GPU, gpu.DMADevice())
	c.Bus.AttachGPU(gpu)
}

// AttachSPU wires the external SPU collaborator onto DMA channel 4 and
// the voice/control register window, and subscribes it to the CD-ROM's
// resampled XA-ADPCM audio stream.
func (c *Core) AttachSPU(spu SPUPort) {
	c.spu = spu
	c.DMA.AttachDevice(dma.SPU, spu.DMADevice())
	c.Bus.AttachSPU(spu)
	c.CDROM.SetAudioSink(spu.PushSample)
}

// LoadBIOS installs a BIOS image into the physical bus's BIOS region.
func (c *Core) LoadBIOS(data []byte) error {
	return c.Bus.LoadBIOS(data)
}

// Warnf reports a non-fatal protocol violation through the same
// callback every subsystem constructor received (spec §7 "Errors are
// reported via a warning callback"), for external collaborators (GPU/
// SPU/CPU) that want to surface diagnostics through the core's channel.
func (c *Core) Warnf(format string, args ...any) { c.warn(format, args...) }

// Read8 satisfies CPUBus by delegating to the physical bus.
func (c *Core) Read8(addr uint32) (byte, bool) { return c.Bus.Read8(addr) }

// Read16 satisfies CPUBus by delegating to the physical bus.
func (c *Core) Read16(addr uint32) (uint16, bool) { return c.Bus.Read16(addr) }

// Read32 satisfies CPUBus by delegating to the physical bus.
func (c *Core) Read32(addr uint32) (uint32, bool) { return c.Bus.Read32(addr) }

// Write8 satisfies CPUBus by delegating to the physical bus.
func (c *Core) Write8(addr uint32, value byte) bool { return c.Bus.Write8(addr, value) }

// Write16 satisfies CPUBus by delegating to the physical bus.
func (c *Core) Write16(addr uint32, value uint16) bool { return c.Bus.Write16(addr, value) }

// Write32 satisfies CPUBus by delegating to the physical bus.
func (c *Core) Write32(addr uint32, value uint32) bool { return c.Bus.Write32(addr, value) }

// COP2 satisfies CPUBus, giving the external CPU decoder the GTE
// instance its COP2 instructions dispatch into.
func (c *Core) COP2() *gte.GTE { return c.GTE }

var _ CPUBus = (*Core)(nil)

// RunCycles advances the core by approximately n cycles, alternating
// bus ownership between the CPU collaborator and the DMA engine's
// active channel queue (spec §4.1 "BusOwner arbitrates CPU vs DMA"),
// the same total-cycles-until-boundary shape as jeebie.Emulator.
// RunUntilFrame's `for { cycles := e.cpu.Tick(); total += cycles; if
// total >= 70224 { return } }` loop.
func (c *Core) RunCycles(cpu CPUStepper, n int64) {
	var done int64
	for done < n {
		var consumed int64
		if c.Scheduler.BusOwner() != clock.BusCPU {
			got := c.DMA.Step(int(n - done))
			if got == 0 {
				c.Scheduler.SetBusOwner(clock.BusCPU)
				continue
			}
			consumed = int64(got)
		} else {
			got := cpu.Step()
			if got == 0 {
				break
			}
			consumed = int64(got)
		}

		c.Scheduler.Advance(consumed)
		done += consumed

		if c.Scheduler.Clock() >= c.Scheduler.NextEventCC() {
			c.Scheduler.EndIter()
		}
	}
}
