// Package dma implements the seven-channel DMA engine of spec §4.3: three
// transfer modes (burst, block, linked-list), a priority-ordered active
// channel queue, and the per-channel register bank exposed over MMIO.
//
// The "one interface, several concrete behaviours selected at setup time"
// shape is grounded on jeebie/memory.MBC: that package picks one of
// NoMBC/MBC1/MBC2/MBC3/MBC5 behind a single Read/Write interface chosen
// once at cartridge load; here each channel picks one of modeBurst/
// modeBlock/modeLinkedList behind a single Device contract, chosen by the
// CHCR.mode bits written at runtime instead of at construction.
package dma

import (
	"fmt"
	"log/slog"
)

// Device is the contract a DMA-capable peripheral exposes (spec §6
// "DMA ↔ devices"). Sync returns true to accept nwords immediately, or
// false to park the channel until the device calls Engine.ActivateChannel.
type Device interface {
	Sync(nwords int) bool
	Write(word uint32)
	Read() uint32
}

// Memory is the subset of the physical bus the DMA engine needs. Any
// type satisfying this (memmap.Bus does, structurally) can back an Engine.
type Memory interface {
	Read32(addr uint32) (uint32, bool)
	Write32(addr uint32, value uint32) bool
}

// Mode is the CHCR.bit[10:9] transfer mode selector.
type Mode int

const (
	ModeBurst Mode = iota
	ModeBlock
	ModeLinkedList
	ModeReserved
)

// Direction is the CHCR.bit0 transfer direction.
type Direction int

const (
	ToRAM Direction = iota
	FromRAM
)

// Channel ids, matching spec §4.3's ordering (0 = highest priority by default).
const (
	MDECin = iota
	MDECout
	GPU
	CDROM
	SPU
	PIO
	OTC
	ChannelCount
)

// ccPerWordTable is the per-word bus-hold cost named in spec §4.3.
var ccPerWordTable = [ChannelCount]int{
	MDECin:  1,
	MDECout: 1,
	GPU:     1,
	CDROM:   24,
	SPU:     4,
	PIO:     1,
	OTC:     1,
}

// BusArbiter lets the DMA engine report CPU/DMA bus ownership during a
// chopping rest period (spec invariant: "while waiting, BusOwner == CPU").
type BusArbiter interface {
	SetBusOwner(cpuOnly bool)
}

// IRQRaiser receives the DMA master interrupt line when an enabled
// channel's interrupt-flag bit transitions (spec §4.3 "Completion").
type IRQRaiser interface {
	RaiseDMA()
}

// Engine owns all seven channels, the priority queue of active channels,
// and the global DPCR/DICR registers.
type Engine struct {
	channels [ChannelCount]*Channel
	queue    channelHeap
	current  *Channel

	dpcr uint32
	dicr uint32

	mem  Memory
	bus  BusArbiter
	irq  IRQRaiser
	warn func(format string, args ...any)
}

// New creates a DMA engine with all seven channels in their reset state.
func New(mem Memory, bus BusArbiter, irq IRQRaiser, warn func(string, ...any)) *Engine {
	if warn == nil {
		warn = func(format string, args ...any) { slog.Warn(fmt.Sprintf(format, args...)) }
	}
	e := &Engine{mem: mem, bus: bus, irq: irq, warn: warn, dpcr: 0x07654321}
	for id := range e.channels {
		e.channels[id] = newChannel(id)
	}
	return e
}

// AttachDevice wires a channel's device callbacks (spec §6).
func (e *Engine) AttachDevice(id int, dev Device) {
	e.channels[id].device = dev
}

// Name satisfies clock.Subsystem.
func (e *Engine) Name() string { return "dma" }

// NextEventCC satisfies clock.Subsystem: the rest of a chopping burst, if any.
func (e *Engine) NextEventCC() int64 {
	if e.current != nil && e.current.restCyclesLeft > 0 {
		return int64(e.current.restCyclesLeft)
	}
	return 1 << 30
}

// EndIter satisfies clock.Subsystem: expire any chopping rest period.
func (e *Engine) EndIter(clock int64) {
	if e.current == nil {
		return
	}
	if e.current.restCyclesLeft > 0 {
		e.current.restCyclesLeft = 0
		e.bus.SetBusOwner(false)
		e.pushActive(e.current)
		e.current = nil
	}
}

// ActivateChannel re-queues a parked channel after its device signals it
// can accept more data (spec §6).
func (e *Engine) ActivateChannel(id int) {
	ch := e.channels[id]
	if !ch.parked {
		return
	}
	ch.parked = false
	e.pushActive(ch)
}

// Step runs the top active channel for up to budget cycles and returns the
// number of cycles actually consumed. A return of 0 means no channel is
// runnable right now.
func (e *Engine) Step(budget int) int {
	if e.current == nil {
		if e.queue.Len() == 0 {
			return 0
		}
		e.current = e.popActive()
	}
	ch := e.current
	consumed := ch.run(e, budget)
	if ch.done || ch.parked {
		e.current = nil
	}
	return consumed
}
