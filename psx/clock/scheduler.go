// Package clock implements the global scheduler described in spec §4.1:
// a shared monotonic cycle counter, a minimum-horizon computation across
// every registered subsystem, and the CPU/DMA bus-ownership arbiter.
//
// The loop shape mirrors jeebie.Emulator.RunUntilFrame: a single-goroutine
// caller advances the clock in slices and polls every subsystem at each
// barrier. There is no concurrency here by design (spec §5) — the mutex
// below guards only the pause/step control surface, the same narrow role
// jeebie.Emulator.debuggerMutex plays over its simulation loop.
package clock

import (
	"fmt"
	"log/slog"
	"sync"
)

// BusOwner arbitrates memory access between the CPU and the DMA engine.
type BusOwner int

const (
	BusCPU BusOwner = iota
	BusDMA
	BusCPUAndDMA
)

func (b BusOwner) String() string {
	switch b {
	case BusCPU:
		return "CPU"
	case BusDMA:
		return "DMA"
	case BusCPUAndDMA:
		return "CPU+DMA"
	default:
		return fmt.Sprintf("BusOwner(%d)", int(b))
	}
}

// Subsystem is the contract every timed device in the core implements.
// NextEventCC returns the number of cycles from now until this subsystem
// next needs attention; EndIter advances the subsystem's internal clock up
// to the given absolute Clock value and fires any event that is now due.
type Subsystem interface {
	Name() string
	NextEventCC() int64
	EndIter(clock int64)
}

// RunState mirrors jeebie's DebuggerState: a tiny control surface for
// pausing/stepping the core from a debugger or headless runner, kept
// entirely separate from the simulation loop itself.
type RunState int

const (
	Running RunState = iota
	Paused
)

// Scheduler owns the shared Clock, the horizon computation, and the bus
// arbiter. Subsystems register themselves once at construction time.
type Scheduler struct {
	clock       int64
	nextEventCC int64
	busOwner    BusOwner

	subsystems []Subsystem

	mu    sync.RWMutex
	state RunState

	logger *slog.Logger
}

// New creates a scheduler with an empty subsystem list.
func New() *Scheduler {
	return &Scheduler{
		nextEventCC: 1 << 30,
		busOwner:    BusCPU,
		logger:      slog.Default(),
	}
}

// Register adds a subsystem to the horizon computation. Order matters only
// for EndIter's firing order within a single barrier; the dependency order
// named in spec §2 (memory map → DMA → {CD-ROM, MDEC, GTE} → scheduler
// glue) is the caller's responsibility to preserve when registering.
func (s *Scheduler) Register(sub Subsystem) {
	s.subsystems = append(s.subsystems, sub)
}

// Clock returns the current global cycle counter.
func (s *Scheduler) Clock() int64 { return s.clock }

// NextEventCC returns the absolute cycle of the next scheduler barrier.
func (s *Scheduler) NextEventCC() int64 { return s.nextEventCC }

// BusOwner returns the current bus arbitration state.
func (s *Scheduler) BusOwner() BusOwner { return s.busOwner }

// SetBusOwner is called by the DMA engine to arbitrate concurrent access.
func (s *Scheduler) SetBusOwner(owner BusOwner) {
	if owner != s.busOwner {
		s.logger.Debug("bus owner changed", "from", s.busOwner, "to", owner)
	}
	s.busOwner = owner
}

// RecomputeHorizon sets NextEventCC to Clock + min(subsystem.NextEventCC()),
// per spec §4.1. Call this at every CPU instruction boundary.
func (s *Scheduler) RecomputeHorizon() {
	min := int64(1 << 30)
	for _, sub := range s.subsystems {
		if cc := sub.NextEventCC(); cc < min {
			min = cc
		}
	}
	s.nextEventCC = s.clock + min
}

// UpdateTimingEvent lets a subsystem shorten the horizon mid-instruction,
// e.g. when a CD-ROM command schedules a response sooner than anything
// else currently pending.
func (s *Scheduler) UpdateTimingEvent(absoluteCC int64) {
	if absoluteCC < s.nextEventCC {
		s.nextEventCC = absoluteCC
	}
}

// Advance moves the global clock forward. The caller (the CPU loop) must
// never advance past NextEventCC without an intervening EndIter.
func (s *Scheduler) Advance(cycles int64) {
	if cycles < 0 {
		panic(fmt.Sprintf("clock: negative advance %d", cycles))
	}
	s.clock += cycles
}

// EndIter advances every subsystem's internal clock up to Clock and fires
// any event whose cc_to_event has elapsed. Called at frame end, or earlier
// once NextEventCC has been reached (spec §4.1).
func (s *Scheduler) EndIter() {
	for _, sub := range s.subsystems {
		sub.EndIter(s.clock)
	}
	s.RecomputeHorizon()
}

// SetState controls the pause/step surface; it never affects Clock/Advance.
func (s *Scheduler) SetState(state RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// State reports the current pause/step state.
func (s *Scheduler) State() RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
