package clock

import "testing"

type fakeSub struct {
	name string
	next int64
	hits int
}

func (f *fakeSub) Name() string        { return f.name }
func (f *fakeSub) NextEventCC() int64  { return f.next }
func (f *fakeSub) EndIter(clk int64)   { f.hits++ }

func TestRecomputeHorizonTakesMinimum(t *testing.T) {
	s := New()
	s.Register(&fakeSub{name: "a", next: 500})
	s.Register(&fakeSub{name: "b", next: 120})
	s.Register(&fakeSub{name: "c", next: 9000})

	s.RecomputeHorizon()

	if got := s.NextEventCC(); got != 120 {
		t.Fatalf("NextEventCC() = %d; want 120", got)
	}
}

func TestUpdateTimingEventShortensHorizonOnly(t *testing.T) {
	s := New()
	s.Register(&fakeSub{name: "a", next: 1000})
	s.RecomputeHorizon()

	s.UpdateTimingEvent(2000)
	if s.NextEventCC() != 1000 {
		t.Fatalf("UpdateTimingEvent should not lengthen the horizon")
	}

	s.UpdateTimingEvent(50)
	if s.NextEventCC() != 50 {
		t.Fatalf("UpdateTimingEvent should shorten the horizon to 50, got %d", s.NextEventCC())
	}
}

func TestEndIterAdvancesEverySubsystem(t *testing.T) {
	s := New()
	a := &fakeSub{name: "a", next: 100}
	b := &fakeSub{name: "b", next: 200}
	s.Register(a)
	s.Register(b)

	s.Advance(100)
	s.EndIter()

	if a.hits != 1 || b.hits != 1 {
		t.Fatalf("expected both subsystems to end their iteration, got a=%d b=%d", a.hits, b.hits)
	}
}

func TestBusOwnerDefaultsToCPU(t *testing.T) {
	s := New()
	if s.BusOwner() != BusCPU {
		t.Fatalf("default bus owner should be CPU, got %v", s.BusOwner())
	}
	s.SetBusOwner(BusDMA)
	if s.BusOwner() != BusDMA {
		t.Fatalf("expected BusDMA after SetBusOwner")
	}
}
