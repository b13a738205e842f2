package gte

import "testing"

func TestWriteDataSXYPPushesFIFO(t *testing.T) {
	g := New(nil)
	g.WriteData(rSXYP, 0x00010001)
	g.WriteData(rSXYP, 0x00020002)
	if g.data[rSXY1] != 0x00010001 {
		t.Fatalf("SXY1 = %X, want 0x00010001", g.data[rSXY1])
	}
	if g.data[rSXY2] != 0x00020002 {
		t.Fatalf("SXY2 = %X, want 0x00020002", g.data[rSXY2])
	}
}

func TestFlagErrorBitIsORdFromStickyBits(t *testing.T) {
	g := New(nil)
	g.setFlagBit(flagIR1Sat)
	f := g.Flag()
	if f&(1<<flagError) == 0 {
		t.Fatalf("expected FLAG error bit set when a sticky bit is set, got %X", f)
	}
}

func TestExecuteUnknownFunctionWarnsAndReturnsCost(t *testing.T) {
	var warned bool
	g := New(func(string, ...any) { warned = true })
	cost := g.Execute(0x00) // function 0 has no handler
	if !warned {
		t.Fatalf("expected warn callback for unimplemented function")
	}
	if cost != 1 {
		t.Fatalf("cost = %d, want 1 for an unimplemented function", cost)
	}
}

func TestRTPSReturnsDeclaredCost(t *testing.T) {
	g := New(nil)
	g.WriteControl(cH, 0x0100)
	g.WriteControl(cDQA, 0)
	g.WriteControl(cDQB, 0)
	g.WriteControl(cOFX, 0)
	g.WriteControl(cOFY, 0)
	// RT11=RT33=1, other rotation entries and translation zero.
	g.WriteControl(cRT11RT12, 1<<0) // RT11=1, RT12=0
	g.WriteControl(cRT33, 1)
	g.WriteData(rVXY0, uint32(uint16(10))|uint32(uint16(20))<<16)
	g.WriteData(rVZ0, 1)

	cost := g.Execute(0x01) // RTPS
	if cost != costs[0x01] {
		t.Fatalf("cost = %d, want %d", cost, costs[0x01])
	}
}

func TestPerspectiveDivideSetsDivisionOverflowOnTinyDenominator(t *testing.T) {
	g := New(nil)
	g.WriteControl(cH, 0x7FFF)
	ret := g.perspectiveDivide(1)
	if ret != 0x1FFFF {
		t.Fatalf("ret = %X, want 0x1FFFF on overflow", ret)
	}
	if g.Flag()&(1<<flagDivOverflow) == 0 {
		t.Fatalf("expected division-overflow flag set")
	}
}
