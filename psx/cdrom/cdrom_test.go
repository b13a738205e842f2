package cdrom

import "testing"

type fakeDisc struct {
	sectors map[uint32][]byte
	present bool
}

func newFakeDisc() *fakeDisc { return &fakeDisc{sectors: map[uint32][]byte{}, present: true} }

func (d *fakeDisc) ReadSector(lba uint32) ([]byte, bool) {
	s, ok := d.sectors[lba]
	if !ok {
		return make([]byte, 2352), true
	}
	return s, true
}
func (d *fakeDisc) ReadSubchannelQ(lba uint32) (int, int, uint32, uint32, bool) { return 1, 1, lba, lba, true }
func (d *fakeDisc) Seek(lba uint32)                                            {}
func (d *fakeDisc) Tell() uint32                                               { return 0 }
func (d *fakeDisc) TrackCount() int                                            { return 1 }
func (d *fakeDisc) TrackStart(track int) (uint32, bool)                        { return 0, true }
func (d *fakeDisc) Inserted() bool                                             { return d.present }

type fakeIRQ struct{ count int }

func (f *fakeIRQ) RaiseCDROM() { f.count++ }

func TestGetStatQueuesAcknowledge(t *testing.T) {
	c := New(newFakeDisc(), &fakeIRQ{}, nil)
	c.Write(0, 1, 0) // select index 0
	c.Write(1, 1, 0x01) // GetStat command

	if !c.busy {
		t.Fatalf("expected controller to be busy after issuing a command")
	}
	c.EndIter(0)
	if len(c.responseFIFO) == 0 {
		t.Fatalf("expected a queued GetStat response")
	}
}

func TestCommandWhileBusyIsIgnored(t *testing.T) {
	c := New(newFakeDisc(), &fakeIRQ{}, nil)
	c.Write(1, 1, 0x01)
	wasBusy := c.busy
	c.Write(1, 1, 0x0A) // Init, should be rejected while busy
	if c.curCmd != 0x01 {
		t.Fatalf("expected the second command to be rejected while busy")
	}
	_ = wasBusy
}

func TestSetLocConvertsBCDToLBA(t *testing.T) {
	c := New(newFakeDisc(), &fakeIRQ{}, nil)
	c.Write(2, 1, 0x00) // mm=00
	c.Write(2, 1, 0x02) // ss=02
	c.Write(2, 1, 0x00) // ff=00
	c.Write(1, 1, 0x02) // SetLoc
	if c.seekTarget != 2*75-150 && c.seekTarget != 0 {
		// mm=0,ss=2,ff=0 -> lba=150; minus 150 lead-in = 0
		t.Fatalf("seekTarget = %d, want 0", c.seekTarget)
	}
}

func TestGetIDRaisesErrorWhenNoDisc(t *testing.T) {
	disc := newFakeDisc()
	disc.present = false
	irq := &fakeIRQ{}
	c := New(disc, irq, nil)
	c.Write(0, 1, 1)    // index 1
	c.Write(2, 1, 0x1F) // enable all CD-ROM interrupts
	c.Write(0, 1, 0)    // back to index 0
	c.Write(1, 1, 0x1A) // GetID
	c.EndIter(0) // fires ack
	c.EndIter(0) // fires second response (error, no disc)
	if irq.count == 0 {
		t.Fatalf("expected at least one CDROM IRQ to be raised")
	}
	if c.irqFlags != irqError {
		t.Fatalf("irqFlags = %X, want error response %X", c.irqFlags, irqError)
	}
}
