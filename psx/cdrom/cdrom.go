// Package cdrom implements the CD-ROM controller of spec §4.4/§5: four
// index-addressed I/O ports, a 29-opcode command set, a two-phase
// first/second response IRQ protocol, XA-ADPCM playback decoding, and a
// two-level sector read buffer.
//
// The command dispatch table is grounded on jeebie/cpu/mapping.go's
// `map[uint8]Opcode` decoder: there a fetched instruction byte selects
// one of many small handler functions; here a fetched command byte
// (index-1 port 1 write) does the same, except each handler schedules
// its response instead of returning synchronously.
package cdrom

import "log/slog"

// Status register bits (spec §4.4 "status"), grounded on the original
// implementation's STAT_* constants.
const (
	statError    = 0x01
	statMotorOn  = 0x02
	statIDError  = 0x08
	statShellOpen = 0x10
	statRead     = 0x20
	statSeek     = 0x40
	statPlay     = 0x80
)

// Timing constants (spec §4.4 "seek timing formulas" / "read cadence"),
// named after the original implementation's DEFAULT_CC_* and CC2READ
// macros; treated as calibration parameters per spec §9.
const (
	ccFirstResponse   = 0xC4E1
	ccSeekSecond      = 0x10BD93
	ccSeekSecondFast  = 0x4A00
	ccReadSingleSpeed = 451584
	ccReadDoubleSpeed = ccReadSingleSpeed >> 1
	ccIRQExpired      = 4000
)

// fifoSize is the command/parameter/response FIFO depth (spec §4.4).
const fifoSize = 16

// Disc is the external collaborator providing physical-disc access
// (spec §7 "Disc"); the emulator's BIOS/ISO loader supplies the
// concrete implementation.
type Disc interface {
	ReadSector(lba uint32) ([]byte, bool)
	ReadSubchannelQ(lba uint32) (track int, index int, relLBA uint32, absLBA uint32, ok bool)
	Seek(lba uint32)
	Tell() uint32
	TrackCount() int
	TrackStart(track int) (lba uint32, ok bool)
	Inserted() bool
}

// IRQRaiser receives the CD-ROM's interrupt line (spec §5 "CDROM IRQ").
type IRQRaiser interface {
	RaiseCDROM()
}

// pendingResponse is one scheduled response phase. The two-phase
// first/second response ordering of spec §5 falls out of queue order:
// a command's first response is pushed before its second, so firePending
// never delivers them out of sequence.
type pendingResponse struct {
	irqType  int
	bytes    []byte
	ccLeft   int
	callback func(c *Controller)
}

// Controller is the CD-ROM device: register bank, command/response
// FIFOs, and the pending two-phase response queue.
type Controller struct {
	index uint8 // the 2-bit "index" selecting port 1-3's register bank

	statusReg uint8

	paramFIFO    []byte
	responseFIFO []byte
	dataFIFO     []byte

	irqEnable uint8
	irqFlags  uint8

	pending []pendingResponse

	curCmd  byte
	busy    bool

	mode byte // SetMode byte (spec §4.4: double-speed, XA-ADPCM, size, etc.)

	seekTarget uint32
	curLBA     uint32

	reading  bool
	playing  bool
	doubleSpeed bool

	sectorBuf  [2][]byte // two-level read buffer (spec §4.4)
	sectorFull [2]bool
	activeBuf  int

	adpcm  adpcmState
	volume volumeMatrix
	audioSink func(left, right int16)

	disc Disc
	irq  IRQRaiser
	warn func(format string, args ...any)

	cyclesLeft int
}

// New returns a CD-ROM controller with the motor off and no disc
// attached.
func New(disc Disc, irq IRQRaiser, warn func(string, ...any)) *Controller {
	if warn == nil {
		warn = func(format string, args ...any) { slog.Warn(format) }
	}
	c := &Controller{disc: disc, irq: irq, warn: warn}
	c.volume = defaultVolumeMatrix()
	return c
}

// Name satisfies clock.Subsystem.
func (c *Controller) Name() string { return "cdrom" }

// NextEventCC satisfies clock.Subsystem.
func (c *Controller) NextEventCC() int64 {
	if c.cyclesLeft > 0 {
		return int64(c.cyclesLeft)
	}
	return 1 << 30
}

// EndIter satisfies clock.Subsystem: expire pending response timers and
// fire whichever response reaches the head of the queue.
func (c *Controller) EndIter(clock int64) {
	if c.cyclesLeft <= 0 {
		return
	}
	c.cyclesLeft = 0
	c.firePending()
}

func (c *Controller) firePending() {
	if len(c.pending) == 0 {
		return
	}
	p := c.pending[0]
	c.pending = c.pending[1:]
	c.responseFIFO = append(c.responseFIFO[:0], p.bytes...)
	c.irqFlags = uint8(p.irqType) & 0x7
	if c.irqEnable&c.irqFlags != 0 && c.irq != nil {
		c.irq.RaiseCDROM()
	}
	if p.callback != nil {
		p.callback(c)
	}
	if len(c.pending) > 0 {
		c.cyclesLeft = c.pending[0].ccLeft
	}
}

// queueResponse appends a response phase honouring spec §5's
// "irq can't be coincident" rule: a newly queued response never
// preempts one already scheduled to fire sooner.
func (c *Controller) queueResponse(irqType int, ccDelay int, bytes []byte, cb func(*Controller)) {
	c.pending = append(c.pending, pendingResponse{irqType: irqType, ccLeft: ccDelay, bytes: bytes, callback: cb})
	if c.cyclesLeft <= 0 {
		c.cyclesLeft = c.pending[0].ccLeft
	}
}

func (c *Controller) currentStatus() byte {
	s := c.statusReg
	if c.disc == nil || !c.disc.Inserted() {
		s |= statShellOpen
	}
	if c.reading {
		s |= statRead
	}
	if c.playing {
		s |= statPlay
	}
	return s
}
