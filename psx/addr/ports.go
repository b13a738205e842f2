// Package addr names the physical addresses and MMIO port offsets that
// make up the PS1's memory map (spec §4.6). Grouping ports into named
// const blocks by device, the way jeebie/addr groups Game Boy registers.
// psx/memmap does not import this package; it spells out its own
// address ranges and port offsets.
package addr

// Physical region bases and sizes (spec §3 "Memory map").
const (
	RAMBase       uint32 = 0x00000000
	RAMSizeMin    uint32 = 2 * 1024 * 1024
	RAMSizeMax    uint32 = 8 * 1024 * 1024
	ScratchpadBase uint32 = 0x1F800000
	ScratchpadSize uint32 = 1024
	MMIOBase      uint32 = 0x1F801000
	MMIOEnd       uint32 = 0x1F801FFF
	Expansion1Base uint32 = 0x1F000000
	Expansion2Base uint32 = 0x1F802000
	Expansion3Base uint32 = 0x1FA00000
	BIOSBase      uint32 = 0x1FC00000
	BIOSSize      uint32 = 512 * 1024

	// RegionMask strips the KUSEG/KSEG0/KSEG1 cache-control bits from a
	// CPU-visible virtual address to get the underlying physical address.
	RegionMask uint32 = 0x1FFFFFFF
)

// Memory control registers (0x1F801000-0x1F80102F).
const (
	Exp1BaseAddr  uint32 = 0x1F801000
	Exp2BaseAddr  uint32 = 0x1F801004
	Exp1DelaySize uint32 = 0x1F801008
	Exp3DelaySize uint32 = 0x1F80100C
	BIOSDelaySize uint32 = 0x1F801010
	SPUDelay      uint32 = 0x1F801014
	CDROMDelay    uint32 = 0x1F801018
	Exp2DelaySize uint32 = 0x1F80101C
	COMDelay      uint32 = 0x1F801020
	RAMSizeReg    uint32 = 0x1F801060
)

// Peripheral I/O (JOY/SIO) registers.
const (
	JoyData uint32 = 0x1F801040
	JoyStat uint32 = 0x1F801044
	JoyMode uint32 = 0x1F801048
	JoyCtrl uint32 = 0x1F80104A
	JoyBaud uint32 = 0x1F80104E
)

// Interrupt controller registers.
const (
	IStat uint32 = 0x1F801070
	IMask uint32 = 0x1F801074
)

// DMA registers: 7 channels * 4 words (MADR, BCR, CHCR, reserved) plus
// the two global registers DPCR/DICR.
const (
	DMABase uint32 = 0x1F801080
	DPCR    uint32 = 0x1F8010F0
	DICR    uint32 = 0x1F8010F4

	DMAChannelStride uint32 = 0x10
	DMAMadrOffset    uint32 = 0x0
	DMABcrOffset     uint32 = 0x4
	DMAChcrOffset    uint32 = 0x8
)

// DMA channel ids, in priority-tiebreak order (spec §4.3).
const (
	DMAChanMDECin = iota
	DMAChanMDECout
	DMAChanGPU
	DMAChanCDROM
	DMAChanSPU
	DMAChanPIO
	DMAChanOTC
	DMAChannelCount
)

// Timer registers: 3 timers * 3 words (counter, mode, target).
const (
	TimerBase         uint32 = 0x1F801100
	TimerStride        uint32 = 0x10
	TimerCounterOffset uint32 = 0x0
	TimerModeOffset    uint32 = 0x4
	TimerTargetOffset  uint32 = 0x8
)

// CD-ROM controller ports: 4 index-addressed byte ports (spec §4.2).
const (
	CDROMPort0 uint32 = 0x1F801800 // status / index select
	CDROMPort1 uint32 = 0x1F801801
	CDROMPort2 uint32 = 0x1F801802
	CDROMPort3 uint32 = 0x1F801803
)

// GPU and MDEC data/status ports.
const (
	GPUData   uint32 = 0x1F801810
	GPUStatus uint32 = 0x1F801814
	MDECData  uint32 = 0x1F801820
	MDECStat  uint32 = 0x1F801824
)

// SPU registers: 24 voices * 16 bytes, plus global control and reverb.
const (
	SPUVoiceBase   uint32 = 0x1F801C00
	SPUVoiceStride uint32 = 0x10
	SPUVoiceCount  uint32 = 24
	SPUControlBase uint32 = 0x1F801D80
	SPUReverbBase  uint32 = 0x1F801DC0
	SPUInternal    uint32 = 0x1F801E00

	SPUIRQAddr uint32 = 0x1F801DA4
	SPUControl uint32 = 0x1F801DAA
)
