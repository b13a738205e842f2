package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/valerio/go-psx/psx"
	"github.com/valerio/go-psx/psx/cdrom"
	"github.com/valerio/go-psx/psx/discimage"
)

// idleCPU stands in for the external CPU decoder (spec §1 non-goal: CPU
// decode is out of scope for this core). It just burns a fixed number
// of cycles per step so the scheduler, DMA engine, and CD-ROM/MDEC
// subsystems still advance for manual/integration exercise of the core,
// the same way a disconnected SerialPort collaborator in the teacher
// still lets the rest of the system run.
type idleCPU struct{ cyclesPerStep int }

func (c idleCPU) Step() int { return c.cyclesPerStep }

// statusView renders one line of core state to the terminal on every
// tick, the way jeebie's cmd/jeebie TerminalRenderer renders the PPU
// framebuffer — here it's the core's own state rather than a pixel
// sink, which spec §1's front-end-presentation non-goal doesn't reach.
type statusView struct {
	screen tcell.Screen
	core   *psx.Core
}

func newStatusView(core *psx.Core) (*statusView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("status view: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("status view: %w", err)
	}
	return &statusView{screen: screen, core: core}, nil
}

func (v *statusView) render() {
	v.screen.Clear()
	line := fmt.Sprintf(
		"clock=%-12d bus=%-8s cdrom_status=%02X mdec_status=%08X",
		v.core.Scheduler.Clock(),
		v.core.Scheduler.BusOwner(),
		v.core.CDROM.StatusByte(),
		v.core.MDEC.Status(),
	)
	for x, r := range line {
		v.screen.SetContent(x, 0, r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}

func (v *statusView) close() { v.screen.Fini() }

func main() {
	app := cli.NewApp()
	app.Name = "psxcore"
	app.Description = "Headless runner for the go-psx hard core (DMA, CD-ROM, GTE, MDEC, scheduler)"
	app.Usage = "psxcore --bios <file> [--disc <file>] [--sectors N] [--status]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "bios", Usage: "Path to a BIOS image"},
		cli.StringFlag{Name: "disc", Usage: "Path to a raw .bin disc image"},
		cli.IntFlag{Name: "sectors", Value: 16, Usage: "Number of CD-ROM sector periods to run"},
		cli.BoolFlag{Name: "status", Usage: "Render a live terminal status line while running"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("psxcore: fatal", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	biosPath := c.String("bios")
	if biosPath == "" {
		cli.ShowAppHelp(c)
		return fmt.Errorf("psxcore: --bios is required")
	}

	// discIface stays a true nil interface (not a typed nil *Image) when
	// no disc is given, so cdrom.Controller's `disc == nil` checks work.
	var discIface cdrom.Disc
	if discPath := c.String("disc"); discPath != "" {
		disc, err := discimage.Load(discPath)
		if err != nil {
			return err
		}
		discIface = disc
	}

	irq := &loggingInterruptController{}
	core := psx.New(psx.Config{}, discIface, irq, nil)

	biosData, err := os.ReadFile(biosPath)
	if err != nil {
		return fmt.Errorf("psxcore: %w", err)
	}
	if err := core.LoadBIOS(biosData); err != nil {
		return err
	}

	var view *statusView
	if c.Bool("status") {
		view, err = newStatusView(core)
		if err != nil {
			return err
		}
		defer view.close()
	}

	cpu := idleCPU{cyclesPerStep: 256}
	const cyclesPerSector = 451_584 // spec §6 "CD sector period"
	sectors := c.Int("sectors")

	for i := 0; i < sectors; i++ {
		core.RunCycles(cpu, cyclesPerSector)
		if view != nil {
			view.render()
			time.Sleep(10 * time.Millisecond)
		}
	}

	slog.Info("psxcore: run complete", "clock", core.Scheduler.Clock(), "sectors", sectors)
	return nil
}

// loggingInterruptController stands in for the interrupt-controller
// register plumbing external collaborator (spec §1 non-goal), logging
// each raised line instead of latching I_STAT/I_MASK bits, the same
// "dummy collaborator that just logs" shape as jeebie/serial.LogSink.
type loggingInterruptController struct{}

func (loggingInterruptController) RaiseDMA()   { slog.Debug("irq: DMA") }
func (loggingInterruptController) RaiseCDROM() { slog.Debug("irq: CDROM") }
