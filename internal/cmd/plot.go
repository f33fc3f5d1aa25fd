package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mousetrail/mousetrail/capture"
	"github.com/mousetrail/mousetrail/hid/mouse"
	"github.com/mousetrail/mousetrail/internal/log"
	"github.com/mousetrail/mousetrail/internal/util"
	"github.com/mousetrail/mousetrail/render"
	"github.com/mousetrail/mousetrail/trajectory"
)

// Plot renders the mouse trajectory of a capture to an image.
type Plot struct {
	Input `embed:""`

	ButtonMask int    `arg:"" name:"button_mask" optional:"" default:"15" help:"Mask of button states to draw: 1=left 2=right 4=middle 8=no button"`
	Output     string `short:"o" help:"Output image path (.png or .svg)" default:"output.png" type:"path" env:"MOUSETRAIL_OUTPUT"`
	Title      string `help:"Chart title" default:"Mouse Trajectory"`
	Width      int    `help:"Image width in pixels" default:"1024"`
	Height     int    `help:"Image height in pixels" default:"768"`
	Show       bool   `help:"Open the image in the default viewer when run from a terminal"`
}

// Validate is called by Kong before Run.
func (p *Plot) Validate() error {
	_, err := trajectory.ParseMask(p.ButtonMask)
	return err
}

// Run is called by Kong when the plot command is executed.
func (p *Plot) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return p.Execute(ctx, logger, rawLogger)
}

func (p *Plot) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	mask, err := trajectory.ParseMask(p.ButtonMask)
	if err != nil {
		return err
	}

	lines, err := p.Payloads(ctx, logger)
	if err != nil {
		return err
	}
	logger.Debug("Read capture", "file", p.CaptureFile, "lines", len(lines))

	b := trajectory.NewBuilder(mask)
	stats, err := decodeAll(capture.NewSliceSource(lines), logger, rawLogger, func(_ int, _ mouse.PayloadKind, s mouse.Sample) {
		b.Add(s)
	})
	if err != nil {
		return err
	}
	logStats(logger, stats)

	tr := b.Finish()
	opts := render.Options{
		Title:  p.Title,
		Width:  p.Width,
		Height: p.Height,
		Format: render.FormatFromPath(p.Output),
	}
	if err := render.RenderFile(p.Output, tr, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.Output, err)
	}

	legend := make([]string, 0, len(tr.Legend))
	for _, s := range tr.Legend {
		legend = append(legend, mouse.FormatButtons(s))
	}
	logger.Info("Wrote trajectory",
		"output", p.Output,
		"segments", len(tr.Segments),
		"legend", legend,
		"end", fmt.Sprintf("(%d,%d)", tr.End.X, tr.End.Y),
	)

	if p.Show {
		if !util.IsInteractive() {
			logger.Debug("Not opening viewer outside an interactive terminal")
			return nil
		}
		if err := util.OpenInViewer(p.Output); err != nil {
			logger.Warn("Failed to open viewer", "output", p.Output, "error", err)
		}
	}
	return nil
}
