package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mousetrail/mousetrail/capture"
	"github.com/mousetrail/mousetrail/hid/mouse"
	"github.com/mousetrail/mousetrail/internal/log"
	"github.com/mousetrail/mousetrail/trajectory"
)

// DecodeStats counts what happened to each payload line.
type DecodeStats struct {
	Packets int
	Decoded int
	Skipped int
	Kinds   map[mouse.PayloadKind]int
}

// decodeAll decodes every payload of src, passing samples to fn. Lines that
// are not valid hex or have an unsupported length are skipped with a warning.
func decodeAll(src capture.Source, logger *slog.Logger, raw log.RawLogger, fn func(index int, kind mouse.PayloadKind, s mouse.Sample)) (DecodeStats, error) {
	stats := DecodeStats{Kinds: map[mouse.PayloadKind]int{}}
	for src.Scan() {
		payload, err := capture.ParseHexLine(src.Text())
		if err == nil && payload == nil {
			continue
		}
		stats.Packets++
		index := stats.Packets
		if err != nil {
			stats.Skipped++
			logger.Warn("Skipping malformed payload line", "packet", index, "error", err)
			continue
		}
		raw.Log(index, payload)

		var s mouse.Sample
		if err := s.UnmarshalBinary(payload); err != nil {
			stats.Skipped++
			if errors.Is(err, mouse.ErrUnsupportedPayloadLength) {
				logger.Warn("Skipping payload", "packet", index, "len", len(payload), "error", err)
				continue
			}
			return stats, err
		}
		kind := mouse.KindOf(len(payload))
		stats.Decoded++
		stats.Kinds[kind]++
		fn(index, kind, s)
	}
	if err := src.Err(); err != nil {
		return stats, fmt.Errorf("read payloads: %w", err)
	}
	return stats, nil
}

func logStats(logger *slog.Logger, stats DecodeStats) {
	logger.Info("Decoded capture",
		"packets", stats.Packets,
		"decoded", stats.Decoded,
		"skipped", stats.Skipped,
		"short4", stats.Kinds[mouse.KindShort4],
		"short8", stats.Kinds[mouse.KindShort8],
		"extended13", stats.Kinds[mouse.KindExtended13],
	)
	if stats.Skipped > 0 {
		logger.Warn("Some payloads were skipped", "skipped", stats.Skipped)
	}
}

// Decode lists every decoded report with the running cursor position.
type Decode struct {
	Input `embed:""`

	Stdout io.Writer `kong:"-"`
}

// Run is called by Kong when the decode command is executed.
func (d *Decode) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.Execute(ctx, logger, rawLogger)
}

func (d *Decode) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	out := d.Stdout
	if out == nil {
		out = os.Stdout
	}

	lines, err := d.Payloads(ctx, logger)
	if err != nil {
		return err
	}

	pos := trajectory.NewBuilder(trajectory.DefaultMask)
	var werr error
	stats, err := decodeAll(capture.NewSliceSource(lines), logger, rawLogger, func(index int, kind mouse.PayloadKind, s mouse.Sample) {
		pos.Add(s)
		if werr != nil {
			return
		}
		p := pos.Position()
		_, werr = fmt.Fprintf(out, "%6d  %-10s  0x%02x %-44s  dx=%6d dy=%6d  x=%7d y=%7d\n",
			index, kind, s.Buttons, mouse.FormatButtons(s.Buttons), s.DX, s.DY, p.X, p.Y)
	})
	if err != nil {
		return err
	}
	if werr != nil {
		return fmt.Errorf("write output: %w", werr)
	}
	logStats(logger, stats)
	return nil
}
