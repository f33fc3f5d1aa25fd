package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mousetrail/mousetrail/capture"
	"github.com/mousetrail/mousetrail/internal/configpaths"
)

// Input selects the capture file and how payload lines are extracted from it.
type Input struct {
	CaptureFile string   `arg:"" name:"capture_file" help:"Capture file to read (pcap/pcapng, or hex lines with --reader=text)" type:"path"`
	Reader      string   `help:"How to read the capture" enum:"tshark,text" default:"tshark" env:"MOUSETRAIL_READER"`
	Tshark      string   `help:"tshark binary" default:"tshark" env:"MOUSETRAIL_TSHARK"`
	Fields      []string `name:"field" help:"tshark field holding HID payloads" default:"usbhid.data,usb.capdata" sep:","`
	Cache       bool     `help:"Cache extracted payloads per capture" env:"MOUSETRAIL_CACHE"`
	CacheDir    string   `help:"Cache directory (defaults to the user cache dir)" type:"path" env:"MOUSETRAIL_CACHE_DIR"`
}

// Payloads returns the payload lines of the capture in capture order.
func (in *Input) Payloads(ctx context.Context, logger *slog.Logger) ([]string, error) {
	if in.Reader == "text" {
		logger.Debug("Reading hex payload lines", "file", in.CaptureFile)
		return capture.ReadTextPayloads(in.CaptureFile)
	}

	ts := &capture.Tshark{Path: in.Tshark, Fields: in.Fields, Logger: logger}
	if !in.Cache {
		return ts.ReadPayloads(ctx, in.CaptureFile)
	}

	cache, err := in.cache()
	if err != nil {
		return nil, err
	}
	key, err := cache.Key(in.CaptureFile, in.Fields)
	if err != nil {
		return nil, err
	}
	if lines, ok, err := cache.Load(key, in.Fields); err != nil {
		logger.Warn("Ignoring unreadable cache entry", "key", key, "error", err)
	} else if ok {
		logger.Debug("Using cached payloads", "key", key, "lines", len(lines))
		return lines, nil
	}

	lines, err := ts.ReadPayloads(ctx, in.CaptureFile)
	if err != nil {
		return nil, err
	}
	if err := cache.Store(key, in.Fields, lines); err != nil {
		logger.Warn("Failed to store cache entry", "key", key, "error", err)
	}
	return lines, nil
}

func (in *Input) cache() (*capture.Cache, error) {
	dir := in.CacheDir
	if dir == "" {
		d, err := configpaths.DefaultCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cache dir: %w", err)
		}
		dir = d
	}
	return &capture.Cache{Dir: dir}, nil
}
