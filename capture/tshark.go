package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// ErrInvalidCaptureFile is returned when a capture cannot be read.
var ErrInvalidCaptureFile = errors.New("invalid capture file")

// DefaultFields are the tshark fields holding HID report payloads.
var DefaultFields = []string{"usbhid.data", "usb.capdata"}

// Tshark extracts payload fields by running tshark.
type Tshark struct {
	// Path of the tshark binary, looked up in PATH when empty.
	Path   string
	Fields []string
	Logger *slog.Logger
}

func (t *Tshark) binary() string {
	if t.Path == "" {
		return "tshark"
	}
	return t.Path
}

func (t *Tshark) fields() []string {
	if len(t.Fields) == 0 {
		return DefaultFields
	}
	return t.Fields
}

func (t *Tshark) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}

// Args returns the tshark arguments used to read captureFile.
func (t *Tshark) Args(captureFile string) []string {
	args := []string{"-r", captureFile, "-T", "fields"}
	for _, f := range t.fields() {
		args = append(args, "-e", f)
	}
	return args
}

// ReadPayloads runs tshark on captureFile and returns the non-empty output
// lines in capture order. tshark output is spooled to a temporary file which
// is removed before returning.
func (t *Tshark) ReadPayloads(ctx context.Context, captureFile string) ([]string, error) {
	if err := checkReadable(captureFile); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "mousetrail-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.logger().Warn("failed to remove temp file", "file", tmp.Name(), "error", err)
		}
	}()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary(), t.Args(captureFile)...)
	cmd.Stdout = tmp
	cmd.Stderr = &stderr

	t.logger().Debug("Running capture reader", "cmd", cmd.String())
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCaptureFile, t.binary(), err)
		}
		return nil, fmt.Errorf("%w: %s: %w: %s", ErrInvalidCaptureFile, t.binary(), err, msg)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind temp file: %w", err)
	}
	return readLines(NewLineSource(tmp))
}

// ReadTextPayloads reads a file that already holds one hex payload per line.
func ReadTextPayloads(path string) ([]string, error) {
	if err := checkReadable(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCaptureFile, err)
	}
	defer f.Close()
	return readLines(NewLineSource(f))
}

func checkReadable(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCaptureFile, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidCaptureFile, path)
	}
	return nil
}

func readLines(src Source) ([]string, error) {
	var lines []string
	for src.Scan() {
		if strings.TrimSpace(src.Text()) == "" {
			continue
		}
		lines = append(lines, src.Text())
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read payload lines: %w", err)
	}
	return lines, nil
}
