// Package capture turns capture files into hex encoded HID payload lines.
package capture

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Source yields one hex payload string per captured packet, in capture order.
// A Source is finite and can be consumed once.
type Source interface {
	Scan() bool
	Text() string
	Err() error
}

type lineSource struct {
	sc *bufio.Scanner
}

// NewLineSource reads newline delimited payload strings from r.
func NewLineSource(r io.Reader) Source {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineSource{sc: sc}
}

func (s *lineSource) Scan() bool   { return s.sc.Scan() }
func (s *lineSource) Text() string { return s.sc.Text() }
func (s *lineSource) Err() error   { return s.sc.Err() }

type sliceSource struct {
	lines []string
	cur   string
}

// NewSliceSource yields the given lines.
func NewSliceSource(lines []string) Source {
	return &sliceSource{lines: lines}
}

func (s *sliceSource) Scan() bool {
	if len(s.lines) == 0 {
		return false
	}
	s.cur, s.lines = s.lines[0], s.lines[1:]
	return true
}

func (s *sliceSource) Text() string { return s.cur }
func (s *sliceSource) Err() error   { return nil }

// ParseHexLine decodes one line of field output into a payload.
//
// Fields are separated by whitespace and the first non-empty one is used.
// Repeated field values ("aa:bb,cc:dd") keep the first item. Colons are
// optional. A blank line returns nil and no error.
func ParseHexLine(line string) ([]byte, error) {
	for _, field := range strings.Fields(line) {
		if i := strings.IndexByte(field, ','); i >= 0 {
			field = field[:i]
		}
		field = strings.ReplaceAll(field, ":", "")
		if field == "" {
			continue
		}
		b, err := hex.DecodeString(field)
		if err != nil {
			return nil, fmt.Errorf("decode hex payload %q: %w", field, err)
		}
		return b, nil
	}
	return nil, nil
}
