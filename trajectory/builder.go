// Package trajectory accumulates decoded mouse samples into absolute cursor
// positions and splits the path into per-button-state segments.
package trajectory

import (
	"image/color"
	"slices"

	"github.com/mousetrail/mousetrail/hid/mouse"
)

// Point is an absolute cursor position. Y grows upward.
type Point struct {
	X, Y int
}

// Segment is a polyline drawn with a single button state.
type Segment struct {
	State  uint8
	Points []Point
}

// Color returns the colour the segment is drawn with.
func (s Segment) Color() color.RGBA {
	return ColorFor(s.State)
}

// Trajectory is the result of a finished Builder.
type Trajectory struct {
	Segments []Segment
	// Legend lists the included button states in order of first inclusion.
	Legend []uint8
	// End is the final cursor position.
	End     Point
	Samples int
}

// Builder is not safe for concurrent use. Add must not be called after Finish.
type Builder struct {
	mask     Mask
	pos      Point
	last     uint8
	hasLast  bool
	current  []Point
	seen     []uint8
	segments []Segment
	samples  int
	finished bool
}

// NewBuilder returns a Builder starting at the origin.
func NewBuilder(mask Mask) *Builder {
	return &Builder{
		mask:    mask,
		current: []Point{{}},
	}
}

// Add consumes one sample.
func (b *Builder) Add(s mouse.Sample) {
	b.samples++
	b.pos.X += s.DX
	b.pos.Y -= s.DY

	if !b.hasLast || s.Buttons != b.last {
		if len(b.current) > 1 {
			b.emit()
			b.current = []Point{b.current[len(b.current)-1]}
		}
		b.last = s.Buttons
		b.hasLast = true
	}

	if b.mask.Includes(s.Buttons) {
		if !slices.Contains(b.seen, s.Buttons) {
			b.seen = append(b.seen, s.Buttons)
		}
	} else {
		// Drop the run so excluded motion leaves a gap.
		b.current = b.current[:0]
	}

	b.current = append(b.current, b.pos)
}

func (b *Builder) emit() {
	if !b.hasLast {
		return
	}
	b.segments = append(b.segments, Segment{
		State:  b.last,
		Points: slices.Clone(b.current),
	})
}

// Position returns the accumulated cursor position.
func (b *Builder) Position() Point {
	return b.pos
}

// Seen returns the included button states in order of first inclusion.
func (b *Builder) Seen() []uint8 {
	return slices.Clone(b.seen)
}

// Finish closes the open segment and returns the trajectory. Further calls
// return the same result.
func (b *Builder) Finish() Trajectory {
	if !b.finished {
		if len(b.current) > 1 {
			b.emit()
		}
		b.current = nil
		b.finished = true
	}
	return Trajectory{
		Segments: b.segments,
		Legend:   b.Seen(),
		End:      b.pos,
		Samples:  b.samples,
	}
}
