// Package render draws a trajectory as a line chart with a legend.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mousetrail/mousetrail/hid/mouse"
	"github.com/mousetrail/mousetrail/trajectory"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is the output image format.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

const (
	DefaultTitle  = "Mouse Trajectory"
	DefaultWidth  = 1024
	DefaultHeight = 768

	segmentStrokeWidth = 2.0
	rangePadding       = 0.05
)

// FormatFromPath picks SVG for .svg files and PNG otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

// Options controls chart size, title and encoding.
type Options struct {
	Title  string
	Width  int
	Height int
	Format Format
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

func toDrawing(c interface{ RGBA() (r, g, b, a uint32) }) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func lineStyle(state uint8) chart.Style {
	return chart.Style{
		StrokeColor: toDrawing(trajectory.ColorFor(state)),
		StrokeWidth: segmentStrokeWidth,
	}
}

// Render writes the chart for tr to w.
func Render(w io.Writer, tr trajectory.Trajectory, o Options) error {
	o = o.withDefaults()

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	series := make([]chart.Series, 0, len(tr.Segments)+1)
	for _, seg := range tr.Segments {
		xs := make([]float64, len(seg.Points))
		ys := make([]float64, len(seg.Points))
		for i, p := range seg.Points {
			xs[i] = float64(p.X)
			ys[i] = float64(p.Y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    mouse.FormatButtons(seg.State),
			Style:   lineStyle(seg.State),
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		// go-chart refuses to render without a visible series.
		series = append(series, chart.ContinuousSeries{
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			XValues: []float64{0},
			YValues: []float64{0},
		})
	}

	xr, yr := bounds(tr.Segments)
	ch := chart.Chart{
		Title:      o.Title,
		Width:      o.Width,
		Height:     o.Height,
		Font:       font,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "X", Range: xr},
		YAxis:      chart.YAxis{Name: "Y", Range: yr},
		Series:     series,
	}

	if len(tr.Legend) > 0 {
		// Legend entries are per button state, not per segment, so they are
		// drawn from a separate series list.
		entries := make([]chart.Series, 0, len(tr.Legend))
		for _, state := range tr.Legend {
			entries = append(entries, chart.ContinuousSeries{
				Name:    mouse.FormatButtons(state),
				Style:   lineStyle(state),
				XValues: []float64{0},
				YValues: []float64{0},
			})
		}
		legend := chart.Chart{Font: font, Series: entries}
		ch.Elements = []chart.Renderable{chart.Legend(&legend)}
	}

	provider := chart.PNG
	if o.Format == FormatSVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderFile renders tr into a new file at path.
func RenderFile(path string, tr trajectory.Trajectory, o Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return Render(f, tr, o)
}

// bounds returns padded axis ranges covering every drawn point.
func bounds(segs []trajectory.Segment) (*chart.ContinuousRange, *chart.ContinuousRange) {
	var minX, maxX, minY, maxY int
	first := true
	for _, seg := range segs {
		for _, p := range seg.Points {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return padRange(minX, maxX), padRange(minY, maxY)
}

func padRange(lo, hi int) *chart.ContinuousRange {
	span := float64(hi - lo)
	pad := span * rangePadding
	if pad < 1 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: float64(lo) - pad, Max: float64(hi) + pad}
}
