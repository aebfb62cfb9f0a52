// Package plot renders search results as a histogram image and opens it in
// the system image viewer.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dirhist/internal/search"
)

const (
	maxLabelLength  = 5
	labelHeadLength = 1
	labelTailLength = 2
	labelEllipsis   = "..."

	imageWidth  = 8 * vg.Inch
	imageHeight = 4 * vg.Inch
	barWidth    = vg.Length(12)
)

var (
	ErrNothingToPlot = errors.New("no matches to plot")
	ErrNoPlot        = errors.New("plot has not been rendered")
	ErrNotReady      = errors.New("search has not completed")
)

// Plotter renders results to a single PNG file whose name is unique to the Plotter
type Plotter struct {
	title string
	path  string
	open  func(path string) error
	mu    sync.Mutex
}

// NewPlotter returns a Plotter writing <dir>/<uuid>.png
func NewPlotter(dir, title string) *Plotter {
	return &Plotter{
		title: title,
		path:  filepath.Join(dir, uuid.New().String()+".png"),
		open:  openInViewer,
	}
}

// Path returns the image location. The file exists only after a successful Plot.
func (p *Plotter) Path() string {
	return p.path
}

// Plot renders one bar per directory, sorted by key, and replaces the image file.
// status is the engine status the result was taken under; partial results
// from a running or cancelled search are refused with ErrNotReady.
func (p *Plotter) Plot(result search.Result, status search.Status) error {
	if status != search.StatusReady {
		return fmt.Errorf("%w: engine is %s", ErrNotReady, status)
	}
	if len(result) == 0 {
		return ErrNothingToPlot
	}

	keys := result.Keys()
	values := make(plotter.Values, len(keys))
	labels := make([]string, len(keys))
	for i, key := range keys {
		values[i] = float64(result[key])
		labels[i] = shortenLabel(key)
	}

	pl := plot.New()
	pl.Title.Text = p.title
	pl.X.Label.Text = "directory"
	pl.Y.Label.Text = "matches"
	pl.Y.Min = 0

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = color.NRGBA{R: 145, G: 85, B: 95, A: 255}
	bars.LineStyle.Width = 0
	pl.Add(bars)
	pl.NominalX(labels...)

	w, err := pl.WriterTo(imageWidth, imageHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to encode plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode plot: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return lockAndWrite(p.path, buf.Bytes())
}

// Show opens the rendered image in the system viewer
func (p *Plotter) Show() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := os.Stat(p.path); err != nil {
		return fmt.Errorf("%w: %s", ErrNoPlot, p.path)
	}
	return p.open(p.path)
}

// Clear removes the image and its lock file. A missing image is not an error.
func (p *Plotter) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, path := range []string{p.path, p.path + lockSuffix} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// shortenLabel keeps long directory keys readable on the x axis:
// "subdirectory" becomes "s...ry".
func shortenLabel(key string) string {
	r := []rune(key)
	if len(r) <= maxLabelLength {
		return key
	}
	return string(r[:labelHeadLength]) + labelEllipsis + string(r[len(r)-labelTailLength:])
}
