// Package perf records per-iteration frame times and renders
// them as a plot for offline inspection.
package perf

import (
	"fmt"
	"io"
	"sync"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Recorder keeps a sliding window of the most recent frame
// times. It is safe for concurrent use; the frame loop records
// while a driver or the exit path reads.
type Recorder struct {
	mu    sync.Mutex
	times []time.Duration
	idx   int
	full  bool
}

// NewRecorder returns a Recorder holding the last size frame
// times.
func NewRecorder(size int) *Recorder {
	return &Recorder{times: make([]time.Duration, size)}
}

// Record appends a frame time to the window.
func (r *Recorder) Record(d time.Duration) {
	r.mu.Lock()
	r.times[r.idx] = d
	r.idx = (r.idx + 1) % len(r.times)
	if r.idx == 0 {
		r.full = true
	}
	r.mu.Unlock()
}

// Times returns the recorded frame times, oldest first.
func (r *Recorder) Times() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]time.Duration, r.idx)
		copy(out, r.times[:r.idx])
		return out
	}

	out := make([]time.Duration, 0, len(r.times))
	out = append(out, r.times[r.idx:]...)
	out = append(out, r.times[:r.idx]...)
	return out
}

// Average returns the mean of the recorded frame times, or 0
// when nothing has been recorded.
func (r *Recorder) Average() time.Duration {
	times := r.Times()
	if len(times) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range times {
		sum += d
	}
	return sum / time.Duration(len(times))
}

// WritePlot renders the recorded frame times as a PNG line
// plot.
func (r *Recorder) WritePlot(w io.Writer) error {
	times := r.Times()
	if len(times) == 0 {
		return fmt.Errorf("perf: no frame times recorded")
	}

	frameTimePlot := plot.New()
	frameTimePlot.Title.Text = "Frame Time"
	frameTimePlot.X.Label.Text = "Frame"
	frameTimePlot.Y.Label.Text = "ms"

	xys := make(plotter.XYs, len(times))
	for i, d := range times {
		xys[i].X = float64(i)
		xys[i].Y = float64(d) / float64(time.Millisecond)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	frameTimePlot.Add(line)

	c := vgimg.New(vg.Points(640), vg.Points(480))
	frameTimePlot.Draw(draw.New(c))

	png := vgimg.PngCanvas{Canvas: c}
	_, err = png.WriteTo(w)
	return err
}
