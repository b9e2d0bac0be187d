package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/gravlab/nbody/internal/gravity"
)

// ProgressReporter rewrites a single terminal line at every sampled
// step: counter, percent complete, and elapsed wall time. Purely
// observational; it never touches the physics.
type ProgressReporter struct {
	w      io.Writer
	start  time.Time
	stride int
}

func NewProgressReporter(w io.Writer) *ProgressReporter {
	return &ProgressReporter{w: w, start: time.Now()}
}

func (p *ProgressReporter) OnSample(step, total int, t float64, bodies []gravity.Body) {
	if p.stride == 0 {
		p.stride = step
	}
	// Round the last print up so the counter ends on total even when
	// the float time accumulation overshoots.
	if step > total-p.stride {
		step = total
	}

	elapsed := time.Since(p.start)
	hh := int(elapsed.Hours())
	mm := int(elapsed.Minutes()) % 60
	ss := int(elapsed.Seconds()) % 60

	width := len(fmt.Sprint(total))
	fmt.Fprintf(p.w, "\rstep: %*d/%*d  %5.2f%%  %02d:%02d:%02d  ",
		width, step, width, total, 100*float64(step)/float64(total), hh, mm, ss)
}

// Finish prints the throughput line and terminates the progress line.
func (p *ProgressReporter) Finish(stepsPerSec float64) {
	fmt.Fprintf(p.w, "%.2f steps/s\n", stepsPerSec)
}
