package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/gravlab/nbody/internal/gravity"
	"github.com/gravlab/nbody/internal/sim"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// CoordinatePlots renders x(t) and y(t) of one body as terminal
// graphs.
func CoordinatePlots(snaps []sim.Snapshot, body int) string {
	if len(snaps) == 0 || body < 0 || body >= len(snaps[0]) {
		return ""
	}

	xs := make([]float64, len(snaps))
	ys := make([]float64, len(snaps))
	for i, snap := range snaps {
		xs[i] = snap[body].X
		ys[i] = snap[body].Y
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.Plot(xs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d: x vs sample", body)),
	))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d: y vs sample", body)),
	))
	sb.WriteByte('\n')
	return sb.String()
}

// OrbitPlot draws every sampled position of every body on one braille
// canvas, auto-scaled to the trajectory extent.
func OrbitPlot(snaps []sim.Snapshot, width, height int) string {
	if len(snaps) == 0 {
		return ""
	}

	xmin, xmax, ymin, ymax := extent(snaps)
	canvas := NewOrbitCanvas(width, height, xmin, xmax, ymin, ymax)
	for _, snap := range snaps {
		for _, p := range snap {
			canvas.Mark(p.X, p.Y)
		}
	}
	return canvas.Render()
}

func extent(snaps []sim.Snapshot) (xmin, xmax, ymin, ymax float64) {
	first := snaps[0][0]
	xmin, xmax = first.X, first.X
	ymin, ymax = first.Y, first.Y
	for _, snap := range snaps {
		for _, p := range snap {
			if p.X < xmin {
				xmin = p.X
			}
			if p.X > xmax {
				xmax = p.X
			}
			if p.Y < ymin {
				ymin = p.Y
			}
			if p.Y > ymax {
				ymax = p.Y
			}
		}
	}
	// Pad so boundary points stay inside the viewport.
	padX := (xmax - xmin) * 0.05
	padY := (ymax - ymin) * 0.05
	if padX == 0 {
		padX = 1
	}
	if padY == 0 {
		padY = 1
	}
	return xmin - padX, xmax + padX, ymin - padY, ymax + padY
}

// FootnoteText joins the formatted body states, one per line. The
// reference shows it only for small systems.
func FootnoteText(bodies []gravity.Body) string {
	lines := make([]string, len(bodies))
	for i, b := range bodies {
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// FinalStatePanel renders the end-of-run summary.
func FinalStatePanel(result *sim.Result) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("final state"))
	sb.WriteByte('\n')
	for _, line := range result.Describe() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(mutedStyle.Render(fmt.Sprintf(
		"steps: %d  elapsed: %v  throughput: %.2f steps/s  energy drift: %.3g",
		result.StepsTaken, result.Elapsed.Round(time.Millisecond), result.StepsPerSec, result.EnergyDrift)))
	return panelStyle.Render(sb.String())
}
