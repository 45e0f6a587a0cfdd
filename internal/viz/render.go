// Package viz renders solver output for the terminal: potential profiles
// as line graphs and mode spectra as labelled ladders.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trapmodes/internal/potential"
)

// RenderPotential plots a potential over [lo, hi] (dimensionless) with the
// ion equilibrium positions marked underneath.
func RenderPotential(pot potential.Potential, lo, hi float64, eq []float64, width int) string {
	if width <= 0 {
		width = 60
	}
	values := make([]float64, width)
	for i := 0; i < width; i++ {
		z := lo + (hi-lo)*float64(i)/float64(width-1)
		values[i] = pot.Value(z)
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(width),
		asciigraph.Caption("potential (dimensionless coordinate)"),
	)

	var b strings.Builder
	b.WriteString(graph)
	if len(eq) > 0 {
		marks := make([]rune, width)
		for i := range marks {
			marks[i] = ' '
		}
		for _, z := range eq {
			idx := int((z - lo) / (hi - lo) * float64(width-1))
			if idx >= 0 && idx < width {
				marks[idx] = '^'
			}
		}
		b.WriteString("\n")
		b.WriteString(Selected.Render(string(marks)))
		b.WriteString("\n")
		b.WriteString(Subtle.Render("^ ion equilibrium positions"))
	}
	return b.String()
}

// RenderSpectrum plots the mode frequencies as an ascending bar ladder.
func RenderSpectrum(freqs []float64) string {
	if len(freqs) == 0 {
		return Subtle.Render("no modes")
	}

	max := freqs[len(freqs)-1]
	var b strings.Builder
	b.WriteString(Title.Render("axial mode spectrum"))
	b.WriteString("\n")
	for i, f := range freqs {
		barLen := 1
		if max > 0 {
			barLen = 1 + int(40*f/max)
		}
		bar := strings.Repeat("█", barLen)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			Label.Render(fmt.Sprintf("mode %d", i)),
			Value.Render(formatHz(f)),
			bar,
		))
	}
	return b.String()
}

func formatHz(f float64) string {
	switch {
	case f >= 1e6:
		return fmt.Sprintf("%8.4f MHz", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%8.4f kHz", f/1e3)
	default:
		return fmt.Sprintf("%8.4f Hz ", f)
	}
}
