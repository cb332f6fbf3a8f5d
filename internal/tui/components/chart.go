package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tracks/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline scaled between the series min
// and max.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := bounds(values)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := len(blocks) - 1
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		buf.WriteRune(blocks[max(0, min(idx, len(blocks)-1))])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// LineChart plots values as points on a grid of the given size, one column
// per value (sampled down when there are more values than columns). The
// y axis spans the series min to max; labels mark the first and last x.
func LineChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	lo, hi := bounds(values)
	if hi == lo {
		lo, hi = lo-1, hi+1
	}

	yLabelW := max(len(axisLabel(lo)), len(axisLabel(hi))) + 1
	plotW := max(5, width-yLabelW-1)

	// Sample to at most one point per two columns.
	n := len(values)
	cols := min(n, max(1, plotW/2))
	points := make([]float64, cols)
	pointLabels := make([]string, cols)
	for i := range points {
		src := 0
		if cols > 1 {
			src = i * (n - 1) / (cols - 1)
		}
		points[i] = values[src]
		if len(labels) == n {
			pointLabels[i] = labels[src]
		}
	}
	step := 2
	if cols > 1 {
		step = max(2, plotW/cols)
	}

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	dot := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	blank := lipgloss.NewStyle().Background(t.Surface)

	rowOf := func(v float64) int {
		return int((v - lo) / (hi - lo) * float64(height-1))
	}

	var b strings.Builder
	for row := height - 1; row >= 0; row-- {
		label := ""
		switch row {
		case height - 1:
			label = axisLabel(hi)
		case 0:
			label = axisLabel(lo)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		var line strings.Builder
		for _, v := range points {
			if rowOf(v) == row {
				line.WriteString(dot.Render("●") + blank.Render(strings.Repeat(" ", step-1)))
			} else {
				line.WriteString(blank.Render(strings.Repeat(" ", step)))
			}
		}
		b.WriteString(line.String())
		b.WriteString("\n")
	}

	axisLen := cols * step
	b.WriteString(axis.Render(strings.Repeat(" ", yLabelW) + "└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		first, last := pointLabels[0], pointLabels[cols-1]
		gap := axisLen - len(first) - len(last)
		b.WriteString("\n")
		b.WriteString(axis.Render(strings.Repeat(" ", yLabelW+1) + first))
		if cols > 1 && gap > 0 {
			b.WriteString(axis.Render(strings.Repeat(" ", gap) + last))
		}
	}
	return b.String()
}

func axisLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
