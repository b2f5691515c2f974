package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Axis selects which Y scale a series is drawn against.
type Axis int

const (
	AxisLeft Axis = iota
	AxisRight
)

// Bounds is a Y-axis range. Fixed bounds are used as given; otherwise the
// maximum is taken from the data on that axis and the minimum stays at Min.
type Bounds struct {
	Min   float64
	Max   float64
	Fixed bool
	Unit  string
}

// Percent is the fixed 0-100 scale of the load and GPU utilization charts.
var Percent = Bounds{Min: 0, Max: 100, Fixed: true, Unit: "%"}

// Dynamic returns a zero-based scale that grows with the data.
func Dynamic(unit string) Bounds {
	return Bounds{Unit: unit}
}

// Series is one line of a chart.
type Series struct {
	Label  string
	Values []float64
	Color  lipgloss.Color
	Dashed bool
	Axis   Axis
	// Format renders the latest value in the legend. Defaults to "%.1f".
	Format string
}

// Latest returns the newest value, or 0 for an empty series.
func (s Series) Latest() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// Chart is a titled group of series sharing one or two Y axes.
type Chart struct {
	Title  string
	Series []Series
	Left   Bounds
	Right  Bounds
	// Width is the plot width in cells; 0 draws one cell per value.
	Width int
	// Height is the number of rows per series; values below 1 draw sparklines.
	Height int
}

var (
	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleAxis   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	styleLegend = lipgloss.NewStyle().Bold(true)
)

// Resolve returns the bounds actually used for axis after dynamic scaling.
func (c Chart) Resolve(axis Axis) Bounds {
	b := c.Left
	if axis == AxisRight {
		b = c.Right
	}
	if b.Fixed {
		return b
	}
	hi := b.Min
	for _, s := range c.Series {
		if s.Axis != axis {
			continue
		}
		for _, v := range s.Values {
			if v > hi {
				hi = v
			}
		}
	}
	if hi <= b.Min {
		hi = b.Min + 1
	}
	b.Max = hi
	return b
}

// dualAxis reports whether any series is drawn against the right axis.
func (c Chart) dualAxis() bool {
	for _, s := range c.Series {
		if s.Axis == AxisRight {
			return true
		}
	}
	return false
}

// AxisLabel describes the Y bounds shown next to the title.
func (c Chart) AxisLabel() string {
	left := formatBounds(c.Resolve(AxisLeft))
	if !c.dualAxis() {
		return left
	}
	return "L " + left + " │ R " + formatBounds(c.Resolve(AxisRight))
}

func formatBounds(b Bounds) string {
	return fmt.Sprintf("%s–%s%s", trimFloat(b.Min), trimFloat(b.Max), b.Unit)
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// Legend returns "label value" for every series, styled in its color.
func (c Chart) Legend() string {
	parts := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		parts = append(parts, c.legendEntry(s))
	}
	return strings.Join(parts, "  ")
}

func (c Chart) legendEntry(s Series) string {
	format := s.Format
	if format == "" {
		format = "%.1f"
	}
	unit := c.Left.Unit
	if s.Axis == AxisRight {
		unit = c.Right.Unit
	}
	text := s.Label + " " + fmt.Sprintf(format, s.Latest()) + unit
	return styleLegend.Foreground(s.Color).Render(text)
}

// Render draws the chart: a title line with the axis bounds, one plot per
// series, and the legend.
func (c Chart) Render() string {
	labelWidth := 0
	for _, s := range c.Series {
		if w := lipgloss.Width(s.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var lines []string
	lines = append(lines, styleTitle.Render(c.Title)+"  "+styleAxis.Render(c.AxisLabel()))

	for _, s := range c.Series {
		b := c.Resolve(s.Axis)
		style := lipgloss.NewStyle().Foreground(s.Color)
		var rows []string
		if c.Height > 1 && !s.Dashed {
			rows = Blocks(s.Values, b, c.Width, c.Height)
		} else {
			rows = []string{Sparkline(s.Values, b, c.Width, s.Dashed)}
		}
		for i, row := range rows {
			label := ""
			if i == len(rows)-1 {
				label = s.Label
			}
			label += strings.Repeat(" ", labelWidth-lipgloss.Width(label))
			lines = append(lines, styleAxis.Render(label)+" "+style.Render(row))
		}
	}

	lines = append(lines, c.Legend())
	return strings.Join(lines, "\n")
}
