// Package chart renders rolling metric windows as terminal block charts.
package chart

import (
	"math"
	"strings"
)

// sparkBlocks contains 8 unicode block characters ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// dashGap replaces every other cell of a dashed series.
const dashGap = ' '

// Sparkline maps each value to a block glyph scaled against b.
// When width exceeds len(values) the line is left-padded; when it is smaller
// only the newest width values are drawn.
func Sparkline(values []float64, b Bounds, width int, dashed bool) string {
	if len(values) == 0 {
		return ""
	}
	if width <= 0 {
		width = len(values)
	}
	if width < len(values) {
		values = values[len(values)-width:]
	}

	var sb strings.Builder
	if width > len(values) {
		sb.WriteString(strings.Repeat(" ", width-len(values)))
	}
	for i, v := range values {
		if dashed && i%2 == 1 {
			sb.WriteRune(dashGap)
			continue
		}
		sb.WriteRune(sparkBlocks[level(v, b, len(sparkBlocks))])
	}
	return sb.String()
}

// Blocks renders values as a chart height rows tall, top row first.
// Each column is filled from the bottom with full blocks and capped with a
// partial block, giving height*8 vertical steps.
func Blocks(values []float64, b Bounds, width, height int) []string {
	if height <= 1 {
		return []string{Sparkline(values, b, width, false)}
	}
	if width <= 0 {
		width = len(values)
	}
	if width < len(values) {
		values = values[len(values)-width:]
	}
	pad := width - len(values)

	steps := height * len(sparkBlocks)
	levels := make([]int, len(values))
	for i, v := range values {
		levels[i] = level(v, b, steps) + 1
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		floor := (height - r - 1) * len(sparkBlocks)
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", pad))
		for _, lv := range levels {
			switch fill := lv - floor; {
			case fill <= 0:
				sb.WriteRune(' ')
			case fill >= len(sparkBlocks):
				sb.WriteRune(sparkBlocks[len(sparkBlocks)-1])
			default:
				sb.WriteRune(sparkBlocks[fill-1])
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// level maps v into [0, steps) relative to b, clamping out-of-range values.
func level(v float64, b Bounds, steps int) int {
	span := b.Max - b.Min
	if span <= 0 || math.IsNaN(v) {
		return 0
	}
	normalized := (v - b.Min) / span
	normalized = math.Max(0, math.Min(1, normalized))
	idx := int(normalized * float64(steps-1))
	if idx >= steps {
		idx = steps - 1
	}
	return idx
}
