package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guliveer/vitalis-live/internal/models"
	"github.com/Guliveer/vitalis-live/internal/monitor"
)

func TestSparkline_Ascending(t *testing.T) {
	result := Sparkline([]float64{0, 20, 40, 60, 80, 100}, Percent, 0, false)

	runes := []rune(result)
	require.Len(t, runes, 6)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[5])
	for i := 1; i < len(runes); i++ {
		assert.GreaterOrEqual(t, runes[i], runes[i-1])
	}
}

func TestSparkline_Empty(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil, Percent, 10, false))
}

func TestSparkline_ClampsOutOfRange(t *testing.T) {
	result := Sparkline([]float64{-10, 250}, Percent, 0, false)
	assert.Equal(t, "▁█", result)
}

func TestSparkline_WidthPadsAndTruncates(t *testing.T) {
	assert.Equal(t, "   ▁█", Sparkline([]float64{0, 100}, Percent, 5, false))
	assert.Equal(t, "█", Sparkline([]float64{0, 100}, Percent, 1, false))
}

func TestSparkline_Dashed(t *testing.T) {
	result := Sparkline([]float64{100, 100, 100, 100}, Percent, 0, true)
	assert.Equal(t, "█ █ ", result)
}

func TestBlocks_Height(t *testing.T) {
	rows := Blocks([]float64{0, 50, 100}, Percent, 0, 2)
	require.Len(t, rows, 2)
	top := []rune(rows[0])
	bottom := []rune(rows[1])

	assert.Equal(t, ' ', top[0])
	assert.Equal(t, '▁', bottom[0])
	assert.Equal(t, '█', top[2])
	assert.Equal(t, '█', bottom[2])
	assert.Equal(t, '█', bottom[1])
}

func TestBlocks_SingleRowFallsBackToSparkline(t *testing.T) {
	rows := Blocks([]float64{0, 100}, Percent, 0, 1)
	assert.Equal(t, []string{"▁█"}, rows)
}

func TestResolve_FixedBoundsIgnoreData(t *testing.T) {
	c := Chart{Left: Percent, Series: []Series{{Values: []float64{500}}}}
	assert.Equal(t, 100.0, c.Resolve(AxisLeft).Max)
}

func TestResolve_DynamicAxesScaleIndependently(t *testing.T) {
	c := Chart{
		Left:  Dynamic(" MB"),
		Right: Dynamic("°C"),
		Series: []Series{
			{Label: "VRAM", Values: []float64{1024, 4096, 2048}},
			{Label: "Temp", Values: []float64{40, 72}, Axis: AxisRight},
		},
	}
	assert.Equal(t, 4096.0, c.Resolve(AxisLeft).Max)
	assert.Equal(t, 72.0, c.Resolve(AxisRight).Max)
	assert.Equal(t, "L 0–4096 MB │ R 0–72°C", c.AxisLabel())
}

func TestResolve_AllZeroDynamicAxis(t *testing.T) {
	c := Chart{Left: Dynamic(""), Series: []Series{{Values: []float64{0, 0}}}}
	b := c.Resolve(AxisLeft)
	assert.Equal(t, 0.0, b.Min)
	assert.Equal(t, 1.0, b.Max)
	assert.Equal(t, "▁▁", Sparkline(c.Series[0].Values, b, 0, false))
}

func TestLegend_ShowsLatestValues(t *testing.T) {
	c := Chart{
		Left: Percent,
		Series: []Series{
			{Label: "CPU", Values: []float64{10, 42.5}},
			{Label: "RAM", Values: nil},
		},
	}
	legend := c.Legend()
	assert.Contains(t, legend, "CPU 42.5%")
	assert.Contains(t, legend, "RAM 0.0%")
}

func TestRender_Layout(t *testing.T) {
	c := Chart{
		Title: "System Load",
		Left:  Percent,
		Series: []Series{
			{Label: "CPU", Values: []float64{0, 100}},
			{Label: "Disk", Values: []float64{100, 100}, Dashed: true},
		},
	}
	lines := strings.Split(c.Render(), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "System Load")
	assert.Contains(t, lines[0], "0–100%")
	assert.True(t, strings.HasPrefix(lines[1], "CPU"))
	assert.Contains(t, lines[1], "▁█")
	assert.True(t, strings.HasPrefix(lines[2], "Disk"))
	assert.Contains(t, lines[2], "█ ")
	assert.Contains(t, lines[3], "Disk 100.0%")
}

func TestViews_FromDashboard(t *testing.T) {
	d := monitor.New()
	d.Push(models.SystemMetric{
		CPUUsage:      55,
		RAMUsageMB:    3200,
		NetRxKB:       120,
		NetTxKB:       30,
		GPUUsage:      80,
		GPUTemp:       65,
		GPUVRAMUsedMB: 2048,
	})

	load := LoadChart(d, 0, 1)
	require.Len(t, load.Series, 3)
	assert.Equal(t, 10.0, load.Series[1].Latest())
	assert.True(t, load.Series[2].Dashed)
	assert.Len(t, load.Series[0].Values, 50)

	net := NetworkChart(d, 0, 1)
	assert.Equal(t, 120.0, net.Resolve(AxisLeft).Max)

	util := GPUUtilChart(d, 0, 1)
	assert.Equal(t, 80.0, util.Series[0].Latest())
	assert.True(t, util.Left.Fixed)

	mem := GPUMemChart(d, 0, 1)
	assert.Equal(t, 2048.0, mem.Resolve(AxisLeft).Max)
	assert.Equal(t, 65.0, mem.Resolve(AxisRight).Max)
	assert.Contains(t, mem.Legend(), "Temp 65°C")
}
