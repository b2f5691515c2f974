package chart

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Guliveer/vitalis-live/internal/monitor"
)

// Series colors.
const (
	ColorCPU      = lipgloss.Color("#ff6384")
	ColorRAM      = lipgloss.Color("#36a2eb")
	ColorDisk     = lipgloss.Color("#4bc0c0")
	ColorDownload = lipgloss.Color("#9966ff")
	ColorUpload   = lipgloss.Color("#ff9f40")
	ColorGPU      = lipgloss.Color("#76b900")
	ColorVRAM     = lipgloss.Color("#ffce56")
	ColorTemp     = lipgloss.Color("#ff6384")
)

// LoadChart plots CPU, RAM and disk usage on a fixed percentage scale.
func LoadChart(d *monitor.Dashboard, width, height int) Chart {
	return Chart{
		Title: "System Load",
		Left:  Percent,
		Series: []Series{
			{Label: "CPU", Values: d.Series(monitor.CPU), Color: ColorCPU},
			{Label: "RAM", Values: d.Series(monitor.RAM), Color: ColorRAM},
			{Label: "Disk", Values: d.Series(monitor.Disk), Color: ColorDisk, Dashed: true},
		},
		Width:  width,
		Height: height,
	}
}

// NetworkChart plots download and upload throughput on a scale that follows the data.
func NetworkChart(d *monitor.Dashboard, width, height int) Chart {
	return Chart{
		Title: "Network Traffic",
		Left:  Dynamic(" KB/s"),
		Series: []Series{
			{Label: "Download", Values: d.Series(monitor.NetRx), Color: ColorDownload},
			{Label: "Upload", Values: d.Series(monitor.NetTx), Color: ColorUpload},
		},
		Width:  width,
		Height: height,
	}
}

// GPUUtilChart plots GPU core load on a fixed percentage scale.
func GPUUtilChart(d *monitor.Dashboard, width, height int) Chart {
	return Chart{
		Title: "GPU Utilization",
		Left:  Percent,
		Series: []Series{
			{Label: "Core", Values: d.Series(monitor.GPUUtil), Color: ColorGPU},
		},
		Width:  width,
		Height: height,
	}
}

// GPUMemChart overlays VRAM usage on the left axis and temperature on the
// right, each scaled independently from zero.
func GPUMemChart(d *monitor.Dashboard, width, height int) Chart {
	return Chart{
		Title: "GPU Memory & Temperature",
		Left:  Dynamic(" MB"),
		Right: Dynamic("°C"),
		Series: []Series{
			{Label: "VRAM", Values: d.Series(monitor.GPUVRAM), Color: ColorVRAM, Format: "%.0f"},
			{Label: "Temp", Values: d.Series(monitor.GPUTemp), Color: ColorTemp, Axis: AxisRight, Format: "%.0f"},
		},
		Width:  width,
		Height: height,
	}
}
