package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Guliveer/vitalis-live/internal/chart"
	"github.com/Guliveer/vitalis-live/internal/chat"
	"github.com/Guliveer/vitalis-live/internal/window"
)

const (
	chatPanelWidth = 44
	// chartChrome is the space a chart panel needs besides the plot: border,
	// padding and the series label column.
	chartChrome = 14
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatus(),
		m.renderCharts(),
		m.renderFooter(),
	)
	if !m.chat.IsOpen() {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderChat())
}

func (m Model) renderStatus() string {
	status := m.dash.Status()
	line := styleStatus.Foreground(status.Color()).Render(status.Text())

	if m.dash.Samples() > 0 {
		last := m.dash.Last()
		info := fmt.Sprintf("host %s · %d samples", last.HostID, m.dash.Samples())
		if m.badPayloads > 0 {
			info += fmt.Sprintf(" · %d dropped", m.badPayloads)
		}
		line += styleMuted.Render(info)
	}
	return styleHeader.Render("Vitalis Live") + line
}

func (m Model) renderCharts() string {
	width := m.plotWidth()
	panels := []string{
		stylePanel.Render(chart.LoadChart(m.dash, width, m.chartHeight).Render()),
		stylePanel.Render(chart.NetworkChart(m.dash, width, m.chartHeight).Render()),
	}

	if m.showGPU {
		panels = append(panels,
			stylePanel.Render(chart.GPUUtilChart(m.dash, width, m.chartHeight).Render()),
			stylePanel.Render(chart.GPUMemChart(m.dash, width, m.chartHeight).Render()),
		)
	} else {
		panels = append(panels, stylePanel.Render(styleMuted.Render("No GPU detected")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m Model) renderFooter() string {
	return styleFooter.Render(m.help.View(keys))
}

func (m Model) renderChat() string {
	title := styleHeader.Render("Vitalis AI")
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.log.View(), m.input.View())
	return styleChatPanel.Width(chatPanelWidth).Render(body)
}

// mainWidth is the width left for the dashboard column.
func (m Model) mainWidth() int {
	w := m.width
	if m.chat.IsOpen() {
		w -= chatPanelWidth + 2
	}
	return w
}

// plotWidth fits the rolling window to the dashboard column.
func (m Model) plotWidth() int {
	w := m.mainWidth() - chartChrome
	if w > window.Size || w <= 0 {
		return window.Size
	}
	return w
}

func (m *Model) resize() {
	m.help.Width = m.mainWidth()
	m.log.Width = chatPanelWidth - 2
	m.log.Height = max(3, m.height-6)
	m.input.Width = chatPanelWidth - 6
	m.refreshLog()
}

// refreshLog re-renders the chat log into the viewport and scrolls to the newest message.
func (m *Model) refreshLog() {
	width := max(10, m.log.Width)
	var lines []string
	for _, msg := range m.chat.Messages() {
		lines = append(lines, renderMessage(msg, width))
	}
	m.log.SetContent(strings.Join(lines, "\n"))
	m.log.GotoBottom()
}

func renderMessage(msg chat.Message, width int) string {
	style := styleBot
	prefix := "AI: "
	switch {
	case msg.Role == chat.RoleUser:
		style = styleUser
		prefix = "You: "
	case msg.Error:
		style = styleBotError
	case msg.Pending:
		style = styleMuted
	}
	return style.Width(width).Render(prefix + msg.Text)
}
