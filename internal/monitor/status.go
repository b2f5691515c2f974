package monitor

import "github.com/charmbracelet/lipgloss"

// Status is the connection state shown by the status indicator.
type Status int

const (
	StatusConnecting Status = iota
	StatusOnline
	StatusReconnecting
	StatusClosed
)

// Text returns the indicator label.
func (s Status) Text() string {
	switch s {
	case StatusOnline:
		return "🟢 System Online - Streaming Data"
	case StatusReconnecting:
		return "🔴 Connection Lost - Reconnecting..."
	case StatusClosed:
		return "⛔ Stream Closed"
	default:
		return "⚪ Connecting..."
	}
}

// Color returns the indicator color.
func (s Status) Color() lipgloss.Color {
	switch s {
	case StatusOnline:
		return lipgloss.Color("#4bc0c0")
	case StatusReconnecting, StatusClosed:
		return lipgloss.Color("#ff6384")
	default:
		return lipgloss.Color("#cccccc")
	}
}

// Status returns the current connection state.
func (d *Dashboard) Status() Status { return d.status }

// SetOnline marks the stream as connected.
func (d *Dashboard) SetOnline() { d.status = StatusOnline }

// SetReconnecting marks the stream as lost while a reconnect is pending.
func (d *Dashboard) SetReconnecting() { d.status = StatusReconnecting }

// SetClosed marks the stream as permanently closed.
func (d *Dashboard) SetClosed() { d.status = StatusClosed }

// SetConnecting marks a fresh connection attempt.
func (d *Dashboard) SetConnecting() { d.status = StatusConnecting }
