package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Guliveer/vitalis-live/internal/stream"
)

type (
	streamOpenMsg  struct{}
	streamErrorMsg struct{ err error }
	streamDataMsg  struct{ event stream.Event }
	streamDoneMsg  struct{ err error }
)

// Streamer is the event source the dashboard subscribes to.
type Streamer interface {
	Run(ctx context.Context) error
}

// Feed carries stream callbacks into the bubbletea loop through one channel,
// so connection changes and events reach Update in the order they happened.
type Feed struct {
	ctx    context.Context
	events chan tea.Msg
}

// NewFeed returns a feed whose sends are abandoned once ctx is done.
func NewFeed(ctx context.Context) *Feed {
	return &Feed{ctx: ctx, events: make(chan tea.Msg, 64)}
}

// Bind routes the client's callbacks into the feed.
func (f *Feed) Bind(c *stream.Client) {
	c.OnOpen(f.Open)
	c.OnError(f.Error)
	c.OnMessage(f.Message)
}

// Open reports an established connection.
func (f *Feed) Open() { f.send(streamOpenMsg{}) }

// Error reports a failed or dropped connection.
func (f *Feed) Error(err error) { f.send(streamErrorMsg{err: err}) }

// Message forwards one event.
func (f *Feed) Message(ev stream.Event) { f.send(streamDataMsg{event: ev}) }

func (f *Feed) send(msg tea.Msg) {
	select {
	case f.events <- msg:
	case <-f.ctx.Done():
	}
}

// wait delivers the next feed message to Update.
func (f *Feed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-f.events:
			return msg
		case <-f.ctx.Done():
			return nil
		}
	}
}

// run subscribes s and reports through the feed when it stops.
func (f *Feed) run(s Streamer) tea.Cmd {
	return func() tea.Msg {
		err := s.Run(f.ctx)
		f.send(streamDoneMsg{err: err})
		return nil
	}
}
