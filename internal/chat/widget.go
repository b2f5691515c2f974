// Package chat implements the assistant panel: a message log with
// placeholder replies and the HTTP client that answers questions.
package chat

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// Placeholder is shown in a bot message until its answer arrives.
	Placeholder = "Thinking..."
	// OfflineText replaces the placeholder when the request fails.
	OfflineText = "Error: Brain is offline."
	// upstreamErrorMarker in an answer marks it for error styling.
	upstreamErrorMarker = "Gemini API Error"
)

// Role identifies who wrote a message.
type Role int

const (
	RoleUser Role = iota
	RoleBot
)

func (r Role) String() string {
	if r == RoleUser {
		return "user"
	}
	return "bot"
}

// Message is one entry of the chat log.
type Message struct {
	ID   string
	Role Role
	Text string
	// Error marks the message for error styling.
	Error bool
	// Pending is true while the bot message still shows the placeholder.
	Pending bool
}

// Request is a question waiting for its answer.
type Request struct {
	// ID is the placeholder message the answer will replace.
	ID       string
	Question string
}

// Widget holds the chat panel state. It is not safe for concurrent use.
type Widget struct {
	open     bool
	messages []Message
}

// NewWidget returns a closed, empty chat panel.
func NewWidget() *Widget {
	return &Widget{}
}

// Toggle flips the panel between open and closed.
func (w *Widget) Toggle() { w.open = !w.open }

// Open shows the panel.
func (w *Widget) Open() { w.open = true }

// Close hides the panel.
func (w *Widget) Close() { w.open = false }

// IsOpen reports whether the panel is visible.
func (w *Widget) IsOpen() bool { return w.open }

// Submit records a question and its placeholder reply. Input that is empty
// after trimming is ignored and ok is false.
func (w *Widget) Submit(input string) (req Request, ok bool) {
	question := strings.TrimSpace(input)
	if question == "" {
		return Request{}, false
	}

	w.messages = append(w.messages, Message{ID: newID(), Role: RoleUser, Text: question})

	id := newID()
	w.messages = append(w.messages, Message{ID: id, Role: RoleBot, Text: Placeholder, Pending: true})

	return Request{ID: id, Question: question}, true
}

// Resolve replaces the placeholder with id by the answer, or by OfflineText
// when err is non-nil. Only answers carrying the upstream error marker are
// flagged for error styling. Unknown ids are ignored.
func (w *Widget) Resolve(id, answer string, err error) {
	for i := range w.messages {
		m := &w.messages[i]
		if m.ID != id {
			continue
		}
		m.Pending = false
		if err != nil {
			m.Text = OfflineText
			m.Error = false
			return
		}
		m.Text = answer
		m.Error = strings.Contains(answer, upstreamErrorMarker)
		return
	}
}

// Messages returns a copy of the chat log, oldest first.
func (w *Widget) Messages() []Message {
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// newID returns "msg-" followed by 9 hex characters.
func newID() string {
	return "msg-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
