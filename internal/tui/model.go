// Package tui hosts the live dashboard and the chat panel in a bubbletea program.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/chat"
	"github.com/Guliveer/vitalis-live/internal/monitor"
	"github.com/Guliveer/vitalis-live/internal/stream"
)

// Asker answers chat questions.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// chatAnswerMsg resolves a pending chat request.
type chatAnswerMsg struct {
	id     string
	answer string
	err    error
}

// Options wires the model to its collaborators.
type Options struct {
	Stream Streamer
	Feed   *Feed
	Chat   Asker
	Logger *zap.Logger
	// ChartHeight is the number of rows per chart series.
	ChartHeight int
}

// Model is the top-level bubbletea model of the dashboard.
type Model struct {
	ctx    context.Context
	logger *zap.Logger

	dash   *monitor.Dashboard
	chat   *chat.Widget
	asker  Asker
	stream Streamer
	feed   *Feed

	// streaming is true while the stream goroutine is alive.
	streaming   bool
	badPayloads int
	showGPU     bool

	input textinput.Model
	log   viewport.Model
	help  help.Model

	chartHeight int
	width       int
	height      int
	ready       bool
}

// New returns a model that starts streaming on Init.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	height := opts.ChartHeight
	if height < 1 {
		height = 1
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about your system..."
	ti.CharLimit = 500
	ti.Prompt = "› "

	return Model{
		ctx:         ctx,
		logger:      logger.Named("tui"),
		dash:        monitor.New(),
		chat:        chat.NewWidget(),
		asker:       opts.Chat,
		stream:      opts.Stream,
		feed:        opts.Feed,
		streaming:   opts.Stream != nil,
		input:       ti,
		log:         viewport.New(40, 10),
		help:        help.New(),
		chartHeight: height,
	}
}

// Init implements tea.Model. It starts the stream and the feed listener.
func (m Model) Init() tea.Cmd {
	if m.feed == nil || m.stream == nil {
		return nil
	}
	return tea.Batch(m.feed.run(m.stream), m.feed.wait())
}

// Dashboard exposes the metric state rendered by the model.
func (m Model) Dashboard() *monitor.Dashboard { return m.dash }

// metricEventType is the event type dispatched for events without a name.
const metricEventType = "message"

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case streamOpenMsg:
		m.dash.SetOnline()
		return m, m.next()

	case streamErrorMsg:
		if errors.Is(msg.err, stream.ErrFatal) {
			m.dash.SetClosed()
		} else {
			m.dash.SetReconnecting()
		}
		return m, m.next()

	case streamDataMsg:
		// Only unnamed events carry metrics; named events have no listener.
		if msg.event.Type != metricEventType {
			m.logger.Debug("Ignoring named event",
				zap.String("type", msg.event.Type),
				zap.String("id", msg.event.ID))
			return m, m.next()
		}
		r, err := m.dash.Apply([]byte(msg.event.Data))
		if err != nil {
			m.badPayloads++
			m.logger.Warn("Dropping malformed metric event",
				zap.String("id", msg.event.ID),
				zap.Error(err))
			return m, m.next()
		}
		if r.GPU {
			m.showGPU = true
		}
		return m, m.next()

	case streamDoneMsg:
		m.streaming = false
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.dash.SetClosed()
		}
		return m, m.next()

	case chatAnswerMsg:
		m.chat.Resolve(msg.id, msg.answer, msg.err)
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chat.IsOpen() {
		switch {
		case key.Matches(msg, keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, keys.Close):
			m.chat.Close()
			m.input.Blur()
			m.resize()
			return m, nil
		case key.Matches(msg, keys.Send):
			return m, m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Chat):
		m.chat.Toggle()
		m.resize()
		m.refreshLog()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, keys.Reconnect):
		return m, m.reconnect()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// submit sends the typed question. Blank input sends nothing.
func (m *Model) submit() tea.Cmd {
	req, ok := m.chat.Submit(m.input.Value())
	m.input.Reset()
	if !ok {
		return nil
	}
	m.refreshLog()
	if m.asker == nil {
		m.chat.Resolve(req.ID, "", errors.New("chat unavailable"))
		m.refreshLog()
		return nil
	}
	return askCmd(m.ctx, m.asker, req)
}

// reconnect restarts a stream that was closed for good.
func (m *Model) reconnect() tea.Cmd {
	if m.streaming || m.dash.Status() != monitor.StatusClosed || m.stream == nil || m.feed == nil {
		return nil
	}
	m.logger.Info("Reconnecting event stream")
	m.streaming = true
	m.dash.SetConnecting()
	return m.feed.run(m.stream)
}

func (m Model) next() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return m.feed.wait()
}

func askCmd(ctx context.Context, a Asker, req chat.Request) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.Ask(ctx, req.Question)
		return chatAnswerMsg{id: req.ID, answer: answer, err: err}
	}
}
