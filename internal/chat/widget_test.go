package chat

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidget_Toggle(t *testing.T) {
	w := NewWidget()
	assert.False(t, w.IsOpen())
	w.Toggle()
	assert.True(t, w.IsOpen())
	w.Toggle()
	assert.False(t, w.IsOpen())
	w.Open()
	w.Open()
	assert.True(t, w.IsOpen())
	w.Close()
	assert.False(t, w.IsOpen())
}

func TestWidget_SubmitAppendsQuestionAndPlaceholder(t *testing.T) {
	w := NewWidget()
	req, ok := w.Submit("  hello  ")
	require.True(t, ok)
	assert.Equal(t, "hello", req.Question)

	msgs := w.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, RoleBot, msgs[1].Role)
	assert.Equal(t, Placeholder, msgs[1].Text)
	assert.True(t, msgs[1].Pending)
	assert.Equal(t, req.ID, msgs[1].ID)
}

func TestWidget_SubmitIgnoresBlankInput(t *testing.T) {
	w := NewWidget()
	for _, in := range []string{"", "   ", "\t\n"} {
		_, ok := w.Submit(in)
		assert.False(t, ok, "input %q", in)
	}
	assert.Empty(t, w.Messages())
}

func TestWidget_MessageIDs(t *testing.T) {
	w := NewWidget()
	re := regexp.MustCompile(`^msg-[0-9a-f]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		w.Submit("q")
	}
	for _, m := range w.Messages() {
		assert.Regexp(t, re, m.ID)
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestWidget_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		err       error
		wantText  string
		wantError bool
	}{
		{"answer verbatim", "CPU looks fine.", nil, "CPU looks fine.", false},
		{"transport failure", "", errors.New("connection refused"), OfflineText, false},
		{"upstream error styled", "Gemini API Error: quota exceeded", nil, "Gemini API Error: quota exceeded", true},
		{"empty body", "", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWidget()
			req, ok := w.Submit("status?")
			require.True(t, ok)

			w.Resolve(req.ID, tt.answer, tt.err)

			msgs := w.Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, tt.wantText, msgs[1].Text)
			assert.Equal(t, tt.wantError, msgs[1].Error)
			assert.False(t, msgs[1].Pending)
		})
	}
}

func TestWidget_ResolveOutOfOrder(t *testing.T) {
	w := NewWidget()
	first, _ := w.Submit("one")
	second, _ := w.Submit("two")

	w.Resolve(second.ID, "B", nil)
	w.Resolve(first.ID, "A", nil)

	msgs := w.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "A", msgs[1].Text)
	assert.Equal(t, "B", msgs[3].Text)
}

func TestWidget_ResolveUnknownID(t *testing.T) {
	w := NewWidget()
	w.Submit("q")
	w.Resolve("msg-000000000", "ignored", nil)
	assert.Equal(t, Placeholder, w.Messages()[1].Text)
}

func TestWidget_MessagesIsCopy(t *testing.T) {
	w := NewWidget()
	w.Submit("q")
	msgs := w.Messages()
	msgs[0].Text = "mutated"
	assert.Equal(t, "q", w.Messages()[0].Text)
}
