package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) []Event {
	t.Helper()
	dec := NewDecoder(strings.NewReader(input))
	var events []Event
	for {
		ev, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestDecoder_Events(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{
			name:  "single data line",
			input: "data: {\"cpu_usage\":1}\n\n",
			want:  []Event{{Type: "message", Data: `{"cpu_usage":1}`}},
		},
		{
			name:  "multi-line data joined by newline",
			input: "data: a\ndata: b\n\n",
			want:  []Event{{Type: "message", Data: "a\nb"}},
		},
		{
			name:  "named event and id",
			input: "event: metric\nid: 42\ndata: x\n\n",
			want:  []Event{{ID: "42", Type: "metric", Data: "x"}},
		},
		{
			name:  "id persists to later events",
			input: "id: 1\ndata: a\n\ndata: b\n\n",
			want:  []Event{{ID: "1", Type: "message", Data: "a"}, {ID: "1", Type: "message", Data: "b"}},
		},
		{
			name:  "comments and keep-alives ignored",
			input: ":\n: keep-alive\ndata: x\n\n:\n\n",
			want:  []Event{{Type: "message", Data: "x"}},
		},
		{
			name:  "blank event without data is not dispatched",
			input: "event: ping\n\ndata: x\n\n",
			want:  []Event{{Type: "message", Data: "x"}},
		},
		{
			name:  "only first space after colon stripped",
			input: "data:  two\ndata:none\n\n",
			want:  []Event{{Type: "message", Data: " two\nnone"}},
		},
		{
			name:  "field without colon",
			input: "data\n\n",
			want:  []Event{{Type: "message", Data: ""}},
		},
		{
			name:  "crlf and lone cr line endings",
			input: "data: a\r\n\r\ndata: b\r\rdata: c\n\n",
			want:  []Event{{Type: "message", Data: "a"}, {Type: "message", Data: "b"}, {Type: "message", Data: "c"}},
		},
		{
			name:  "leading bom stripped",
			input: "\uFEFFdata: x\n\n",
			want:  []Event{{Type: "message", Data: "x"}},
		},
		{
			name:  "trailing partial event discarded",
			input: "data: done\n\ndata: partial\n",
			want:  []Event{{Type: "message", Data: "done"}},
		},
		{
			name:  "unknown fields ignored",
			input: "foo: bar\ndata: x\n\n",
			want:  []Event{{Type: "message", Data: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readAll(t, tt.input))
		})
	}
}

func TestDecoder_SplitAcrossReads(t *testing.T) {
	input := "id: 9\r\ndata: {\"a\":1}\r\n\r\n"
	dec := NewDecoder(iotest.OneByteReader(strings.NewReader(input)))

	ev, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, Event{ID: "9", Type: "message", Data: `{"a":1}`}, ev)

	_, err = dec.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_Retry(t *testing.T) {
	dec := NewDecoder(strings.NewReader("retry: 1500\n\nretry: soon\n\nretry: -5\n\n"))
	_, err := dec.Next()
	assert.ErrorIs(t, err, io.EOF)

	d, ok := dec.Retry()
	assert.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, d)
}

func TestDecoder_NoRetry(t *testing.T) {
	dec := NewDecoder(strings.NewReader("data: x\n\n"))
	_, err := dec.Next()
	require.NoError(t, err)
	_, ok := dec.Retry()
	assert.False(t, ok)
}

func TestDecoder_IDWithNullIgnored(t *testing.T) {
	dec := NewDecoder(strings.NewReader("id: 1\n\nid: a\x00b\ndata: x\n\n"))
	ev, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", ev.ID)
}

func TestDecoder_ReadError(t *testing.T) {
	boom := errors.New("boom")
	dec := NewDecoder(iotest.ErrReader(boom))
	_, err := dec.Next()
	assert.ErrorIs(t, err, boom)
}
