package stream

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"time"
)

// maxLineSize bounds a single event-stream line.
const maxLineSize = 1 << 20

// Event is one dispatched server-sent event.
type Event struct {
	// ID is the last event ID seen on the stream when this event was dispatched.
	ID string
	// Type is the event name; "message" when the server sent none.
	Type string
	// Data is the concatenation of the event's data lines joined by "\n".
	Data string
}

// Decoder reads events from a text/event-stream body.
type Decoder struct {
	sc       *bufio.Scanner
	started  bool
	lastID   string
	retry    time.Duration
	retrySet bool
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	sc.Split(scanLines)
	return &Decoder{sc: sc}
}

// Next blocks until the next event is dispatched. It returns io.EOF when the
// stream ends; an event still being assembled at that point is discarded.
func (d *Decoder) Next() (Event, error) {
	var (
		data    strings.Builder
		hasData bool
		evType  string
	)

	for d.sc.Scan() {
		line := d.sc.Text()
		if !d.started {
			d.started = true
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if line == "" {
			if !hasData {
				evType = ""
				continue
			}
			if evType == "" {
				evType = "message"
			}
			return Event{
				ID:   d.lastID,
				Type: evType,
				Data: strings.TrimSuffix(data.String(), "\n"),
			}, nil
		}

		if line[0] == ':' {
			continue
		}

		field, value := line, ""
		if i := strings.IndexByte(line, ':'); i >= 0 {
			field = line[:i]
			value = strings.TrimPrefix(line[i+1:], " ")
		}

		switch field {
		case "event":
			evType = value
		case "data":
			data.WriteString(value)
			data.WriteByte('\n')
			hasData = true
		case "id":
			if !strings.ContainsRune(value, 0) {
				d.lastID = value
			}
		case "retry":
			if ms, ok := parseDigits(value); ok {
				d.retry = time.Duration(ms) * time.Millisecond
				d.retrySet = true
			}
		}
	}

	if err := d.sc.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// LastEventID returns the most recent id field seen on the stream.
func (d *Decoder) LastEventID() string { return d.lastID }

// Retry returns the reconnection delay requested by the server, if any.
func (d *Decoder) Retry() (time.Duration, bool) { return d.retry, d.retrySet }

func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
		if n > int64(time.Hour/time.Millisecond)*24 {
			return 0, false
		}
	}
	return n, true
}

// scanLines splits on "\r\n", "\n" or a lone "\r".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A trailing '\r' may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
