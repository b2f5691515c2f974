package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, body)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func TestClient_DeliversMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		writeEvents(w, "data: one\n\ndata: two\n\n")
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var opened atomic.Int32
	got := make(chan Event, 4)

	c := New(srv.URL)
	c.OnOpen(func() { opened.Add(1) })
	c.OnMessage(func(ev Event) {
		got <- ev
		if len(got) == 2 {
			cancel()
		}
	})

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), opened.Load())
	require.Len(t, got, 2)
	assert.Equal(t, "one", (<-got).Data)
	assert.Equal(t, "two", (<-got).Data)
}

func TestClient_ReconnectsWithLastEventID(t *testing.T) {
	var (
		mu      sync.Mutex
		calls   int
		resumed string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		if n == 2 {
			resumed = r.Header.Get("Last-Event-ID")
		}
		mu.Unlock()

		if n == 1 {
			writeEvents(w, "id: 7\nretry: 10\ndata: first\n\n")
			return
		}
		writeEvents(w, "data: second\n\n")
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		msgs   []string
		errs   int
		opened int
	)
	c := New(srv.URL, WithRetry(time.Minute))
	c.OnOpen(func() { opened++ })
	c.OnError(func(error) { errs++ })
	c.OnMessage(func(ev Event) {
		msgs = append(msgs, ev.Data)
		if len(msgs) == 2 {
			cancel()
		}
	})

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"first", "second"}, msgs)
	assert.Equal(t, 2, opened)
	assert.Equal(t, 1, errs)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "7", resumed)
}

func TestClient_FatalResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "wrong content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"cpu_usage":1}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			var errs []error
			c := New(srv.URL, WithRetry(time.Millisecond))
			c.OnOpen(func() { t.Error("OnOpen called for a failed stream") })
			c.OnError(func(err error) { errs = append(errs, err) })

			err := c.Run(context.Background())
			assert.ErrorIs(t, err, ErrFatal)
			assert.Equal(t, int32(1), calls.Load())
			require.Len(t, errs, 1)
			assert.ErrorIs(t, errs[0], ErrFatal)
		})
	}
}

func TestClient_RetriesUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var errs int
	c := New(url, WithRetry(time.Millisecond))
	c.OnError(func(err error) {
		assert.False(t, errors.Is(err, ErrFatal))
		errs++
		if errs == 3 {
			cancel()
		}
	})

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, errs, 3)
}

func TestClient_CharsetContentTypeAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
		fmt.Fprint(w, "data: ok\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var data string
	c := New(srv.URL)
	c.OnMessage(func(ev Event) {
		data = ev.Data
		cancel()
	})

	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
	assert.Equal(t, "ok", data)
}
