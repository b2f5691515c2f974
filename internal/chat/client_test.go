package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guliveer/vitalis-live/internal/models"
)

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Question)

		w.Write([]byte("Hi! Your CPU is at 12%."))
	}))
	defer srv.Close()

	answer, err := NewClient(srv.URL, nil).Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi! Your CPU is at 12%.", answer)
}

func TestClient_AskNonOKStatusIsAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Gemini API Error: 503"))
	}))
	defer srv.Close()

	answer, err := NewClient(srv.URL, nil).Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Gemini API Error: 503", answer)
}

func TestClient_AskUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Ask(context.Background(), "hello")
	assert.Error(t, err)
}

func TestAskAndResolve_Offline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	w := NewWidget()
	req, ok := w.Submit("hello")
	require.True(t, ok)

	answer, err := NewClient(url, nil).Ask(context.Background(), req.Question)
	w.Resolve(req.ID, answer, err)

	msgs := w.Messages()
	assert.Equal(t, "Error: Brain is offline.", msgs[1].Text)
	assert.False(t, msgs[1].Error)
}
