package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/provider"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestComplete_NoKey(t *testing.T) {
	c, err := New(context.Background(), Config{}, testLogger())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hi", "ctx")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestComplete_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Start with Level 1!"}]}}]}`)
	}))
	defer srv.Close()

	c, err := New(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL}, testLogger())
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "Where do I start?", "Lessons: Level 1.")
	require.NoError(t, err)
	assert.Equal(t, "Start with Level 1!", text)

	assert.True(t, strings.HasSuffix(gotPath, "models/"+DefaultModel+":generateContent"), gotPath)
	raw, _ := json.Marshal(gotBody)
	assert.Contains(t, string(raw), "User Question: Where do I start?")
	assert.Contains(t, string(raw), "helpful AI mentor")

	cfg, _ := gotBody["generationConfig"].(map[string]any)
	require.NotNil(t, cfg)
	assert.InDelta(t, provider.DefaultTemperature, cfg["temperature"], 0.001)
}

func TestComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	c, err := New(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL}, testLogger())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hi", "ctx")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotConfigured)
}
