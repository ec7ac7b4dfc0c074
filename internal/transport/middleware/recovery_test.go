package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/makerlab-backend/pkg/ctxutil"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantLog    []string
	}{
		{
			name:       "no panic",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusAccepted) },
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "string panic",
			handler:    func(w http.ResponseWriter, r *http.Request) { panic("draft index out of range") },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"handler panicked", "draft index out of range", "request_id=req-1", "path=/api/v1/workspace/draft"},
		},
		{
			name:       "error panic",
			handler:    func(w http.ResponseWriter, r *http.Request) { panic(errors.New("nil catalog")) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"nil catalog", "stack="},
		},
		{
			name:       "wrapped value",
			handler:    func(w http.ResponseWriter, r *http.Request) { panic(fmt.Sprintf("step %d", 7)) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"step 7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/workspace/draft", nil)
			req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-1"))
			rec := httptest.NewRecorder()

			Recovery(logger)(tt.handler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLog == nil {
				if buf.Len() != 0 {
					t.Errorf("expected no log output, got %q", buf.String())
				}
				return
			}
			if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"internal server error"}` {
				t.Errorf("unexpected body %q", body)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			for _, want := range tt.wantLog {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log missing %q: %s", want, buf.String())
				}
			}
		})
	}
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()

	Recovery(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	t.Error("expected panic to propagate")
}
