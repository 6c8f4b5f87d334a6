package httphandler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCorsMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		cors        *Cors
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantMethods bool
	}{
		{
			name:        "wildcard echoes origin",
			cors:        DefaultCors(),
			method:      http.MethodGet,
			origin:      "http://localhost:5173",
			wantStatus:  http.StatusOK,
			wantOrigin:  "http://localhost:5173",
			wantMethods: true,
		},
		{
			name:        "wildcard without origin",
			cors:        DefaultCors(),
			method:      http.MethodGet,
			wantStatus:  http.StatusOK,
			wantOrigin:  "*",
			wantMethods: true,
		},
		{
			name:        "preflight short-circuits",
			cors:        DefaultCors(),
			method:      http.MethodOptions,
			origin:      "http://localhost:5173",
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "http://localhost:5173",
			wantMethods: true,
		},
		{
			name:        "listed origin",
			cors:        NewCors([]string{"http://app.example"}),
			method:      http.MethodGet,
			origin:      "http://app.example",
			wantStatus:  http.StatusOK,
			wantOrigin:  "http://app.example",
			wantMethods: true,
		},
		{
			name:       "unlisted origin gets no headers",
			cors:       NewCors([]string{"http://app.example"}),
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/anything", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			corsMiddleware(tt.cors, okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get(allowOriginHeader))
			if tt.wantMethods {
				assert.Contains(t, rec.Header().Get(allowMethodsHeader), http.MethodPut)
			} else {
				assert.Empty(t, rec.Header().Get(allowMethodsHeader))
			}
		})
	}
}

func TestCorsMiddleware_NilPolicyPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()

	corsMiddleware(nil, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get(allowOriginHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	ApplyMiddleware(panicky, testLogger(), nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}
