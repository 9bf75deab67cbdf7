package gateway

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/models"
)

func TestRouter_Client(t *testing.T) {
	s := newTestServer(t, false)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>viewer</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	router := NewRouter(s.handler, NewSessionStream(s.sessions, zap.NewNop()), RouterOptions{
		Logger:    zap.NewNop(),
		StaticDir: dir,
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"home", http.MethodGet, "/", http.StatusOK, "viewer"},
		{"render page", http.MethodGet, "/render/3", http.StatusOK, "viewer"},
		{"share page", http.MethodGet, "/share/3", http.StatusOK, "viewer"},
		{"static asset", http.MethodGet, "/assets/app.js", http.StatusOK, "console.log(1)"},
		{"missing asset", http.MethodGet, "/assets/nope.js", http.StatusNotFound, "NOT_FOUND"},
		{"path traversal", http.MethodGet, "/../../etc/passwd", http.StatusNotFound, "NOT_FOUND"},
		{"unknown api route", http.MethodGet, "/api/nope", http.StatusNotFound, "NOT_FOUND"},
		{"api still served", http.MethodGet, "/api/models/1", http.StatusOK, "Cubo"},
		{"preflight", http.MethodOptions, "/api/actions", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRouter_CORSHeaders(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "traceparent")
}

func TestRouter_NotFoundWithoutStaticDir(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown api route", http.MethodGet, "/api/nope"},
		{"unknown api method", http.MethodPost, "/api/models"},
		{"unknown page", http.MethodGet, "/render/3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, models.ErrCodeNotFound, decode[models.ErrorResponse](t, w).Code)
		})
	}
}
