package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/loan-service/internal/config"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(SubjectFromContext(r.Context())))
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	h := AuthMiddleware(&config.Config{})(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/loans", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Enabled(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	h := AuthMiddleware(cfg)(http.HandlerFunc(okHandler))

	valid, err := IssueToken("s3cret", "frontend", time.Hour)
	require.NoError(t, err)
	wrongKey, err := IssueToken("other", "frontend", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken("s3cret", "frontend", -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/loans", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "frontend", rec.Body.String())
			}
		})
	}
}

func TestIssueToken_EmptySecret(t *testing.T) {
	_, err := IssueToken("", "x", time.Hour)
	assert.Error(t, err)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := mux.NewRouter()
	r.HandleFunc("/loans/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNotFound)
	})
	h := RequestLogger(log, r)(r)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/loans/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"path":"/loans/42"`)

	req := httptest.NewRequest(http.MethodGet, "/loans/7", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	buf.Reset()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"path":"/accounts"`)
}

func TestRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/loans/{id:[0-9]+}", okHandler).Methods(http.MethodGet)
	sub := r.NewRoute().Subrouter()
	sub.HandleFunc("/loans", okHandler).Methods(http.MethodPost)

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/loans/42", "/loans/{id:[0-9]+}"},
		{http.MethodPost, "/loans", "/loans"},
		{http.MethodGet, "/nope", "unmatched"},
		{http.MethodPut, "/loans/42", "unmatched"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, routeTemplate(r, httptest.NewRequest(tt.method, tt.path, nil)), tt.method+" "+tt.path)
	}
	assert.Equal(t, "unmatched", routeTemplate(nil, httptest.NewRequest(http.MethodGet, "/loans/42", nil)))
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{CORSOrigins: []string{"http://localhost:5173"}}
	h := CORS(cfg)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/loans", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/loans", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
