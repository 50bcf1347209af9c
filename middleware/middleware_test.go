package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevinaaaquil/bookshelf/backend/service"
	"github.com/kevinaaaquil/bookshelf/backend/session"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*session.Resolver, *service.TokenService) {
	t.Helper()
	tokens, err := service.NewTokenService(service.TokenConfig{Secret: []byte("secret")})
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	return &session.Resolver{Tokens: tokens, Log: log}, tokens
}

func TestSessionAndRequireAuth(t *testing.T) {
	resolver, tokens := newTestResolver(t)
	tok, err := tokens.Issue("acc-1", "alice", "alice@x.com")
	require.NoError(t, err)

	var calls int
	var seen string
	h := Session(resolver)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		seen, _ = AccountID(r)
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"invalid", "Bearer junk", http.StatusUnauthorized},
		{"valid", "Bearer " + tok, http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Zero(t, calls)
				assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			} else {
				assert.Equal(t, 1, calls)
				assert.Equal(t, "acc-1", seen)
			}
		})
	}
}

func TestSessionAnonymousPassesThrough(t *testing.T) {
	resolver, _ := newTestResolver(t)
	var got session.Session
	h := Session(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.Anonymous{}, got)
}

func TestCORS(t *testing.T) {
	t.Parallel()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	CORS(nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	h := CORS([]string{"http://localhost:3000"})(next)
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogger(t *testing.T) {
	t.Parallel()
	log, hook := logtest.NewNullLogger()
	h := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, "/boom", entry.Data["path"])
	assert.Equal(t, http.StatusInternalServerError, entry.Data["status"])
}
