package middleware

import (
	"net/http"

	"github.com/kevinaaaquil/bookshelf/backend/session"
)

// Session attaches the resolved session to every request. It never rejects.
func Session(resolver *session.Resolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := resolver.ResolveRequest(r)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// RequireAuth rejects anonymous requests with 401 before the handler runs.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := session.RequireAuthenticated(session.FromContext(r.Context())); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"you must be logged in","code":"UNAUTHENTICATED"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AccountID returns the authenticated account id set by Session.
func AccountID(r *http.Request) (string, bool) {
	id, err := session.RequireAuthenticated(session.FromContext(r.Context()))
	return id, err == nil
}
