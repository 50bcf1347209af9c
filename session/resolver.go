package session

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/kevinaaaquil/bookshelf/backend/service"
	"github.com/sirupsen/logrus"
)

type TokenVerifier interface {
	Verify(token string) (service.Payload, error)
}

type ProbeRecorder interface {
	Record(ctx context.Context, client string) (int64, bool, error)
}

// Resolver turns the Authorization header into a Session. It never rejects
// a request; failures are logged and yield Anonymous.
type Resolver struct {
	Tokens TokenVerifier
	// Probes is optional.
	Probes ProbeRecorder
	Log    logrus.FieldLogger
}

func (r *Resolver) Resolve(header http.Header) Session {
	s, _ := r.resolve(header, "")
	return s
}

// ResolveRequest resolves r and counts rejected tokens against the caller's
// address.
func (r *Resolver) ResolveRequest(req *http.Request) Session {
	client := clientAddr(req.RemoteAddr)
	s, rejected := r.resolve(req.Header, client)
	if rejected && r.Probes != nil && client != "" {
		count, over, err := r.Probes.Record(req.Context(), client)
		switch {
		case err != nil:
			r.logger().WithError(err).Warn("token probe counter unavailable")
		case over:
			r.logger().WithFields(logrus.Fields{"client": client, "count": count}).Error("repeated invalid tokens from client")
		}
	}
	return s
}

func (r *Resolver) resolve(header http.Header, client string) (Session, bool) {
	raw := header.Get("Authorization")
	if raw == "" {
		return Anonymous{}, false
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if token == "" {
		return Anonymous{}, false
	}
	payload, err := r.Tokens.Verify(token)
	if err != nil {
		entry := r.logger().WithError(err)
		if client != "" {
			entry = entry.WithField("client", client)
		}
		entry.Warn("invalid token")
		return Anonymous{}, true
	}
	return Authenticated{
		AccountID: payload.AccountID,
		Username:  payload.Username,
		Email:     payload.Email,
	}, false
}

func (r *Resolver) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

func clientAddr(remote string) string {
	if host, _, err := net.SplitHostPort(remote); err == nil {
		return host
	}
	return remote
}
