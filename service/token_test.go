package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTokens(t *testing.T, secret string, clock *fakeClock) *TokenService {
	t.Helper()
	cfg := TokenConfig{Secret: []byte(secret)}
	if clock != nil {
		cfg.Now = clock.Now
	}
	svc, err := NewTokenService(cfg)
	require.NoError(t, err)
	return svc
}

func TestTokenService_IssueVerify(t *testing.T) {
	t.Parallel()

	svc := newTestTokens(t, "super-secret", nil)
	tok, err := svc.Issue("acc-1", "alice", "alice@x.com")
	require.NoError(t, err)

	got, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Payload{AccountID: "acc-1", Username: "alice", Email: "alice@x.com"}, got)
}

func TestTokenService_Expiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestTokens(t, "secret", clock)
	tok, err := svc.Issue("acc-1", "alice", "alice@x.com")
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = svc.Verify(tok)
	require.NoError(t, err)

	clock.Advance(time.Minute + time.Second)
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Invalid(t *testing.T) {
	t.Parallel()

	svc := newTestTokens(t, "right-secret", nil)
	other := newTestTokens(t, "wrong-secret", nil)
	foreign, err := other.Issue("acc-1", "alice", "alice@x.com")
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Data: Payload{AccountID: "acc-1"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Data: Payload{AccountID: "acc-1"},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"garbage", "abc"},
		{"wrong secret", foreign},
		{"alg none", noneTok},
		{"no expiry", noExp},
		{"no account id", noID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Verify(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(TokenConfig{})
	assert.Error(t, err)
}
