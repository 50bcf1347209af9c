package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued identity token stays valid.
const TokenLifetime = time.Hour

// ErrInvalidToken is the only error Verify returns.
var ErrInvalidToken = errors.New("invalid token")

// Payload is the identity carried by a token.
type Payload struct {
	AccountID string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type Claims struct {
	Data Payload `json:"data"`
	jwt.RegisteredClaims
}

// TokenConfig configures a TokenService. Now defaults to time.Now.
type TokenConfig struct {
	Secret []byte
	Now    func() time.Time
}

// TokenService issues and verifies HS256 identity tokens. It is safe for
// concurrent use.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &TokenService{secret: secret, now: now}, nil
}

func (s *TokenService) Issue(accountID, username, email string) (string, error) {
	now := s.now()
	claims := &Claims{
		Data: Payload{AccountID: accountID, Username: username, Email: email},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry. Every failure is reported as
// ErrInvalidToken; the wrapped text describes the cause for logging.
func (s *TokenService) Verify(token string) (Payload, error) {
	if token == "" {
		return Payload{}, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Payload{}, ErrInvalidToken
	}
	if claims.Data.AccountID == "" {
		return Payload{}, fmt.Errorf("%w: missing account id", ErrInvalidToken)
	}
	return claims.Data, nil
}
