// Package auth issues and verifies the signed session tokens that carry a
// user's id and role, and hashes passwords.
//
// Tokens are stateless: nothing is stored server-side, so a token stays valid
// until it expires unless a Denylist is configured and the token is revoked
// explicitly.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

const DefaultTokenTTL = 24 * time.Hour

// ErrNoSecret is returned when the signing secret is not configured.
var ErrNoSecret = errors.New("auth: signing secret is empty")

// Identity is what a verified token proves about the caller.
type Identity struct {
	UserID int64
	Role   models.Role
}

// Claims is the JWT payload.
type Claims struct {
	UserID int64       `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	denylist *Denylist
}

type Option func(*TokenService)

func WithTTL(ttl time.Duration) Option {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// WithDenylist enables server-side revocation.
func WithDenylist(d *Denylist) Option {
	return func(s *TokenService) { s.denylist = d }
}

func NewTokenService(secret []byte, opts ...Option) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	s := &TokenService{
		secret: secret,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for the user that expires TTL from now.
func (s *TokenService) Issue(userID int64, role models.Role) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry and returns the identity the
// token carries.
func (s *TokenService) Verify(token string) (Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Identity{}, err
	}
	if s.denylist != nil && s.denylist.Contains(claims.ID) {
		return Identity{}, apperr.InvalidToken(errors.New("token revoked"))
	}
	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// Revoke denies the token until its natural expiry. Without a denylist it is
// a no-op and reports false.
func (s *TokenService) Revoke(token string) (bool, error) {
	if s.denylist == nil {
		return false, nil
	}
	claims, err := s.parse(token)
	if err != nil {
		return false, err
	}
	s.denylist.Add(claims.ID, claims.ExpiresAt.Time)
	return true, nil
}

func (s *TokenService) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, apperr.MissingToken()
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperr.InvalidToken(err)
	}
	if claims.UserID <= 0 || !claims.Role.Valid() {
		return nil, apperr.InvalidToken(fmt.Errorf("bad claims: user %d role %q", claims.UserID, claims.Role))
	}
	return claims, nil
}
