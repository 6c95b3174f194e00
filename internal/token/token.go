package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sbelkacem/gosocial/internal/models"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed input, expiry. Callers translate it into an
// unauthorized response and must not distinguish the causes.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity a token encodes alongside the registered
// issued-at/expires-at claims.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256-signed identity tokens. Issue and Verify
// share the same secret; a token re-signed with any other key fails closed.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue signs a token for the given identity, valid for the service TTL from
// now. No side effects beyond constructing the token.
func (s *Service) Issue(id models.Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   id.UserID,
		Username: id.Username,
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded identity.
// It never mutates state and reports every failure as ErrInvalidToken.
func (s *Service) Verify(tokenString string) (models.Identity, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
