// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the identity fields the
// dashboard needs on every request.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// Issuer signs HS256 tokens with a server-held secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer fails with common.ErrConfig when secret is empty; there is no
// silent default here.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: token signing secret is not set", common.ErrConfig)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: token validity must be positive", common.ErrConfig)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) TTL() time.Duration { return i.ttl }

func (i *Issuer) Issue(id models.Identity) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: id.ID,
		Email:  id.Email,
		Role:   id.Role,
	})

	return token.SignedString(i.secret)
}

// Verify returns the identity inside a valid token. Any defect (bad
// signature, wrong algorithm, expiry, missing fields) yields
// common.ErrInvalidToken and nothing else.
func (i *Issuer) Verify(tokenString string) (models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return models.Identity{}, common.ErrInvalidToken
	}
	if claims.UserID == "" || (claims.Role != models.RoleAdmin && claims.Role != models.RoleUser) {
		return models.Identity{}, common.ErrInvalidToken
	}

	return models.Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
