package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/velumpress/cms/pkg/model"
)

// ErrInvalid indicates the token failed parsing, signature or expiry checks.
var ErrInvalid = errors.New("invalid token")

// Claims are the JWT claims of a session token
type Claims struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Role        string            `json:"role"`
	Name        string            `json:"name"`
	Countries   []string          `json:"countries"`
	Permissions model.Permissions `json:"permissions"`
	jwt.RegisteredClaims
}

// User rebuilds the (password-less) user the token was issued for
func (c *Claims) User() *model.User {
	countries := c.Countries
	if countries == nil {
		countries = []string{}
	}
	return &model.User{
		ID:          c.ID,
		Username:    c.Username,
		Role:        c.Role,
		Name:        c.Name,
		Countries:   countries,
		Permissions: c.Permissions,
	}
}

// Issuer signs and verifies session tokens with a shared secret
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for user
func (i *Issuer) Issue(user *model.User) (string, error) {
	now := i.now()
	claims := &Claims{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Name:        user.Name,
		Countries:   user.Countries,
		Permissions: user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and checks its signature and expiry
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !tok.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
