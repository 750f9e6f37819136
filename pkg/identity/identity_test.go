package identity

import (
	"context"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/token"
)

func TestFromClaims(t *testing.T) {
	iat := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	claims := &token.Claims{
		ID:       "u-1",
		Username: "maria",
		Role:     model.RoleEditor,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(24 * time.Hour)),
		},
	}

	id := FromClaims(claims)
	assert.Equal(t, "u-1", id.UserID())
	assert.Equal(t, "maria", id.Username())
	assert.False(t, id.IsAdmin())
	assert.Equal(t, iat, id.IssuedAt)
	assert.Equal(t, iat.Add(24*time.Hour), id.ExpiresAt)
	assert.Equal(t, []string{}, id.User.Countries)
}

func TestIdentity_NilSafe(t *testing.T) {
	var id *Identity
	assert.Equal(t, "", id.UserID())
	assert.Equal(t, "", id.Username())
	assert.False(t, id.IsAdmin())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		remote   string
		forward  string
		expected string
	}{
		{name: "remote addr", remote: "10.0.0.5:4321", expected: "10.0.0.5"},
		{name: "forwarded", remote: "10.0.0.5:4321", forward: "203.0.113.9, 10.0.0.1", expected: "203.0.113.9"},
		{name: "bad forwarded falls back", remote: "10.0.0.5:4321", forward: "unknown", expected: "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.forward != "" {
				r.Header.Set("X-Forwarded-For", tt.forward)
			}
			assert.Equal(t, tt.expected, ClientIP(r).String())
		})
	}
}

func TestContextGetSet(t *testing.T) {
	ctx := context.Background()

	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)

	expected := (&Identity{User: &model.User{ID: "admin", Role: model.RoleAdmin}}).
		WithRemoteIP(net.ParseIP("192.168.1.100"))
	ctx = Set(ctx, expected)

	id, ok = Get(ctx)
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.True(t, id.IsAdmin())
	assert.Equal(t, "192.168.1.100", id.RemoteIP.String())
}
