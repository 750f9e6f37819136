package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/velumpress/cms/pkg/identity"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/permission"
	"github.com/velumpress/cms/pkg/server/store"
	"github.com/velumpress/cms/pkg/token"
)

// CookieName is the session cookie set at login
const CookieName = "token"

const (
	msgUnauthorized  = "No autorizado"
	msgInvalidToken  = "Token inválido"
	msgAdminRequired = "Se requieren permisos de administrador"
	msgCountryDenied = "No tienes permiso para este país"
	msgAuthFailed    = "Error al verificar la sesión"
)

// UserLookup resolves the account behind a verified token
type UserLookup interface {
	GetUser(id string) (*model.User, error)
}

// TokenAuthenticator is middleware that validates session tokens. When Users
// is set, the token subject must still exist and its stored role, countries
// and permissions replace the ones carried in the claims.
type TokenAuthenticator struct {
	Tokens *token.Issuer
	Users  UserLookup
}

// NewTokenAuthenticator creates a new token authenticator middleware
func NewTokenAuthenticator(tokens *token.Issuer, users UserLookup) *TokenAuthenticator {
	return &TokenAuthenticator{Tokens: tokens, Users: users}
}

// TokenFromRequest returns the raw session token, or ""
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// Middleware returns an HTTP middleware that validates session tokens
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := TokenFromRequest(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		claims, err := a.Tokens.Verify(raw)
		if err != nil {
			writeError(w, http.StatusForbidden, msgInvalidToken)
			return
		}

		id := identity.FromClaims(claims).WithRemoteIP(identity.ClientIP(r))
		if a.Users != nil {
			user, err := a.Users.GetUser(id.UserID())
			if errors.Is(err, store.ErrUserNotFound) {
				writeError(w, http.StatusForbidden, msgInvalidToken)
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, msgAuthFailed)
				return
			}
			id.User = user
		}
		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

// RequireAdmin rejects authenticated users without the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAdminWith(msgAdminRequired)(next)
}

// RequireAdminWith is RequireAdmin with a route-specific denial message
func RequireAdminWith(msg string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identity.Get(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			if !id.IsAdmin() {
				writeError(w, http.StatusForbidden, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCountry rejects users who may not touch the country named by the
// route variable
func RequireCountry(varName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identity.Get(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			if !permission.CanAccessCountry(id.User, mux.Vars(r)[varName]) {
				writeError(w, http.StatusForbidden, msgCountryDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
