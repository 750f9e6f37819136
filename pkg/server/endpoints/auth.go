package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/velumpress/cms/pkg/account"
	"github.com/velumpress/cms/pkg/audit"
	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/identity"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/middleware"
	"github.com/velumpress/cms/pkg/server/store"
	"github.com/velumpress/cms/pkg/token"
)

const (
	msgCredentialsRequired = "Usuario y contraseña requeridos"
	msgBadCredentials      = "Credenciales inválidas"
	msgMissingFields       = "Faltan campos requeridos"
	msgUserExists          = "El usuario ya existe"
	msgUserNotFound        = "Usuario no encontrado"
	msgInvalidRole         = "Rol inválido"
	msgPasswordTooLong     = "La contraseña no puede superar 72 bytes"
	msgAdminUndeletable    = "No se puede eliminar el administrador principal"
	msgUsersFailed         = "Error al acceder a los usuarios"
)

// RegisterAuthEndpoints registers login, logout, the current user and user
// management
func RegisterAuthEndpoints(s *server.Server) {
	router := s.Router

	router.HandleFunc("/api/auth/login", handleLogin(s.Config, s.UsersStore, s.Tokens)).Methods("POST")
	router.HandleFunc("/api/auth/logout", handleLogout(s.Config, s.Tokens)).Methods("POST")
	router.Handle("/api/auth/me", s.Auth.Middleware(handleMe())).Methods("GET")

	usersRouter := router.PathPrefix("/api/auth/users").Subrouter()
	usersRouter.Use(s.Auth.Middleware, middleware.RequireAdmin)

	usersRouter.HandleFunc("", handleListUsers(s.UsersStore)).Methods("GET")
	usersRouter.HandleFunc("", handleCreateUser(s.UsersStore)).Methods("POST")
	usersRouter.HandleFunc("/{id}", handleUpdateUser(s.UsersStore)).Methods("PUT")
	usersRouter.HandleFunc("/{id}", handleDeleteUser(s.UsersStore)).Methods("DELETE")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleLogin(cfg *config.CMSConfig, users store.UsersStore, tokens *token.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Username == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, msgCredentialsRequired)
			return
		}

		event := audit.LoginEvent{Username: req.Username, ClientIP: clientIP(r)}

		user, err := users.GetUserByUsername(req.Username)
		if err != nil && !errors.Is(err, store.ErrUserNotFound) {
			respondWithStoreError(w, err, msgUsersFailed)
			return
		}
		if user == nil || !account.CheckPassword(user.Password, req.Password) {
			event.ErrorMessage = msgBadCredentials
			audit.Log(event)
			respondWithError(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}

		raw, err := tokens.Issue(user)
		if err != nil {
			respondWithStoreError(w, err, "Error al iniciar sesión")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.CookieName,
			Value:    raw,
			Path:     "/",
			HttpOnly: true,
			Secure:   cfg.SecureCookies,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(tokens.TTL().Seconds()),
		})

		event.Success = true
		audit.Log(event)

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    user.Sanitized(),
			"token":   raw,
		})
	}
}

func handleLogout(cfg *config.CMSConfig, tokens *token.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event := audit.LogoutEvent{ClientIP: clientIP(r)}
		if raw := middleware.TokenFromRequest(r); raw != "" {
			if claims, err := tokens.Verify(raw); err == nil {
				event.Username = claims.Username
			}
		}
		audit.Log(event)

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   cfg.SecureCookies,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

func handleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok || id.User == nil {
			respondWithError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": id.User.Sanitized()})
	}
}

func handleListUsers(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.ListUsers()
		if err != nil {
			respondWithStoreError(w, err, msgUsersFailed)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"users": sanitizeUsers(list)})
	}
}

type userRequest struct {
	Username    string             `json:"username"`
	Password    string             `json:"password"`
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Countries   []string           `json:"countries"`
	Permissions *model.Permissions `json:"permissions"`
}

func userEvent(r *http.Request, subject, operation string, err error) audit.UserEvent {
	event := audit.UserEvent{
		ClientIP:  clientIP(r),
		Subject:   subject,
		Operation: operation,
		Success:   err == nil,
	}
	if u := currentUser(r); u != nil {
		event.UserID = u.Username
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	return event
}

// respondWithAccountError maps account validation failures to 400
func respondWithAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrInvalidRole):
		respondWithError(w, http.StatusBadRequest, msgInvalidRole)
	case errors.Is(err, account.ErrPasswordTooLong):
		respondWithError(w, http.StatusBadRequest, msgPasswordTooLong)
	default:
		respondWithStoreError(w, err, msgUsersFailed)
	}
}

func handleCreateUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Username == "" || req.Password == "" || req.Name == "" {
			respondWithError(w, http.StatusBadRequest, msgMissingFields)
			return
		}

		user, err := account.NewUser(account.NewUserInput{
			Username:    req.Username,
			Password:    req.Password,
			Name:        req.Name,
			Role:        req.Role,
			Countries:   req.Countries,
			Permissions: req.Permissions,
		})
		if err != nil {
			respondWithAccountError(w, err)
			return
		}

		err = users.CreateUser(user)
		audit.Log(userEvent(r, req.Username, "create", err))
		if errors.Is(err, store.ErrUserExists) {
			respondWithError(w, http.StatusBadRequest, msgUserExists)
			return
		}
		if err != nil {
			respondWithStoreError(w, err, msgUsersFailed)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user.Sanitized()})
	}
}

func handleUpdateUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req userRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := users.GetUser(id)
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		if err != nil {
			respondWithStoreError(w, err, msgUsersFailed)
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Password != "" {
			hash, err := account.HashPassword(req.Password)
			if err != nil {
				respondWithAccountError(w, err)
				return
			}
			user.Password = hash
			user.MustChangePassword = false
		}
		if req.Role != "" {
			if !model.ValidRole(req.Role) {
				respondWithError(w, http.StatusBadRequest, msgInvalidRole)
				return
			}
			user.Role = req.Role
		}
		if req.Countries != nil {
			user.Countries = req.Countries
		}
		if req.Permissions != nil {
			user.Permissions = *req.Permissions
		}

		err = users.UpdateUser(user)
		audit.Log(userEvent(r, user.Username, "update", err))
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		if err != nil {
			respondWithStoreError(w, err, msgUsersFailed)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user.Sanitized()})
	}
}

func handleDeleteUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		user, err := users.GetUser(id)
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		if err != nil {
			respondWithStoreError(w, err, msgUsersFailed)
			return
		}
		if user.Username == model.AdminUsername {
			respondWithError(w, http.StatusBadRequest, msgAdminUndeletable)
			return
		}

		err = users.DeleteUser(id)
		audit.Log(userEvent(r, user.Username, "delete", err))
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		if err != nil {
			respondWithStoreError(w, err, msgUsersFailed)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
