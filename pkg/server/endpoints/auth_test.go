package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/token"
)

func TestCMSRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)

	t.Run("missing token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/cms/countries", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No autorizado", errorOf(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cms/countries", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		env.srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Token inválido", errorOf(t, w))
	})

	t.Run("health is public", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)

	t.Run("missing fields", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/login", nil, map[string]string{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Usuario y contraseña requeridos", errorOf(t, w))
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/login", nil, map[string]string{"username": "admin", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Credenciales inválidas", errorOf(t, w))
	})

	t.Run("unknown user", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/login", nil, map[string]string{"username": "ghost", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("sets the session cookie", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/login", nil, map[string]string{"username": "maria", "password": testPassword})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "maria", user["username"])
		assert.NotContains(t, user, "password")

		var session *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == "token" {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.True(t, session.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
		assert.Equal(t, "/", session.Path)
		assert.Equal(t, int(time.Hour.Seconds()), session.MaxAge)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.AddCookie(session)
		me := httptest.NewRecorder()
		env.srv.Router.ServeHTTP(me, req)
		require.Equal(t, http.StatusOK, me.Code)
		assert.Equal(t, "maria", decodeBody(t, me)["user"].(map[string]interface{})["username"])
	})
}

func TestLogout_ClearsCookie(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)

	w := env.do(http.MethodPost, "/api/auth/logout", env.editor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestLogin_StoreFailure(t *testing.T) {
	users := NewMockUsersStore()
	users.On("GetUserByUsername", "admin").Return(nil, errors.New("disk on fire"))

	handler := handleLogin(config.Default(), users, token.NewIssuer([]byte("k"), time.Hour))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin","password":"x"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
	users.AssertExpectations(t)
}

func TestUsers(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)

	t.Run("editors cannot manage users", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/users", env.editor, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("list hides password hashes", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/users", env.admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"password"`)
		assert.Len(t, decodeBody(t, w)["users"], 2)
	})

	t.Run("create applies editor defaults", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/users", env.admin, map[string]string{
			"username": "pedro", "password": "pw", "name": "Pedro",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		created, err := env.users.GetUserByUsername("pedro")
		require.NoError(t, err)
		assert.Equal(t, model.RoleEditor, created.Role)
		assert.Equal(t, []string{}, created.Countries)
		assert.Equal(t, model.DefaultEditorPermissions(), created.Permissions)
	})

	t.Run("create rejects missing fields and duplicates", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/users", env.admin, map[string]string{"username": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Faltan campos requeridos", errorOf(t, w))

		w = env.do(http.MethodPost, "/api/auth/users", env.admin, map[string]string{
			"username": "maria", "password": "pw", "name": "Otra",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "El usuario ya existe", errorOf(t, w))
	})

	t.Run("invalid role and overlong password", func(t *testing.T) {
		long := strings.Repeat("x", 73)

		w := env.do(http.MethodPost, "/api/auth/users", env.admin, map[string]string{
			"username": "rol", "password": "pw", "name": "Rol", "role": "owner",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Rol inválido", errorOf(t, w))

		w = env.do(http.MethodPost, "/api/auth/users", env.admin, map[string]string{
			"username": "larga", "password": long, "name": "Larga",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "La contraseña no puede superar 72 bytes", errorOf(t, w))

		w = env.do(http.MethodPut, "/api/auth/users/"+env.editor.ID, env.admin, map[string]string{"password": long})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "La contraseña no puede superar 72 bytes", errorOf(t, w))

		_, err := env.users.GetUserByUsername("larga")
		assert.Error(t, err)
	})

	t.Run("partial update", func(t *testing.T) {
		w := env.do(http.MethodPut, "/api/auth/users/"+env.editor.ID, env.admin, map[string]interface{}{
			"countries": []string{"ve", "co"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		updated, err := env.users.GetUser(env.editor.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"ve", "co"}, updated.Countries)
		assert.Equal(t, "María", updated.Name)
		assert.Equal(t, fullApproval, updated.Permissions)
	})

	t.Run("update missing user", func(t *testing.T) {
		w := env.do(http.MethodPut, "/api/auth/users/nobody", env.admin, map[string]string{"name": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Usuario no encontrado", errorOf(t, w))
	})

	t.Run("delete missing user", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/api/auth/users/nobody", env.admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Usuario no encontrado", errorOf(t, w))
	})

	t.Run("primary admin cannot be deleted", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/api/auth/users/"+env.admin.ID, env.admin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No se puede eliminar el administrador principal", errorOf(t, w))
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/api/auth/users/"+env.editor.ID, env.admin, nil)
		require.Equal(t, http.StatusOK, w.Code)

		_, err := env.users.GetUser(env.editor.ID)
		assert.Error(t, err)

		w = env.do(http.MethodGet, "/api/auth/me", env.editor, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Token inválido", errorOf(t, w))
	})
}
