package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/velumpress/cms/pkg/account"
	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/store/file"
	"github.com/velumpress/cms/pkg/token"
)

const testPassword = "s3cret-pass"

type testEnv struct {
	t          *testing.T
	srv        *server.Server
	content    *file.ContentStore
	users      *file.UsersStore
	pending    *file.PendingStore
	contentDir string

	admin  *model.User
	editor *model.User
}

// newTestEnv builds a server over temporary file stores holding the "ve"
// country, an admin and an editor restricted to "ve".
func newTestEnv(t *testing.T, editorPerms model.Permissions, applyOnApprove bool) *testEnv {
	t.Helper()

	dataDir := t.TempDir()
	contentDir := t.TempDir()

	cfg := config.Default()
	cfg.DataDir = dataDir
	cfg.ContentDir = contentDir
	cfg.MediaDir = t.TempDir()
	cfg.ApplyOnApprove = applyOnApprove

	env := &testEnv{
		t:          t,
		content:    file.NewContentStore(contentDir),
		users:      file.NewUsersStore(cfg.UsersFile()),
		pending:    file.NewPendingStore(cfg.PendingFile()),
		contentDir: contentDir,
	}

	_, err := env.content.CreateCountry("es", "ve", "Venezuela")
	require.NoError(t, err)

	env.admin = env.addUser(account.NewUserInput{
		Username: model.AdminUsername, Password: testPassword, Name: "Administrador", Role: model.RoleAdmin,
		Countries: []string{model.AllCountries},
	})
	env.editor = env.addUser(account.NewUserInput{
		Username: "maria", Password: testPassword, Name: "María", Countries: []string{"ve"},
		Permissions: &editorPerms,
	})

	env.srv = server.NewServer(cfg, server.Stores{
		Users:   env.users,
		Pending: env.pending,
		Content: env.content,
		Health:  file.NewHealthStore(dataDir, contentDir),
	}, token.NewIssuer([]byte("test-secret-test-secret-test-secret"), time.Hour), "127.0.0.1", "0")
	RegisterAll(env.srv)

	return env
}

func (e *testEnv) addUser(in account.NewUserInput) *model.User {
	e.t.Helper()
	u, err := account.NewUser(in)
	require.NoError(e.t, err)
	require.NoError(e.t, e.users.CreateUser(u))
	return u
}

func (e *testEnv) tokenFor(u *model.User) string {
	e.t.Helper()
	raw, err := e.srv.Tokens.Issue(u)
	require.NoError(e.t, err)
	return raw
}

func (e *testEnv) do(method, path string, u *model.User, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+e.tokenFor(u))
	}

	w := httptest.NewRecorder()
	e.srv.Router.ServeHTTP(w, req)
	return w
}

// snapshot reads every file under the content root
func (e *testEnv) snapshot() map[string]string {
	e.t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(e.contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(e.contentDir, path)
		if d.IsDir() {
			files[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	require.NoError(e.t, err)
	return files
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, w)["error"].(string)
	return msg
}

var (
	fullApproval = model.Permissions{CanCreate: true, CanEdit: true, CanDelete: true, RequiresApproval: true}
	noDelete     = model.Permissions{CanCreate: true, CanEdit: true, CanDelete: false, RequiresApproval: false}
)

func timelineEvent(title string) map[string]interface{} {
	return map[string]interface{}{"title": title, "date": "1999-12-15", "summary": "Resumen"}
}

func (e *testEnv) seedTimeline(title string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/cms/countries/ve/timeline?lang=es", e.admin, timelineEvent(title))
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	item, _ := decodeBody(e.t, w)["item"].(map[string]interface{})
	id, _ := item["id"].(string)
	require.NotEmpty(e.t, id)
	return id
}

func muxVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}
