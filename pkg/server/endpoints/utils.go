package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/identity"
	"github.com/velumpress/cms/pkg/model"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 50 << 20

const (
	msgInvalidJSON  = "JSON inválido"
	msgInvalidPath  = "Ruta inválida"
	msgInvalidLang  = "Idioma no soportado"
	msgUnauthorized = "No autorizado"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithStoreError maps content and store errors onto statuses.
// Anything unrecognized is logged and answered with 500 and fallback.
func respondWithStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		respondWithError(w, http.StatusNotFound, content.Message(err, fallback))
	case errors.Is(err, content.ErrExists), errors.Is(err, content.ErrInvalid):
		respondWithError(w, http.StatusBadRequest, content.Message(err, fallback))
	default:
		log.Printf("%s: %v", fallback, err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondWithError(w, http.StatusBadRequest, msgInvalidJSON)
	return false
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (content.Record, bool) {
	rec := content.Record{}
	if !decodeJSON(w, r, &rec) {
		return nil, false
	}
	if rec == nil {
		rec = content.Record{}
	}
	return rec, true
}

// requestLang resolves the lang query parameter against the configured languages
func requestLang(cfg *config.CMSConfig, w http.ResponseWriter, r *http.Request) (string, bool) {
	return resolveLang(cfg, w, r.URL.Query().Get("lang"))
}

func resolveLang(cfg *config.CMSConfig, w http.ResponseWriter, lang string) (string, bool) {
	if lang == "" {
		lang = cfg.DefaultLang
	}
	if !content.ValidID(lang) || (len(cfg.Languages) > 0 && !cfg.IsLanguage(lang)) {
		respondWithError(w, http.StatusBadRequest, msgInvalidLang)
		return "", false
	}
	return lang, true
}

// pathVars returns the named route variables after checking they are path-safe
func pathVars(w http.ResponseWriter, r *http.Request, names ...string) (map[string]string, bool) {
	vars := mux.Vars(r)
	for _, name := range names {
		if !content.ValidID(vars[name]) {
			respondWithError(w, http.StatusBadRequest, msgInvalidPath)
			return nil, false
		}
	}
	return vars, true
}

func currentUser(r *http.Request) *model.User {
	id, ok := identity.Get(r.Context())
	if !ok {
		return nil
	}
	return id.User
}

func clientIP(r *http.Request) string {
	if id, ok := identity.Get(r.Context()); ok && id.RemoteIP != nil {
		return id.RemoteIP.String()
	}
	if ip := identity.ClientIP(r); ip != nil {
		return ip.String()
	}
	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func sanitizeUsers(users []model.User) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out
}
