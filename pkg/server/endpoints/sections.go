package endpoints

import (
	"net/http"

	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/moderation"
	"github.com/velumpress/cms/pkg/permission"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/middleware"
	"github.com/velumpress/cms/pkg/server/store"
)

var deletedMessages = map[string]string{
	content.SectionFototeca: "Elemento eliminado",
	content.SectionVelum:    "Artículo eliminado",
}

// sectionHandlers serves one top-level collection. Country-scoped
// collections read the {code} route variable; language-level ones do not.
type sectionHandlers struct {
	sec     *content.Section
	cfg     *config.CMSConfig
	content store.ContentStore
	queue   *moderation.Queue
}

// RegisterSectionEndpoints registers the country collections and velum
func RegisterSectionEndpoints(s *server.Server) {
	cms := s.Router.PathPrefix("/api/cms").Subrouter()
	cms.Use(s.Auth.Middleware)
	countryGuard := middleware.RequireCountry("code")

	for _, sec := range content.CountrySections {
		h := &sectionHandlers{sec: sec, cfg: s.Config, content: s.ContentStore, queue: s.Queue}
		base := "/countries/{code}/" + sec.Name

		cms.HandleFunc(base, h.list()).Methods("GET")
		cms.Handle(base, countryGuard(h.create())).Methods("POST")
		cms.HandleFunc(base+"/{id}", h.get()).Methods("GET")
		cms.Handle(base+"/{id}", countryGuard(h.update())).Methods("PUT")
		cms.Handle(base+"/{id}", countryGuard(h.remove())).Methods("DELETE")
	}

	velum := &sectionHandlers{sec: content.Velum, cfg: s.Config, content: s.ContentStore, queue: s.Queue}
	cms.HandleFunc("/velum", velum.list()).Methods("GET")
	cms.HandleFunc("/velum", velum.create()).Methods("POST")
	cms.HandleFunc("/velum/{id}", velum.get()).Methods("GET")
	cms.HandleFunc("/velum/{id}", velum.update()).Methods("PUT")
	cms.HandleFunc("/velum/{id}", velum.remove()).Methods("DELETE")
}

// scope resolves lang, the country code (if any) and the extra named vars
func (h *sectionHandlers) scope(w http.ResponseWriter, r *http.Request, names ...string) (target, map[string]string, bool) {
	lang, ok := requestLang(h.cfg, w, r)
	if !ok {
		return target{}, nil, false
	}
	if !h.sec.LanguageLevel {
		names = append([]string{"code"}, names...)
	}
	vars, ok := pathVars(w, r, names...)
	if !ok {
		return target{}, nil, false
	}
	t := target{section: h.sec.Name, lang: lang}
	if !h.sec.LanguageLevel {
		t.code = vars["code"]
	}
	return t, vars, true
}

func (h *sectionHandlers) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, _, ok := h.scope(w, r)
		if !ok {
			return
		}
		items, err := h.content.ListItems(h.sec, t.lang, t.code)
		if err != nil {
			respondWithStoreError(w, err, "Error al leer "+h.sec.Name)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"items": content.ToAny(items)})
	}
}

func (h *sectionHandlers) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, vars, ok := h.scope(w, r, "id")
		if !ok {
			return
		}
		rec, err := h.content.GetItem(h.sec, t.lang, t.code, vars["id"])
		if err != nil {
			respondWithStoreError(w, err, h.sec.NotFoundMessage)
			return
		}
		respondWithJSON(w, http.StatusOK, rec)
	}
}

func (h *sectionHandlers) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, _, ok := h.scope(w, r)
		if !ok {
			return
		}
		decision, ok := authorize(w, r, permission.ActionCreate, t)
		if !ok {
			return
		}
		body, ok := decodeRecord(w, r)
		if !ok {
			return
		}

		rec, err := content.Prepare(h.sec, body)
		if err != nil {
			respondWithStoreError(w, err, h.sec.RequiredMessage)
			return
		}
		t.itemID = rec.ID()
		if !countryExists(w, h.content, t) {
			return
		}

		if decision.RequiresApproval {
			submit(w, r, h.queue, permission.ActionCreate, t, rec)
			return
		}

		item, err := h.content.CreateItem(h.sec, t.lang, t.code, rec)
		applied(r, permission.ActionCreate, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al crear "+h.sec.Name)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "item": item})
	}
}

func (h *sectionHandlers) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, vars, ok := h.scope(w, r, "id")
		if !ok {
			return
		}
		t.itemID = vars["id"]
		decision, ok := authorize(w, r, permission.ActionEdit, t)
		if !ok {
			return
		}
		body, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		if err := content.CheckUpdate(t.itemID, body); err != nil {
			respondWithStoreError(w, err, h.sec.NotFoundMessage)
			return
		}
		if !h.exists(w, t) {
			return
		}

		if decision.RequiresApproval {
			submit(w, r, h.queue, permission.ActionEdit, t, body)
			return
		}

		item, err := h.content.UpdateItem(h.sec, t.lang, t.code, t.itemID, body)
		applied(r, permission.ActionEdit, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al actualizar "+h.sec.Name)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "item": item})
	}
}

func (h *sectionHandlers) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, vars, ok := h.scope(w, r, "id")
		if !ok {
			return
		}
		t.itemID = vars["id"]
		decision, ok := authorize(w, r, permission.ActionDelete, t)
		if !ok {
			return
		}
		if !h.exists(w, t) {
			return
		}

		if decision.RequiresApproval {
			submit(w, r, h.queue, permission.ActionDelete, t, nil)
			return
		}

		err := h.content.DeleteItem(h.sec, t.lang, t.code, t.itemID)
		applied(r, permission.ActionDelete, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al eliminar "+h.sec.Name)
			return
		}
		resp := map[string]interface{}{"success": true}
		if msg, ok := deletedMessages[h.sec.Name]; ok {
			resp["message"] = msg
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

// exists answers 404 when the target id is not in the section index
func (h *sectionHandlers) exists(w http.ResponseWriter, t target) bool {
	found, err := h.content.HasItem(h.sec, t.lang, t.code, t.itemID)
	if err != nil {
		respondWithStoreError(w, err, h.sec.NotFoundMessage)
		return false
	}
	if !found {
		respondWithError(w, http.StatusNotFound, h.sec.NotFoundMessage)
		return false
	}
	return true
}
