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

type childHandlers struct {
	child   *content.Child
	cfg     *config.CMSConfig
	content store.ContentStore
	queue   *moderation.Queue
}

// RegisterChildEndpoints registers the collections nested under witnesses,
// resistors and analysts
func RegisterChildEndpoints(s *server.Server) {
	cms := s.Router.PathPrefix("/api/cms").Subrouter()
	cms.Use(s.Auth.Middleware)
	countryGuard := middleware.RequireCountry("code")

	for _, c := range content.Children {
		h := &childHandlers{child: c, cfg: s.Config, content: s.ContentStore, queue: s.Queue}
		base := "/countries/{code}/" + c.Parent.Name + "/{parent}/" + c.Segment

		cms.Handle(base, countryGuard(h.create())).Methods("POST")
		cms.HandleFunc(base+"/{id}", h.get()).Methods("GET")
		cms.Handle(base+"/{id}", countryGuard(h.update())).Methods("PUT")
		cms.Handle(base+"/{id}", countryGuard(h.remove())).Methods("DELETE")
	}
}

func (h *childHandlers) scope(w http.ResponseWriter, r *http.Request, names ...string) (target, map[string]string, bool) {
	lang, ok := requestLang(h.cfg, w, r)
	if !ok {
		return target{}, nil, false
	}
	vars, ok := pathVars(w, r, append([]string{"code", "parent"}, names...)...)
	if !ok {
		return target{}, nil, false
	}
	return target{
		section:   h.child.Name,
		lang:      lang,
		code:      vars["code"],
		parentKey: h.child.ParentKey,
		parentID:  vars["parent"],
	}, vars, true
}

func (h *childHandlers) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, vars, ok := h.scope(w, r, "id")
		if !ok {
			return
		}
		rec, err := h.content.GetChild(h.child, t.lang, t.code, t.parentID, vars["id"])
		if err != nil {
			respondWithStoreError(w, err, h.child.NotFoundMessage)
			return
		}
		respondWithJSON(w, http.StatusOK, rec)
	}
}

func (h *childHandlers) create() http.HandlerFunc {
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

		rec, err := content.PrepareChild(h.child, body)
		if err != nil {
			respondWithStoreError(w, err, h.child.RequiredMessage())
			return
		}
		t.itemID = rec.ID()

		if !h.parentExists(w, t) {
			return
		}

		if decision.RequiresApproval {
			submit(w, r, h.queue, permission.ActionCreate, t, rec)
			return
		}

		ref, err := h.content.CreateChild(h.child, t.lang, t.code, t.parentID, rec)
		applied(r, permission.ActionCreate, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al crear "+h.child.Name)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "item": ref})
	}
}

func (h *childHandlers) update() http.HandlerFunc {
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
			respondWithStoreError(w, err, h.child.NotFoundMessage)
			return
		}
		if !h.exists(w, t) {
			return
		}

		if decision.RequiresApproval {
			submit(w, r, h.queue, permission.ActionEdit, t, body)
			return
		}

		item, err := h.content.UpdateChild(h.child, t.lang, t.code, t.parentID, t.itemID, body)
		applied(r, permission.ActionEdit, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al actualizar "+h.child.Name)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "item": item})
	}
}

func (h *childHandlers) remove() http.HandlerFunc {
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

		err := h.content.DeleteChild(h.child, t.lang, t.code, t.parentID, t.itemID)
		applied(r, permission.ActionDelete, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al eliminar "+h.child.Name)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

func (h *childHandlers) parentExists(w http.ResponseWriter, t target) bool {
	found, err := h.content.HasItem(h.child.Parent, t.lang, t.code, t.parentID)
	if err != nil {
		respondWithStoreError(w, err, h.child.Parent.NotFoundMessage)
		return false
	}
	if !found {
		respondWithError(w, http.StatusNotFound, h.child.Parent.NotFoundMessage)
		return false
	}
	return true
}

func (h *childHandlers) exists(w http.ResponseWriter, t target) bool {
	found, err := h.content.HasChild(h.child, t.lang, t.code, t.parentID, t.itemID)
	if err != nil {
		respondWithStoreError(w, err, h.child.NotFoundMessage)
		return false
	}
	if !found {
		respondWithError(w, http.StatusNotFound, h.child.NotFoundMessage)
		return false
	}
	return true
}
