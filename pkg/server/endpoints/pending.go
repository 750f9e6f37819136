package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/velumpress/cms/pkg/audit"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/moderation"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/middleware"
	"github.com/velumpress/cms/pkg/server/store"
)

const (
	msgChangeNotFound = "Cambio no encontrado"
	msgPendingFailed  = "Error al procesar el cambio"
)

// RegisterPendingEndpoints registers the admin moderation queue
func RegisterPendingEndpoints(s *server.Server) {
	pendingRouter := s.Router.PathPrefix("/api/cms/pending").Subrouter()
	pendingRouter.Use(s.Auth.Middleware)

	pendingRouter.Handle("",
		middleware.RequireAdminWith("Solo el administrador puede ver cambios pendientes")(handleListPending(s.Queue)),
	).Methods("GET")
	pendingRouter.Handle("/{id}/approve",
		middleware.RequireAdminWith("Solo el administrador puede aprobar cambios")(handleApprovePending(s.Queue)),
	).Methods("POST")
	pendingRouter.Handle("/{id}/reject",
		middleware.RequireAdminWith("Solo el administrador puede rechazar cambios")(handleRejectPending(s.Queue)),
	).Methods("POST")
}

func handleListPending(queue *moderation.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		changes, err := queue.List()
		if err != nil {
			respondWithStoreError(w, err, "Error al obtener cambios pendientes")
			return
		}
		if changes == nil {
			changes = []model.PendingChange{}
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"changes": changes})
	}
}

func moderationEvent(r *http.Request, id, decision string, change *model.PendingChange) audit.ModerationEvent {
	event := audit.ModerationEvent{
		ClientIP: clientIP(r),
		ChangeID: id,
		Decision: decision,
	}
	if u := currentUser(r); u != nil {
		event.UserID = u.Username
	}
	if change != nil {
		event.Section = change.Section
		event.Submitter = change.UserName
	}
	return event
}

func handleApprovePending(queue *moderation.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		change, applied, err := queue.Approve(id)
		event := moderationEvent(r, id, "approve", change)
		event.Applied = applied
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			switch {
			case errors.Is(err, store.ErrChangeNotFound):
				respondWithError(w, http.StatusNotFound, msgChangeNotFound)
			case errors.Is(err, moderation.ErrApply):
				respondWithError(w, http.StatusConflict, "No se pudo aplicar el cambio")
			default:
				respondWithStoreError(w, err, msgPendingFailed)
			}
			return
		}

		event.Success = true
		audit.Log(event)
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Cambio aprobado",
			"applied": applied,
		})
	}
}

func handleRejectPending(queue *moderation.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		change, err := queue.Reject(id)
		event := moderationEvent(r, id, "reject", change)
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			if errors.Is(err, store.ErrChangeNotFound) {
				respondWithError(w, http.StatusNotFound, msgChangeNotFound)
				return
			}
			respondWithStoreError(w, err, msgPendingFailed)
			return
		}

		event.Success = true
		audit.Log(event)
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Cambio rechazado",
		})
	}
}
