package endpoints

import (
	"net/http"

	"github.com/velumpress/cms/pkg/audit"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/moderation"
	"github.com/velumpress/cms/pkg/permission"
	"github.com/velumpress/cms/pkg/server/store"
)

const (
	msgSubmitted       = "Cambio enviado para aprobación"
	msgDeleteSubmitted = "Eliminación enviada para aprobación"
	msgQueueFailed     = "Error al guardar el cambio pendiente"
	msgCountryNotFound = "País no encontrado"
)

// target identifies the content a mutation touches, for audit and queueing
type target struct {
	section   string
	lang      string
	code      string
	itemID    string
	parentKey string
	parentID  string
}

func (t target) event(r *http.Request, action permission.Action) audit.ContentEvent {
	user := currentUser(r)
	userID := ""
	if user != nil {
		userID = user.ID
	}
	return audit.ContentEvent{
		UserID:      userID,
		ClientIP:    clientIP(r),
		Operation:   action.String(),
		Section:     t.section,
		Lang:        t.lang,
		CountryCode: t.code,
		ItemID:      t.itemID,
	}
}

// authorize evaluates action for the current user and answers 403 when it
// is denied
func authorize(w http.ResponseWriter, r *http.Request, action permission.Action, t target) (permission.Decision, bool) {
	user := currentUser(r)
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, msgUnauthorized)
		return permission.Decision{}, false
	}

	decision := permission.Evaluate(user, action)
	if !decision.Allowed {
		event := t.event(r, action)
		event.ErrorMessage = decision.Reason
		audit.Log(event)
		respondWithError(w, http.StatusForbidden, decision.Reason)
		return decision, false
	}
	return decision, true
}

// countryExists answers 404 when a country-scoped target has no country
// directory. Language-level targets carry no code and always pass.
func countryExists(w http.ResponseWriter, cs store.ContentStore, t target) bool {
	if t.code == "" || cs.CountryExists(t.lang, t.code) {
		return true
	}
	respondWithError(w, http.StatusNotFound, msgCountryNotFound)
	return false
}

// submit queues a mutation instead of applying it
func submit(w http.ResponseWriter, r *http.Request, queue *moderation.Queue, action permission.Action, t target, data map[string]any) {
	changeType := model.ChangeTypeEdit
	switch action {
	case permission.ActionCreate:
		changeType = model.ChangeTypeCreate
	case permission.ActionDelete:
		changeType = model.ChangeTypeDelete
	}

	change := &model.PendingChange{
		Type:        changeType,
		Section:     t.section,
		CountryCode: t.code,
		Lang:        t.lang,
		ItemID:      t.itemID,
		Data:        data,
	}
	if t.parentKey != "" {
		change.SetParent(t.parentKey, t.parentID)
	}

	event := t.event(r, action)
	event.Pending = true
	if _, err := queue.Submit(currentUser(r), change); err != nil {
		event.ErrorMessage = err.Error()
		audit.Log(event)
		respondWithStoreError(w, err, msgQueueFailed)
		return
	}
	event.Success = true
	audit.Log(event)

	msg := msgSubmitted
	if action == permission.ActionDelete {
		msg = msgDeleteSubmitted
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pending": true,
		"message": msg,
	})
}

// applied records a successful or failed direct mutation
func applied(r *http.Request, action permission.Action, t target, err error) {
	event := t.event(r, action)
	if err != nil {
		event.ErrorMessage = err.Error()
	} else {
		event.Success = true
	}
	audit.Log(event)
}
