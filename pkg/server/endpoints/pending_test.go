package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/moderation"
	"github.com/velumpress/cms/pkg/server/store"
)

func submitEvent(t *testing.T, env *testEnv, title string) string {
	t.Helper()
	w := env.do(http.MethodPost, "/api/cms/countries/ve/timeline?lang=es", env.editor, timelineEvent(title))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	changes, err := env.pending.ListChanges()
	require.NoError(t, err)
	require.NotEmpty(t, changes)
	return changes[len(changes)-1].ID
}

func TestPending_AdminOnly(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)
	id := submitEvent(t, env, "Evento")

	tests := []struct {
		method, path, message string
	}{
		{http.MethodGet, "/api/cms/pending", "Solo el administrador puede ver cambios pendientes"},
		{http.MethodPost, "/api/cms/pending/" + id + "/approve", "Solo el administrador puede aprobar cambios"},
		{http.MethodPost, "/api/cms/pending/" + id + "/reject", "Solo el administrador puede rechazar cambios"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := env.do(tt.method, tt.path, env.editor, nil)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, tt.message, errorOf(t, w))
		})
	}
}

func TestPending_ApproveAndReject(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)
	first := submitEvent(t, env, "Primero")
	second := submitEvent(t, env, "Segundo")
	before := env.snapshot()

	w := env.do(http.MethodGet, "/api/cms/pending", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["changes"], 2)

	w = env.do(http.MethodPost, "/api/cms/pending/"+first+"/approve", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Cambio aprobado", body["message"])
	assert.Equal(t, false, body["applied"])

	w = env.do(http.MethodPost, "/api/cms/pending/"+second+"/reject", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Cambio rechazado", decodeBody(t, w)["message"])

	changes, err := env.pending.ListChanges()
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, before, env.snapshot())

	t.Run("resolved changes are gone", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/cms/pending/"+first+"/approve", env.admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Cambio no encontrado", errorOf(t, w))

		w = env.do(http.MethodPost, "/api/cms/pending/"+second+"/reject", env.admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPending_ApproveWritesContentWhenConfigured(t *testing.T) {
	env := newTestEnv(t, fullApproval, true)
	id := submitEvent(t, env, "Aprobado")

	w := env.do(http.MethodPost, "/api/cms/pending/"+id+"/approve", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeBody(t, w)["applied"])

	found, err := env.content.HasItem(content.Timeline, "es", "ve", "aprobado")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestPending_FailedApplyKeepsChange(t *testing.T) {
	env := newTestEnv(t, fullApproval, true)
	eventID := env.seedTimeline("Borrable")

	w := env.do(http.MethodDelete, "/api/cms/countries/ve/timeline/"+eventID+"?lang=es", env.editor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	changes, err := env.pending.ListChanges()
	require.NoError(t, err)
	require.Len(t, changes, 1)

	require.NoError(t, env.content.DeleteItem(content.Timeline, "es", "ve", eventID))

	w = env.do(http.MethodPost, "/api/cms/pending/"+changes[0].ID+"/approve", env.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	_, err = env.pending.GetChange(changes[0].ID)
	assert.NoError(t, err)
}

func TestPending_StoreFailure(t *testing.T) {
	pending := NewMockPendingStore()
	pending.On("GetChange", "abc").Return(nil, errors.New("io error"))
	queue := moderation.NewQueue(pending, nil, false)

	req := httptest.NewRequest(http.MethodPost, "/api/cms/pending/abc/reject", nil)
	req = muxVars(req, map[string]string{"id": "abc"})
	w := httptest.NewRecorder()
	handleRejectPending(queue)(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	pending.AssertExpectations(t)

	t.Run("not found maps to 404", func(t *testing.T) {
		pending := NewMockPendingStore()
		pending.On("GetChange", "gone").Return(nil, store.ErrChangeNotFound)
		queue := moderation.NewQueue(pending, nil, false)

		req := httptest.NewRequest(http.MethodPost, "/api/cms/pending/gone/approve", nil)
		req = muxVars(req, map[string]string{"id": "gone"})
		w := httptest.NewRecorder()
		handleApprovePending(queue)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list of nothing is an empty array", func(t *testing.T) {
		pending := NewMockPendingStore()
		pending.On("ListChanges").Return([]model.PendingChange(nil), nil)
		queue := moderation.NewQueue(pending, nil, false)

		w := httptest.NewRecorder()
		handleListPending(queue)(w, httptest.NewRequest(http.MethodGet, "/api/cms/pending", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"changes":[]}`, w.Body.String())
	})
}
