package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velumpress/cms/pkg/account"
	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/model"
)

func TestEditorWithApproval_LeavesContentUntouched(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)
	id := env.seedTimeline("Paro petrolero")
	before := env.snapshot()

	w := env.do(http.MethodPost, "/api/cms/countries/ve/timeline?lang=es", env.editor, timelineEvent("Nuevo evento"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["pending"])
	assert.Equal(t, "Cambio enviado para aprobación", body["message"])

	w = env.do(http.MethodPut, "/api/cms/countries/ve/timeline/"+id+"?lang=es", env.editor, map[string]string{"title": "Editado"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodDelete, "/api/cms/countries/ve/timeline/"+id+"?lang=es", env.editor, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Eliminación enviada para aprobación", decodeBody(t, w)["message"])

	w = env.do(http.MethodPut, "/api/cms/countries/ve/description?lang=es", env.editor, map[string]interface{}{"chapters": []interface{}{}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, before, env.snapshot())

	changes, err := env.pending.ListChanges()
	require.NoError(t, err)
	require.Len(t, changes, 4)
	assert.Equal(t, model.ChangeTypeCreate, changes[0].Type)
	assert.Equal(t, model.ChangeTypeEdit, changes[1].Type)
	assert.Equal(t, id, changes[1].ItemID)
	assert.Equal(t, model.ChangeTypeDelete, changes[2].Type)
	assert.Equal(t, content.SectionDescription, changes[3].Section)
	assert.Equal(t, env.editor.ID, changes[0].UserID)
	assert.Equal(t, "María", changes[0].UserName)

	t.Run("missing country answers 404 instead of queueing", func(t *testing.T) {
		perms := fullApproval
		roaming := env.addUser(account.NewUserInput{
			Username: "jose", Password: testPassword, Name: "José", Countries: []string{model.AllCountries},
			Permissions: &perms,
		})

		requests := []struct {
			method, path string
			body         interface{}
		}{
			{http.MethodPost, "/api/cms/countries/zz/timeline?lang=es", timelineEvent("Evento")},
			{http.MethodPut, "/api/cms/countries/zz/description?lang=es", map[string]interface{}{"chapters": []interface{}{}}},
			{http.MethodPut, "/api/cms/countries/zz/section-headers/timeline?lang=es", map[string]string{"title": "Cronología"}},
		}
		for _, req := range requests {
			w := env.do(req.method, req.path, roaming, req.body)
			assert.Equal(t, http.StatusNotFound, w.Code, req.path)
			assert.Equal(t, "País no encontrado", errorOf(t, w), req.path)
		}

		w := env.do(http.MethodPost, "/api/cms/countries/zz/timeline?lang=es", env.admin, timelineEvent("Evento"))
		assert.Equal(t, http.StatusNotFound, w.Code)

		changes, err := env.pending.ListChanges()
		require.NoError(t, err)
		assert.Len(t, changes, 4)
		assert.Equal(t, before, env.snapshot())
	})
}

func TestEditorWithoutDelete_Forbidden(t *testing.T) {
	env := newTestEnv(t, noDelete, false)
	id := env.seedTimeline("Paro petrolero")
	before := env.snapshot()

	w := env.do(http.MethodDelete, "/api/cms/countries/ve/timeline/"+id+"?lang=es", env.editor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "No tienes permiso para eliminar contenido", errorOf(t, w))
	assert.Equal(t, before, env.snapshot())

	t.Run("edits apply directly without approval", func(t *testing.T) {
		w := env.do(http.MethodPut, "/api/cms/countries/ve/timeline/"+id+"?lang=es", env.editor, map[string]string{"summary": "Nuevo"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		rec, err := env.content.GetItem(content.Timeline, "es", "ve", id)
		require.NoError(t, err)
		assert.Equal(t, "Nuevo", rec.String("summary"))
	})
}

func TestEditorOutsideAssignedCountry(t *testing.T) {
	env := newTestEnv(t, noDelete, false)
	_, err := env.content.CreateCountry("es", "ar", "Argentina")
	require.NoError(t, err)
	before := env.snapshot()

	w := env.do(http.MethodPost, "/api/cms/countries/ar/timeline?lang=es", env.editor, timelineEvent("Evento"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "No tienes permiso para este país", errorOf(t, w))
	assert.Equal(t, before, env.snapshot())

	t.Run("reads are not country restricted", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/cms/countries/ar/timeline?lang=es", env.editor, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteMissingItem(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)

	w := env.do(http.MethodDelete, "/api/cms/countries/ve/timeline/no-such-event?lang=es", env.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, content.Timeline.NotFoundMessage, errorOf(t, w))

	t.Run("pending editors also get 404", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/api/cms/countries/ve/timeline/no-such-event?lang=es", env.editor, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		changes, err := env.pending.ListChanges()
		require.NoError(t, err)
		assert.Empty(t, changes)
	})
}

func TestSectionCRUD_Admin(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)
	id := env.seedTimeline("Caracazo")
	assert.Equal(t, "caracazo", id)

	w := env.do(http.MethodGet, "/api/cms/countries/ve/timeline?lang=es", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["items"], 1)

	w = env.do(http.MethodGet, "/api/cms/countries/ve/timeline/"+id+"?lang=es", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Caracazo", decodeBody(t, w)["title"])

	w = env.do(http.MethodPost, "/api/cms/countries/ve/timeline?lang=es", env.admin, map[string]string{"title": "Sin fecha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, content.Timeline.RequiredMessage, errorOf(t, w))

	w = env.do(http.MethodDelete, "/api/cms/countries/ve/timeline/"+id+"?lang=es", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	found, err := env.content.HasItem(content.Timeline, "es", "ve", id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUnsupportedLanguage(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)

	w := env.do(http.MethodGet, "/api/cms/countries/ve/timeline?lang=xx", env.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Idioma no soportado", errorOf(t, w))
}

func TestCreateCountry(t *testing.T) {
	env := newTestEnv(t, fullApproval, false)

	t.Run("existing country is left untouched", func(t *testing.T) {
		before := env.snapshot()
		w := env.do(http.MethodPost, "/api/cms/countries", env.admin, map[string]string{"code": "ve", "name": "Otro", "lang": "es"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "El país ya existe", errorOf(t, w))
		assert.Equal(t, before, env.snapshot())
	})

	t.Run("missing fields", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/cms/countries", env.admin, map[string]string{"code": "co"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Código y nombre son requeridos", errorOf(t, w))
	})

	t.Run("creates and lists", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/cms/countries", env.admin, map[string]string{"code": "co", "name": "Colombia", "lang": "es"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, env.content.CountryExists("es", "co"))

		w = env.do(http.MethodGet, "/api/cms/countries?lang=es", env.editor, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["countries"], 2)
	})
}
