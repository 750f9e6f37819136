package moderation

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
	"github.com/velumpress/cms/pkg/server/store/file"
)

var editor = &model.User{ID: "u-1", Username: "maria", Name: "María", Role: model.RoleEditor}

func setup(t *testing.T, applyOnApprove bool) (*Queue, *file.ContentStore) {
	t.Helper()
	dir := t.TempDir()
	cs := file.NewContentStore(filepath.Join(dir, "content"))
	_, err := cs.CreateCountry("es", "ve", "Venezuela")
	require.NoError(t, err)
	return NewQueue(file.NewPendingStore(filepath.Join(dir, "pending-changes.json")), cs, applyOnApprove), cs
}

func submitTimeline(t *testing.T, q *Queue) *model.PendingChange {
	t.Helper()
	rec, err := content.Prepare(content.Timeline, content.Record{"title": "Golpe", "date": "2002-04-11"})
	require.NoError(t, err)
	change, err := q.Submit(editor, &model.PendingChange{
		Type:        model.ChangeTypeCreate,
		Section:     content.SectionTimeline,
		CountryCode: "ve",
		Lang:        "es",
		Data:        rec,
	})
	require.NoError(t, err)
	return change
}

func TestSubmit(t *testing.T) {
	q, _ := setup(t, false)
	change := submitTimeline(t, q)

	assert.Equal(t, "u-1", change.UserID)
	assert.Equal(t, "María", change.UserName)

	changes, err := q.List()
	require.NoError(t, err)
	assert.Len(t, changes, 1)
}

func TestApprove_DoesNotApplyByDefault(t *testing.T) {
	q, cs := setup(t, false)
	change := submitTimeline(t, q)

	_, applied, err := q.Approve(change.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	changes, err := q.List()
	require.NoError(t, err)
	assert.Empty(t, changes)

	items, err := cs.ListItems(content.Timeline, "es", "ve")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestApprove_AppliesWhenConfigured(t *testing.T) {
	q, cs := setup(t, true)
	change := submitTimeline(t, q)

	_, applied, err := q.Approve(change.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	detail, err := cs.GetItem(content.Timeline, "es", "ve", "golpe")
	require.NoError(t, err)
	assert.Equal(t, "Golpe", detail["title"])
}

func TestApprove_FailedApplyKeepsChange(t *testing.T) {
	q, _ := setup(t, true)
	change, err := q.Submit(editor, &model.PendingChange{
		Type:        model.ChangeTypeDelete,
		Section:     content.SectionTimeline,
		CountryCode: "ve",
		Lang:        "es",
		ItemID:      "missing",
	})
	require.NoError(t, err)

	_, _, err = q.Approve(change.ID)
	assert.ErrorIs(t, err, ErrApply)
	assert.ErrorIs(t, err, content.ErrNotFound)

	changes, err := q.List()
	require.NoError(t, err)
	assert.Len(t, changes, 1)
}

func TestReject(t *testing.T) {
	q, _ := setup(t, true)
	change := submitTimeline(t, q)

	_, err := q.Reject(change.ID)
	require.NoError(t, err)

	_, err = q.Reject(change.ID)
	assert.ErrorIs(t, err, store.ErrChangeNotFound)

	_, _, err = q.Approve(change.ID)
	assert.ErrorIs(t, err, store.ErrChangeNotFound)
}

func TestApply_Children(t *testing.T) {
	_, cs := setup(t, true)
	witness, err := content.Prepare(content.Testimonies, content.Record{"id": "ana", "name": "Ana"})
	require.NoError(t, err)
	_, err = cs.CreateItem(content.Testimonies, "es", "ve", witness)
	require.NoError(t, err)

	create := &model.PendingChange{
		Type:        model.ChangeTypeCreate,
		Section:     content.SectionTestimony,
		CountryCode: "ve",
		Lang:        "es",
		Data:        map[string]any{"title": "La noche"},
	}
	create.SetParent(model.ParentWitness, "ana")
	require.NoError(t, Apply(cs, create))

	edit := &model.PendingChange{
		Type:        model.ChangeTypeEdit,
		Section:     content.SectionTestimony,
		CountryCode: "ve",
		Lang:        "es",
		ItemID:      "la-noche",
		WitnessID:   "ana",
		Data:        map[string]any{"paragraphs": []any{"p"}},
	}
	require.NoError(t, Apply(cs, edit))

	detail, err := cs.GetChild(content.Testimony, "es", "ve", "ana", "la-noche")
	require.NoError(t, err)
	assert.Equal(t, []any{"p"}, detail["paragraphs"])

	del := &model.PendingChange{Type: model.ChangeTypeDelete, Section: content.SectionTestimony, CountryCode: "ve", Lang: "es", ItemID: "la-noche", WitnessID: "ana"}
	require.NoError(t, Apply(cs, del))
	_, err = cs.GetChild(content.Testimony, "es", "ve", "ana", "la-noche")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestApply_Documents(t *testing.T) {
	_, cs := setup(t, true)

	require.NoError(t, Apply(cs, &model.PendingChange{
		Type: model.ChangeTypeEdit, Section: content.SectionHeaders, CountryCode: "ve", Lang: "es",
		ItemID: "timeline", Data: map[string]any{"title": "Cronología"},
	}))
	header, err := cs.GetHeader("es", "ve", "timeline")
	require.NoError(t, err)
	assert.Equal(t, "Cronología", header.Title)

	require.NoError(t, Apply(cs, &model.PendingChange{
		Type: model.ChangeTypeCreate, Section: content.SectionCountries, Lang: "es",
		Data: map[string]any{"code": "co", "name": "Colombia"},
	}))
	assert.True(t, cs.CountryExists("es", "co"))

	err = Apply(cs, &model.PendingChange{Type: model.ChangeTypeEdit, Section: "maps", Lang: "es"})
	assert.Error(t, err)
}
