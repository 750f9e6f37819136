package content

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Golpe de Estado", "golpe-de-estado"},
		{"Año 1973: ¡Represión!", "ano-1973-represion"},
		{"  María José  ", "maria-jose"},
		{"Ñandú", "nandu"},
		{"???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.in))
		})
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("ve"))
	assert.True(t, ValidID("golpe-1973"))
	assert.True(t, ValidID("v2.final_x"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID(".."))
	assert.False(t, ValidID("../etc"))
	assert.False(t, ValidID("a/b"))
}

func TestPrepare_Timeline(t *testing.T) {
	rec, err := Prepare(Timeline, Record{"title": "Golpe de Estado", "date": "1973-09-11", "year": 1973.0})
	require.NoError(t, err)

	assert.Equal(t, "golpe-de-estado", rec.ID())
	assert.Equal(t, 1973.0, rec["year"])
	assert.Nil(t, rec["month"])
	assert.Equal(t, "", rec["summary"])
	assert.Equal(t, []any{}, rec["paragraphs"])

	summary := rec.Project(Timeline.Summary)
	assert.NotContains(t, summary, "paragraphs")
	assert.Contains(t, summary, "image")
}

func TestPrepare_GivenID(t *testing.T) {
	rec, err := Prepare(Testimonies, Record{"id": "ana", "name": "Ana Pérez"})
	require.NoError(t, err)
	assert.Equal(t, "ana", rec.ID())
	assert.Equal(t, []any{}, rec["testimonies"])

	_, err = Prepare(Testimonies, Record{"id": "../ana", "name": "Ana"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPrepare_Fototeca(t *testing.T) {
	rec, err := Prepare(Fototeca, Record{"id": "ignored", "title": "Foto", "url": "/imagenes/a.jpg"})
	require.NoError(t, err)

	_, err = uuid.Parse(rec.ID())
	assert.NoError(t, err)
	assert.Equal(t, "image", rec["type"])
}

func TestPrepare_Required(t *testing.T) {
	tests := []struct {
		name string
		sec  *Section
		data Record
		msg  string
	}{
		{"timeline without date", Timeline, Record{"title": "x"}, "Título y fecha son requeridos"},
		{"witness blank name", Testimonies, Record{"name": "  "}, "El nombre es requerido"},
		{"fototeca without url", Fototeca, Record{"title": "x"}, "Título y URL son requeridos"},
		{"velum without title", Velum, Record{}, "El título es requerido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare(tt.sec, tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Equal(t, tt.msg, Message(err, ""))
		})
	}
}

func TestPrepareChild(t *testing.T) {
	rec, err := PrepareChild(Testimony, Record{"title": "La noche", "paragraphs": []any{"uno"}})
	require.NoError(t, err)
	assert.Equal(t, "la-noche", rec.ID())
	assert.Equal(t, []any{"uno"}, rec["paragraphs"])
	assert.Equal(t, []any{}, rec["media"])

	ref := rec.Project(Testimony.Ref)
	assert.NotContains(t, ref, "paragraphs")

	_, err = PrepareChild(Analysis, Record{"summary": "x"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCheckUpdate(t *testing.T) {
	assert.NoError(t, CheckUpdate("a", Record{"title": "x"}))
	assert.NoError(t, CheckUpdate("a", Record{"id": "a"}))
	assert.ErrorIs(t, CheckUpdate("a", Record{"id": "b"}), ErrInvalid)
}

func TestRecord_Merge(t *testing.T) {
	entry := Record{"id": "a", "name": "Ana", "image": nil}
	entry.Merge(Record{"id": "b", "name": "Ana P.", "bio": "x"}, Testimonies.Summary)
	assert.Equal(t, Record{"id": "a", "name": "Ana P.", "image": nil}, entry)

	detail := Record{"id": "a", "bio": ""}
	detail.Merge(Record{"id": "b", "bio": "nueva"}, nil)
	assert.Equal(t, Record{"id": "a", "bio": "nueva"}, detail)
}

func TestLookup(t *testing.T) {
	sec, ok := LookupSection("velum")
	require.True(t, ok)
	assert.True(t, sec.LanguageLevel)
	assert.Equal(t, "velum.index.json", sec.IndexFile())

	_, ok = LookupSection("description")
	assert.False(t, ok)

	child, ok := LookupChild("resistance-entry")
	require.True(t, ok)
	assert.Equal(t, Resistance, child.Parent)
	assert.Equal(t, "entries", child.Field)
}

func TestChapters(t *testing.T) {
	desc := NewDescription(Record{"chapters": []any{
		map[string]any{"id": "c1", "title": "Inicio", "paragraphs": []any{"texto", map[string]any{"type": "image", "content": "/imagenes/x.jpg"}}},
		map[string]any{"id": "c2", "title": "Bloques", "contentBlocks": []any{map[string]any{"type": "text", "content": "hola"}}},
	}})
	assert.Equal(t, DefaultDescriptionTitle, desc["title"])

	chapters := Chapters(desc)
	require.Len(t, chapters, 2)
	assert.Equal(t, []Block{{Type: "text", Content: "texto"}, {Type: "image", Content: "/imagenes/x.jpg", URL: "/imagenes/x.jpg"}}, chapters[0].Blocks)
	assert.Equal(t, "hola", chapters[1].Blocks[0].Content)
}
