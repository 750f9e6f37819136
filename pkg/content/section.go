package content

import (
	"github.com/velumpress/cms/pkg/model"
)

// Section names as used in routes and pending changes
const (
	SectionTimeline        = "timeline"
	SectionTestimonies     = "testimonies"
	SectionResistance      = "resistance"
	SectionAnalysts        = "analysts"
	SectionFototeca        = "fototeca"
	SectionVelum           = "velum"
	SectionTestimony       = "testimony"
	SectionResistanceEntry = "resistance-entry"
	SectionAnalysis        = "analysis"
	SectionDescription     = "description"
	SectionHeaders         = "section-headers"
	SectionCountries       = "countries"
)

// Section describes a top-level collection: an index file plus one detail
// file per record.
type Section struct {
	Name string
	// Dir is the directory under the country, or under the language for
	// language-level sections
	Dir           string
	LanguageLevel bool

	// Required fields must be non-empty on create; RequiredMessage is the 400 body
	Required        []string
	RequiredMessage string
	NotFoundMessage string

	// SlugFrom names the field an id is derived from when none is given;
	// empty means ids are random uuids
	SlugFrom string

	// Summary fields are duplicated into the index entry
	Summary []string

	// IndexOnly sections keep the whole record in the index
	IndexOnly bool

	// Defaults returns the initial values of a new record
	Defaults func() Record
}

// IndexFile is the index file name of the section
func (s *Section) IndexFile() string {
	return s.Dir + ".index.json"
}

// Child describes records nested inside a parent's detail file. The parent
// keeps a reference array; each child has its own detail file under
// <section>/<parentId>/<id>.json.
type Child struct {
	Name    string
	Parent  *Section
	Segment string
	// ParentKey names the parent id on pending changes
	ParentKey string
	// Field is the reference array in the parent's detail file
	Field string

	NotFoundMessage string
	Ref             []string
	Detail          []string
}

var childRequired = []string{"title"}

// Required fields of a child record
func (c *Child) Required() []string {
	return childRequired
}

// RequiredMessage is the 400 body for a child missing its title
func (c *Child) RequiredMessage() string {
	return "El título es requerido"
}

// Defaults returns the initial values of a new child
func (c *Child) Defaults() Record {
	return Record{
		"summary":    "",
		"date":       "",
		"media":      []any{},
		"paragraphs": []any{},
	}
}

var (
	Timeline = &Section{
		Name:            SectionTimeline,
		Dir:             "timeline",
		Required:        []string{"title", "date"},
		RequiredMessage: "Título y fecha son requeridos",
		NotFoundMessage: "Evento no encontrado",
		SlugFrom:        "title",
		Summary:         []string{"id", "date", "year", "month", "title", "summary", "image"},
		Defaults: func() Record {
			return Record{
				"year":       nil,
				"month":      nil,
				"summary":    "",
				"image":      nil,
				"video":      nil,
				"paragraphs": []any{},
				"sources":    []any{},
			}
		},
	}

	Testimonies = &Section{
		Name:            SectionTestimonies,
		Dir:             "testimonies",
		Required:        []string{"name"},
		RequiredMessage: "El nombre es requerido",
		NotFoundMessage: "Testigo no encontrado",
		SlugFrom:        "name",
		Summary:         []string{"id", "name", "image"},
		Defaults: func() Record {
			return Record{
				"bio":         "",
				"image":       nil,
				"social":      map[string]any{},
				"testimonies": []any{},
			}
		},
	}

	Resistance = &Section{
		Name:            SectionResistance,
		Dir:             "resistance",
		Required:        []string{"name"},
		RequiredMessage: "El nombre es requerido",
		NotFoundMessage: "Entrada no encontrada",
		SlugFrom:        "name",
		Summary:         []string{"id", "name", "image"},
		Defaults: func() Record {
			return Record{
				"bio":     "",
				"image":   nil,
				"social":  map[string]any{},
				"entries": []any{},
			}
		},
	}

	Analysts = &Section{
		Name:            SectionAnalysts,
		Dir:             "analysts",
		Required:        []string{"name"},
		RequiredMessage: "El nombre es requerido",
		NotFoundMessage: "Analista no encontrado",
		SlugFrom:        "name",
		Summary:         []string{"id", "name", "image"},
		Defaults: func() Record {
			return Record{
				"bio":      "",
				"image":    nil,
				"analyses": []any{},
			}
		},
	}

	Fototeca = &Section{
		Name:            SectionFototeca,
		Dir:             "fototeca",
		Required:        []string{"title", "url"},
		RequiredMessage: "Título y URL son requeridos",
		NotFoundMessage: "Elemento no encontrado",
		Summary:         []string{"id", "title", "date", "description", "type", "url"},
		IndexOnly:       true,
		Defaults: func() Record {
			return Record{
				"date":        "",
				"description": "",
				"type":        "image",
			}
		},
	}

	Velum = &Section{
		Name:            SectionVelum,
		Dir:             "velum",
		LanguageLevel:   true,
		Required:        []string{"title"},
		RequiredMessage: "El título es requerido",
		NotFoundMessage: "Artículo no encontrado",
		SlugFrom:        "title",
		Summary:         []string{"id", "title", "subtitle", "author", "coverImage", "date", "abstract", "keywords"},
		Defaults: func() Record {
			return Record{
				"subtitle":     "",
				"author":       "",
				"authorImage":  "",
				"coverImage":   "",
				"date":         "",
				"abstract":     "",
				"keywords":     []any{},
				"sections":     []any{},
				"bibliography": []any{},
			}
		},
	}
)

var (
	childRef    = []string{"id", "title", "summary", "date", "media"}
	childDetail = []string{"id", "title", "paragraphs", "media"}

	Testimony = &Child{
		Name:            SectionTestimony,
		Parent:          Testimonies,
		Segment:         "testimony",
		ParentKey:       model.ParentWitness,
		Field:           "testimonies",
		NotFoundMessage: "Testimonio no encontrado",
		Ref:             childRef,
		Detail:          childDetail,
	}

	ResistanceEntry = &Child{
		Name:            SectionResistanceEntry,
		Parent:          Resistance,
		Segment:         "entry",
		ParentKey:       model.ParentResistor,
		Field:           "entries",
		NotFoundMessage: "Entrada de resistencia no encontrada",
		Ref:             childRef,
		Detail:          childDetail,
	}

	Analysis = &Child{
		Name:            SectionAnalysis,
		Parent:          Analysts,
		Segment:         "analysis",
		ParentKey:       model.ParentAnalyst,
		Field:           "analyses",
		NotFoundMessage: "Análisis no encontrado",
		Ref:             childRef,
		Detail:          childDetail,
	}
)

// CountrySections are the collections living under a country directory
var CountrySections = []*Section{Timeline, Testimonies, Resistance, Analysts, Fototeca}

// Children are all nested collections
var Children = []*Child{Testimony, ResistanceEntry, Analysis}

// LookupSection finds a top-level section by name
func LookupSection(name string) (*Section, bool) {
	if name == SectionVelum {
		return Velum, true
	}
	for _, s := range CountrySections {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// LookupChild finds a nested collection by name
func LookupChild(name string) (*Child, bool) {
	for _, c := range Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
