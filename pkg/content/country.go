package content

// TerminologyDir is a language-level directory that is not a country
const TerminologyDir = "terminology"

// SectionLabel is an entry of meta.json "sections"
type SectionLabel struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Meta is the on-disk shape of <country>/meta.json
type Meta struct {
	Name     string         `json:"name"`
	Sections []SectionLabel `json:"sections"`
}

// Country is a country as listed by the API
type Country struct {
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Sections []SectionLabel `json:"sections"`
}

// NewMeta returns the meta.json of a newly created country
func NewMeta(name string) Meta {
	return Meta{
		Name: name,
		Sections: []SectionLabel{
			{ID: "description", Label: "Descripción del conflicto"},
			{ID: "timeline", Label: "Timeline"},
			{ID: "testimonies", Label: "Testimonios"},
			{ID: "resistance", Label: "Resistencia"},
			{ID: "media-gallery", Label: "Fototeca"},
		},
	}
}

// ScaffoldDirs are created under a new country directory
var ScaffoldDirs = []string{
	"timeline",
	"testimonies",
	"analysts",
	"resistance",
	"fototeca",
	"media/images",
}

// ScaffoldIndexes are the sections whose empty index is written on creation
var ScaffoldIndexes = []*Section{Timeline, Testimonies, Analysts, Resistance, Fototeca}
