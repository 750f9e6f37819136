package store

import (
	"github.com/velumpress/cms/pkg/content"
)

// ContentStore abstracts the published content tree. Errors wrap
// content.ErrNotFound, content.ErrExists or content.ErrInvalid and carry a
// user-facing message (see content.Message).
type ContentStore interface {
	// ListCountries returns the countries of a language, sorted by code
	ListCountries(lang string) ([]content.Country, error)

	// CountryExists reports whether the country directory exists
	CountryExists(lang, code string) bool

	// CreateCountry scaffolds a new country. Returns content.ErrExists when the
	// directory is already present, leaving it untouched.
	CreateCountry(lang, code, name string) (*content.Country, error)

	// GetDescription returns the description document, or its default
	GetDescription(lang, code string) (content.Record, error)

	// PutDescription replaces the description document
	PutDescription(lang, code string, data content.Record) (content.Record, error)

	// GetHeader returns a section header, or an empty one
	GetHeader(lang, code, section string) (content.Header, error)

	// PutHeader replaces a section header
	PutHeader(lang, code, section string, header content.Header) (content.Header, error)

	// ListItems returns the index entries of a section
	ListItems(sec *content.Section, lang, code string) ([]content.Record, error)

	// GetItem returns a record's detail (the index entry for index-only sections)
	GetItem(sec *content.Section, lang, code, id string) (content.Record, error)

	// HasItem reports whether id is present in the section index
	HasItem(sec *content.Section, lang, code, id string) (bool, error)

	// CreateItem stores a record prepared by content.Prepare and returns its summary
	CreateItem(sec *content.Section, lang, code string, rec content.Record) (content.Record, error)

	// UpdateItem merges data into a record and returns the updated detail
	UpdateItem(sec *content.Section, lang, code, id string, data content.Record) (content.Record, error)

	// DeleteItem removes a record, its detail file and its child directory
	DeleteItem(sec *content.Section, lang, code, id string) error

	// GetChild returns a nested record's detail
	GetChild(c *content.Child, lang, code, parentID, id string) (content.Record, error)

	// HasChild reports whether id is referenced by the parent
	HasChild(c *content.Child, lang, code, parentID, id string) (bool, error)

	// CreateChild stores a record prepared by content.PrepareChild under its
	// parent and returns the reference entry
	CreateChild(c *content.Child, lang, code, parentID string, rec content.Record) (content.Record, error)

	// UpdateChild merges data into a nested record and returns its detail
	UpdateChild(c *content.Child, lang, code, parentID, id string, data content.Record) (content.Record, error)

	// DeleteChild removes a nested record and its reference
	DeleteChild(c *content.Child, lang, code, parentID, id string) error
}
