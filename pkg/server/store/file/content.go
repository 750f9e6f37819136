package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/server/store"
)

// Ensure ContentStore implements store.ContentStore
var _ store.ContentStore = (*ContentStore)(nil)

const (
	metaFile        = "meta.json"
	descriptionFile = "description.json"
	headersFile     = "section-headers.json"

	msgCountryNotFound = "País no encontrado"
	msgCountryExists   = "El país ya existe"
	msgDuplicateID     = "Ya existe un elemento con ese ID"
	msgInvalidPath     = "Ruta inválida"
)

// ContentStore implements store.ContentStore over the published JSON tree
type ContentStore struct {
	root string
	mu   sync.RWMutex
}

// NewContentStore creates a new ContentStore rooted at root
func NewContentStore(root string) *ContentStore {
	return &ContentStore{root: root}
}

// Root is the content directory
func (s *ContentStore) Root() string {
	return s.root
}

func checkSegments(segments ...string) error {
	for _, seg := range segments {
		if !content.ValidID(seg) {
			return content.Invalid(msgInvalidPath)
		}
	}
	return nil
}

func (s *ContentStore) countryDir(lang, code string) string {
	return filepath.Join(s.root, lang, code)
}

func (s *ContentStore) sectionDir(sec *content.Section, lang, code string) string {
	if sec.LanguageLevel {
		return filepath.Join(s.root, lang, sec.Dir)
	}
	return filepath.Join(s.root, lang, code, sec.Dir)
}

func (s *ContentStore) sectionSegments(sec *content.Section, lang, code string, ids ...string) error {
	segments := append([]string{lang}, ids...)
	if !sec.LanguageLevel {
		segments = append(segments, code)
	}
	return checkSegments(segments...)
}

// requireCountry fails with ErrNotFound unless the section's country exists
func (s *ContentStore) requireCountry(sec *content.Section, lang, code string) error {
	if sec.LanguageLevel {
		return nil
	}
	if !s.CountryExists(lang, code) {
		return content.NotFound(msgCountryNotFound)
	}
	return nil
}

// ListCountries lists the country directories of a language
func (s *ContentStore) ListCountries(lang string) ([]content.Country, error) {
	if err := checkSegments(lang); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.root, lang))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []content.Country{}, nil
		}
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	countries := make([]content.Country, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || name == content.TerminologyDir || name == content.Velum.Dir {
			continue
		}

		var meta content.Meta
		if _, err := readJSON(filepath.Join(s.root, lang, name, metaFile), &meta); err != nil {
			return nil, err
		}
		if meta.Name == "" {
			meta.Name = name
		}
		if meta.Sections == nil {
			meta.Sections = []content.SectionLabel{}
		}
		countries = append(countries, content.Country{Code: name, Name: meta.Name, Sections: meta.Sections})
	}
	return countries, nil
}

// CountryExists reports whether the country directory exists
func (s *ContentStore) CountryExists(lang, code string) bool {
	if checkSegments(lang, code) != nil {
		return false
	}
	info, err := os.Stat(s.countryDir(lang, code))
	return err == nil && info.IsDir()
}

// CreateCountry scaffolds a new country directory tree
func (s *ContentStore) CreateCountry(lang, code, name string) (*content.Country, error) {
	if err := checkSegments(lang, code); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.countryDir(lang, code)
	if exists(dir) {
		return nil, content.Exists(msgCountryExists)
	}

	for _, sub := range content.ScaffoldDirs {
		if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(sub)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create country %s: %w", code, err)
		}
	}

	meta := content.NewMeta(name)
	files := map[string]interface{}{
		metaFile:        meta,
		descriptionFile: content.NewDescription(nil),
		filepath.Join("media", "images.json"): map[string][]interface{}{"images": {}},
		filepath.Join("media", "videos.json"): map[string][]interface{}{"videos": {}},
	}
	for _, sec := range content.ScaffoldIndexes {
		files[filepath.Join(sec.Dir, sec.IndexFile())] = content.Index{Items: []content.Record{}}
	}
	for rel, doc := range files {
		if err := writeJSON(filepath.Join(dir, rel), doc); err != nil {
			return nil, err
		}
	}

	return &content.Country{Code: code, Name: name, Sections: meta.Sections}, nil
}

// GetDescription returns the description document of a country
func (s *ContentStore) GetDescription(lang, code string) (content.Record, error) {
	if err := checkSegments(lang, code); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc content.Record
	if _, err := readJSON(filepath.Join(s.countryDir(lang, code), descriptionFile), &doc); err != nil {
		return nil, err
	}
	return content.NewDescription(doc), nil
}

// PutDescription replaces the description document of a country
func (s *ContentStore) PutDescription(lang, code string, data content.Record) (content.Record, error) {
	if err := checkSegments(lang, code); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !exists(s.countryDir(lang, code)) {
		return nil, content.NotFound(msgCountryNotFound)
	}
	doc := content.NewDescription(data)
	if err := writeJSON(filepath.Join(s.countryDir(lang, code), descriptionFile), doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetHeader returns the header of a section, empty when unset
func (s *ContentStore) GetHeader(lang, code, section string) (content.Header, error) {
	if err := checkSegments(lang, code, section); err != nil {
		return content.Header{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	headers := map[string]content.Header{}
	if _, err := readJSON(filepath.Join(s.countryDir(lang, code), headersFile), &headers); err != nil {
		return content.Header{}, err
	}
	return headers[section], nil
}

// PutHeader replaces the header of a section
func (s *ContentStore) PutHeader(lang, code, section string, header content.Header) (content.Header, error) {
	if err := checkSegments(lang, code, section); err != nil {
		return content.Header{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !exists(s.countryDir(lang, code)) {
		return content.Header{}, content.NotFound(msgCountryNotFound)
	}

	path := filepath.Join(s.countryDir(lang, code), headersFile)
	headers := map[string]content.Header{}
	if _, err := readJSON(path, &headers); err != nil {
		return content.Header{}, err
	}
	if headers == nil {
		headers = map[string]content.Header{}
	}
	headers[section] = header
	if err := writeJSON(path, headers); err != nil {
		return content.Header{}, err
	}
	return header, nil
}

func (s *ContentStore) readIndex(sec *content.Section, lang, code string) (*content.Index, error) {
	idx := &content.Index{}
	if _, err := readJSON(filepath.Join(s.sectionDir(sec, lang, code), sec.IndexFile()), idx); err != nil {
		return nil, err
	}
	if idx.Items == nil {
		idx.Items = []content.Record{}
	}
	return idx, nil
}

func (s *ContentStore) writeIndex(sec *content.Section, lang, code string, idx *content.Index) error {
	return writeJSON(filepath.Join(s.sectionDir(sec, lang, code), sec.IndexFile()), idx)
}

func (s *ContentStore) detailPath(sec *content.Section, lang, code, id string) string {
	return filepath.Join(s.sectionDir(sec, lang, code), id+".json")
}

// ListItems returns the index entries of a section
func (s *ContentStore) ListItems(sec *content.Section, lang, code string) ([]content.Record, error) {
	if err := s.sectionSegments(sec, lang, code); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, err := s.readIndex(sec, lang, code)
	if err != nil {
		return nil, err
	}
	return idx.Items, nil
}

// GetItem returns the detail of a record
func (s *ContentStore) GetItem(sec *content.Section, lang, code, id string) (content.Record, error) {
	if err := s.sectionSegments(sec, lang, code, id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if sec.IndexOnly {
		idx, err := s.readIndex(sec, lang, code)
		if err != nil {
			return nil, err
		}
		if pos := content.FindIndex(idx.Items, id); pos >= 0 {
			return idx.Items[pos], nil
		}
		return nil, content.NotFound(sec.NotFoundMessage)
	}

	var rec content.Record
	found, err := readJSON(s.detailPath(sec, lang, code, id), &rec)
	if err != nil {
		return nil, err
	}
	if !found || rec == nil {
		return nil, content.NotFound(sec.NotFoundMessage)
	}
	return rec, nil
}

// HasItem reports whether id is listed in the section index
func (s *ContentStore) HasItem(sec *content.Section, lang, code, id string) (bool, error) {
	if err := s.sectionSegments(sec, lang, code, id); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, err := s.readIndex(sec, lang, code)
	if err != nil {
		return false, err
	}
	return content.FindIndex(idx.Items, id) >= 0, nil
}

// CreateItem writes the detail file, then appends the summary to the index
func (s *ContentStore) CreateItem(sec *content.Section, lang, code string, rec content.Record) (content.Record, error) {
	id := rec.ID()
	if err := s.sectionSegments(sec, lang, code, id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireCountry(sec, lang, code); err != nil {
		return nil, err
	}
	idx, err := s.readIndex(sec, lang, code)
	if err != nil {
		return nil, err
	}
	if content.FindIndex(idx.Items, id) >= 0 {
		return nil, content.Exists(msgDuplicateID)
	}

	summary := rec.Project(sec.Summary)
	if !sec.IndexOnly {
		if err := writeJSON(s.detailPath(sec, lang, code, id), rec); err != nil {
			return nil, err
		}
	}
	idx.Items = append(idx.Items, summary)
	if err := s.writeIndex(sec, lang, code, idx); err != nil {
		return nil, err
	}
	return summary, nil
}

// UpdateItem merges data into the index entry and the detail file
func (s *ContentStore) UpdateItem(sec *content.Section, lang, code, id string, data content.Record) (content.Record, error) {
	if err := s.sectionSegments(sec, lang, code, id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireCountry(sec, lang, code); err != nil {
		return nil, err
	}
	idx, err := s.readIndex(sec, lang, code)
	if err != nil {
		return nil, err
	}
	pos := content.FindIndex(idx.Items, id)
	if pos < 0 {
		return nil, content.NotFound(sec.NotFoundMessage)
	}
	idx.Items[pos].Merge(data, sec.Summary)

	if sec.IndexOnly {
		if err := s.writeIndex(sec, lang, code, idx); err != nil {
			return nil, err
		}
		return idx.Items[pos], nil
	}

	path := s.detailPath(sec, lang, code, id)
	var detail content.Record
	if _, err := readJSON(path, &detail); err != nil {
		return nil, err
	}
	if detail == nil {
		detail = content.Record{"id": id}
	}
	detail.Merge(data, nil)

	if err := writeJSON(path, detail); err != nil {
		return nil, err
	}
	if err := s.writeIndex(sec, lang, code, idx); err != nil {
		return nil, err
	}
	return detail, nil
}

// DeleteItem removes the index entry, the detail file and the child directory
func (s *ContentStore) DeleteItem(sec *content.Section, lang, code, id string) error {
	if err := s.sectionSegments(sec, lang, code, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireCountry(sec, lang, code); err != nil {
		return err
	}
	idx, err := s.readIndex(sec, lang, code)
	if err != nil {
		return err
	}
	pos := content.FindIndex(idx.Items, id)
	if pos < 0 {
		return content.NotFound(sec.NotFoundMessage)
	}
	idx.Items = append(idx.Items[:pos], idx.Items[pos+1:]...)
	if err := s.writeIndex(sec, lang, code, idx); err != nil {
		return err
	}

	if sec.IndexOnly {
		return nil
	}
	if err := removeFile(s.detailPath(sec, lang, code, id)); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.sectionDir(sec, lang, code), id)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", id, err)
	}
	return nil
}
