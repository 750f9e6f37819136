package file

import (
	"path/filepath"

	"github.com/velumpress/cms/pkg/content"
)

func (s *ContentStore) parentPath(c *content.Child, lang, code, parentID string) string {
	return s.detailPath(c.Parent, lang, code, parentID)
}

func (s *ContentStore) childPath(c *content.Child, lang, code, parentID, id string) string {
	return filepath.Join(s.sectionDir(c.Parent, lang, code), parentID, id+".json")
}

func (s *ContentStore) readParent(c *content.Child, lang, code, parentID string) (content.Record, error) {
	var parent content.Record
	found, err := readJSON(s.parentPath(c, lang, code, parentID), &parent)
	if err != nil {
		return nil, err
	}
	if !found || parent == nil {
		return nil, content.NotFound(c.Parent.NotFoundMessage)
	}
	return parent, nil
}

// GetChild returns the detail of a nested record
func (s *ContentStore) GetChild(c *content.Child, lang, code, parentID, id string) (content.Record, error) {
	if err := checkSegments(lang, code, parentID, id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec content.Record
	found, err := readJSON(s.childPath(c, lang, code, parentID, id), &rec)
	if err != nil {
		return nil, err
	}
	if !found || rec == nil {
		return nil, content.NotFound(c.NotFoundMessage)
	}
	return rec, nil
}

// HasChild reports whether the parent references id
func (s *ContentStore) HasChild(c *content.Child, lang, code, parentID, id string) (bool, error) {
	if err := checkSegments(lang, code, parentID, id); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	parent, err := s.readParent(c, lang, code, parentID)
	if err != nil {
		return false, err
	}
	return content.FindIndex(parent.Records(c.Field), id) >= 0, nil
}

// CreateChild writes the child detail and appends its reference to the parent
func (s *ContentStore) CreateChild(c *content.Child, lang, code, parentID string, rec content.Record) (content.Record, error) {
	id := rec.ID()
	if err := checkSegments(lang, code, parentID, id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireCountry(c.Parent, lang, code); err != nil {
		return nil, err
	}
	parent, err := s.readParent(c, lang, code, parentID)
	if err != nil {
		return nil, err
	}
	refs := parent.Records(c.Field)
	if content.FindIndex(refs, id) >= 0 {
		return nil, content.Exists(msgDuplicateID)
	}

	if err := writeJSON(s.childPath(c, lang, code, parentID, id), rec.Project(c.Detail)); err != nil {
		return nil, err
	}

	ref := rec.Project(c.Ref)
	parent[c.Field] = content.ToAny(append(refs, ref))
	if err := writeJSON(s.parentPath(c, lang, code, parentID), parent); err != nil {
		return nil, err
	}
	return ref, nil
}

// UpdateChild merges data into the parent's reference and the child detail
func (s *ContentStore) UpdateChild(c *content.Child, lang, code, parentID, id string, data content.Record) (content.Record, error) {
	if err := checkSegments(lang, code, parentID, id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireCountry(c.Parent, lang, code); err != nil {
		return nil, err
	}
	parent, err := s.readParent(c, lang, code, parentID)
	if err != nil {
		return nil, err
	}
	refs := parent.Records(c.Field)
	pos := content.FindIndex(refs, id)
	if pos < 0 {
		return nil, content.NotFound(c.NotFoundMessage)
	}
	refs[pos].Merge(data, c.Ref)
	parent[c.Field] = content.ToAny(refs)

	path := s.childPath(c, lang, code, parentID, id)
	var detail content.Record
	if _, err := readJSON(path, &detail); err != nil {
		return nil, err
	}
	if detail == nil {
		detail = content.Record{"id": id}
	}
	detail.Merge(data, c.Detail)

	if err := writeJSON(path, detail); err != nil {
		return nil, err
	}
	if err := writeJSON(s.parentPath(c, lang, code, parentID), parent); err != nil {
		return nil, err
	}
	return detail, nil
}

// DeleteChild drops the parent's reference and the child detail file
func (s *ContentStore) DeleteChild(c *content.Child, lang, code, parentID, id string) error {
	if err := checkSegments(lang, code, parentID, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireCountry(c.Parent, lang, code); err != nil {
		return err
	}
	parent, err := s.readParent(c, lang, code, parentID)
	if err != nil {
		return err
	}
	refs := parent.Records(c.Field)
	pos := content.FindIndex(refs, id)
	if pos < 0 {
		return content.NotFound(c.NotFoundMessage)
	}
	parent[c.Field] = content.ToAny(append(refs[:pos], refs[pos+1:]...))
	if err := writeJSON(s.parentPath(c, lang, code, parentID), parent); err != nil {
		return err
	}
	return removeFile(s.childPath(c, lang, code, parentID, id))
}
