package file

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// Ensure PendingStore implements store.PendingStore
var _ store.PendingStore = (*PendingStore)(nil)

type pendingDocument struct {
	Changes []model.PendingChange `json:"changes"`
}

// PendingStore implements store.PendingStore on top of pending-changes.json
type PendingStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewPendingStore creates a new PendingStore
func NewPendingStore(path string) *PendingStore {
	return &PendingStore{path: path, now: time.Now}
}

// Path is the backing file, watched by `cmsctl pending watch`
func (s *PendingStore) Path() string {
	return s.path
}

func (s *PendingStore) load() (*pendingDocument, error) {
	doc := &pendingDocument{}
	if _, err := readJSON(s.path, doc); err != nil {
		return nil, err
	}
	if doc.Changes == nil {
		doc.Changes = []model.PendingChange{}
	}
	return doc, nil
}

// Enqueue appends a change to the queue
func (s *PendingStore) Enqueue(change *model.PendingChange) (*model.PendingChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	queued := *change
	queued.ID = uuid.NewString()
	queued.CreatedAt = s.now().UTC()
	queued.Status = model.StatusPending

	doc.Changes = append(doc.Changes, queued)
	if err := writeJSON(s.path, doc); err != nil {
		return nil, err
	}
	return &queued, nil
}

// ListChanges returns the queue in submission order
func (s *PendingStore) ListChanges() ([]model.PendingChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Changes, nil
}

// GetChange returns a queued change
func (s *PendingStore) GetChange(id string) (*model.PendingChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Changes {
		if doc.Changes[i].ID == id {
			c := doc.Changes[i]
			return &c, nil
		}
	}
	return nil, store.ErrChangeNotFound
}

// RemoveChange drops a queued change
func (s *PendingStore) RemoveChange(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Changes {
		if doc.Changes[i].ID == id {
			doc.Changes = append(doc.Changes[:i], doc.Changes[i+1:]...)
			return writeJSON(s.path, doc)
		}
	}
	return store.ErrChangeNotFound
}
