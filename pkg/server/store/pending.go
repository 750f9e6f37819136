package store

import (
	"errors"

	"github.com/velumpress/cms/pkg/model"
)

// ErrChangeNotFound is returned when a pending change doesn't exist
var ErrChangeNotFound = errors.New("pending change not found")

// PendingStore abstracts the moderation queue
type PendingStore interface {
	// Enqueue appends a change, assigning its id, creation time and status.
	Enqueue(change *model.PendingChange) (*model.PendingChange, error)

	// ListChanges returns queued changes in submission order
	ListChanges() ([]model.PendingChange, error)

	// GetChange returns a queued change. Returns ErrChangeNotFound if absent.
	GetChange(id string) (*model.PendingChange, error)

	// RemoveChange drops a queued change. Returns ErrChangeNotFound if absent.
	RemoveChange(id string) error
}
