package moderation

import (
	"errors"
	"fmt"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// ErrApply wraps failures to apply an approved change; the change stays queued
var ErrApply = errors.New("failed to apply change")

// Queue coordinates the pending store with the content store
type Queue struct {
	pending        store.PendingStore
	content        store.ContentStore
	applyOnApprove bool
}

// NewQueue creates a new Queue
func NewQueue(pending store.PendingStore, content store.ContentStore, applyOnApprove bool) *Queue {
	return &Queue{pending: pending, content: content, applyOnApprove: applyOnApprove}
}

// AppliesOnApprove reports whether approval writes payloads
func (q *Queue) AppliesOnApprove() bool {
	return q.applyOnApprove
}

// Submit queues a change on behalf of user
func (q *Queue) Submit(user *model.User, change *model.PendingChange) (*model.PendingChange, error) {
	change.UserID = user.ID
	change.UserName = user.Name
	if change.UserName == "" {
		change.UserName = user.Username
	}
	return q.pending.Enqueue(change)
}

// List returns the queue in submission order
func (q *Queue) List() ([]model.PendingChange, error) {
	return q.pending.ListChanges()
}

// Approve resolves a change as accepted. The returned bool reports whether
// the payload was written to the content tree.
func (q *Queue) Approve(id string) (*model.PendingChange, bool, error) {
	change, err := q.pending.GetChange(id)
	if err != nil {
		return nil, false, err
	}

	applied := false
	if q.applyOnApprove {
		if err := Apply(q.content, change); err != nil {
			return change, false, fmt.Errorf("%w: %w", ErrApply, err)
		}
		applied = true
	}

	if err := q.pending.RemoveChange(id); err != nil {
		return change, applied, err
	}
	return change, applied, nil
}

// Reject resolves a change as refused
func (q *Queue) Reject(id string) (*model.PendingChange, error) {
	change, err := q.pending.GetChange(id)
	if err != nil {
		return nil, err
	}
	if err := q.pending.RemoveChange(id); err != nil {
		return change, err
	}
	return change, nil
}
