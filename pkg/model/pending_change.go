package model

import "time"

//go:generate go run github.com/dmarkham/enumer -type ChangeType -trimprefix ChangeType -transform lower -json -text -output change_type_enumer.go

// ChangeType is the kind of mutation a pending change proposes
type ChangeType int

const (
	ChangeTypeCreate ChangeType = iota
	ChangeTypeEdit
	ChangeTypeDelete
)

// StatusPending is the only status a queued change ever has
const StatusPending = "pending"

// Parent id keys as they appear on pending changes
const (
	ParentWitness  = "witnessId"
	ParentResistor = "resistorId"
	ParentAnalyst  = "analystId"
)

// PendingChange is a proposed, unapplied mutation awaiting moderation
type PendingChange struct {
	ID          string         `json:"id"`
	Type        ChangeType     `json:"type"`
	Section     string         `json:"section"`
	CountryCode string         `json:"countryCode,omitempty"`
	Lang        string         `json:"lang"`
	ItemID      string         `json:"itemId,omitempty"`
	WitnessID   string         `json:"witnessId,omitempty"`
	ResistorID  string         `json:"resistorId,omitempty"`
	AnalystID   string         `json:"analystId,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	UserID      string         `json:"userId"`
	UserName    string         `json:"userName"`
	CreatedAt   time.Time      `json:"createdAt"`
	Status      string         `json:"status"`
}

// SetParent records the id of the parent record under the given key
func (c *PendingChange) SetParent(key, id string) {
	switch key {
	case ParentWitness:
		c.WitnessID = id
	case ParentResistor:
		c.ResistorID = id
	case ParentAnalyst:
		c.AnalystID = id
	}
}

// Parent returns the parent record id stored under key
func (c *PendingChange) Parent(key string) string {
	switch key {
	case ParentWitness:
		return c.WitnessID
	case ParentResistor:
		return c.ResistorID
	case ParentAnalyst:
		return c.AnalystID
	}
	return ""
}

// Title is a human label for the proposed data, used by moderation listings
func (c *PendingChange) Title() string {
	for _, key := range []string{"title", "name"} {
		if s, ok := c.Data[key].(string); ok && s != "" {
			return s
		}
	}
	return c.ItemID
}
