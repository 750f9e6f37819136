package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// pendingColumns leaves out seq, which only orders the queue
const pendingColumns = `id, type, section, country_code, lang, item_id,
	witness_id, resistor_id, analyst_id, data, user_id, user_name, created_at, status`

// Ensure PendingStore implements store.PendingStore
var _ store.PendingStore = (*PendingStore)(nil)

// PendingStore implements store.PendingStore using GORM
type PendingStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPendingStore creates a new PendingStore
func NewPendingStore(db *gorm.DB) *PendingStore {
	return &PendingStore{db: db, now: time.Now}
}

// Enqueue inserts a change into the queue
func (s *PendingStore) Enqueue(change *model.PendingChange) (*model.PendingChange, error) {
	queued := *change
	queued.ID = uuid.NewString()
	queued.CreatedAt = s.now().UTC()
	queued.Status = model.StatusPending

	row, err := model.NewPendingChangeRow(queued)
	if err != nil {
		return nil, err
	}
	err = s.db.Exec(`
		INSERT INTO pending_changes (`+pendingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.Type, row.Section, row.CountryCode, row.Lang, row.ItemID,
		row.WitnessID, row.ResistorID, row.AnalystID, row.Data, row.UserID, row.UserName, row.CreatedAt, row.Status).Error
	if err != nil {
		return nil, err
	}
	return &queued, nil
}

// ListChanges returns the queue in insertion order
func (s *PendingStore) ListChanges() ([]model.PendingChange, error) {
	var rows []model.PendingChangeRow
	if err := s.db.Raw(`SELECT ` + pendingColumns + ` FROM pending_changes ORDER BY seq`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	changes := make([]model.PendingChange, 0, len(rows))
	for _, row := range rows {
		c, err := row.PendingChange()
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// GetChange returns a queued change
func (s *PendingStore) GetChange(id string) (*model.PendingChange, error) {
	var rows []model.PendingChangeRow
	if err := s.db.Raw(`SELECT `+pendingColumns+` FROM pending_changes WHERE id = ?`, id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrChangeNotFound
	}
	c, err := rows[0].PendingChange()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RemoveChange deletes a queued change
func (s *PendingStore) RemoveChange(id string) error {
	tx := s.db.Exec(`DELETE FROM pending_changes WHERE id = ?`, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrChangeNotFound
	}
	return nil
}
