package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UserRow is the users table
type UserRow struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	Username           string    `gorm:"column:username"`
	PasswordHash       string    `gorm:"column:password_hash"`
	Role               string    `gorm:"column:role"`
	Name               string    `gorm:"column:name"`
	Countries          string    `gorm:"column:countries"`
	CanCreate          bool      `gorm:"column:can_create"`
	CanEdit            bool      `gorm:"column:can_edit"`
	CanDelete          bool      `gorm:"column:can_delete"`
	RequiresApproval   bool      `gorm:"column:requires_approval"`
	MustChangePassword bool      `gorm:"column:must_change_password"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (UserRow) TableName() string {
	return "users"
}

// NewUserRow flattens a user for storage. Country codes never contain commas.
func NewUserRow(u User) UserRow {
	return UserRow{
		ID:                 u.ID,
		Username:           u.Username,
		PasswordHash:       u.Password,
		Role:               u.Role,
		Name:               u.Name,
		Countries:          strings.Join(u.Countries, ","),
		CanCreate:          u.Permissions.CanCreate,
		CanEdit:            u.Permissions.CanEdit,
		CanDelete:          u.Permissions.CanDelete,
		RequiresApproval:   u.Permissions.RequiresApproval,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}

// User converts the row back to the domain record
func (r UserRow) User() User {
	countries := []string{}
	if r.Countries != "" {
		countries = strings.Split(r.Countries, ",")
	}
	return User{
		ID:        r.ID,
		Username:  r.Username,
		Password:  r.PasswordHash,
		Role:      r.Role,
		Name:      r.Name,
		Countries: countries,
		Permissions: Permissions{
			CanCreate:        r.CanCreate,
			CanEdit:          r.CanEdit,
			CanDelete:        r.CanDelete,
			RequiresApproval: r.RequiresApproval,
		},
		CreatedAt:          r.CreatedAt,
		MustChangePassword: r.MustChangePassword,
	}
}

// PendingChangeRow is the pending_changes table
type PendingChangeRow struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Type        string    `gorm:"column:type"`
	Section     string    `gorm:"column:section"`
	CountryCode string    `gorm:"column:country_code"`
	Lang        string    `gorm:"column:lang"`
	ItemID      string    `gorm:"column:item_id"`
	WitnessID   string    `gorm:"column:witness_id"`
	ResistorID  string    `gorm:"column:resistor_id"`
	AnalystID   string    `gorm:"column:analyst_id"`
	Data        string    `gorm:"column:data"`
	UserID      string    `gorm:"column:user_id"`
	UserName    string    `gorm:"column:user_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	Status      string    `gorm:"column:status"`
}

func (PendingChangeRow) TableName() string {
	return "pending_changes"
}

// NewPendingChangeRow serializes the payload of a change for storage
func NewPendingChangeRow(c PendingChange) (PendingChangeRow, error) {
	data := ""
	if c.Data != nil {
		raw, err := json.Marshal(c.Data)
		if err != nil {
			return PendingChangeRow{}, fmt.Errorf("failed to encode change data: %w", err)
		}
		data = string(raw)
	}
	return PendingChangeRow{
		ID:          c.ID,
		Type:        c.Type.String(),
		Section:     c.Section,
		CountryCode: c.CountryCode,
		Lang:        c.Lang,
		ItemID:      c.ItemID,
		WitnessID:   c.WitnessID,
		ResistorID:  c.ResistorID,
		AnalystID:   c.AnalystID,
		Data:        data,
		UserID:      c.UserID,
		UserName:    c.UserName,
		CreatedAt:   c.CreatedAt,
		Status:      c.Status,
	}, nil
}

// PendingChange converts the row back to the domain record
func (r PendingChangeRow) PendingChange() (PendingChange, error) {
	changeType, err := ChangeTypeString(r.Type)
	if err != nil {
		return PendingChange{}, err
	}
	var data map[string]any
	if r.Data != "" {
		if err := json.Unmarshal([]byte(r.Data), &data); err != nil {
			return PendingChange{}, fmt.Errorf("failed to decode change data: %w", err)
		}
	}
	return PendingChange{
		ID:          r.ID,
		Type:        changeType,
		Section:     r.Section,
		CountryCode: r.CountryCode,
		Lang:        r.Lang,
		ItemID:      r.ItemID,
		WitnessID:   r.WitnessID,
		ResistorID:  r.ResistorID,
		AnalystID:   r.AnalystID,
		Data:        data,
		UserID:      r.UserID,
		UserName:    r.UserName,
		CreatedAt:   r.CreatedAt,
		Status:      r.Status,
	}, nil
}
