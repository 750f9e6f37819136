package gorm

import (
	"gorm.io/gorm"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// Initialized reports whether any user has been stored
func (s *UsersStore) Initialized() (bool, error) {
	var count int64
	if err := s.db.Raw(`SELECT COUNT(*) FROM users`).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUsers returns all users in creation order
func (s *UsersStore) ListUsers() ([]model.User, error) {
	var rows []model.UserRow
	if err := s.db.Raw(`SELECT * FROM users ORDER BY created_at, id`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.User())
	}
	return users, nil
}

// GetUser returns the user with the given id
func (s *UsersStore) GetUser(id string) (*model.User, error) {
	return s.fetch(`SELECT * FROM users WHERE id = ?`, id)
}

// GetUserByUsername returns the user with the given login
func (s *UsersStore) GetUserByUsername(username string) (*model.User, error) {
	return s.fetch(`SELECT * FROM users WHERE username = ?`, username)
}

func (s *UsersStore) fetch(query string, arg string) (*model.User, error) {
	var rows []model.UserRow
	if err := s.db.Raw(query, arg).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrUserNotFound
	}
	u := rows[0].User()
	return &u, nil
}

// CreateUser inserts a user; the username is unique
func (s *UsersStore) CreateUser(user *model.User) error {
	row := model.NewUserRow(*user)
	tx := s.db.Exec(`
		INSERT INTO users (id, username, password_hash, role, name, countries,
			can_create, can_edit, can_delete, requires_approval, must_change_password, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, row.ID, row.Username, row.PasswordHash, row.Role, row.Name, row.Countries,
		row.CanCreate, row.CanEdit, row.CanDelete, row.RequiresApproval, row.MustChangePassword, row.CreatedAt)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserExists
	}
	return nil
}

// UpdateUser replaces the user with the same id
func (s *UsersStore) UpdateUser(user *model.User) error {
	row := model.NewUserRow(*user)
	tx := s.db.Exec(`
		UPDATE users SET username = ?, password_hash = ?, role = ?, name = ?, countries = ?,
			can_create = ?, can_edit = ?, can_delete = ?, requires_approval = ?, must_change_password = ?
		WHERE id = ?
	`, row.Username, row.PasswordHash, row.Role, row.Name, row.Countries,
		row.CanCreate, row.CanEdit, row.CanDelete, row.RequiresApproval, row.MustChangePassword, row.ID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user with the given id
func (s *UsersStore) DeleteUser(id string) error {
	tx := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
