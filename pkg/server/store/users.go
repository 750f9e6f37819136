package store

import (
	"errors"

	"github.com/velumpress/cms/pkg/model"
)

// ErrUserNotFound is returned when a user doesn't exist
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when a username is already taken
var ErrUserExists = errors.New("user already exists")

// UsersStore abstracts user account storage
type UsersStore interface {
	// Initialized reports whether the store has ever been written. The default
	// admin is only bootstrapped into an uninitialized store.
	Initialized() (bool, error)

	// ListUsers returns all users in creation order
	ListUsers() ([]model.User, error)

	// GetUser returns the user with the given id.
	// Returns ErrUserNotFound if absent.
	GetUser(id string) (*model.User, error)

	// GetUserByUsername returns the user with the given login.
	// Returns ErrUserNotFound if absent.
	GetUserByUsername(username string) (*model.User, error)

	// CreateUser stores a new user. Returns ErrUserExists on a duplicate username.
	CreateUser(user *model.User) error

	// UpdateUser replaces the stored user with the same id.
	// Returns ErrUserNotFound if absent.
	UpdateUser(user *model.User) error

	// DeleteUser removes a user. Returns ErrUserNotFound if absent.
	DeleteUser(id string) error
}
