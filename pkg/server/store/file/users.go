package file

import (
	"sync"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

type usersDocument struct {
	Users []model.User `json:"users"`
}

// UsersStore implements store.UsersStore on top of users.json
type UsersStore struct {
	path string
	mu   sync.Mutex
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(path string) *UsersStore {
	return &UsersStore{path: path}
}

func (s *UsersStore) load() (*usersDocument, error) {
	doc := &usersDocument{}
	if _, err := readJSON(s.path, doc); err != nil {
		return nil, err
	}
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	return doc, nil
}

// Initialized reports whether users.json exists
func (s *UsersStore) Initialized() (bool, error) {
	return exists(s.path), nil
}

// ListUsers returns all users
func (s *UsersStore) ListUsers() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// GetUser returns the user with the given id
func (s *UsersStore) GetUser(id string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.ID == id })
}

// GetUserByUsername returns the user with the given login
func (s *UsersStore) GetUserByUsername(username string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Username == username })
}

func (s *UsersStore) find(match func(u *model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Users {
		if match(&doc.Users[i]) {
			u := doc.Users[i]
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// CreateUser appends a user
func (s *UsersStore) CreateUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range doc.Users {
		if u.Username == user.Username || u.ID == user.ID {
			return store.ErrUserExists
		}
	}
	doc.Users = append(doc.Users, *user)
	return writeJSON(s.path, doc)
}

// UpdateUser replaces the user with the same id
func (s *UsersStore) UpdateUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == user.ID {
			doc.Users[i] = *user
			return writeJSON(s.path, doc)
		}
	}
	return store.ErrUserNotFound
}

// DeleteUser removes the user with the given id
func (s *UsersStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
			return writeJSON(s.path, doc)
		}
	}
	return store.ErrUserNotFound
}
