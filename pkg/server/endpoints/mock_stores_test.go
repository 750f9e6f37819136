package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/velumpress/cms/pkg/model"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) Initialized() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockUsersStore) ListUsers() ([]model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) GetUser(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) GetUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) UpdateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) DeleteUser(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPendingStore implements store.PendingStore for testing using testify/mock
type MockPendingStore struct {
	mock.Mock
}

func NewMockPendingStore() *MockPendingStore {
	return &MockPendingStore{}
}

func (m *MockPendingStore) Enqueue(change *model.PendingChange) (*model.PendingChange, error) {
	args := m.Called(change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PendingChange), args.Error(1)
}

func (m *MockPendingStore) ListChanges() ([]model.PendingChange, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PendingChange), args.Error(1)
}

func (m *MockPendingStore) GetChange(id string) (*model.PendingChange, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PendingChange), args.Error(1)
}

func (m *MockPendingStore) RemoveChange(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
