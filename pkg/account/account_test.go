package account

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) Initialized() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockUsersStore) ListUsers() ([]model.User, error) {
	args := m.Called()
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
	return m.Called(user).Error(0)
}

func (m *MockUsersStore) UpdateUser(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUsersStore) DeleteUser(id string) error {
	return m.Called(id).Error(0)
}

var _ store.UsersStore = (*MockUsersStore)(nil)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword()
	require.NoError(t, err)
	b, err := GeneratePassword()
	require.NoError(t, err)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestNewUser_Defaults(t *testing.T) {
	u, err := NewUser(NewUserInput{Username: "maria", Password: "pw", Name: "María"})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, model.RoleEditor, u.Role)
	assert.Equal(t, []string{}, u.Countries)
	assert.Equal(t, model.DefaultEditorPermissions(), u.Permissions)
	assert.True(t, CheckPassword(u.Password, "pw"))

	_, err = NewUser(NewUserInput{Username: "x", Password: "pw", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = NewUser(NewUserInput{Username: "x", Password: strings.Repeat("p", MaxPasswordBytes+1)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	t.Run("first run with configured password", func(t *testing.T) {
		t.Setenv("ADMIN_INITIAL_PASSWORD", "changeme-now")
		users := &MockUsersStore{}
		users.On("Initialized").Return(false, nil)
		users.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "admin" && u.IsAdmin() && u.MustChangePassword &&
				CheckPassword(u.Password, "changeme-now") &&
				len(u.Countries) == 1 && u.Countries[0] == model.AllCountries
		})).Return(nil)

		password, err := EnsureDefaultAdmin(users)
		require.NoError(t, err)
		assert.Equal(t, "changeme-now", password)
		users.AssertExpectations(t)
	})

	t.Run("first run generates password", func(t *testing.T) {
		t.Setenv("ADMIN_INITIAL_PASSWORD", "")
		users := &MockUsersStore{}
		users.On("Initialized").Return(false, nil)
		users.On("CreateUser", mock.Anything).Return(nil)

		password, err := EnsureDefaultAdmin(users)
		require.NoError(t, err)
		assert.Len(t, password, 16)
	})

	t.Run("existing store untouched", func(t *testing.T) {
		users := &MockUsersStore{}
		users.On("Initialized").Return(true, nil)

		password, err := EnsureDefaultAdmin(users)
		require.NoError(t, err)
		assert.Empty(t, password)
		users.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		users := &MockUsersStore{}
		users.On("Initialized").Return(false, errors.New("disk"))

		_, err := EnsureDefaultAdmin(users)
		assert.Error(t, err)
	})
}

func TestResetPassword(t *testing.T) {
	users := &MockUsersStore{}
	users.On("GetUserByUsername", "maria").Return(&model.User{ID: "u-1", Username: "maria", MustChangePassword: true}, nil)
	users.On("UpdateUser", mock.MatchedBy(func(u *model.User) bool {
		return CheckPassword(u.Password, "nueva") && !u.MustChangePassword
	})).Return(nil)

	require.NoError(t, ResetPassword(users, "maria", "nueva"))
	users.AssertExpectations(t)

	missing := &MockUsersStore{}
	missing.On("GetUserByUsername", "nadie").Return(nil, store.ErrUserNotFound)
	assert.ErrorIs(t, ResetPassword(missing, "nadie", "x"), store.ErrUserNotFound)
}
