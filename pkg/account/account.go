package account

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// HashCost is the bcrypt cost of stored passwords
const HashCost = 10

const generatedPasswordLength = 16

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GeneratePassword returns a random 16 character password
func GeneratePassword() (string, error) {
	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw)[:generatedPasswordLength], nil
}

// NewUserInput describes a user to create; nil fields take editor defaults
type NewUserInput struct {
	Username    string
	Password    string
	Name        string
	Role        string
	Countries   []string
	Permissions *model.Permissions
}

// NewUser builds a user with a fresh id and hashed password
func NewUser(in NewUserInput) (*model.User, error) {
	role := in.Role
	if role == "" {
		role = model.RoleEditor
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	countries := in.Countries
	if countries == nil {
		countries = []string{}
	}
	permissions := model.DefaultEditorPermissions()
	if in.Permissions != nil {
		permissions = *in.Permissions
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	return &model.User{
		ID:          uuid.NewString(),
		Username:    in.Username,
		Password:    hash,
		Role:        role,
		Name:        in.Name,
		Countries:   countries,
		Permissions: permissions,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// EnsureDefaultAdmin creates the bootstrap admin when the store has never
// been initialized. It returns the plaintext password when an account was
// created, and "" otherwise.
func EnsureDefaultAdmin(users store.UsersStore) (string, error) {
	initialized, err := users.Initialized()
	if err != nil {
		return "", err
	}
	if initialized {
		return "", nil
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		if password, err = GeneratePassword(); err != nil {
			return "", err
		}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	admin := &model.User{
		ID:        model.AdminUsername,
		Username:  model.AdminUsername,
		Password:  hash,
		Role:      model.RoleAdmin,
		Name:      "Administrador",
		Countries: []string{model.AllCountries},
		Permissions: model.Permissions{
			CanCreate: true,
			CanEdit:   true,
			CanDelete: true,
		},
		CreatedAt:          time.Now().UTC(),
		MustChangePassword: true,
	}
	if err := users.CreateUser(admin); err != nil {
		return "", fmt.Errorf("failed to create default admin: %w", err)
	}
	return password, nil
}

// ResetPassword sets a new password for the user with the given username
func ResetPassword(users store.UsersStore, username, password string) error {
	u, err := users.GetUserByUsername(username)
	if err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash
	u.MustChangePassword = false
	return users.UpdateUser(u)
}
