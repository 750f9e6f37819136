package content

import "errors"

var (
	// ErrNotFound is returned when a country, record or parent does not exist
	ErrNotFound = errors.New("content not found")

	// ErrExists is returned when creating a record whose id is already taken
	ErrExists = errors.New("content already exists")

	// ErrInvalid is returned when a payload fails validation
	ErrInvalid = errors.New("invalid content")
)

// Error is a content error carrying a user-facing message.
// errors.Is matches it against its Kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound returns an ErrNotFound error with msg
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Exists returns an ErrExists error with msg
func Exists(msg string) error {
	return &Error{Kind: ErrExists, Message: msg}
}

// Invalid returns an ErrInvalid error with msg
func Invalid(msg string) error {
	return &Error{Kind: ErrInvalid, Message: msg}
}

// Message extracts the user-facing message of err, or fallback
func Message(err error, fallback string) string {
	var ce *Error
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
