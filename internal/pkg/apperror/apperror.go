package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindIntegrity
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindIntegrity:
		return "integrity"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrIntegrity  = errors.New("integrity violation")
	ErrStorage    = errors.New("storage failure")
)

var sentinels = map[Kind]error{
	KindNotFound:   ErrNotFound,
	KindValidation: ErrValidation,
	KindIntegrity:  ErrIntegrity,
	KindStorage:    ErrStorage,
}

// Error carries a kind, a message that is safe to show to a caller, and the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Integrity(msg string) error {
	return &Error{Kind: KindIntegrity, Message: msg}
}

// Storage wraps an engine error. An error that already carries a kind is returned unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: KindStorage, Message: "storage failure", Op: op, Err: err}
}

// KindOf reports the kind of err, or zero when err carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// PublicMessage is the text that may be shown to an API caller.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindStorage {
		return appErr.Message
	}
	return "Internal server error"
}
