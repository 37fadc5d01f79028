package apperrors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound is returned by repositories when a write or read targets an id
// that does not exist in its collection.
var ErrNotFound = errors.New("record not found")

type UniqueViolationError struct {
	message string
	code    string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

type ForeignKeyViolationError struct {
	message string
	code    string
}

func (e *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

// WrapDBError categorizes a postgres error code into a typed error.
func WrapDBError(message, code string) error {
	switch code {
	case "23505":
		return &UniqueViolationError{message: message, code: code}
	case "23503":
		return &ForeignKeyViolationError{message: "value is referenced by other resources: " + message, code: code}
	default:
		return fmt.Errorf("uncategorized database error with code %s: %s", code, message)
	}
}

// FromPq maps a pq error to the taxonomy, passing other errors through.
func FromPq(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return WrapDBError(message, string(pqErr.Code))
	}
	return err
}

func IsUniqueViolation(err error) bool {
	var uv *UniqueViolationError
	return errors.As(err, &uv)
}
