package service

import (
	"errors"

	"github.com/iliyamo/greeting-service/internal/database"
)

// ErrValidation is returned when a greet request is missing one of its
// three keys.  Handlers translate it into HTTP 400.
var ErrValidation = errors.New("timeOfDay, language, and tone are required")

// ErrNotFound is returned when no greeting matches the request.  Handlers
// translate it into HTTP 404.
var ErrNotFound = errors.New("greeting not found for the specified criteria")

// InternalError wraps a storage failure.  Its message is the driver's own
// message, without the storage operation tag, and handlers pass it through
// to the client with HTTP 500.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	var se *database.StorageError
	if errors.As(e.Err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }
