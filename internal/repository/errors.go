// Package repository defines error types that are reused across the
// repositories.  These sentinel values allow higher layers such as the
// service and handlers to tell a missing row apart from a storage failure,
// which is always reported as a *database.StorageError.
package repository

import "errors"

// ErrGreetingNotFound is returned when no greeting matches the requested
// time of day, language and tone.
var ErrGreetingNotFound = errors.New("greeting not found")

// ErrInvalidGreeting is returned when a greeting with an empty field is
// about to be inserted.
var ErrInvalidGreeting = errors.New("greeting fields must be non-empty")
