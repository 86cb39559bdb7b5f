package database

import "errors"

var (
	// ErrProjectNotFound is returned when no project has the requested id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidProjectID is returned for ids the backend cannot parse.
	ErrInvalidProjectID = errors.New("invalid project id")
)
