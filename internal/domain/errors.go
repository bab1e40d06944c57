package domain

import "errors"

var (
	ErrConflict      = errors.New("conflicting tracking request")
	ErrDuplicateName = errors.New("activity name already exists in this branch")
	ErrNotFound      = errors.New("not found")
	ErrStorage       = errors.New("storage failure")
	ErrValidation    = errors.New("validation failed")
)
