package studio

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrProfileNotFound = errors.New("profile not found")
	ErrServiceConflict = errors.New("service with this name already exists")
)
