package team

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrMemberNotFound  = errors.New("team member not found")
	ErrMemberInactive  = errors.New("team member is inactive")
	ErrInvalidStatus   = errors.New("invalid member status")
)
