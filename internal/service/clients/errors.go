package clients

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrClientNotFound  = errors.New("client not found")
)
