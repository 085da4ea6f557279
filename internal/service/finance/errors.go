package finance

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidType     = errors.New("record type must be income or expense")
)
