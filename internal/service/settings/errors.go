package settings

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnknownSetting  = errors.New("unknown settings name")
)
