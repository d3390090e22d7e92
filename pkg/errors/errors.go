package errors

import "errors"

var (
	ErrAuthentication = errors.New("authentication failed")
	ErrInvalidData    = errors.New("invalid data type")
	ErrEmptyToken     = errors.New("empty bearer token")
	ErrConfigCorrupt  = errors.New("config file is corrupt")
)
