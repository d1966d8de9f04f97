package types

import "errors"

// Entity errors.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidCode       = errors.New("invalid code")
	ErrInvalidRange      = errors.New("invalid rating range")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrInvalidOffsets    = errors.New("end offset precedes start offset")
	ErrInvalidTime       = errors.New("end time precedes start time")
)
