package state

import "errors"

var (
	ErrNotRunning     = errors.New("state machine is not running")
	ErrAlreadyRunning = errors.New("state machine already running")
	ErrNilState       = errors.New("nil state")
	ErrInvalidSession = errors.New("invalid session configuration")
)
