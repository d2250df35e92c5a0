package system

import "errors"

var (
	ErrNilBehavior       = errors.New("nil behavior")
	ErrDuplicateBehavior = errors.New("duplicate behavior name")
	ErrBehaviorPanic     = errors.New("behavior panicked")
)
