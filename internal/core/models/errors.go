package models

import "errors"

var (
	ErrEntityNotFound   = errors.New("entity not found")
	ErrUnregisteredKind = errors.New("component kind not registered")
	ErrNilComponent     = errors.New("nil component")
)
