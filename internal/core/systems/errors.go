package systems

import "errors"

var ErrMissingResource = errors.New("required resource not installed")
