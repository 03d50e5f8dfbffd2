package capability

import "errors"

// Declaration errors
var (
	ErrNotAFunc             = errors.New("not a func type")
	ErrNotInterface         = errors.New("not an interface type")
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrNilSet               = errors.New("extended capability set is nil")
	ErrDuplicateDeclaration = errors.New("operation declared twice with the same signature")
)
