package decl

import "errors"

var (
	// ErrUnknownType is returned for a type expression naming no predeclared
	// or registered type.
	ErrUnknownType = errors.New("unknown type")
	// ErrTypeTooLarge is returned for array or channel types the runtime
	// cannot represent.
	ErrTypeTooLarge = errors.New("type too large")
	// ErrUnknownSet is returned when a set extends a name not declared in the
	// loaded documents.
	ErrUnknownSet = errors.New("unknown capability set")
	// ErrExtensionCycle is returned when sets extend each other in a cycle.
	ErrExtensionCycle = errors.New("capability set extension cycle")
	// ErrDuplicateSet is returned when two declarations share a set name.
	ErrDuplicateSet = errors.New("duplicate capability set")
	// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported declaration format")
)
