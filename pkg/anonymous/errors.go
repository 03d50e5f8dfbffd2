package anonymous

import (
	"errors"
	"fmt"
	"strings"

	"stubctl/pkg/capability"
)

// Configuration and call errors. Every error returned by this package wraps
// one of these, so callers can test with errors.Is.
var (
	// Registration errors
	ErrNotAMember        = errors.New("operation is not a member of the capability set")
	ErrNoMatch           = errors.New("could not determine target operation")
	ErrAmbiguousMatch    = errors.New("implementation matches multiple operations")
	ErrSignatureMismatch = errors.New("implementation does not match operation signature")
	ErrDuplicateBinding  = errors.New("operation already has an implementation")
	ErrNotCallable       = errors.New("implementation is not a function")

	// Build errors
	ErrIncompatibleTarget = errors.New("default target does not provide operation")
	ErrNoProxy            = errors.New("no proxy factory registered for capability set")

	// Call errors
	ErrUnimplemented = errors.New("operation is not implemented")
	ErrBadArguments  = errors.New("arguments do not fit operation signature")
)

// BindingError carries the context of a failed registration or call.
type BindingError struct {
	// Kind is one of the package sentinel errors.
	Kind error
	// Set is the name of the capability set involved.
	Set string
	// Name is the operation name that was asked for, if any.
	Name string
	// Operation is the resolved operation, if any.
	Operation *capability.Operation
	// Signature is the rendered signature of the candidate implementation.
	Signature string
	// Candidates lists operations considered for an ambiguous or failed match.
	Candidates []*capability.Operation
	// Suggestions lists similar operation names for a failed match.
	Suggestions []string
	// Detail adds free-form context.
	Detail string
}

func (e *BindingError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	switch {
	case e.Operation != nil:
		fmt.Fprintf(&b, ": %s", e.Operation)
	case e.Name != "":
		fmt.Fprintf(&b, ": %q", e.Name)
		if e.Set != "" {
			fmt.Fprintf(&b, " on %s", e.Set)
		}
	case e.Set != "":
		fmt.Fprintf(&b, ": %s", e.Set)
	}
	if e.Signature != "" {
		fmt.Fprintf(&b, " (implementation %s)", e.Signature)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if len(e.Candidates) > 0 {
		names := make([]string, len(e.Candidates))
		for i, op := range e.Candidates {
			names[i] = op.String()
		}
		fmt.Fprintf(&b, "; candidates: %s", strings.Join(names, ", "))
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, "; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// Unwrap returns the sentinel error.
func (e *BindingError) Unwrap() error { return e.Kind }
