package anonymous

import (
	"github.com/sahilm/fuzzy"

	"stubctl/pkg/capability"
)

const maxSuggestions = 3

// Match returns the single operation of cat named name whose signature is
// structurally equal to sig. No match fails with ErrNoMatch, more than one
// with ErrAmbiguousMatch; the first of several is never picked silently.
func Match(cat *capability.Catalog, sig capability.Signature, name string) (*capability.Operation, error) {
	named := cat.Named(name)

	var matches []*capability.Operation
	for _, op := range named {
		if op.Signature().Equal(sig) {
			matches = append(matches, op)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		err := &BindingError{
			Kind:       ErrNoMatch,
			Set:        cat.Set().Name(),
			Name:       name,
			Signature:  sig.String(),
			Candidates: named,
		}
		if len(named) == 0 {
			err.Suggestions = suggest(cat, name)
		}
		return nil, err
	default:
		return nil, &BindingError{
			Kind:       ErrAmbiguousMatch,
			Set:        cat.Set().Name(),
			Name:       name,
			Signature:  sig.String(),
			Candidates: matches,
		}
	}
}

// MatchName returns the single operation of cat named name, ignoring
// signatures. Overloaded names fail with ErrAmbiguousMatch.
func MatchName(cat *capability.Catalog, name string) (*capability.Operation, error) {
	named := cat.Named(name)
	switch len(named) {
	case 1:
		return named[0], nil
	case 0:
		return nil, &BindingError{Kind: ErrNoMatch, Set: cat.Set().Name(), Name: name, Suggestions: suggest(cat, name)}
	default:
		return nil, &BindingError{Kind: ErrAmbiguousMatch, Set: cat.Set().Name(), Name: name, Candidates: named}
	}
}

// Resolve checks that op, an explicit operation handle, belongs to cat.
func Resolve(cat *capability.Catalog, op *capability.Operation) (*capability.Operation, error) {
	if op == nil || !cat.Contains(op) {
		err := &BindingError{Kind: ErrNotAMember, Set: cat.Set().Name()}
		if op != nil {
			err.Detail = op.String()
		}
		return nil, err
	}
	return op, nil
}

// Candidates returns every operation of cat sharing the given name.
func Candidates(cat *capability.Catalog, name string) []*capability.Operation {
	return cat.Named(name)
}

// suggest returns catalog names close to name, best first.
func suggest(cat *capability.Catalog, name string) []string {
	if name == "" {
		return nil
	}
	var out []string
	for _, m := range fuzzy.Find(name, cat.Names()) {
		if m.Str == name {
			continue
		}
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
