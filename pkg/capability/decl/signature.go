package decl

import (
	"fmt"
	"reflect"
	"strings"

	"stubctl/pkg/capability"
)

// modePrefixes maps the leading word of a parameter to its mode. inout is
// listed before in so that the longer word wins.
var modePrefixes = []struct {
	word string
	mode capability.Mode
}{
	{"inout ", capability.ModeInOut},
	{"ref ", capability.ModeInOut},
	{"out ", capability.ModeOut},
	{"in ", capability.ModeIn},
}

// ParseSignature parses an operation signature written as a Go func type in
// which parameters may carry a mode word: "func(string, out int) bool".
// Parameter names are not supported.
func (r *TypeRegistry) ParseSignature(expr string) (capability.Signature, error) {
	s := strings.TrimSpace(expr)
	if !strings.HasPrefix(s, "func(") {
		return capability.Signature{}, fmt.Errorf("signature %q: must start with func(", expr)
	}

	end := closing(s, len("func"))
	if end < 0 {
		return capability.Signature{}, fmt.Errorf("signature %q: unbalanced parentheses", expr)
	}

	var params []capability.Param
	for _, p := range splitTopLevel(s[len("func("):end]) {
		mode := capability.ModeIn
		for _, prefix := range modePrefixes {
			if strings.HasPrefix(p, prefix.word) {
				mode = prefix.mode
				p = strings.TrimSpace(p[len(prefix.word):])
				break
			}
		}
		t, err := r.Parse(p)
		if err != nil {
			return capability.Signature{}, fmt.Errorf("signature %q: %w", expr, err)
		}
		params = append(params, capability.Param{Type: t, Mode: mode})
	}

	rest := strings.TrimSpace(s[end+1:])
	var resultExprs []string
	switch {
	case rest == "":
	case strings.HasPrefix(rest, "("):
		if closing(rest, 0) != len(rest)-1 {
			return capability.Signature{}, fmt.Errorf("signature %q: malformed result list", expr)
		}
		resultExprs = splitTopLevel(rest[1 : len(rest)-1])
	default:
		resultExprs = []string{rest}
	}

	results := make([]reflect.Type, 0, len(resultExprs))
	for _, re := range resultExprs {
		t, err := r.Parse(re)
		if err != nil {
			return capability.Signature{}, fmt.Errorf("signature %q: %w", expr, err)
		}
		results = append(results, t)
	}

	return capability.Sig(params...).Returns(results...), nil
}

// closing returns the index of the bracket closing the one at open, or -1.
func closing(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s at commas outside brackets and trims each part.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
