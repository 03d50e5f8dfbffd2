package cli

import (
	"stubctl/pkg/capability"
)

// SetSummary describes one capability set in a sets listing.
type SetSummary struct {
	Name       string   `json:"name" yaml:"name"`
	Source     string   `json:"source,omitempty" yaml:"source,omitempty"`
	Extends    []string `json:"extends,omitempty" yaml:"extends,omitempty"`
	Declared   int      `json:"declared" yaml:"declared"`
	Operations int      `json:"operations" yaml:"operations"`
}

// OperationView is the printable form of a catalog operation.
type OperationView struct {
	Set       string `json:"set" yaml:"set"`
	Name      string `json:"name" yaml:"name"`
	Kind      string `json:"kind" yaml:"kind"`
	Signature string `json:"signature" yaml:"signature"`
	Binding   string `json:"binding,omitempty" yaml:"binding,omitempty"`
	Shadowed  bool   `json:"shadowed,omitempty" yaml:"shadowed,omitempty"`
}

// MatchResult is the outcome of resolving a name and signature against a
// catalog.
type MatchResult struct {
	Set         string          `json:"set" yaml:"set"`
	Name        string          `json:"name" yaml:"name"`
	Signature   string          `json:"signature" yaml:"signature"`
	Matched     *OperationView  `json:"matched,omitempty" yaml:"matched,omitempty"`
	Error       string          `json:"error,omitempty" yaml:"error,omitempty"`
	Candidates  []OperationView `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// SummarizeSet builds the listing entry for set.
func SummarizeSet(set *capability.Set, source string) SetSummary {
	summary := SetSummary{
		Name:       set.Name(),
		Source:     source,
		Declared:   len(set.Declared()),
		Operations: capability.CatalogOf(set).Len(),
	}
	for _, ext := range set.Extends() {
		summary.Extends = append(summary.Extends, ext.Name())
	}
	return summary
}

// ViewOf builds the printable form of op as it appears in cat.
func ViewOf(cat *capability.Catalog, op *capability.Operation) OperationView {
	return OperationView{
		Set:       op.Set().Name(),
		Name:      op.Name(),
		Kind:      op.Kind().String(),
		Signature: op.Signature().String(),
		Binding:   op.Binding(),
		Shadowed:  cat.Shadowed(op),
	}
}

// ViewsOf builds printable forms for ops, in order.
func ViewsOf(cat *capability.Catalog, ops []*capability.Operation) []OperationView {
	views := make([]OperationView, 0, len(ops))
	for _, op := range ops {
		views = append(views, ViewOf(cat, op))
	}
	return views
}
