package cmd

import (
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"

	"stubctl/pkg/capability"
	"stubctl/pkg/capability/decl"
	"stubctl/pkg/logging"
)

var errNoDeclarations = errors.New("no declaration paths given; pass paths or set declarationPaths in the configuration")

// loadDocument loads the declarations at paths, falling back to the
// configured declaration paths.
func loadDocument(paths []string) (*decl.Document, error) {
	if len(paths) == 0 {
		paths = settings.DeclarationPaths
	}
	if len(paths) == 0 {
		return nil, errNoDeclarations
	}

	doc, err := decl.Load(paths...)
	if err != nil {
		logging.Error("CLI", err, "Failed to load declarations")
		return nil, err
	}
	logging.Info("CLI", "Loaded %d capability sets from %d paths", doc.Len(), len(paths))
	return doc, nil
}

// findSet returns the set called name, suggesting a close name on failure.
func findSet(doc *decl.Document, name string) (*capability.Set, error) {
	if set := doc.Set(name); set != nil {
		return set, nil
	}
	err := fmt.Errorf("%s: %w", name, decl.ErrUnknownSet)
	if matches := fuzzy.Find(name, doc.Names()); len(matches) > 0 {
		err = fmt.Errorf("%w; did you mean %s?", err, matches[0].Str)
	}
	return nil, err
}
