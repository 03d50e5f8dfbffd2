package capability

// Set is one capability-set declaration: the operations it declares directly
// plus the sets it extends. Sets are created by Declaration.Build or
// FromInterface and never change afterwards.
type Set struct {
	name     string
	declared []*Operation
	extends  []*Set

	// catalog is filled by CatalogOf and valid while catalogGen equals the
	// current cache generation. Guarded by catalogMu.
	catalog    *Catalog
	catalogGen uint64
}

// Name returns the declared name of the set.
func (s *Set) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Declared returns the operations declared directly on the set, in
// declaration order.
func (s *Set) Declared() []*Operation {
	return append([]*Operation(nil), s.declared...)
}

// Extends returns the sets this set extends.
func (s *Set) Extends() []*Set {
	return append([]*Set(nil), s.extends...)
}

// Operation returns the operation declared directly on s with the given name
// and signature, or nil. Inherited operations are not considered, so a base
// set's handle can be obtained from the base set even when a derived set
// re-declares it.
func (s *Set) Operation(name string, sig Signature) *Operation {
	for _, op := range s.declared {
		if op.name == name && op.sig.Equal(sig) {
			return op
		}
	}
	return nil
}

// Lookup returns the single operation declared directly on s with the given
// name. It returns nil when there is none or when the name is overloaded.
func (s *Set) Lookup(name string) *Operation {
	var found *Operation
	for _, op := range s.declared {
		if op.name != name {
			continue
		}
		if found != nil {
			return nil
		}
		found = op
	}
	return found
}

func (s *Set) String() string { return s.name }
