package capability

import (
	"sync"

	"stubctl/pkg/logging"
)

// Catalog is the flattened, ordered operation list of a capability set:
// operations declared on the set first, then those of every extended set,
// depth first in declaration order.
//
// Operations re-declared with the same name and signature on a more specific
// set stay distinct entries. An operation reachable through several extension
// paths appears once.
type Catalog struct {
	set    *Set
	ops    []*Operation
	index  map[*Operation]int
	byName map[string][]*Operation
	names  []string
}

var (
	catalogMu  sync.Mutex
	catalogGen uint64
)

// CatalogOf returns the catalog of s, computing it on first use. It is safe
// for concurrent use.
//
// The catalog is stored on s itself, so it is released together with the set;
// reloading declarations does not accumulate catalogs of discarded sets.
func CatalogOf(s *Set) *Catalog {
	if s == nil {
		return buildCatalog(nil)
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()

	if s.catalog != nil && s.catalogGen == catalogGen {
		return s.catalog
	}
	cat := buildCatalog(s)
	s.catalog, s.catalogGen = cat, catalogGen
	logging.Debug("Catalog", "Cataloged capability set %s: %d operations", s.Name(), len(cat.ops))
	return cat
}

// ResetCatalogCache invalidates every cached catalog. Sets keep their
// identity, so rebuilt catalogs contain the same operations.
func ResetCatalogCache() {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalogGen++
}

func buildCatalog(s *Set) *Catalog {
	cat := &Catalog{
		set:    s,
		index:  make(map[*Operation]int),
		byName: make(map[string][]*Operation),
	}
	if s == nil {
		return cat
	}

	visited := make(map[*Set]bool)
	var walk func(*Set)
	walk = func(cur *Set) {
		if visited[cur] {
			return
		}
		visited[cur] = true
		for _, op := range cur.declared {
			if _, seen := cat.index[op]; seen {
				continue
			}
			cat.index[op] = len(cat.ops)
			cat.ops = append(cat.ops, op)
			if _, known := cat.byName[op.name]; !known {
				cat.names = append(cat.names, op.name)
			}
			cat.byName[op.name] = append(cat.byName[op.name], op)
		}
		for _, ext := range cur.extends {
			walk(ext)
		}
	}
	walk(s)
	return cat
}

// Set returns the capability set the catalog describes.
func (c *Catalog) Set() *Set { return c.set }

// Operations returns every operation of the set in catalog order.
func (c *Catalog) Operations() []*Operation {
	return append([]*Operation(nil), c.ops...)
}

// Len returns the number of operations.
func (c *Catalog) Len() int { return len(c.ops) }

// Contains reports whether op belongs to the catalog, by identity.
func (c *Catalog) Contains(op *Operation) bool {
	_, ok := c.index[op]
	return ok
}

// Named returns the operations sharing a name, in catalog order.
func (c *Catalog) Named(name string) []*Operation {
	return append([]*Operation(nil), c.byName[name]...)
}

// Names returns the distinct operation names in order of first appearance.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Shadowed reports whether another operation in the catalog has the same
// name and signature as op, as happens when a set re-declares an inherited
// operation.
func (c *Catalog) Shadowed(op *Operation) bool {
	for _, other := range c.byName[op.name] {
		if other != op && other.sig.Equal(op.sig) {
			return true
		}
	}
	return false
}
