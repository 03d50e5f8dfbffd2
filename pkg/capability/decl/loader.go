package decl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"stubctl/pkg/capability"
	"stubctl/pkg/logging"
)

// Format is the encoding of a declaration document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Document holds the capability sets built from one or more declaration
// files.
type Document struct {
	sets    map[string]*capability.Set
	sources map[string]string
	order   []string
}

// Set returns the set declared under name, or nil.
func (d *Document) Set(name string) *capability.Set {
	return d.sets[name]
}

// Names returns the declared set names in the order they were read.
func (d *Document) Names() []string {
	return append([]string(nil), d.order...)
}

// Source returns the file a set was declared in.
func (d *Document) Source(name string) string {
	return d.sources[name]
}

// Len returns the number of sets in the document.
func (d *Document) Len() int { return len(d.order) }

// Loader reads declaration files into capability sets.
type Loader struct {
	types *TypeRegistry
	specs []setSpec
}

// NewLoader creates a loader resolving types through types. A nil registry
// is replaced by NewTypeRegistry().
func NewLoader(types *TypeRegistry) *Loader {
	if types == nil {
		types = NewTypeRegistry()
	}
	return &Loader{types: types}
}

// Types returns the loader's type registry.
func (l *Loader) Types() *TypeRegistry { return l.types }

// Load reads every path and builds the sets. Directories contribute their
// *.yaml, *.yml and *.toml files, without recursing.
func Load(paths ...string) (*Document, error) {
	return NewLoader(nil).Load(paths...)
}

// Load reads every path, then builds all sets read so far, including those
// added with Read.
func (l *Loader) Load(paths ...string) (*Document, error) {
	for _, p := range paths {
		if err := l.addPath(p); err != nil {
			return nil, err
		}
	}
	return l.Build()
}

func (l *Loader) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read declarations: %w", err)
	}
	if !info.IsDir() {
		return l.addFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read declaration directory %s: %w", path, err)
	}
	found := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}
		if err := l.addFile(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
		found++
	}
	logging.Debug("DeclLoader", "Read %d declaration files from %s", found, path)
	return nil
}

func (l *Loader) addFile(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read declarations: %w", err)
	}
	defer f.Close()
	return l.read(f, format, path)
}

// Read decodes one document from r. source names it in errors.
func (l *Loader) Read(r io.Reader, format Format, source string) error {
	return l.read(r, format, source)
}

func (l *Loader) read(r io.Reader, format Format, source string) error {
	var doc file
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: %w", source, err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%s: unknown field %s", source, undecoded[0])
		}
	default:
		return fmt.Errorf("%s: %w", source, ErrUnsupportedFormat)
	}

	for _, s := range doc.Sets {
		s.source = source
		l.specs = append(l.specs, s)
	}
	logging.Debug("DeclLoader", "Read %d capability sets from %s", len(doc.Sets), source)
	return nil
}

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// Build resolves extensions and builds every set read so far. Extended sets
// are built before the sets extending them.
func (l *Loader) Build() (*Document, error) {
	specs := make(map[string]*setSpec, len(l.specs))
	doc := &Document{
		sets:    make(map[string]*capability.Set, len(l.specs)),
		sources: make(map[string]string, len(l.specs)),
	}
	for i := range l.specs {
		s := &l.specs[i]
		if s.Name == "" {
			return nil, fmt.Errorf("%s: set %d: %w", s.source, i, capability.ErrEmptyName)
		}
		if prev, ok := specs[s.Name]; ok {
			return nil, fmt.Errorf("%s: %s already declared in %s: %w", s.source, s.Name, prev.source, ErrDuplicateSet)
		}
		specs[s.Name] = s
		doc.order = append(doc.order, s.Name)
		doc.sources[s.Name] = s.source
	}

	states := make(map[string]visitState, len(specs))
	var path []string
	var visit func(name string) error
	visit = func(name string) error {
		switch states[name] {
		case stateVisiting:
			return fmt.Errorf("%s: %w", cyclePath(path, name), ErrExtensionCycle)
		case stateDone:
			return nil
		}

		spec := specs[name]
		states[name] = stateVisiting
		path = append(path, name)

		extends := make([]*capability.Set, 0, len(spec.Extends))
		for _, ext := range spec.Extends {
			if _, ok := specs[ext]; !ok {
				return fmt.Errorf("%s: %s extends %s: %w", spec.source, name, ext, ErrUnknownSet)
			}
			if err := visit(ext); err != nil {
				return err
			}
			extends = append(extends, doc.sets[ext])
		}

		set, err := l.buildSet(spec, extends)
		if err != nil {
			return fmt.Errorf("%s: %w", spec.source, err)
		}
		doc.sets[name] = set

		path = path[:len(path)-1]
		states[name] = stateDone
		return nil
	}

	for _, name := range doc.order {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	logging.Debug("DeclLoader", "Built %d capability sets", len(doc.order))
	return doc, nil
}

func cyclePath(path []string, back string) string {
	for i, name := range path {
		if name == back {
			return strings.Join(append(append([]string(nil), path[i:]...), back), " -> ")
		}
	}
	return back
}

func (l *Loader) buildSet(spec *setSpec, extends []*capability.Set) (*capability.Set, error) {
	d := capability.Declare(spec.Name, extends...)

	for _, m := range spec.Methods {
		sig, err := l.signature(m)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", spec.Name, m.Name, err)
		}
		d.Method(m.Name, sig)
		bind(d, m.Binding)
	}

	for _, p := range spec.Properties {
		typ, err := l.types.Parse(p.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", spec.Name, p.Name, err)
		}
		access, err := capability.ParseAccess(p.Access)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", spec.Name, p.Name, err)
		}
		d.Property(p.Name, typ, access)
		bind(d, p.Binding)
	}

	for i, ix := range spec.Indexers {
		elem, err := l.types.Parse(ix.Type)
		if err != nil {
			return nil, fmt.Errorf("%s indexer %d: %w", spec.Name, i, err)
		}
		index, err := l.parseAll(ix.Index)
		if err != nil {
			return nil, fmt.Errorf("%s indexer %d: %w", spec.Name, i, err)
		}
		access, err := capability.ParseAccess(ix.Access)
		if err != nil {
			return nil, fmt.Errorf("%s indexer %d: %w", spec.Name, i, err)
		}
		d.Indexer(elem, access, index...)
		bind(d, ix.Binding)
	}

	for _, e := range spec.Events {
		handler, err := l.types.Parse(e.Handler)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", spec.Name, e.Name, err)
		}
		d.Event(e.Name, handler)
		bind(d, e.Binding)
	}

	return d.Build()
}

func bind(d *capability.Declaration, binding string) {
	if binding != "" {
		d.Bind(binding)
	}
}

func (l *Loader) signature(m methodSpec) (capability.Signature, error) {
	if m.Signature != "" {
		if len(m.Params) > 0 || len(m.Results) > 0 {
			return capability.Signature{}, fmt.Errorf("signature cannot be combined with params or results")
		}
		return l.types.ParseSignature(m.Signature)
	}
	params := make([]capability.Param, 0, len(m.Params))
	for _, p := range m.Params {
		typ, err := l.types.Parse(p.Type)
		if err != nil {
			return capability.Signature{}, err
		}
		mode, err := capability.ParseMode(p.Mode)
		if err != nil {
			return capability.Signature{}, err
		}
		params = append(params, capability.Param{Name: p.Name, Type: typ, Mode: mode})
	}
	results, err := l.parseAll(m.Results)
	if err != nil {
		return capability.Signature{}, err
	}
	return capability.Sig(params...).Returns(results...), nil
}

func (l *Loader) parseAll(exprs []string) ([]reflect.Type, error) {
	out := make([]reflect.Type, 0, len(exprs))
	for _, expr := range exprs {
		t, err := l.types.Parse(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
