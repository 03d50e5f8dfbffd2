package decl

// file is the on-disk shape of one declaration document.
type file struct {
	Sets []setSpec `yaml:"sets" toml:"sets"`
}

type setSpec struct {
	Name       string         `yaml:"name" toml:"name"`
	Extends    []string       `yaml:"extends,omitempty" toml:"extends,omitempty"`
	Methods    []methodSpec   `yaml:"methods,omitempty" toml:"methods,omitempty"`
	Properties []propertySpec `yaml:"properties,omitempty" toml:"properties,omitempty"`
	Indexers   []indexerSpec  `yaml:"indexers,omitempty" toml:"indexers,omitempty"`
	Events     []eventSpec    `yaml:"events,omitempty" toml:"events,omitempty"`

	source string
}

type methodSpec struct {
	Name    string      `yaml:"name" toml:"name"`
	Params  []paramSpec `yaml:"params,omitempty" toml:"params,omitempty"`
	Results []string    `yaml:"results,omitempty" toml:"results,omitempty"`
	Binding string      `yaml:"binding,omitempty" toml:"binding,omitempty"`

	// Signature is a shorthand for Params and Results, for example
	// "func(string, out int) bool".
	Signature string `yaml:"signature,omitempty" toml:"signature,omitempty"`
}

type paramSpec struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	Type string `yaml:"type" toml:"type"`
	// Mode is in (default), out, or inout/ref.
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty"`
}

type propertySpec struct {
	Name    string `yaml:"name" toml:"name"`
	Type    string `yaml:"type" toml:"type"`
	Access  string `yaml:"access,omitempty" toml:"access,omitempty"`
	Binding string `yaml:"binding,omitempty" toml:"binding,omitempty"`
}

type indexerSpec struct {
	Index   []string `yaml:"index" toml:"index"`
	Type    string   `yaml:"type" toml:"type"`
	Access  string   `yaml:"access,omitempty" toml:"access,omitempty"`
	Binding string   `yaml:"binding,omitempty" toml:"binding,omitempty"`
}

type eventSpec struct {
	Name    string `yaml:"name" toml:"name"`
	Handler string `yaml:"handler" toml:"handler"`
	Binding string `yaml:"binding,omitempty" toml:"binding,omitempty"`
}
