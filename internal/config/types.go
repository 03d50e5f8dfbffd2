package config

// Output formats understood by the stubctl commands.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// StubctlConfig is the top-level configuration structure for stubctl.
type StubctlConfig struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"logLevel,omitempty"`
	// Output is the default output format: table, json or yaml.
	Output string `yaml:"output,omitempty"`
	// Color enables styled terminal output. Unset means "enabled unless
	// NO_COLOR is set".
	Color *bool `yaml:"color,omitempty"`
	// DeclarationPaths lists declaration files or directories loaded when a
	// command is given no explicit paths.
	DeclarationPaths []string `yaml:"declarationPaths,omitempty"`
	// Catalog tunes catalog and match listings.
	Catalog CatalogSettings `yaml:"catalog,omitempty"`
}

// CatalogSettings tunes how catalogs are rendered.
type CatalogSettings struct {
	// ShowBindings adds the Go method name used for default-target
	// forwarding to catalog listings.
	ShowBindings bool `yaml:"showBindings,omitempty"`
	// MaxSignatureWidth truncates long signatures in table output. Zero
	// disables truncation.
	MaxSignatureWidth int `yaml:"maxSignatureWidth,omitempty"`
}

// ColorEnabled reports whether styled output is enabled, treating an unset
// Color as enabled.
func (c StubctlConfig) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}
