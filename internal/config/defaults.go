package config

// GetDefaultConfig returns the built-in configuration every layer is merged
// onto.
func GetDefaultConfig() StubctlConfig {
	return StubctlConfig{
		LogLevel:         "warn",
		Output:           OutputTable,
		DeclarationPaths: []string{},
		Catalog: CatalogSettings{
			MaxSignatureWidth: 80,
		},
	}
}
