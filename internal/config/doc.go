// Package config provides configuration management for stubctl.
//
// Configuration is loaded from multiple sources and merged in a specific
// order, with later sources overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (built into the binary)
//     - Table output, warn-level logging, no declaration paths
//
//  2. User Configuration (~/.config/stubctl/config.yaml)
//     - Personal preferences and shared declaration libraries
//
//  3. Project Configuration (./.stubctl/config.yaml)
//     - Project-specific settings, usually kept under version control
//
// # Configuration Structure
//
//	logLevel: debug          # debug, info, warn or error
//	output: yaml             # table, json or yaml
//	color: false             # unset means enabled unless NO_COLOR is set
//	declarationPaths:
//	  - ./capabilities
//	  - ${HOME}/.config/stubctl/shared.yaml
//	catalog:
//	  showBindings: true
//	  maxSignatureWidth: 100
//
// Scalar settings from a later layer replace earlier ones. Declaration paths
// accumulate across layers, skipping duplicates, and have environment
// variables expanded.
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range cfg.DeclarationPaths {
//	    fmt.Println("declarations:", p)
//	}
package config
