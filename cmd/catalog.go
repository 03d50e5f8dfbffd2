package cmd

import (
	"github.com/spf13/cobra"

	"stubctl/internal/cli"
	"stubctl/pkg/capability"
)

var catalogShowBindings bool

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog <set> [paths...]",
		Short: "Show the flattened operations of a capability set",
		Long: `Show every operation of a capability set, including those inherited
from the sets it extends.

Operations re-declared by a derived set are listed once per declaration
and marked as shadowed: they can only be implemented through an explicit
operation handle, never by name and signature alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCatalog,
	}
	cmd.Flags().BoolVar(&catalogShowBindings, "bindings", false, "Show the Go method used for default-target forwarding")
	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[1:])
	if err != nil {
		return err
	}
	set, err := findSet(doc, args[0])
	if err != nil {
		return err
	}

	cat := capability.CatalogOf(set)
	return newFormatter(cmd, catalogShowBindings).Catalog(set.Name(), cli.ViewsOf(cat, cat.Operations()))
}
