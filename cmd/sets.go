package cmd

import (
	"github.com/spf13/cobra"

	"stubctl/internal/cli"
)

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets [paths...]",
		Short: "List the capability sets found in declaration files",
		Long: `List the capability sets declared in the given files or directories.

Without paths, the declarationPaths from the configuration are used.
Each set is shown with the sets it extends, the number of operations it
declares itself and the size of its flattened catalog.`,
		RunE: runSets,
	}
}

func runSets(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args)
	if err != nil {
		return err
	}

	summaries := make([]cli.SetSummary, 0, doc.Len())
	for _, name := range doc.Names() {
		summaries = append(summaries, cli.SummarizeSet(doc.Set(name), doc.Source(name)))
	}
	return newFormatter(cmd, false).Sets(summaries)
}
