package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"stubctl/internal/cli"
	"stubctl/pkg/anonymous"
	"stubctl/pkg/capability"
	"stubctl/pkg/capability/decl"
)

var matchNameOnly bool

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <set> <name> <signature> [paths...]",
		Short: "Resolve a name and signature to an operation",
		Long: `Resolve an implementation's name and signature against a capability set,
the same way registering it by name would.

The signature is written as a Go func type whose parameters may carry a
mode word:

  stubctl match Store TryGet "func(string, out int) bool" ./capabilities

With --name-only the signature argument is left out and the name alone must
identify a single operation. A failed match exits non-zero and lists the
candidates or close names.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runMatch,
	}
	cmd.Flags().BoolVar(&matchNameOnly, "name-only", false, "Resolve by name alone, without a signature")
	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	setName, name := args[0], args[1]
	paths := args[2:]

	var sig capability.Signature
	if !matchNameOnly {
		if len(args) < 3 {
			return errors.New("missing signature; pass one or use --name-only")
		}
		var err error
		sig, err = decl.NewTypeRegistry().ParseSignature(args[2])
		if err != nil {
			return err
		}
		paths = args[3:]
	}

	doc, err := loadDocument(paths)
	if err != nil {
		return err
	}
	set, err := findSet(doc, setName)
	if err != nil {
		return err
	}

	cat := capability.CatalogOf(set)
	var op *capability.Operation
	if matchNameOnly {
		op, err = anonymous.MatchName(cat, name)
	} else {
		op, err = anonymous.Match(cat, sig, name)
	}

	res := cli.MatchResult{Set: set.Name(), Name: name}
	if !matchNameOnly {
		res.Signature = sig.String()
	}
	if err != nil {
		res.Error = err.Error()
		var be *anonymous.BindingError
		if errors.As(err, &be) {
			res.Candidates = cli.ViewsOf(cat, be.Candidates)
			res.Suggestions = be.Suggestions
		}
		if ferr := newFormatter(cmd, false).Match(res); ferr != nil {
			return ferr
		}
		return err
	}

	view := cli.ViewOf(cat, op)
	res.Matched = &view
	return newFormatter(cmd, false).Match(res)
}
