package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"stubctl/internal/color"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// FormatterOptions contains options for rendering command output
type FormatterOptions struct {
	Format       OutputFormat
	ShowBindings bool
	// MaxSignatureWidth truncates signatures in tables; zero disables it.
	MaxSignatureWidth int
}

// Formatter renders command results as tables, JSON or YAML.
type Formatter struct {
	out     io.Writer
	options FormatterOptions
}

// NewFormatter creates a formatter writing to out.
func NewFormatter(out io.Writer, options FormatterOptions) *Formatter {
	if options.Format == "" {
		options.Format = OutputFormatTable
	}
	return &Formatter{out: out, options: options}
}

// Sets renders a sets listing.
func (f *Formatter) Sets(sets []SetSummary) error {
	if f.options.Format != OutputFormatTable {
		return f.encode(sets)
	}
	if len(sets) == 0 {
		fmt.Fprintln(f.out, color.WarningStyle.Render("No capability sets found"))
		return nil
	}

	t := f.newTable()
	t.AppendHeader(header("Name", "Extends", "Declared", "Operations", "Source"))
	for _, s := range sets {
		t.AppendRow(table.Row{
			text.FgHiWhite.Sprint(s.Name),
			orDash(strings.Join(s.Extends, ", ")),
			s.Declared,
			s.Operations,
			orDash(s.Source),
		})
	}
	t.Render()

	fmt.Fprintf(f.out, "\n%s %d %s\n", text.FgHiBlue.Sprint("Total:"), len(sets), pluralize("set", len(sets)))
	return nil
}

// Catalog renders the flattened operations of one set.
func (f *Formatter) Catalog(set string, ops []OperationView) error {
	if f.options.Format != OutputFormatTable {
		return f.encode(ops)
	}

	fmt.Fprintln(f.out, color.TitleStyle.Render(set))
	if len(ops) == 0 {
		fmt.Fprintln(f.out, color.WarningStyle.Render("No operations"))
		return nil
	}

	t := f.newTable()
	columns := []string{"Name", "Kind", "Signature", "Declared By"}
	if f.options.ShowBindings {
		columns = append(columns, "Binding")
	}
	t.AppendHeader(header(columns...))

	shadowed := 0
	for _, op := range ops {
		name := op.Name
		if op.Shadowed {
			name = color.ShadowedStyle.Render(name) + color.MutedStyle.Render(" (shadowed)")
			shadowed++
		}
		row := table.Row{name, text.FgCyan.Sprint(op.Kind), f.signature(op.Signature), op.Set}
		if f.options.ShowBindings {
			row = append(row, op.Binding)
		}
		t.AppendRow(row)
	}
	t.Render()

	fmt.Fprintf(f.out, "\n%s %d %s", text.FgHiBlue.Sprint("Total:"), len(ops), pluralize("operation", len(ops)))
	if shadowed > 0 {
		fmt.Fprintf(f.out, ", %d shadowed", shadowed)
	}
	fmt.Fprintln(f.out)
	return nil
}

// Match renders the outcome of a match.
func (f *Formatter) Match(res MatchResult) error {
	if f.options.Format != OutputFormatTable {
		return f.encode(res)
	}

	if res.Matched != nil {
		fmt.Fprintf(f.out, "%s %s %s\n",
			color.SuccessStyle.Render("✓"),
			color.SetStyle.Render(res.Matched.Set+"."+res.Matched.Name),
			res.Matched.Signature)
		fmt.Fprintf(f.out, "  kind: %s, binding: %s\n", res.Matched.Kind, res.Matched.Binding)
		return nil
	}

	fmt.Fprintf(f.out, "%s %s %s on %s\n",
		color.ErrorStyle.Render("✗"), res.Name, res.Signature, color.SetStyle.Render(res.Set))
	if len(res.Candidates) > 0 {
		t := f.newTable()
		t.AppendHeader(header("Candidate", "Signature", "Declared By"))
		for _, op := range res.Candidates {
			t.AppendRow(table.Row{op.Name, f.signature(op.Signature), op.Set})
		}
		t.Render()
	}
	if len(res.Suggestions) > 0 {
		fmt.Fprintln(f.out, color.HintStyle.Render("did you mean "+strings.Join(res.Suggestions, ", ")+"?"))
	}
	return nil
}

func (f *Formatter) encode(v any) error {
	switch f.options.Format {
	case OutputFormatJSON:
		enc := json.NewEncoder(f.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(f.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", f.options.Format)
	}
}

func (f *Formatter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleRounded)
	return t
}

// signature truncates long signatures by display width.
func (f *Formatter) signature(sig string) string {
	if f.options.MaxSignatureWidth <= 0 || runewidth.StringWidth(sig) <= f.options.MaxSignatureWidth {
		return sig
	}
	return runewidth.Truncate(sig, f.options.MaxSignatureWidth, "...")
}

func header(columns ...string) table.Row {
	row := make(table.Row, len(columns))
	for i, col := range columns {
		row[i] = text.FgHiCyan.Sprint(strings.ToUpper(col))
	}
	return row
}

func orDash(s string) string {
	if s == "" {
		return color.MutedStyle.Render("-")
	}
	return s
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
