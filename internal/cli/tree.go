package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

type treeFlags struct {
	flatten         bool
	code            bool
	designTime      bool
	languageVersion string
}

func newTreeCommand() *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the syntax tree of a template",
		Long: `Parse FILE and print its syntax tree, one node per line with its kind, source
range, and generator, followed by any parser diagnostics. Use "-" to read
from standard input.

Examples:
  razorlint tree Views/Home/Index.cshtml
  razorlint tree --flatten Views/Home/Index.cshtml   # leaf spans only
  razorlint tree --code snippet.cs                   # parse as a code block`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, afero.NewOsFs(), args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.flatten, "flatten", false, "print leaf spans in source order only")
	cmd.Flags().BoolVar(&flags.code, "code", false, "parse the input as a code block instead of a document")
	cmd.Flags().BoolVar(&flags.designTime, "design-time", false, "parse in design-time mode")
	cmd.Flags().StringVar(&flags.languageVersion, "language-version", "latest",
		"Razor language version: 1.0, 1.1, 2.0, latest")

	return cmd
}

func runTree(cmd *cobra.Command, fsys afero.Fs, path string, flags *treeFlags) error {
	version, err := parser.ParseVersion(flags.languageVersion)
	if err != nil {
		return usageErrorf("%v", err)
	}

	doc, err := readTemplate(cmd, fsys, path)
	if err != nil {
		return err
	}

	opts := parser.DefaultOptions()
	opts.LanguageVersion = version
	opts.DesignTime = flags.designTime

	var result *parser.Result
	if flags.code {
		result = parser.ParseCode(doc, opts)
	} else {
		result = parser.Parse(doc, opts)
	}

	styles := outputStyles(cmd)
	out := cmd.OutOrStdout()

	if flags.flatten {
		err = writeSpans(out, syntax.Flatten(result.Root))
	} else {
		_, err = io.WriteString(out, styles.FormatDump(syntax.DumpString(result.Root)))
	}
	if err != nil {
		return fmt.Errorf("write tree: %w", err)
	}

	return writeParserDiagnostics(out, styles, result.Diagnostics)
}

func writeSpans(w io.Writer, spans []*syntax.Span) error {
	for _, span := range spans {
		if _, err := fmt.Fprintln(w, span.String()); err != nil {
			return err
		}
	}
	return nil
}
