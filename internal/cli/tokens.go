package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/tokenizer"
)

const (
	grammarMarkup = "markup"
	grammarCode   = "code"
)

func newTokensCommand() *cobra.Command {
	var grammar string

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a template",
		Long: `Tokenize FILE with the markup or the code grammar and print one token per
line as "line:col  Kind  "content"", followed by any tokenizer diagnostics.
Use "-" to read from standard input.

Examples:
  razorlint tokens Views/Home/Index.cshtml
  razorlint tokens --grammar code snippet.cs`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, afero.NewOsFs(), args[0], grammar)
		},
	}

	cmd.Flags().StringVar(&grammar, "grammar", grammarMarkup, "tokenizer grammar: markup, code")

	return cmd
}

func runTokens(cmd *cobra.Command, fsys afero.Fs, path, grammar string) error {
	var newTokenizer func(*source.Cursor) tokenizer.Tokenizer
	switch grammar {
	case grammarMarkup:
		newTokenizer = func(cur *source.Cursor) tokenizer.Tokenizer { return tokenizer.NewMarkup(cur) }
	case grammarCode:
		newTokenizer = func(cur *source.Cursor) tokenizer.Tokenizer { return tokenizer.NewCode(cur) }
	default:
		return usageErrorf("invalid grammar %q: must be markup or code", grammar)
	}

	doc, err := readTemplate(cmd, fsys, path)
	if err != nil {
		return err
	}

	styles := outputStyles(cmd)
	out := cmd.OutOrStdout()

	var diags []diag.Diagnostic
	for _, tok := range tokenizer.Tokenize(newTokenizer(source.NewCursor(doc))) {
		if _, err := fmt.Fprintln(out, styles.FormatToken(tok)); err != nil {
			return fmt.Errorf("write tokens: %w", err)
		}
		diags = append(diags, tok.Diagnostics...)
	}

	return writeParserDiagnostics(out, styles, diags)
}
