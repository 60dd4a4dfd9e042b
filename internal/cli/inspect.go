package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/internal/ui/pretty"
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
)

// stdinPath selects standard input as the template source.
const stdinPath = "-"

// readTemplate loads the template named by path, or stdin for "-", into a
// source document. A missing file is a usage error.
func readTemplate(cmd *cobra.Command, fsys afero.Fs, path string) (*source.Document, error) {
	var (
		content []byte
		err     error
	)

	if path == stdinPath {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = afero.ReadFile(fsys, path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, usageErrorf("%s: no such file", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return source.NewDocument(path, string(content)), nil
}

// outputStyles returns the styles for cmd's stdout honouring --color.
func outputStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}

// writeParserDiagnostics prints diagnostics as "line:col CODE name: message"
// with 1-based positions.
func writeParserDiagnostics(w io.Writer, styles *pretty.Styles, diags []diag.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	for _, d := range diag.SortByPosition(diags) {
		position := fmt.Sprintf("%d:%d", d.Span.LineIndex+1, d.Span.CharacterIndex+1)
		_, err := fmt.Fprintf(w, "%s %s %s: %s\n",
			styles.Location.Render(position),
			styles.Error.Render(string(d.Kind)),
			styles.Dim.Render(d.Kind.Name()),
			d.Message(),
		)
		if err != nil {
			return fmt.Errorf("write diagnostics: %w", err)
		}
	}
	return nil
}
