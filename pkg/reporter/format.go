package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/razorlint/pkg/config"
)

// Format is the output format of a Reporter.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatSummary = config.FormatSummary
)

var formats = []Format{FormatText, FormatJSON, FormatSARIF, FormatSummary}

// ParseFormat resolves a --format value. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
}
