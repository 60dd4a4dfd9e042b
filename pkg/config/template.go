package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const (
	templateHeader = `# razorlint configuration
# See: https://github.com/yaklabco/razorlint`

	commentWrapWidth = 70
)

// TemplateOptions selects what GenerateTemplate writes.
type TemplateOptions struct {
	// Full writes every rule with its documentation instead of a short,
	// fully commented starter file.
	Full bool

	// Format is "yaml" (default) or "json".
	Format string

	// IncludeRules limits the rules section to these IDs.
	IncludeRules []string
}

// RuleInfo is the rule metadata a template documents.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// RuleInfoProvider lists rules without this package importing lint.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by the rules package.
//
//nolint:gochecknoglobals // Set once from the rules package.
var DefaultRuleInfoProvider RuleInfoProvider

// DefaultTemplateHeader is the comment block that opens generated files.
func DefaultTemplateHeader() string {
	return templateHeader
}

// GenerateTemplate renders a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	rules := ruleInfos(opts.IncludeRules)
	if opts.Format == "json" {
		return jsonTemplate(rules)
	}

	var buf bytes.Buffer
	buf.WriteString(templatePreamble)
	if !opts.Full {
		buf.WriteString(minimalRulesSection)
		return buf.Bytes(), nil
	}

	buf.WriteString("\n# Default severity for rules that don't set one: error, warning, or info\n")
	buf.WriteString("severity_default: warning\n\n# Rule-specific configuration\nrules:\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		for _, line := range wrapWords(rule.Description, commentWrapWidth) {
			fmt.Fprintf(&buf, "  # %s\n", line)
		}
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n    enabled: %t\n    severity: %s\n", rule.ID, rule.Enabled, rule.Severity)
	}
	return buf.Bytes(), nil
}

const templatePreamble = `# razorlint configuration
# See: https://github.com/yaklabco/razorlint

# Grammar revision: 1.0, 1.1, 2.0 or latest
language_version: latest

# Keep whitespace in markup instead of handing it to code blocks
# design_time: false

# File extensions treated as templates
# extensions:
#   - .cshtml
#   - .vbhtml
#   - .razor

# Custom directives (kind: single-line, razor-block or code-block)
# directives:
#   - name: model
#     kind: single-line
#     tokens:
#       - kind: type
#   - name: layout
#     kind: single-line
#     tokens:
#       - kind: string
#         optional: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "bin/**"
#   - "obj/**"

# Severity override for parser diagnostics (error, warning, info or off)
# diagnostics:
#   RZ1006: error
#   directive-must-appear-at-start-of-line: warning
`

const minimalRulesSection = `
# Default severity for rules that don't set one: error, warning, or info
# severity_default: warning

# Rule-specific configuration
# rules:
#   RZL001:
#     enabled: true
#     severity: error
#   RZL004:
#     enabled: true
`

// ruleInfos returns the provider's rules sorted by ID, keeping only the
// IDs in include when it is non-empty.
func ruleInfos(include []string) []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	var out []RuleInfo
	for _, r := range DefaultRuleInfoProvider() {
		if len(include) == 0 || slices.Contains(include, r.ID) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// wrapWords greedily fills lines of at most width bytes. A single word
// longer than width gets a line of its own.
func wrapWords(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// jsonTemplate renders the defaults as JSON, which has no comments to
// carry documentation.
func jsonTemplate(rules []RuleInfo) ([]byte, error) {
	type ruleEntry struct {
		Enabled  bool     `json:"enabled"`
		Severity Severity `json:"severity"`
	}
	doc := struct {
		LanguageVersion string               `json:"language_version"`
		DesignTime      bool                 `json:"design_time"`
		Extensions      []string             `json:"extensions"`
		SeverityDefault Severity             `json:"severity_default"`
		Ignore          []string             `json:"ignore"`
		Diagnostics     map[string]string    `json:"diagnostics"`
		Rules           map[string]ruleEntry `json:"rules"`
	}{
		LanguageVersion: "latest",
		Extensions:      DefaultExtensions(),
		SeverityDefault: SeverityWarning,
		Ignore:          []string{"bin/**", "obj/**"},
		Diagnostics:     map[string]string{},
		Rules:           make(map[string]ruleEntry, len(rules)),
	}
	for _, r := range rules {
		doc.Rules[r.ID] = ruleEntry{Enabled: r.Enabled, Severity: r.Severity}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return out, nil
}
