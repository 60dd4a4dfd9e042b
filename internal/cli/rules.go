package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/internal/logging"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat  string
	format      string
	diagnostics bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

// diagnosticInfo represents a parser diagnostic kind in JSON output.
type diagnosticInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions, default
severity, and tags. With --diagnostics, list the parser diagnostic kinds whose
severity can be configured under "diagnostics:" instead.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.format != "text" && flags.format != formatJSON {
				return usageErrorf("invalid format %q: must be text or json", flags.format)
			}

			out := cmd.OutOrStdout()
			if flags.diagnostics {
				if flags.format == formatJSON {
					return outputDiagnosticsJSON(out)
				}
				outputDiagnosticsText(out)
				return nil
			}

			rules := lint.DefaultRegistry.Rules()
			if flags.format == formatJSON {
				return outputRulesJSON(out, rules)
			}
			outputRulesText(out, rules, config.RuleFormat(flags.ruleFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.diagnostics, "diagnostics", false,
		"list parser diagnostic kinds instead of rules")

	return cmd
}

func outputRulesText(out io.Writer, rules []lint.Rule, ruleFormat config.RuleFormat) {
	logger := logging.NewWithWriter(out, "info")

	if len(rules) == 0 {
		logger.Info("no rules registered")
		return
	}

	logger.Info("available rules")
	for _, rule := range rules {
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			logging.FieldSeverity, rule.DefaultSeverity(),
			"enabled", rule.DefaultEnabled(),
			"tags", strings.Join(rule.Tags(), ","),
		)
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}
	return encodeJSON(out, infos)
}

func outputDiagnosticsText(out io.Writer) {
	logger := logging.NewWithWriter(out, "info")

	logger.Info("parser diagnostics")
	for _, kind := range diag.AllKinds() {
		logger.Info(string(kind), logging.FieldKind, kind.Name())
	}
}

func outputDiagnosticsJSON(out io.Writer) error {
	kinds := diag.AllKinds()
	infos := make([]diagnosticInfo, 0, len(kinds))
	for _, kind := range kinds {
		infos = append(infos, diagnosticInfo{
			Code:    string(kind),
			Name:    kind.Name(),
			Message: kind.Template(),
		})
	}
	return encodeJSON(out, infos)
}

func encodeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
