package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifToolName  = "razorlint"
	sarifToolURI   = "https://github.com/yaklabco/razorlint"
)

// SARIF 2.1.0 document subset written by SARIFReporter.
type (
	SARIFOutput struct {
		Schema  string     `json:"$schema"`
		Version string     `json:"version"`
		Runs    []SARIFRun `json:"runs"`
	}

	SARIFRun struct {
		Tool    SARIFTool     `json:"tool"`
		Results []SARIFResult `json:"results"`
	}

	SARIFTool struct {
		Driver SARIFDriver `json:"driver"`
	}

	SARIFDriver struct {
		Name           string      `json:"name"`
		Version        string      `json:"version"`
		InformationURI string      `json:"informationUri"`
		Rules          []SARIFRule `json:"rules"`
	}

	SARIFRule struct {
		ID               string               `json:"id"`
		Name             string               `json:"name,omitempty"`
		ShortDescription SARIFMultiformatText `json:"shortDescription,omitempty"`
		DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
		Properties       map[string]any       `json:"properties,omitempty"`
	}

	SARIFMultiformatText struct {
		Text string `json:"text"`
	}

	SARIFRuleConfig struct {
		Level string `json:"level"`
	}

	SARIFResult struct {
		RuleID    string          `json:"ruleId"`
		RuleIndex int             `json:"ruleIndex"`
		Level     string          `json:"level"`
		Message   SARIFMessage    `json:"message"`
		Locations []SARIFLocation `json:"locations"`
	}

	SARIFMessage struct {
		Text string `json:"text"`
	}

	SARIFLocation struct {
		PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	}

	SARIFPhysicalLocation struct {
		ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
		Region           SARIFRegion           `json:"region"`
	}

	SARIFArtifactLocation struct {
		URI string `json:"uri"`
	}

	// SARIFRegion columns are 1-based with an exclusive EndColumn.
	// CharOffset and CharLength count runes of the template.
	SARIFRegion struct {
		StartLine   int `json:"startLine"`
		StartColumn int `json:"startColumn,omitempty"`
		EndLine     int `json:"endLine,omitempty"`
		EndColumn   int `json:"endColumn,omitempty"`
		CharOffset  int `json:"charOffset"`
		CharLength  int `json:"charLength"`
	}
)

// SARIFReporter writes one SARIF run for all linted templates.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a SARIFReporter writing to opts.Writer.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	run := r.run(result)

	enc := json.NewEncoder(r.out)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	doc := SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(run.Results), nil
}

func (r *SARIFReporter) run(result *runner.Result) SARIFRun {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           sarifToolName,
			Version:        version,
			InformationURI: sarifToolURI,
			Rules:          []SARIFRule{},
		}},
		Results: []SARIFResult{},
	}
	if result == nil {
		return run
	}

	// Rules are listed in order of first appearance; results point back at them.
	index := make(map[string]int)
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		uri := filepath.ToSlash(displayPath(file.Path, r.opts.WorkingDir))

		for i := range file.Result.Diagnostics {
			d := &file.Result.Diagnostics[i]
			idx, ok := index[d.RuleID]
			if !ok {
				idx = len(run.Tool.Driver.Rules)
				index[d.RuleID] = idx
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r.describeRule(d))
			}
			run.Results = append(run.Results, sarifResult(d, idx, uri))
		}
	}
	return run
}

func sarifResult(d *lint.Diagnostic, ruleIndex int, uri string) SARIFResult {
	return SARIFResult{
		RuleID:    d.RuleID,
		RuleIndex: ruleIndex,
		Level:     sarifLevel(d.Severity),
		Message:   SARIFMessage{Text: d.Message},
		Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
			Region: SARIFRegion{
				StartLine:   d.StartLine,
				StartColumn: d.StartColumn,
				EndLine:     d.EndLine,
				EndColumn:   d.EndColumn + 1,
				CharOffset:  d.Offset,
				CharLength:  d.Length,
			},
		}}},
	}
}

// describeRule prefers registry metadata for tree rules. Parser diagnostics
// are described by their kind name and first message.
func (r *SARIFReporter) describeRule(d *lint.Diagnostic) SARIFRule {
	rule := SARIFRule{
		ID:               d.RuleID,
		Name:             d.RuleName,
		ShortDescription: SARIFMultiformatText{Text: d.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: sarifLevel(d.Severity)},
		Properties:       map[string]any{"origin": string(d.Origin)},
	}
	if r.opts.Registry == nil {
		return rule
	}

	registered, ok := r.opts.Registry.GetByID(d.RuleID)
	if !ok {
		return rule
	}
	rule.Name = registered.Name()
	rule.ShortDescription.Text = registered.Description()
	rule.DefaultConfig.Level = sarifLevel(registered.DefaultSeverity())
	if tags := registered.Tags(); len(tags) > 0 {
		rule.Properties["tags"] = tags
	}
	return rule
}

func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
