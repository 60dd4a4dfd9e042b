package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/razorlint/pkg/config"
)

// FileResult is everything found in one template. Parser diagnostics come
// first in emission order, then rule diagnostics grouped by rule ID.
type FileResult struct {
	File        *File
	Diagnostics []Diagnostic

	// RuleErrors maps a rule ID to the error its Apply returned. The
	// remaining rules still run.
	RuleErrors map[string]error
}

func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// Engine parses a template and runs the enabled rules of Registry over the
// resulting tree. A nil Registry reports parser diagnostics only.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile never fails on template errors; those become diagnostics. An
// error means the parser itself failed or ctx was cancelled between rules.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	file, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{File: file, RuleErrors: map[string]error{}}
	for _, pd := range file.Diagnostics {
		if severity, on := ResolveDiagnosticSeverity(cfg, pd.Kind); on {
			result.Diagnostics = append(result.Diagnostics, FromParserDiagnostic(file, pd).WithSeverity(severity).Build())
		}
	}
	if e.Registry == nil {
		return result, nil
	}

	nodes := NewNodeCache(file.Root)
	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		rc := NewRuleContext(ctx, file, cfg, rr.Config)
		rc.Registry, rc.Nodes = e.Registry, nodes

		diags, err := rr.Rule.Apply(rc)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}
		for i := range diags {
			stamp(&diags[i], rr, path)
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}
	return result, nil
}

// stamp applies the resolved severity and fills identity fields a rule
// left empty.
func stamp(d *Diagnostic, rr ResolvedRule, path string) {
	d.Severity = rr.Severity
	d.Origin = OriginRule
	if d.FilePath == "" {
		d.FilePath = path
	}
	if d.RuleID == "" {
		d.RuleID = rr.Rule.ID()
	}
	if d.RuleName == "" {
		d.RuleName = rr.Rule.Name()
	}
}
