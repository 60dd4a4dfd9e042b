package lint

import "github.com/yaklabco/razorlint/pkg/config"

// BaseRule carries the static metadata of a Rule. Concrete rules embed it
// and supply Apply:
//
//	type emptyBlock struct{ lint.BaseRule }
//
//	func newEmptyBlock() *emptyBlock {
//		return &emptyBlock{lint.NewBaseRule("RZL001", "empty-code-block", "...", nil)}
//	}
type BaseRule struct {
	id, name, desc string
	tags           []string
	severity       config.Severity
	off            bool
}

// NewBaseRule returns metadata for an enabled rule. Until WithSeverity is
// called the rule follows the configured severity_default.
func NewBaseRule(id, name, desc string, tags []string) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags}
}

// WithSeverity pins the default severity so severity_default no longer
// applies.
func (r BaseRule) WithSeverity(s config.Severity) BaseRule {
	r.severity = s
	return r
}

// DisabledByDefault makes the rule opt-in.
func (r BaseRule) DisabledByDefault() BaseRule {
	r.off = true
	return r
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string      { return r.tags }
func (r *BaseRule) DefaultEnabled() bool {
	return !r.off
}

// SeverityPinned reports whether WithSeverity was used.
func (r *BaseRule) SeverityPinned() bool {
	return r.severity != ""
}

// DefaultSeverity is the pinned severity, or warning.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if r.severity == "" {
		return config.SeverityWarning
	}
	return r.severity
}

// Apply reports nothing; rules shadow it.
func (r *BaseRule) Apply(*RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
