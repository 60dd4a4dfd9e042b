package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/razorlint/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "RZL001", "empty-code-block", "empty-code-block"},
		{"id format", config.RuleFormatID, "RZL001", "empty-code-block", "RZL001"},
		{"combined format", config.RuleFormatCombined, "RZ1006", "expected-end-of-block-before-eof", "RZ1006/expected-end-of-block-before-eof"},
		{"name format empty name", config.RuleFormatName, "RZL001", "", "RZL001"},
		{"default to name", config.RuleFormat(""), "RZL001", "empty-code-block", "empty-code-block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName))
		})
	}
}
