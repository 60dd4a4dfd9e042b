package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/yaklabco/razorlint/pkg/lint/rules" // Register built-in rules
)

func runRules(t *testing.T, args ...string) string {
	t.Helper()

	cmd := newRulesCommand()
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRulesCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	assert.NotNil(t, cmd.Flags().Lookup("rule-format"))
	assert.NotNil(t, cmd.Flags().Lookup("diagnostics"))
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal([]byte(runRules(t, "--format", "json")), &infos))

	byID := make(map[string]ruleInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}
	require.Contains(t, byID, "RZL001")
	assert.Equal(t, "empty-code-block", byID["RZL001"].Name)
	assert.True(t, byID["RZL001"].Enabled)
	require.Contains(t, byID, "RZL004")
	assert.False(t, byID["RZL004"].Enabled)
}

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	output := runRules(t, "--rule-format", "combined")
	assert.Contains(t, output, "RZL002/duplicate-section")
}

func TestRulesCommand_Diagnostics(t *testing.T) {
	t.Parallel()

	var infos []diagnosticInfo
	require.NoError(t, json.Unmarshal([]byte(runRules(t, "--diagnostics", "--format", "json")), &infos))

	found := false
	for _, info := range infos {
		if info.Code == "RZ1006" {
			found = true
			assert.Equal(t, "expected-end-of-block-before-eof", info.Name)
		}
	}
	assert.True(t, found, "RZ1006 listed")

	assert.Contains(t, runRules(t, "--diagnostics"), "razor-comment-not-terminated")
}

func TestRulesCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	cmd.SetArgs([]string{"--format", "xml"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrUsage)
}
