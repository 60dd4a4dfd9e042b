package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

func TestRuleContextOptions(t *testing.T) {
	t.Parallel()

	ruleCfg := &config.RuleConfig{Options: map[string]any{
		"int":    3,
		"float":  4.0,
		"string": "x",
		"bool":   true,
		"slice":  []any{"a", "b", 1},
		"wrong":  []any{1},
	}}
	rc := lint.NewRuleContext(context.Background(), nil, config.NewConfig(), ruleCfg)

	assert.Equal(t, 3, rc.OptionInt("int", 0))
	assert.Equal(t, 4, rc.OptionInt("float", 0))
	assert.Equal(t, 7, rc.OptionInt("string", 7))
	assert.Equal(t, "x", rc.OptionString("string", ""))
	assert.Equal(t, "d", rc.OptionString("missing", "d"))
	assert.True(t, rc.OptionBool("bool", false))
	assert.Equal(t, []string{"a", "b"}, rc.OptionStringSlice("slice", nil))
	assert.Equal(t, []string{"z"}, rc.OptionStringSlice("wrong", []string{"z"}))
}

func TestRuleContextNilRuleConfig(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil)
	assert.Equal(t, 5, rc.OptionInt("x", 5))
	assert.Nil(t, rc.Root)
	assert.Nil(t, rc.Blocks(syntax.BlockStatement))
}

func TestRuleContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rc := lint.NewRuleContext(ctx, nil, nil, nil)
	assert.False(t, rc.Cancelled())
	cancel()
	assert.True(t, rc.Cancelled())
}

func TestRuleContextBlocks(t *testing.T) {
	t.Parallel()

	file, err := (&templateParser{}).Parse(context.Background(), "a.cshtml", []byte("@{ a(); }<p>@{ b(); }</p>"))
	assert.NoError(t, err)

	rc := lint.NewRuleContext(context.Background(), file, nil, nil)
	assert.Same(t, file.Root, rc.Root)
	assert.Len(t, rc.Blocks(syntax.BlockStatement), 2)
}
