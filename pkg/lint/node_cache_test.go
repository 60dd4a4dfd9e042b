package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

func TestNodeCache(t *testing.T) {
	t.Parallel()

	file, err := (&templateParser{}).Parse(context.Background(), "a.cshtml",
		[]byte("@section A { <p>@x</p> }\n@{ y(); }"))
	require.NoError(t, err)

	cache := lint.NewNodeCache(file.Root)

	assert.Equal(t, syntax.Blocks(file.Root, syntax.BlockDirective), cache.Blocks(syntax.BlockDirective))
	assert.Equal(t, syntax.Blocks(file.Root, syntax.BlockExpression), cache.Blocks(syntax.BlockExpression))
	assert.Equal(t, len(syntax.Blocks(file.Root, syntax.BlockStatement)), cache.BlockCount(syntax.BlockStatement))
	assert.Equal(t, syntax.Flatten(file.Root), cache.Spans())

	// Repeated calls return the cached slice.
	first := cache.Spans()
	assert.Same(t, &first[0], &cache.Spans()[0])
}

func TestNodeCacheNil(t *testing.T) {
	t.Parallel()

	var nilCache *lint.NodeCache
	assert.Nil(t, nilCache.Blocks(syntax.BlockMarkup))
	assert.Nil(t, nilCache.Spans())

	empty := lint.NewNodeCache(nil)
	assert.Empty(t, empty.Spans())
	assert.Zero(t, empty.BlockCount(syntax.BlockMarkup))
}

func TestRuleContextSpans(t *testing.T) {
	t.Parallel()

	file, err := (&templateParser{}).Parse(context.Background(), "a.cshtml", []byte("<p>@x</p>"))
	require.NoError(t, err)

	rc := lint.NewRuleContext(context.Background(), file, nil, nil)
	assert.Equal(t, syntax.Flatten(file.Root), rc.Spans())

	shared := lint.NewNodeCache(file.Root)
	rc.Nodes = shared
	assert.Equal(t, shared.Spans(), rc.Spans())
}
