package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
)

func TestDiagnosticMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		diag     diag.Diagnostic
		expected string
	}{
		{
			name:     "no args",
			diag:     diag.At(diag.UnterminatedBlockComment, source.Zero, 2),
			expected: diag.UnterminatedBlockComment.Template(),
		},
		{
			name:     "with args",
			diag:     diag.At(diag.ExpectedEndOfBlockBeforeEOF, source.Zero, 1, "code", "}", "{"),
			expected: `The code block is missing a closing "}" character. Make sure you have a matching "}" character for all the "{" characters within this block.`,
		},
		{
			name:     "unknown kind",
			diag:     diag.At(diag.Kind("RZ9999"), source.Zero, 1),
			expected: "RZ9999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.diag.Message())
		})
	}
}

func TestKindLookup(t *testing.T) {
	t.Parallel()

	kind, ok := diag.KindByName("missing-end-tag")
	require.True(t, ok)
	assert.Equal(t, diag.MissingEndTag, kind)

	kind, ok = diag.KindByName("RZ1006")
	require.True(t, ok)
	assert.Equal(t, "expected-end-of-block-before-eof", kind.Name())

	_, ok = diag.KindByName("nope")
	assert.False(t, ok)

	kinds := diag.AllKinds()
	assert.Contains(t, kinds, diag.ReservedWord)
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, kinds[i-1], kinds[i])
	}
}

func TestSinkOrdering(t *testing.T) {
	t.Parallel()

	sink := diag.NewSink()
	sink.Report(diag.UnterminatedStringLiteral, source.NewLocation(5, 0, 5), 1)
	sink.Report(diag.ExpectedEndOfBlockBeforeEOF, source.NewLocation(1, 0, 1), 1, "code", "}", "{")
	sink.Report(diag.Expected, source.NewLocation(5, 0, 5), 1, ")")

	require.Equal(t, 3, sink.Len())

	emitted := sink.Diagnostics()
	assert.Equal(t, diag.UnterminatedStringLiteral, emitted[0].Kind)
	assert.Equal(t, diag.ExpectedEndOfBlockBeforeEOF, emitted[1].Kind)

	sorted := sink.Sorted()
	assert.Equal(t, diag.ExpectedEndOfBlockBeforeEOF, sorted[0].Kind)
	assert.Equal(t, diag.UnterminatedStringLiteral, sorted[1].Kind)
	assert.Equal(t, diag.Expected, sorted[2].Kind)

	// Sorting never mutates the sink.
	assert.Equal(t, diag.UnterminatedStringLiteral, sink.Diagnostics()[0].Kind)
}

func TestDiagnosticEqual(t *testing.T) {
	t.Parallel()

	a := diag.At(diag.Expected, source.NewLocation(3, 0, 3), 1, "}")
	b := diag.At(diag.Expected, source.Location{Path: "x", AbsoluteIndex: 3, CharacterIndex: 3}, 1, "}")
	c := diag.At(diag.Expected, source.NewLocation(3, 0, 3), 1, ")")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Contains(t, a.String(), "RZ1014")
}
