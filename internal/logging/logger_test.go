package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]log.Level{
		"debug":   log.DebugLevel,
		" Debug ": log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"WARNING": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.InfoLevel,
		"verbose": log.InfoLevel,
		"":        log.InfoLevel,
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, logging.ParseLevel(input))
			assert.Equal(t, want, logging.New(input).GetLevel())
		})
	}
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")
	logger.Info("tokenized", logging.FieldPath, "Views/_Layout.cshtml")
	logger.Warn("rule failed", logging.FieldRule, "RZL003")

	out := buf.String()
	assert.NotContains(t, out, "tokenized")
	assert.Contains(t, out, "rule failed")
	assert.Contains(t, out, "rule=RZL003")
}

func TestNewInteractivePrefix(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Equal(t, "razorlint", logger.GetPrefix())
}

//nolint:paralleltest // swaps the process logger
func TestDefaultLogger(t *testing.T) {
	previous := logging.Default()
	t.Cleanup(func() { logging.SetDefault(previous) })

	replacement := logging.New("info")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, replacement.GetLevel())
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	require.NotNil(t, logging.FromContext(context.Background()))
	//nolint:staticcheck // a nil context falls back to the default
	assert.NotNil(t, logging.FromContext(nil))
}
