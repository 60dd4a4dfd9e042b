package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/afero"

	"github.com/yaklabco/razorlint/internal/logging"
	"github.com/yaklabco/razorlint/pkg/config"
)

// Errors returned by Pipeline, matched with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
)

// PipelineResult is the outcome of linting one template.
type PipelineResult struct {
	*FileResult

	Path     string
	Size     int64
	Duration time.Duration
}

// Pipeline reads templates from Fs and hands them to Engine.
type Pipeline struct {
	Engine *Engine
	Fs     afero.Fs
}

// NewPipeline creates a pipeline reading from the OS filesystem.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine, Fs: afero.NewOsFs()}
}

// WithFs returns a copy of p reading from fsys.
func (p *Pipeline) WithFs(fsys afero.Fs) *Pipeline {
	cp := *p
	cp.Fs = fsys
	return &cp
}

// ProcessFile reads path and lints it.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	fsys := p.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	content, err := afero.ReadFile(fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case err != nil:
		return nil, fmt.Errorf("read file: %w", err)
	}

	return p.ProcessContent(ctx, path, content, cfg)
}

// ProcessContent lints content as if it had been read from path.
// A rule that fails is logged and skipped; only parser failures and
// cancellation are returned as errors.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	start := time.Now()
	fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result := &PipelineResult{
		FileResult: fileResult,
		Path:       path,
		Size:       int64(len(content)),
		Duration:   time.Since(start),
	}

	logger := logging.FromContext(ctx)
	for id, ruleErr := range fileResult.RuleErrors {
		logger.Warn("rule failed",
			logging.FieldPath, path,
			logging.FieldRule, id,
			logging.FieldError, ruleErr)
	}
	logger.Debug("linted file",
		logging.FieldPath, path,
		logging.FieldBytes, result.Size,
		logging.FieldDiagnostics, len(fileResult.Diagnostics),
		logging.FieldDuration, result.Duration)

	return result, nil
}
