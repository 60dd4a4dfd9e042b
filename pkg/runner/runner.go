package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/yaklabco/razorlint/internal/logging"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// Paths that cannot be discovered are recorded in Result.Errors and do not
// stop the remaining files from being linted.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	found, err := discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	files := found.files

	result := newResult(len(files))
	result.Errors = multierr.Errors(found.pathErrs)

	logger.Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldPaths, opts.effectivePaths())

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	pipeline := r.Pipeline
	if opts.Fs != nil {
		pipeline = pipeline.WithFs(opts.Fs)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, pipeline, workCh, outCh, cfg)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnostics, result.Stats.DiagnosticsTotal,
		logging.FieldJobs, jobs,
		logging.FieldDuration, time.Since(start))

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func worker(
	ctx context.Context,
	pipeline *lint.Pipeline,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	cfg *config.Config,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		pr, err := pipeline.ProcessFile(ctx, path, cfg)
		if err != nil {
			outcome.Error = err
			logging.FromContext(ctx).Warn("failed to lint file",
				logging.FieldPath, path,
				logging.FieldError, err)
		} else {
			outcome.Result = pr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
