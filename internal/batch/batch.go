package batch

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/scanio-checkstyle/internal/checkstyle"
	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared"
)

// ReportParser parses a single report file.
type ReportParser interface {
	ParseFile(ctx context.Context, path string) (*checkstyle.Parsed, error)
}

// Result is the outcome of parsing one report.
type Result struct {
	Path    string
	Version string
	Issues  *findings.Issues
	Err     error
}

// Canceled reports whether the parse was stopped by cancellation.
func (r Result) Canceled() bool {
	return r.Err != nil && checkstyle.IsCanceled(r.Err)
}

// Runner parses many reports concurrently.
type Runner struct {
	parser         ReportParser
	concurrentJobs int
	logger         hclog.Logger
	onDone         func(Result)
}

// New creates a Runner running at most concurrentJobs parses at once.
func New(parser ReportParser, concurrentJobs int, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if concurrentJobs < 1 {
		concurrentJobs = 1
	}
	return &Runner{
		parser:         parser,
		concurrentJobs: concurrentJobs,
		logger:         logger,
	}
}

// OnDone registers a callback invoked once per finished report.
// It is called from worker goroutines and must be safe for concurrent use.
func (r *Runner) OnDone(f func(Result)) *Runner {
	r.onDone = f
	return r
}

// Run parses every path and returns the results in the order of paths.
// Reports not started before ctx is done are recorded as canceled.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	r.logger.Info("parsing starting", "total", len(paths), "goroutines", r.concurrentJobs)

	results := make([]Result, len(paths))
	shared.ForEveryWithBoundedGoroutines(r.concurrentJobs, paths, func(i int, path string) {
		result := r.parseOne(ctx, path)
		results[i] = result

		switch {
		case result.Err == nil:
			r.logger.Debug("report parsed", "#", i+1, "path", path, "issues", result.Issues.Len())
		case result.Canceled():
			r.logger.Debug("report parsing canceled", "#", i+1, "path", path)
		default:
			// failures are returned by Merge and reported once by the caller
			r.logger.Debug("report parsing failed", "#", i+1, "path", path, "error", result.Err)
		}

		if r.onDone != nil {
			r.onDone(result)
		}
	})

	r.logger.Info("parsing finished", "total", len(paths))
	return results
}

func (r *Runner) parseOne(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: &checkstyle.ParsingError{Kind: checkstyle.ErrParsingCanceled, Err: err}}
	}
	parsed, err := r.parser.ParseFile(ctx, path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Version: parsed.Version, Issues: parsed.Issues}
}

// Merge concatenates the issues of all results in order.
// The returned error joins the errors of every failed result.
func Merge(results []Result) (*findings.Issues, error) {
	merged := &findings.Issues{}
	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, result.Err)
			continue
		}
		merged.AddAll(result.Issues)
	}
	return merged, errors.Join(errs...)
}

// Version returns the first checkstyle version named by a successful result, or "".
func Version(results []Result) string {
	for _, result := range results {
		if result.Err == nil && result.Version != "" {
			return result.Version
		}
	}
	return ""
}
