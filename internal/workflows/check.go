package workflows

import (
	"context"
	"fmt"

	logger "github.com/PolarWolf314/sops-pre-commit/internal/logging"
	"github.com/PolarWolf314/sops-pre-commit/internal/utils"
	"golang.org/x/sync/errgroup"
)

// CheckOptions configures the check workflow.
type CheckOptions struct {
	// Files lists the paths to check, in the order results are reported.
	Files []string

	// Staged appends the files staged in the enclosing git repository.
	Staged bool

	// Jobs bounds how many files are classified at once. Values below 1 mean 1.
	Jobs int

	ClassifierOptions
}

// CheckResult contains the outcome of a check run.
type CheckResult struct {
	// Results holds one entry per input file, in input order.
	Results []Result `json:"results"`

	// Failures holds the failing subset of Results, in input order.
	Failures []Result `json:"failures"`
}

// OK reports whether every file passed or is exempt.
func (r *CheckResult) OK() bool {
	return len(r.Failures) == 0
}

// FailureReasons returns the reason of every failure, in input order.
func (r *CheckResult) FailureReasons() []string {
	reasons := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		reasons = append(reasons, f.Reason)
	}
	return reasons
}

// Check classifies every file and collects the failures.
//
// Files are independent: a failure, even an unreadable file, never stops
// the remaining files from being checked. With Jobs > 1 files are classified
// concurrently, but results keep the input order.
//
// Returns an error only for invalid options, a failed staged-file lookup,
// or a cancelled context.
func Check(ctx context.Context, opts CheckOptions, log logger.Logger) (*CheckResult, error) {
	files := opts.Files
	if opts.Staged {
		staged, err := utils.StagedFiles(".")
		if err != nil {
			return nil, fmt.Errorf("listing staged files: %w", err)
		}
		log.Debugf("Found %d staged files:%s", len(staged), utils.FormatPaths(staged))
		files = append(append([]string{}, files...), staged...)
	}

	classifier, err := NewClassifier(opts.ClassifierOptions, log)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = classifier.Classify(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &CheckResult{Results: results, Failures: []Result{}}
	for _, r := range results {
		if !r.OK() {
			result.Failures = append(result.Failures, r)
		}
	}

	log.Infof("Checked %d files, %d failed", len(results), len(result.Failures))
	return result, nil
}
