package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/condadeps/pkg/config"
	"github.com/matzehuels/condadeps/pkg/errors"
	"github.com/matzehuels/condadeps/pkg/integrations/github"
	"github.com/matzehuels/condadeps/pkg/observability"
	"github.com/matzehuels/condadeps/pkg/snapshot"
)

// Runner executes pipeline stages.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Submitter Submitter
	Logger    *log.Logger
	// Now returns the scan time; defaults to time.Now.
	Now func() time.Time
}

// NewRunner creates a runner that submits through s.
// If logger is nil, the default logger is used.
func NewRunner(s Submitter, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Submitter: s,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Execute runs the complete locate → resolve → snapshot → submit pipeline.
// With opts.DryRun the snapshot is built but not submitted.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForExecute(); err != nil {
		return nil, err
	}

	result, err := r.Manifest(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Publish(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Publish runs the stages after Manifest: it attaches a snapshot built from
// opts.Config and, unless opts.DryRun is set, submits it. Callers that load
// configuration only after resolving run Manifest and Publish separately.
func (r *Runner) Publish(ctx context.Context, result *Result, opts Options) error {
	if result == nil || result.Manifest == nil {
		return errors.New(errors.ErrCodeInternal, "no manifest to publish")
	}
	if err := opts.ValidateForExecute(); err != nil {
		return err
	}
	r.Snapshot(result, *opts.Config)

	if opts.DryRun {
		r.logger(opts).Debug("dry run, skipping submission")
		return nil
	}
	return r.submit(ctx, result, opts.Config.Repository, r.logger(opts))
}

// Manifest locates and resolves the descriptor.
func (r *Runner) Manifest(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForManifest(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	path, err := Locate(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("using descriptor", "path", path)

	start := time.Now()
	m, dups, err := Resolve(path)
	elapsed := time.Since(start)
	if err != nil {
		observability.Pipeline().OnResolveComplete(ctx, path, 0, 0, elapsed, err)
		return nil, err
	}
	observability.Pipeline().OnResolveComplete(ctx, path, m.Len(), len(dups), elapsed, nil)

	result := &Result{
		Path:       path,
		Manifest:   m,
		Duplicates: dups,
		Stats: Stats{
			Entries:     m.Len(),
			Duplicates:  len(dups),
			ResolveTime: elapsed,
		},
	}

	logger.Info("resolved environment",
		"path", path,
		"entries", result.Stats.Entries,
		"duration", elapsed)
	if len(dups) > 0 {
		logger.Warn("duplicate declarations overwritten",
			"path", path,
			"duplicates", len(dups),
			"purls", dups)
	}
	return result, nil
}

// Snapshot wraps the resolved manifest with CI metadata from cfg.
func (r *Runner) Snapshot(result *Result, cfg config.Config) *snapshot.Snapshot {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	result.Snapshot = snapshot.New(cfg, result.Manifest, now())
	return result.Snapshot
}

// Submit sends result.Snapshot to repository and records the acknowledgement.
// A snapshot GitHub acknowledges as anything but SUCCESS or ACCEPTED is
// returned as a SUBMISSION_REJECTED error.
func (r *Runner) Submit(ctx context.Context, result *Result, repository string) error {
	return r.submit(ctx, result, repository, r.logger(Options{}))
}

func (r *Runner) submit(ctx context.Context, result *Result, repository string, logger *log.Logger) error {
	if result == nil || result.Snapshot == nil {
		return errors.New(errors.ErrCodeInternal, "no snapshot to submit")
	}
	if r.Submitter == nil {
		return errors.New(errors.ErrCodeInternal, "no submitter configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	sub, err := r.Submitter.SubmitSnapshot(ctx, repository, result.Snapshot)
	elapsed := time.Since(start)
	var id int64
	switch {
	case err != nil:
	case sub == nil:
		err = errors.New(errors.ErrCodeInternal, "submission returned no result")
	case !sub.Accepted():
		id = sub.ID
		err = rejected(sub)
	default:
		id = sub.ID
	}
	observability.Pipeline().OnSubmitComplete(ctx, repository, id, elapsed, err)
	if err != nil {
		return err
	}

	result.Submission = sub
	result.Stats.SubmitTime = elapsed
	logger.Info("submitted snapshot",
		"repository", repository,
		"id", sub.ID,
		"result", sub.Result,
		"duration", elapsed)
	return nil
}

func rejected(sub *github.SubmitResult) error {
	msg := sub.Message
	if msg == "" {
		msg = "no message"
	}
	result := sub.Result
	if result == "" {
		result = "empty result"
	}
	return errors.New(errors.ErrCodeRejected, "snapshot %d rejected (%s): %s", sub.ID, result, msg)
}

// logger prefers the per-run logger over the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	switch {
	case opts.Logger != nil:
		return opts.Logger
	case r.Logger != nil:
		return r.Logger
	default:
		return discard
	}
}

var discard = log.NewWithOptions(io.Discard, log.Options{})
