// Package pipeline runs the discover → resolve → snapshot → submit flow.
//
// The CLI and tests share this package so every entry point resolves and
// submits the same way.
//
// # Stages
//
//  1. Locate: use the explicit descriptor path, or discover one under Dir
//  2. Resolve: turn the descriptor into a manifest of Package URLs
//  3. Snapshot: wrap the manifest with CI metadata from the configuration
//  4. Submit: POST the snapshot to the dependency submission API
//
// Each stage returns a coded error from pkg/errors. A failing stage stops
// the run, so nothing is submitted after an error.
//
// # Usage
//
//	runner := pipeline.NewRunner(github.NewClient(cfg.Token, cfg.APIURL), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Dir: ".", Config: cfg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Submission.ID)
//
// Run individual stages:
//
//	res, err := runner.Manifest(ctx, opts) // locate + resolve
//	cfg, err := config.Load(loadOpts)
//	err = runner.Publish(ctx, res, pipeline.Options{Config: cfg}) // snapshot + submit
//
// A snapshot GitHub acknowledges with an INVALID result fails with
// SUBMISSION_REJECTED, exactly like a transport or HTTP error.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/condadeps/pkg/config"
	"github.com/matzehuels/condadeps/pkg/errors"
	"github.com/matzehuels/condadeps/pkg/integrations/github"
	"github.com/matzehuels/condadeps/pkg/manifest"
	"github.com/matzehuels/condadeps/pkg/snapshot"
)

// DefaultDir is the discovery root when none is given.
const DefaultDir = "."

// Submitter sends a snapshot to the dependency graph.
// [*github.Client] is the production implementation.
type Submitter interface {
	SubmitSnapshot(ctx context.Context, repository string, s *snapshot.Snapshot) (*github.SubmitResult, error)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	Dir    string         // Discovery root; defaults to DefaultDir
	File   string         // Explicit descriptor path; skips discovery
	DryRun bool           // Build the snapshot but do not submit it
	Config *config.Config // Required by Execute

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Path is the descriptor that was resolved.
	Path string

	// Manifest is the resolved manifest.
	Manifest *manifest.Manifest

	// Duplicates lists Package URLs that overwrote an earlier entry.
	Duplicates []string

	// Snapshot is set once the snapshot stage ran.
	Snapshot *snapshot.Snapshot

	// Submission is GitHub's acknowledgement; nil for dry runs.
	Submission *github.SubmitResult

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entries     int
	Duplicates  int
	ResolveTime time.Duration
	SubmitTime  time.Duration
}

// Submitted reports whether the snapshot was sent and acknowledged.
func (r *Result) Submitted() bool {
	return r.Submission != nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForManifest checks the locate options and applies defaults.
func (o *Options) ValidateForManifest() error {
	if o.File != "" {
		if err := errors.ValidatePath(o.File); err != nil {
			return errors.Wrap(errors.ErrCodeDescriptorNotFound, err, "invalid descriptor path")
		}
	}
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	return nil
}

// ValidateForExecute checks everything Execute needs.
func (o *Options) ValidateForExecute() error {
	if err := o.ValidateForManifest(); err != nil {
		return err
	}
	if o.Config == nil {
		return errors.New(errors.ErrCodeMissingConfig, "configuration is required")
	}
	if !o.DryRun && o.Config.Token == "" {
		return errors.New(errors.ErrCodeMissingConfig, "missing required configuration: %s", config.EnvToken)
	}
	return nil
}
