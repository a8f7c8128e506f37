package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/condadeps/pkg/config"
	pkgio "github.com/matzehuels/condadeps/pkg/io"
	"github.com/matzehuels/condadeps/pkg/pipeline"
)

// submitOpts holds the command-line flags for the root command.
type submitOpts struct {
	dir        string // discovery root
	file       string // explicit descriptor, skips discovery
	dryRun     bool   // print instead of submitting
	output     string // snapshot copy on disk (none if empty)
	envFile    string // dotenv file
	configFile string // TOML file
}

// runSubmit resolves the environment file, builds a snapshot from the CI
// configuration, and submits it. The manifest is resolved before the
// configuration is read, so descriptor problems are reported first; the
// remaining stages run through [pipeline.Runner.Publish].
//
// Nothing is submitted or written unless every earlier step succeeded.
func (c *CLI) runSubmit(ctx context.Context, opts submitOpts) error {
	logger := loggerFromContext(ctx)
	runner := c.newRunner(nil)

	res, err := runner.Manifest(ctx, pipeline.Options{Dir: opts.dir, File: opts.file, Logger: logger})
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:   opts.configFile,
		EnvFile:      opts.envFile,
		Lookup:       c.Lookup,
		RequireToken: !opts.dryRun,
	})
	if err != nil {
		return err
	}
	logger.Debug("loaded configuration",
		"repository", cfg.Repository,
		"ref", cfg.Ref,
		"sha", cfg.CommitSHA,
		"api", cfg.APIURL)

	publish := pipeline.Options{DryRun: opts.dryRun, Config: cfg, Logger: logger}
	if opts.dryRun {
		if err := runner.Publish(ctx, res, publish); err != nil {
			return err
		}
		if err := pkgio.WriteJSON(res.Snapshot, c.stdout()); err != nil {
			return err
		}
		return c.writeOutput(opts.output, res)
	}

	runner.Submitter = c.submitter(cfg)
	prog := newProgress(logger)
	if err := runner.Publish(ctx, res, publish); err != nil {
		return err
	}
	prog.done("Submitted snapshot")

	if err := c.writeOutput(opts.output, res); err != nil {
		return err
	}
	c.printSubmitted(res, cfg)
	return nil
}

func (c *CLI) writeOutput(path string, res *pipeline.Result) error {
	if path == "" {
		return nil
	}
	if err := pkgio.ExportJSON(res.Snapshot, path); err != nil {
		return err
	}
	printFile(c.stderr(), path)
	return nil
}

func (c *CLI) printSubmitted(res *pipeline.Result, cfg *config.Config) {
	w := c.stderr()
	printSuccess(w, "Submitted %s to %s", res.Path, cfg.Repository)
	printStats(w, res.Stats.Entries, res.Stats.Duplicates)
	if len(res.Duplicates) > 0 {
		printWarning(w, "%d duplicate declarations were overwritten", len(res.Duplicates))
	}
	printKeyValue(w, "snapshot", fmt.Sprintf("%d", res.Submission.ID))
	printKeyValue(w, "result", res.Submission.Result)
	if res.Submission.Message != "" {
		printKeyValue(w, "message", res.Submission.Message)
	}
}
