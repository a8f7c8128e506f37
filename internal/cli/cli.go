package cli

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/condadeps/pkg/buildinfo"
	"github.com/matzehuels/condadeps/pkg/config"
	"github.com/matzehuels/condadeps/pkg/integrations/github"
	"github.com/matzehuels/condadeps/pkg/observability"
	"github.com/matzehuels/condadeps/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the binary name used in help and completion output.
const appName = "condadeps"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives JSON output; Stderr receives status lines.
	Stdout io.Writer
	Stderr io.Writer

	// Lookup reads the process environment; nil means os.LookupEnv.
	Lookup config.LookupFunc

	// NewSubmitter builds the submission client; nil means the GitHub client.
	NewSubmitter func(cfg *config.Config) pipeline.Submitter

	// Now returns the scan time; nil means time.Now.
	Now func() time.Time
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command without a subcommand submits a snapshot.
func (c *CLI) RootCommand() *cobra.Command {
	opts := submitOpts{
		dir:        pipeline.DefaultDir,
		envFile:    config.DefaultEnvFile,
		configFile: config.DefaultConfigFile,
	}

	root := &cobra.Command{
		Use:   appName,
		Short: "condadeps submits Conda environment dependencies to GitHub",
		Long: `condadeps finds a Conda environment file (env*.yml or env*.yaml), resolves
its conda and pip dependencies into Package URLs, and submits them to the
GitHub dependency graph as a dependency snapshot.

Snapshot metadata comes from the CI environment: COMMIT_SHA, GITHUB_REF,
GITHUB_WORKFLOW, GITHUB_JOB, GITHUB_REPOSITORY, BINARY_NAME, PKG_VERSION and
GITHUB_TOKEN. Values may also come from a .env file or .condadeps.toml.

Examples:
  condadeps                              # Discover, resolve, submit
  condadeps --dry-run                    # Print the snapshot instead
  condadeps --file ci/environment.yml    # Skip discovery
  condadeps resolve                      # Print the resolved manifest`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSubmit(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.stdout())
	root.SetErr(c.stderr())

	root.Flags().StringVar(&opts.dir, "dir", opts.dir, "directory to search for the environment file")
	root.Flags().StringVarP(&opts.file, "file", "f", "", "environment file to resolve (skips discovery)")
	root.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the snapshot instead of submitting it")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "also write the snapshot JSON to this file")
	root.Flags().StringVar(&opts.envFile, "env-file", opts.envFile, "dotenv file with configuration (ignored if missing)")
	root.Flags().StringVar(&opts.configFile, "config", opts.configFile, "TOML configuration file (ignored if missing)")
	root.MarkFlagsMutuallyExclusive("dir", "file")
	markPathFlags(root)

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(s pipeline.Submitter) *pipeline.Runner {
	r := pipeline.NewRunner(s, c.Logger)
	if c.Now != nil {
		r.Now = c.Now
	}
	return r
}

func (c *CLI) submitter(cfg *config.Config) pipeline.Submitter {
	if c.NewSubmitter != nil {
		return c.NewSubmitter(cfg)
	}
	return github.NewClient(cfg.Token, cfg.APIURL)
}

// registerHooks routes pipeline and HTTP events to the debug log.
func (c *CLI) registerHooks() {
	observability.SetPipelineHooks(&pipelineLogHooks{logger: c.Logger})
	observability.SetHTTPHooks(&httpLogHooks{logger: c.Logger})
}

func (c *CLI) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *CLI) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}
