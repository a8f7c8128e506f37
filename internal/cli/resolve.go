package cli

import (
	"context"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/condadeps/pkg/io"
	"github.com/matzehuels/condadeps/pkg/pipeline"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	dir    string // discovery root when no file is given
	output string // output file path (stdout if empty)
}

// resolveCommand creates the resolve command, which prints the manifest an
// environment file resolves to. It needs no CI configuration.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{dir: pipeline.DefaultDir}

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Print the resolved manifest for an environment file",
		Long: `Resolve a Conda environment file into a manifest of Package URLs and print
it as JSON. Without a file argument the file is discovered like the root
command does.

Examples:
  condadeps resolve                      # Discover in the current directory
  condadeps resolve environment.yml      # Explicit file
  condadeps resolve --dir services/ml    # Discover under a directory
  condadeps resolve -o manifest.json     # Write to a file`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDescriptor,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return c.runResolve(cmd.Context(), opts, file)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "directory to search for the environment file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	markPathFlags(cmd)

	return cmd
}

func (c *CLI) runResolve(ctx context.Context, opts resolveOpts, file string) error {
	logger := loggerFromContext(ctx)

	res, err := c.newRunner(nil).Manifest(ctx, pipeline.Options{Dir: opts.dir, File: file, Logger: logger})
	if err != nil {
		return err
	}

	if opts.output == "" {
		return pkgio.WriteJSON(res.Manifest, c.stdout())
	}
	if err := pkgio.ExportJSON(res.Manifest, opts.output); err != nil {
		return err
	}
	w := c.stderr()
	printInfo(w, "Resolved %s", res.Path)
	printStats(w, res.Stats.Entries, res.Stats.Duplicates)
	printFile(w, opts.output)
	return nil
}
