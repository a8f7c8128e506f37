package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// descriptorExts are offered when completing an environment file.
var descriptorExts = []string{"yml", "yaml"}

// completionGenerators writes the completion script for each supported shell.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

Completions matter when running condadeps by hand, for example with
--dry-run or resolve: --file and resolve's argument complete to .yml and
.yaml files, and --dir completes to directories.

Examples:
  source <(condadeps completion bash)
  condadeps completion zsh > "${fpath[1]}/_condadeps"
  condadeps completion fish > ~/.config/fish/completions/condadeps.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeDescriptor completes the first positional argument to environment files.
func completeDescriptor(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return descriptorExts, cobra.ShellCompDirectiveFilterFileExt
}

// markPathFlags attaches file and directory completion to the path flags of cmd
// that exist.
func markPathFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Lookup("file") != nil {
		cmd.MarkFlagFilename("file", descriptorExts...)
	}
	if flags.Lookup("dir") != nil {
		cmd.MarkFlagDirname("dir")
	}
	if flags.Lookup("config") != nil {
		cmd.MarkFlagFilename("config", "toml")
	}
	if flags.Lookup("output") != nil {
		cmd.MarkFlagFilename("output", "json")
	}
}
