package main

import (
	"io"
	"slices"

	"github.com/spf13/cobra"
)

var noDescriptions bool

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, out io.Writer, descriptions bool) error{
	"bash": func(root *cobra.Command, out io.Writer, d bool) error {
		return root.GenBashCompletionV2(out, d)
	},
	"zsh": func(root *cobra.Command, out io.Writer, d bool) error {
		if d {
			return root.GenZshCompletion(out)
		}
		return root.GenZshCompletionNoDesc(out)
	},
	"fish": func(root *cobra.Command, out io.Writer, d bool) error {
		return root.GenFishCompletion(out, d)
	},
	"powershell": func(root *cobra.Command, out io.Writer, d bool) error {
		if d {
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return root.GenPowerShellCompletion(out)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion SHELL",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for bash, zsh, fish or powershell.

  $ source <(log2seq completion bash)
  $ log2seq completion zsh > "${fpath[1]}/_log2seq"
  $ log2seq completion fish > ~/.config/fish/completions/log2seq.fish
  PS> log2seq completion powershell | Out-String | Invoke-Expression

Rule and log flags complete file names.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             shellNames(),
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout(), !noDescriptions)
	},
}

func shellNames() []string {
	names := make([]string, 0, len(completionShells))
	for name := range completionShells {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	completionCmd.Flags().BoolVar(&noDescriptions, "no-descriptions", false,
		"Omit completion descriptions")

	rootCmd.AddCommand(completionCmd)
}
