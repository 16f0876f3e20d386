package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatmd/chatmd/internal"
)

var (
	verbose bool
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatmd",
	Short: "Convert ChatGPT data exports to clean Markdown",
	Long: `chatmd converts a ChatGPT data export (the ZIP from
Settings -> Data Controls -> Export Data) into a set of Markdown
documents ready for Claude Projects.

Each conversation's branching edit history is flattened to the current
branch, hidden system and tool messages are filtered out, and oversized
conversations are split into bounded-size parts at message boundaries.

Quick Start:
  chatmd convert export.zip              # Convert an export ZIP
  chatmd stats export.zip                # Inspect an export without converting
  chatmd serve                           # Launch the browser UI`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
