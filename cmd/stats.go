package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chatmd/chatmd/internal"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <source>",
	Short: "Show statistics about a ChatGPT export without converting",
	Long: `Inspect a ChatGPT data export and print aggregate statistics:
conversation and message totals, date range, models used.

Uses the metadata-only fast path, so large exports are summarized
without rendering any content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := internal.ExtractConversations(args[0])
		if err != nil {
			return err
		}

		metas := internal.ParseMetadata(raw)
		stats := internal.ComputeMetaStatistics(metas)
		internal.PrintStatistics(os.Stdout, stats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
