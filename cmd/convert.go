package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chatmd/chatmd/internal"
	"github.com/chatmd/chatmd/internal/config"
	"github.com/chatmd/chatmd/internal/export"
)

var (
	outputDir     string
	organize      string
	maxFileSize   int
	noFrontmatter bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <source>",
	Short: "Convert a ChatGPT export to Markdown files",
	Long: `Convert a ChatGPT data export into Claude-ready Markdown files.

The source is either the export ZIP or its extracted directory.
Conversations whose rendered document exceeds the size limit are split
into multiple parts at message boundaries. An _INDEX.md table of
contents and an _UPLOAD_GUIDE.md are written alongside the documents.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applyConfigDefaults(cmd, cfg)

		source := args[0]
		mode := internal.ParseOrganizeMode(organize)
		opts := export.DefaultOptions()
		opts.Frontmatter = !noFrontmatter

		internal.LogInfo("loading export from %s", source)
		raw, err := internal.ExtractConversations(source)
		if err != nil {
			return err
		}
		internal.LogInfo("found %d conversation(s)", len(raw))

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		var converted []*internal.Conversation
		usedPaths := make(map[string]int)

		for _, conv := range internal.ParseConversations(raw) {
			if len(conv.Messages) == 0 {
				internal.LogDebug("skipping empty conversation %s", conv.ID)
				continue
			}

			for _, part := range export.MaybeSplit(conv, maxFileSize) {
				doc := export.ConversationToMarkdown(part, opts)
				outPath := internal.ResolveOutputPath(part, mode, outputDir)
				outPath = internal.DeduplicatePath(outPath, usedPaths)

				if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
					internal.LogError("failed to create directory for %s: %v", outPath, err)
					continue
				}
				if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
					internal.LogError("failed to write %s: %v", outPath, err)
					continue
				}
			}
			converted = append(converted, conv)
		}

		indexPath := filepath.Join(outputDir, "_INDEX.md")
		if err := os.WriteFile(indexPath, []byte(export.GenerateIndex(converted)), 0644); err != nil {
			internal.LogWarn("failed to write index: %v", err)
		}
		guidePath := filepath.Join(outputDir, "_UPLOAD_GUIDE.md")
		if err := os.WriteFile(guidePath, []byte(export.UploadGuide), 0644); err != nil {
			internal.LogWarn("failed to write upload guide: %v", err)
		}

		stats := internal.ComputeStatistics(converted)
		fmt.Println()
		internal.PrintStatistics(os.Stdout, stats)
		internal.PrintSummary(os.Stdout, outputDir, stats)
		return nil
	},
}

// applyConfigDefaults fills flag values from the config file for flags
// the user did not set explicitly.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("out") {
		outputDir = cfg.OutputDir
	}
	if !cmd.Flags().Changed("organize") {
		organize = cfg.Organize
	}
	if !cmd.Flags().Changed("max-file-size") {
		maxFileSize = cfg.MaxFileSize
	}
	if !cmd.Flags().Changed("no-frontmatter") {
		noFrontmatter = !cfg.Frontmatter
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&outputDir, "out", "o", "./output", "Output directory for converted files")
	convertCmd.Flags().StringVar(&organize, "organize", "monthly", "How to organize output files (flat, monthly, yearly)")
	convertCmd.Flags().IntVar(&maxFileSize, "max-file-size", export.DefaultMaxSize, "Max characters per file before splitting")
	convertCmd.Flags().BoolVar(&noFrontmatter, "no-frontmatter", false, "Omit YAML frontmatter from output files")
}
