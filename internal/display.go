package internal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// PrintStatistics writes the export statistics as an aligned table.
func PrintStatistics(w io.Writer, stats *ExportStatistics) {
	fmt.Fprintln(w, headerStyle.Render("Export Statistics"))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	row := func(label, value string) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	row("Conversations", fmt.Sprintf("%d", stats.TotalConversations))
	row("Total messages", fmt.Sprintf("%d", stats.TotalMessages))

	if stats.Earliest != nil && stats.Latest != nil {
		row("Date range", fmt.Sprintf("%s -> %s",
			stats.Earliest.Format("2006-01-02"), stats.Latest.Format("2006-01-02")))
	}

	if len(stats.ModelsUsed) > 0 {
		entries := make([]string, 0, len(stats.ModelsUsed))
		for _, model := range stats.SortedModels() {
			entries = append(entries, fmt.Sprintf("%s (%d)", model, stats.ModelsUsed[model]))
		}
		row("Models used", strings.Join(entries, ", "))
	}

	if len(stats.MessagesByRole) > 0 {
		entries := make([]string, 0, len(stats.MessagesByRole))
		for _, role := range stats.SortedRoles() {
			entries = append(entries, fmt.Sprintf("%s: %d", role, stats.MessagesByRole[role]))
		}
		row("Messages by role", strings.Join(entries, ", "))
	}

	_ = tw.Flush()
	fmt.Fprintln(w)
}

// PrintSummary writes the final conversion summary with pointers to the
// generated index and upload guide.
func PrintSummary(w io.Writer, outputDir string, stats *ExportStatistics) {
	fmt.Fprintln(w, successStyle.Render("Migration complete"))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Output directory:"), outputDir)
	fmt.Fprintf(w, "  %s %d\n", labelStyle.Render("Conversations converted:"), stats.TotalConversations)
	fmt.Fprintf(w, "  %s %d\n", labelStyle.Render("Total messages:"), stats.TotalMessages)
	if stats.Earliest != nil && stats.Latest != nil {
		fmt.Fprintf(w, "  %s %s -> %s\n", labelStyle.Render("Date range:"),
			stats.Earliest.Format("2006-01-02"), stats.Latest.Format("2006-01-02"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render("Next steps:"))
	fmt.Fprintf(w, "  1. See %s for Claude upload instructions\n", dimStyle.Render(outputDir+"/_UPLOAD_GUIDE.md"))
	fmt.Fprintf(w, "  2. See %s for the conversation index\n", dimStyle.Render(outputDir+"/_INDEX.md"))
}

// PrintSuccess prints a styled success message.
func PrintSuccess(message string) {
	fmt.Println(successStyle.Render("✓ " + message))
}

// PrintError prints a styled error message.
func PrintError(message string) {
	fmt.Println(errorStyle.Render("✗ " + message))
}
