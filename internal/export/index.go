package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chatmd/chatmd/internal"
)

// GenerateIndex builds the _INDEX.md table of contents: conversations
// newest first, grouped under month headers, with message counts and
// model names per entry.
func GenerateIndex(conversations []*internal.Conversation) string {
	lines := []string{
		"# ChatGPT Export — Conversation Index",
		"",
		"Converted for use with Claude Projects.",
		"",
		fmt.Sprintf("**Total conversations**: %d", len(conversations)),
		"",
		"---",
		"",
	}

	sorted := make([]*internal.Conversation, len(conversations))
	copy(sorted, conversations)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].CreatedAt, sorted[j].CreatedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	currentMonth := ""
	for _, conv := range sorted {
		if len(conv.Messages) == 0 {
			continue
		}

		monthLabel := "Unknown Date"
		dateStr := "?"
		if conv.CreatedAt != nil {
			monthLabel = conv.CreatedAt.Format("January 2006")
			dateStr = conv.CreatedAt.Format("2006-01-02")
		}

		if monthLabel != currentMonth {
			currentMonth = monthLabel
			lines = append(lines, "### "+monthLabel, "")
		}

		modelInfo := ""
		if len(conv.ModelSlugs) > 0 {
			modelInfo = " | " + strings.Join(conv.ModelSlugs, ", ")
		}
		lines = append(lines, fmt.Sprintf("- **%s** — %s, %d messages%s",
			conv.Title, dateStr, len(conv.Messages), modelInfo))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
