package internal

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidPathChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	nonWordChars     = regexp.MustCompile(`[^\p{L}\p{N}_\-.]`)
)

const maxFilenameLength = 100

// SanitizeFilename creates a safe filename stem from a conversation
// title: invalid characters removed, whitespace collapsed to
// underscores, truncated to 100 characters. Never returns an empty
// string.
func SanitizeFilename(title string) string {
	safe := invalidPathChars.ReplaceAllString(title, "")
	safe = whitespaceRun.ReplaceAllString(strings.TrimSpace(safe), "_")
	safe = nonWordChars.ReplaceAllString(safe, "")
	safe = strings.Trim(safe, "._")

	if safe == "" {
		safe = "untitled"
	}
	if len(safe) > maxFilenameLength {
		safe = safe[:maxFilenameLength]
	}
	return safe
}

// ResolveOutputPath determines the relative output path for a
// conversation under baseDir. Monthly and yearly modes group by the
// creation timestamp; conversations without one land in "undated".
func ResolveOutputPath(conv *Conversation, mode OrganizeMode, baseDir string) string {
	name := SanitizeFilename(conv.Title) + ".md"

	if mode == OrganizeFlat {
		return filepath.Join(baseDir, name)
	}

	subdir := "undated"
	if conv.CreatedAt != nil {
		if mode == OrganizeMonthly {
			subdir = conv.CreatedAt.Format("2006-01")
		} else {
			subdir = conv.CreatedAt.Format("2006")
		}
	}
	return filepath.Join(baseDir, subdir, name)
}

// DeduplicatePath resolves collisions against previously used paths,
// case-insensitively, by appending an incrementing numeric suffix
// before the extension. The used map is mutated in place.
func DeduplicatePath(path string, used map[string]int) string {
	key := strings.ToLower(path)
	if _, ok := used[key]; !ok {
		used[key] = 0
		return path
	}
	used[key]++
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%d%s", stem, used[key], ext)
}
