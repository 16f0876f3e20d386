package internal

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain title", "Python async patterns", "Python_async_patterns"},
		{"invalid chars stripped", `What is "2 > 1"? A: yes/no`, "What_is_2_1_A_yesno"},
		{"whitespace collapsed", "too   many\tspaces", "too_many_spaces"},
		{"leading trailing dots", "...hidden...", "hidden"},
		{"empty", "", "untitled"},
		{"only invalid", `<>:"/\|?*`, "untitled"},
		{"unicode kept", "café notes", "café_notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := SanitizeFilename(long)
	if len(got) != 100 {
		t.Errorf("SanitizeFilename() length = %d, want 100", len(got))
	}
}

func TestResolveOutputPath(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	conv := &Conversation{Title: "My Chat", CreatedAt: &created}
	undated := &Conversation{Title: "My Chat"}

	tests := []struct {
		name string
		conv *Conversation
		mode OrganizeMode
		want string
	}{
		{"flat", conv, OrganizeFlat, filepath.Join("out", "My_Chat.md")},
		{"monthly", conv, OrganizeMonthly, filepath.Join("out", "2024-03", "My_Chat.md")},
		{"yearly", conv, OrganizeYearly, filepath.Join("out", "2024", "My_Chat.md")},
		{"monthly undated", undated, OrganizeMonthly, filepath.Join("out", "undated", "My_Chat.md")},
		{"flat undated", undated, OrganizeFlat, filepath.Join("out", "My_Chat.md")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveOutputPath(tt.conv, tt.mode, "out"); got != tt.want {
				t.Errorf("ResolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeduplicatePath(t *testing.T) {
	used := make(map[string]int)

	if got := DeduplicatePath("out/chat.md", used); got != "out/chat.md" {
		t.Errorf("first use = %q, want unchanged", got)
	}
	if got := DeduplicatePath("out/chat.md", used); got != "out/chat_1.md" {
		t.Errorf("second use = %q, want out/chat_1.md", got)
	}
	if got := DeduplicatePath("out/chat.md", used); got != "out/chat_2.md" {
		t.Errorf("third use = %q, want out/chat_2.md", got)
	}
}

func TestDeduplicatePath_CaseInsensitive(t *testing.T) {
	used := make(map[string]int)

	DeduplicatePath("out/Chat.md", used)
	if got := DeduplicatePath("out/chat.md", used); got != "out/chat_1.md" {
		t.Errorf("case-varied collision = %q, want out/chat_1.md", got)
	}
}

func TestDeduplicatePath_DistinctPaths(t *testing.T) {
	used := make(map[string]int)

	if got := DeduplicatePath("out/a.md", used); got != "out/a.md" {
		t.Errorf("got %q, want out/a.md", got)
	}
	if got := DeduplicatePath("out/b.md", used); got != "out/b.md" {
		t.Errorf("got %q, want out/b.md", got)
	}
}
