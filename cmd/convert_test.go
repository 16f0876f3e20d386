package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chatmd/chatmd/testutil"
)

// runCommand executes the root command with the given arguments.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestConvertCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	zipPath := testutil.WriteSampleZip(t, t.TempDir())
	outDir := filepath.Join(t.TempDir(), "out")

	err := runCommand(t, "convert", zipPath,
		"--out", outDir, "--organize", "monthly", "--no-frontmatter=false")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	for _, want := range []string{
		filepath.Join("2024-03", "Python_async_patterns.md"),
		filepath.Join("2024-02", "Sourdough_recipe.md"),
		"_INDEX.md",
		"_UPLOAD_GUIDE.md",
	} {
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Errorf("expected output file %s: %v", want, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "2024-03", "Python_async_patterns.md"))
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if !strings.HasPrefix(doc, "---\n") {
		t.Error("document should open with frontmatter")
	}
	if !strings.Contains(doc, "## Assistant (gpt-4)") {
		t.Errorf("document missing assistant header:\n%s", doc)
	}
	if !strings.Contains(doc, "How does async/await work in Python?") {
		t.Error("document missing user message text")
	}
}

func TestConvertCommand_FlatNoFrontmatter(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	zipPath := testutil.WriteSampleZip(t, t.TempDir())
	outDir := filepath.Join(t.TempDir(), "out")

	err := runCommand(t, "convert", zipPath,
		"--out", outDir, "--organize", "flat", "--no-frontmatter")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Python_async_patterns.md"))
	if err != nil {
		t.Fatalf("expected flat output file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Python async patterns\n") {
		t.Errorf("document should open with the title heading:\n%s", data)
	}
}

func TestConvertCommand_FromDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	exportDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(exportDir, "conversations.json"),
		testutil.SampleConversationsJSON(t), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(t.TempDir(), "out")

	err := runCommand(t, "convert", exportDir,
		"--out", outDir, "--organize", "flat", "--no-frontmatter=false")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "Sourdough_recipe.md")); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestConvertCommand_MissingSource(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	err := runCommand(t, "convert", filepath.Join(t.TempDir(), "nope.zip"),
		"--out", filepath.Join(t.TempDir(), "out"))
	if err == nil {
		t.Error("convert should fail for a missing source")
	}
}

func TestStatsCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	zipPath := testutil.WriteSampleZip(t, t.TempDir())

	if err := runCommand(t, "stats", zipPath); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
}

func TestStatsCommand_MissingSource(t *testing.T) {
	if err := runCommand(t, "stats", "does-not-exist.zip"); err == nil {
		t.Error("stats should fail for a missing source")
	}
}
