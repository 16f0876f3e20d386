package internal

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatError reports a missing or malformed export archive. Loader
// failures are surfaced to the hosting layer; they never abort batch
// processing of individual conversations.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

const conversationsFile = "conversations.json"

// ExtractConversations loads the raw conversation list from a ChatGPT
// data export: either a .zip file or an already-extracted directory.
func ExtractConversations(source string) ([]RawConversation, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("cannot read %q", source), Err: err}
	}

	if info.IsDir() {
		return loadFromDirectory(source)
	}
	if strings.EqualFold(filepath.Ext(source), ".zip") {
		return loadFromZipPath(source)
	}
	return nil, &FormatError{
		Reason: fmt.Sprintf("%q is not a ZIP file or directory; provide a ChatGPT data export ZIP or its extracted folder", source),
	}
}

// ExtractConversationsFromBytes loads the raw conversation list from an
// in-memory ZIP, as received from a web upload.
func ExtractConversationsFromBytes(data []byte) ([]RawConversation, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &FormatError{Reason: "not a valid ZIP archive", Err: err}
	}
	return findAndParse(reader)
}

func loadFromZipPath(path string) ([]RawConversation, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("cannot open ZIP %q", path), Err: err}
	}
	defer func() { _ = zr.Close() }()
	return findAndParse(&zr.Reader)
}

// findAndParse locates conversations.json inside a ZIP, preferring the
// shortest path (closest to the archive root), and decodes it.
func findAndParse(zr *zip.Reader) ([]RawConversation, error) {
	var target *zip.File
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, conversationsFile) {
			continue
		}
		if target == nil || len(f.Name) < len(target.Name) {
			target = f
		}
	}
	if target == nil {
		return nil, &FormatError{
			Reason: "no 'conversations.json' found in the ZIP; make sure this is a ChatGPT data export (Settings -> Data Controls -> Export Data)",
		}
	}

	rc, err := target.Open()
	if err != nil {
		return nil, &FormatError{Reason: "cannot read conversations.json", Err: err}
	}
	defer func() { _ = rc.Close() }()

	var raw []RawConversation
	if err := json.NewDecoder(rc).Decode(&raw); err != nil {
		return nil, &FormatError{Reason: "failed to parse conversations.json", Err: err}
	}
	return raw, nil
}

// loadFromDirectory reads conversations.json from an extracted export,
// checking the directory root and then one level deep.
func loadFromDirectory(dir string) ([]RawConversation, error) {
	candidate := filepath.Join(dir, conversationsFile)
	if _, err := os.Stat(candidate); err != nil {
		candidate = ""
		entries, readErr := os.ReadDir(dir)
		if readErr == nil {
			for _, entry := range entries {
				if !entry.IsDir() {
					continue
				}
				nested := filepath.Join(dir, entry.Name(), conversationsFile)
				if _, statErr := os.Stat(nested); statErr == nil {
					candidate = nested
					break
				}
			}
		}
	}
	if candidate == "" {
		return nil, &FormatError{
			Reason: fmt.Sprintf("no 'conversations.json' found in %q; make sure this is an extracted ChatGPT data export", dir),
		}
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		return nil, &FormatError{Reason: "cannot read conversations.json", Err: err}
	}
	var raw []RawConversation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Reason: "failed to parse conversations.json", Err: err}
	}
	return raw, nil
}
