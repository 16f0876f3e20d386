// Package testutil provides shared fixtures for chatmd tests: sample
// raw conversation trees and in-memory export ZIPs.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chatmd/chatmd/internal"
)

// sampleConversationsJSON mirrors the shape of a real conversations.json:
// two linear conversations with user/assistant turns and model metadata.
const sampleConversationsJSON = `[
  {
    "id": "conv-001",
    "title": "Python async patterns",
    "create_time": 1710081000.0,
    "update_time": 1710085500.0,
    "mapping": {
      "root": {"id": "root", "message": null, "parent": null, "children": ["msg-1"]},
      "msg-1": {
        "id": "msg-1",
        "message": {
          "id": "msg-1",
          "author": {"role": "user"},
          "content": {"content_type": "text", "parts": ["How does async/await work in Python?"]},
          "create_time": 1710081000.0,
          "metadata": {}
        },
        "parent": "root",
        "children": ["msg-2"]
      },
      "msg-2": {
        "id": "msg-2",
        "message": {
          "id": "msg-2",
          "author": {"role": "assistant"},
          "content": {"content_type": "text", "parts": ["Coroutines run on an event loop."]},
          "create_time": 1710081060.0,
          "metadata": {"model_slug": "gpt-4"}
        },
        "parent": "msg-1",
        "children": ["msg-3"]
      },
      "msg-3": {
        "id": "msg-3",
        "message": {
          "id": "msg-3",
          "author": {"role": "user"},
          "content": {"content_type": "text", "parts": ["Can you show me error handling?"]},
          "create_time": 1710081120.0,
          "metadata": {}
        },
        "parent": "msg-2",
        "children": ["msg-4"]
      },
      "msg-4": {
        "id": "msg-4",
        "message": {
          "id": "msg-4",
          "author": {"role": "assistant"},
          "content": {"content_type": "text", "parts": ["Use try/except inside async functions."]},
          "create_time": 1710081180.0,
          "metadata": {"model_slug": "gpt-4"}
        },
        "parent": "msg-3",
        "children": []
      }
    }
  },
  {
    "id": "conv-002",
    "title": "Sourdough recipe",
    "create_time": 1708000000.0,
    "update_time": 1708001800.0,
    "mapping": {
      "root": {"id": "root", "message": null, "parent": null, "children": ["msg-a"]},
      "msg-a": {
        "id": "msg-a",
        "message": {
          "id": "msg-a",
          "author": {"role": "user"},
          "content": {"content_type": "text", "parts": ["Give me a sourdough bread recipe"]},
          "create_time": 1708000000.0,
          "metadata": {}
        },
        "parent": "root",
        "children": ["msg-b"]
      },
      "msg-b": {
        "id": "msg-b",
        "message": {
          "id": "msg-b",
          "author": {"role": "assistant"},
          "content": {"content_type": "text", "parts": ["500g flour, 350g water, 100g starter, 10g salt."]},
          "create_time": 1708000060.0,
          "metadata": {"model_slug": "gpt-3.5-turbo"}
        },
        "parent": "msg-a",
        "children": []
      }
    }
  }
]`

// SampleConversationsJSON returns the raw sample conversations.json
// body, for tests that build extracted-directory fixtures.
func SampleConversationsJSON(t *testing.T) []byte {
	t.Helper()
	return []byte(sampleConversationsJSON)
}

// SampleConversations returns the parsed sample archive data.
func SampleConversations(t *testing.T) []internal.RawConversation {
	t.Helper()
	var raw []internal.RawConversation
	if err := json.Unmarshal([]byte(sampleConversationsJSON), &raw); err != nil {
		t.Fatalf("Failed to parse sample conversations: %v", err)
	}
	return raw
}

// SampleZipBytes builds an in-memory export ZIP holding the sample
// conversations.json.
func SampleZipBytes(t *testing.T) []byte {
	t.Helper()
	return ZipBytes(t, map[string]string{
		"conversations.json": sampleConversationsJSON,
	})
}

// ZipBytes builds an in-memory ZIP with the given name/content pairs.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create ZIP entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write ZIP entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finalize ZIP: %v", err)
	}
	return buf.Bytes()
}

// WriteSampleZip writes the sample export ZIP into dir and returns its
// path.
func WriteSampleZip(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "chatgpt_export.zip")
	if err := os.WriteFile(path, SampleZipBytes(t), 0644); err != nil {
		t.Fatalf("Failed to write sample ZIP: %v", err)
	}
	return path
}
