package internal

import (
	"encoding/json"
	"testing"
)

// strParts builds a raw parts list from plain strings.
func strParts(t *testing.T, texts ...string) []json.RawMessage {
	t.Helper()
	parts := make([]json.RawMessage, 0, len(texts))
	for _, text := range texts {
		data, err := json.Marshal(text)
		if err != nil {
			t.Fatalf("marshal part: %v", err)
		}
		parts = append(parts, data)
	}
	return parts
}

// textMessage builds a raw payload with a text content block.
func textMessage(t *testing.T, id, role, text string, metadata map[string]interface{}) *RawMessage {
	t.Helper()
	return &RawMessage{
		ID:     id,
		Author: RawAuthor{Role: role},
		Content: &RawContent{
			ContentType: "text",
			Parts:       strParts(t, text),
		},
		Metadata: metadata,
	}
}

// node builds a tree node; parent "" means root.
func node(id, parent string, msg *RawMessage, children ...string) RawNode {
	n := RawNode{ID: id, Message: msg, Children: children}
	if parent != "" {
		p := parent
		n.Parent = &p
	}
	return n
}

// linearMapping builds root -> n1 -> n2 -> ... from ordered payloads.
// The root node carries no message.
func linearMapping(t *testing.T, payloads ...*RawMessage) map[string]RawNode {
	t.Helper()
	mapping := make(map[string]RawNode)
	ids := make([]string, 0, len(payloads)+1)
	ids = append(ids, "root")
	for _, p := range payloads {
		ids = append(ids, p.ID)
	}

	for i, id := range ids {
		var msg *RawMessage
		if i > 0 {
			msg = payloads[i-1]
		}
		parent := ""
		if i > 0 {
			parent = ids[i-1]
		}
		var children []string
		if i < len(ids)-1 {
			children = []string{ids[i+1]}
		}
		mapping[id] = node(id, parent, msg, children...)
	}
	return mapping
}

func epoch(v float64) *float64 { return &v }
