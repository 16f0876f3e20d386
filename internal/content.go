package internal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RenderContent maps a raw content block to a list of typed content
// parts. Unrecognized shapes degrade to raw-text passthrough; this
// function never fails.
func RenderContent(content *RawContent) []ContentPart {
	if content == nil {
		return nil
	}

	switch ContentType(content.ContentType) {
	case ContentText, ContentMultimodalText:
		return renderParts(content.Parts)
	case ContentCode:
		return []ContentPart{{
			Type:     ContentCode,
			Text:     content.Text,
			Language: content.Language,
		}}
	case ContentExecutionOutput:
		return []ContentPart{{
			Type: ContentExecutionOutput,
			Text: content.Text,
		}}
	case ContentBrowsingDisplay:
		return []ContentPart{{
			Type: ContentBrowsingDisplay,
			Text: content.Result,
		}}
	case ContentBrowsingQuote:
		return []ContentPart{{
			Type:  ContentBrowsingQuote,
			Text:  content.Text,
			Title: content.Title,
			URL:   content.URL,
		}}
	default:
		part := ContentPart{Type: ContentUnknown, Text: content.Text}
		if part.Text == "" {
			part.Text = joinStringParts(content.Parts)
		}
		return []ContentPart{part}
	}
}

// renderParts converts the heterogeneous parts list of a text or
// multimodal block: JSON strings become text parts, attachment objects
// become image references, anything else passes through unchanged.
func renderParts(raw []json.RawMessage) []ContentPart {
	parts := make([]ContentPart, 0, len(raw))
	for _, entry := range raw {
		if s, ok := decodeString(entry); ok {
			parts = append(parts, ContentPart{Type: ContentText, Text: s})
			continue
		}

		var obj struct {
			ContentType  string `json:"content_type"`
			AssetPointer string `json:"asset_pointer"`
			Text         string `json:"text"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			parts = append(parts, ContentPart{Type: ContentUnknown, Text: string(entry)})
			continue
		}
		if obj.AssetPointer != "" {
			parts = append(parts, ContentPart{
				Type:     ContentUnknown,
				Text:     "[Image attached]",
				ImageRef: obj.AssetPointer,
			})
			continue
		}
		parts = append(parts, ContentPart{Type: ContentUnknown, Text: obj.Text})
	}
	return parts
}

// RenderPart maps one content part to its rendered text block. Absent
// optional fields degrade to empty output; no part type fails.
func RenderPart(part ContentPart) string {
	switch part.Type {
	case ContentText:
		return part.Text
	case ContentCode:
		return fmt.Sprintf("```%s\n%s\n```", part.Language, part.Text)
	case ContentExecutionOutput:
		return fmt.Sprintf("```\n[Output]\n%s\n```", part.Text)
	case ContentBrowsingDisplay:
		return fmt.Sprintf("> [Web Browsing Result]\n> %s", part.Text)
	case ContentBrowsingQuote:
		var lines []string
		if part.Title != "" {
			if part.URL != "" {
				lines = append(lines, fmt.Sprintf("> **[%s](%s)**", part.Title, part.URL))
			} else {
				lines = append(lines, fmt.Sprintf("> **%s**", part.Title))
			}
		}
		if part.Text != "" {
			lines = append(lines, "> "+part.Text)
		}
		return strings.Join(lines, "\n")
	default:
		return part.Text
	}
}

// decodeString decodes a raw JSON value if it is a string.
func decodeString(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, `"`) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// joinStringParts concatenates whatever string entries a parts list has,
// used as a last resort for unrecognized content shapes.
func joinStringParts(raw []json.RawMessage) string {
	var texts []string
	for _, entry := range raw {
		if s, ok := decodeString(entry); ok && s != "" {
			texts = append(texts, s)
		}
	}
	return strings.Join(texts, "\n")
}
