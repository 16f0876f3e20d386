package internal

import (
	"encoding/json"
	"testing"
)

func TestRenderContent_Text(t *testing.T) {
	content := &RawContent{ContentType: "text", Parts: strParts(t, "hello", "world")}
	parts := RenderContent(content)
	if len(parts) != 2 {
		t.Fatalf("RenderContent() returned %d parts, want 2", len(parts))
	}
	if parts[0].Type != ContentText || parts[0].Text != "hello" {
		t.Errorf("parts[0] = %+v, want text part %q", parts[0], "hello")
	}
}

func TestRenderContent_Code(t *testing.T) {
	content := &RawContent{ContentType: "code", Text: "print('hi')", Language: "python"}
	parts := RenderContent(content)
	if len(parts) != 1 {
		t.Fatalf("RenderContent() returned %d parts, want 1", len(parts))
	}
	if parts[0].Type != ContentCode || parts[0].Language != "python" {
		t.Errorf("parts[0] = %+v, want code part with language python", parts[0])
	}
}

func TestRenderContent_BrowsingQuote(t *testing.T) {
	content := &RawContent{
		ContentType: "tether_quote",
		Title:       "Example",
		URL:         "https://example.com",
		Text:        "quoted text",
	}
	parts := RenderContent(content)
	if len(parts) != 1 {
		t.Fatalf("RenderContent() returned %d parts, want 1", len(parts))
	}
	p := parts[0]
	if p.Type != ContentBrowsingQuote || p.Title != "Example" || p.URL != "https://example.com" {
		t.Errorf("parts[0] = %+v", p)
	}
}

func TestRenderContent_Unknown(t *testing.T) {
	content := &RawContent{ContentType: "mystery_type", Text: "raw payload"}
	parts := RenderContent(content)
	if len(parts) != 1 || parts[0].Type != ContentUnknown || parts[0].Text != "raw payload" {
		t.Errorf("RenderContent() = %+v, want unknown passthrough", parts)
	}
}

func TestRenderContent_Nil(t *testing.T) {
	if parts := RenderContent(nil); parts != nil {
		t.Errorf("RenderContent(nil) = %v, want nil", parts)
	}
}

func TestRenderContent_MultimodalImage(t *testing.T) {
	content := &RawContent{
		ContentType: "multimodal_text",
		Parts: []json.RawMessage{
			json.RawMessage(`{"content_type":"image_asset_pointer","asset_pointer":"file-abc123"}`),
			json.RawMessage(`"caption text"`),
		},
	}
	parts := RenderContent(content)
	if len(parts) != 2 {
		t.Fatalf("RenderContent() returned %d parts, want 2", len(parts))
	}
	if parts[0].ImageRef != "file-abc123" {
		t.Errorf("parts[0].ImageRef = %q, want file-abc123", parts[0].ImageRef)
	}
	if parts[1].Type != ContentText || parts[1].Text != "caption text" {
		t.Errorf("parts[1] = %+v, want text caption", parts[1])
	}
}

func TestRenderPart(t *testing.T) {
	tests := []struct {
		name string
		part ContentPart
		want string
	}{
		{
			"text verbatim",
			ContentPart{Type: ContentText, Text: "plain text"},
			"plain text",
		},
		{
			"text empty",
			ContentPart{Type: ContentText},
			"",
		},
		{
			"code fenced with language",
			ContentPart{Type: ContentCode, Text: "x = 1", Language: "python"},
			"```python\nx = 1\n```",
		},
		{
			"code fenced without language",
			ContentPart{Type: ContentCode, Text: "x = 1"},
			"```\nx = 1\n```",
		},
		{
			"execution output",
			ContentPart{Type: ContentExecutionOutput, Text: "42"},
			"```\n[Output]\n42\n```",
		},
		{
			"browsing display",
			ContentPart{Type: ContentBrowsingDisplay, Text: "search results"},
			"> [Web Browsing Result]\n> search results",
		},
		{
			"quote with url",
			ContentPart{Type: ContentBrowsingQuote, Title: "Site", URL: "https://x.test", Text: "body"},
			"> **[Site](https://x.test)**\n> body",
		},
		{
			"quote without url",
			ContentPart{Type: ContentBrowsingQuote, Title: "Site", Text: "body"},
			"> **Site**\n> body",
		},
		{
			"quote text only",
			ContentPart{Type: ContentBrowsingQuote, Text: "body"},
			"> body",
		},
		{
			"quote empty",
			ContentPart{Type: ContentBrowsingQuote},
			"",
		},
		{
			"unknown passthrough",
			ContentPart{Type: ContentUnknown, Text: "whatever"},
			"whatever",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderPart(tt.part); got != tt.want {
				t.Errorf("RenderPart() = %q, want %q", got, tt.want)
			}
		})
	}
}
