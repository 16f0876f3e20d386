// Package export renders reconstructed conversations into bounded-size
// Markdown documents.
package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chatmd/chatmd/internal"
)

// Options controls document rendering.
type Options struct {
	// Frontmatter prepends a YAML metadata block.
	Frontmatter bool
	// ModelInfo appends the model slug to assistant message headers.
	ModelInfo bool
}

// DefaultOptions renders with frontmatter and model info.
func DefaultOptions() Options {
	return Options{Frontmatter: true, ModelInfo: true}
}

func roleLabel(role internal.AuthorRole) string {
	switch role {
	case internal.RoleUser:
		return "User"
	case internal.RoleAssistant:
		return "Assistant"
	case internal.RoleSystem:
		return "System"
	case internal.RoleTool:
		return "Tool"
	default:
		return string(role)
	}
}

// ConversationToMarkdown serializes a conversation into one complete
// Markdown document. An empty message list yields an empty string.
func ConversationToMarkdown(conv *internal.Conversation, opts Options) string {
	if len(conv.Messages) == 0 {
		return ""
	}

	var sections []string
	if opts.Frontmatter {
		sections = append(sections, renderFrontmatter(conv))
	}
	sections = append(sections, fmt.Sprintf("# %s\n", conv.Title))

	for i := range conv.Messages {
		sections = append(sections, renderMessage(&conv.Messages[i], opts.ModelInfo))
	}

	return strings.Join(sections, "\n")
}

// frontmatter field order is fixed by the struct, so documents diff
// cleanly across exports.
type frontmatter struct {
	Title        string   `yaml:"title"`
	Source       string   `yaml:"source"`
	Created      string   `yaml:"created,omitempty"`
	Updated      string   `yaml:"updated,omitempty"`
	Models       []string `yaml:"models,omitempty"`
	MessageCount int      `yaml:"message_count"`
}

func renderFrontmatter(conv *internal.Conversation) string {
	meta := frontmatter{
		Title:        conv.Title,
		Source:       "chatgpt-export",
		Created:      formatTime(conv.CreatedAt),
		Updated:      formatTime(conv.UpdatedAt),
		Models:       conv.ModelSlugs,
		MessageCount: len(conv.Messages),
	}

	data, err := yaml.Marshal(&meta)
	if err != nil {
		// yaml.Marshal cannot fail for this struct; degrade to an empty
		// block rather than propagate.
		internal.LogWarn("frontmatter marshal failed: %v", err)
		return "---\n---\n"
	}
	return fmt.Sprintf("---\n%s---\n", data)
}

func renderMessage(msg *internal.Message, modelInfo bool) string {
	header := "## " + roleLabel(msg.Role)
	if modelInfo && msg.Role == internal.RoleAssistant && msg.ModelSlug != "" {
		header = fmt.Sprintf("## %s (%s)", roleLabel(msg.Role), msg.ModelSlug)
	}

	var blocks []string
	for _, part := range msg.Parts {
		if rendered := internal.RenderPart(part); rendered != "" {
			blocks = append(blocks, rendered)
		}
	}

	return fmt.Sprintf("%s\n\n%s\n", header, strings.Join(blocks, "\n\n"))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
