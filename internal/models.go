package internal

import (
	"encoding/json"
	"sort"
	"time"
)

// AuthorRole identifies who authored a message.
type AuthorRole string

const (
	RoleUser      AuthorRole = "user"
	RoleAssistant AuthorRole = "assistant"
	RoleSystem    AuthorRole = "system"
	RoleTool      AuthorRole = "tool"
)

// ParseRole maps a raw role string to an AuthorRole. Unrecognized
// roles fall back to RoleUser rather than failing.
func ParseRole(role string) AuthorRole {
	switch role {
	case "user", "assistant", "system", "tool":
		return AuthorRole(role)
	default:
		return RoleUser
	}
}

// ContentType identifies the kind of a content part.
type ContentType string

const (
	ContentText            ContentType = "text"
	ContentCode            ContentType = "code"
	ContentExecutionOutput ContentType = "execution_output"
	ContentBrowsingDisplay ContentType = "tether_browsing_display"
	ContentBrowsingQuote   ContentType = "tether_quote"
	ContentMultimodalText  ContentType = "multimodal_text"
	ContentUnknown         ContentType = "unknown"
)

// OrganizeMode controls how output files are grouped into directories.
type OrganizeMode string

const (
	OrganizeFlat    OrganizeMode = "flat"
	OrganizeMonthly OrganizeMode = "monthly"
	OrganizeYearly  OrganizeMode = "yearly"
)

// ParseOrganizeMode validates a mode string, defaulting to monthly.
func ParseOrganizeMode(mode string) OrganizeMode {
	switch mode {
	case "flat":
		return OrganizeFlat
	case "yearly":
		return OrganizeYearly
	default:
		return OrganizeMonthly
	}
}

// ContentPart is a single typed unit of message content.
type ContentPart struct {
	Type     ContentType `json:"type"`
	Text     string      `json:"text,omitempty"`
	Language string      `json:"language,omitempty"`
	ImageRef string      `json:"image_ref,omitempty"`
	URL      string      `json:"url,omitempty"`
	Title    string      `json:"title,omitempty"`
}

// Message is one turn of a reconstructed conversation. It is fully
// populated on construction and read-only afterwards.
type Message struct {
	ID        string        `json:"id"`
	Role      AuthorRole    `json:"role"`
	Parts     []ContentPart `json:"parts"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
	ModelSlug string        `json:"model_slug,omitempty"`
}

// Conversation is a fully reconstructed conversation with messages in
// chronological (root-to-leaf) order. ModelSlugs is always derived from
// the messages it contains, never set independently.
type Conversation struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Messages   []Message  `json:"messages"`
	ModelSlugs []string   `json:"model_slugs"`
}

// ConversationMeta is a lightweight projection of Conversation for fast
// previews: a message count instead of message bodies.
//
// MessageCount counts user/assistant payloads in the raw tree without
// applying the full visibility filter, so it can exceed the number of
// messages a full reconstruction yields when empty placeholder turns
// would have been suppressed. Known approximation.
type ConversationMeta struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	MessageCount int        `json:"message_count"`
	ModelSlugs   []string   `json:"model_slugs"`
}

// ExportStatistics holds aggregate counters over a set of conversations.
type ExportStatistics struct {
	TotalConversations   int
	TotalMessages        int
	Earliest             *time.Time
	Latest               *time.Time
	ModelsUsed           map[string]int
	MessagesByRole       map[string]int
	ConversationsByMonth map[string]int
}

// RawConversation is one entry of the archive's conversations.json.
type RawConversation struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	CreateTime *float64           `json:"create_time"`
	UpdateTime *float64           `json:"update_time"`
	Mapping    map[string]RawNode `json:"mapping"`
}

// RawNode is one entry in a conversation's tree mapping. Parent is nil
// only for the root node.
type RawNode struct {
	ID       string      `json:"id"`
	Parent   *string     `json:"parent"`
	Children []string    `json:"children"`
	Message  *RawMessage `json:"message"`
}

// RawMessage is the message payload embedded in a tree node.
type RawMessage struct {
	ID         string                 `json:"id"`
	Author     RawAuthor              `json:"author"`
	Content    *RawContent            `json:"content"`
	CreateTime *float64               `json:"create_time"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// RawAuthor carries the author role of a raw message.
type RawAuthor struct {
	Role string `json:"role"`
}

// RawContent is the content block of a raw message. Parts entries are
// either JSON strings (plain text) or objects (multimodal attachments),
// so they stay raw until rendering.
type RawContent struct {
	ContentType string            `json:"content_type"`
	Parts       []json.RawMessage `json:"parts"`
	Text        string            `json:"text"`
	Language    string            `json:"language"`
	Result      string            `json:"result"`
	Title       string            `json:"title"`
	URL         string            `json:"url"`
}

// ModelSlug returns the model identifier from the message metadata,
// preferring model_slug over model. Empty string when absent.
func (m *RawMessage) ModelSlug() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	if slug, ok := m.Metadata["model_slug"].(string); ok && slug != "" {
		return slug
	}
	if slug, ok := m.Metadata["model"].(string); ok && slug != "" {
		return slug
	}
	return ""
}

// IsUserSystemMessage reports whether the payload is a user-authored
// system note, which stays visible unlike the hidden system prompt.
func (m *RawMessage) IsUserSystemMessage() bool {
	if m == nil || m.Metadata == nil {
		return false
	}
	flag, ok := m.Metadata["is_user_system_message"].(bool)
	return ok && flag
}

// Epoch bounds accepted by FromEpoch; values outside this window are
// treated as unparseable (year 1 through 9999).
const (
	minEpoch = -62135596800
	maxEpoch = 253402300799
)

// FromEpoch converts an optional Unix timestamp (seconds, possibly
// fractional) to a UTC time. Returns nil for absent or out-of-range
// values, never an error.
func FromEpoch(ts *float64) *time.Time {
	if ts == nil {
		return nil
	}
	sec := int64(*ts)
	if sec < minEpoch || sec > maxEpoch {
		return nil
	}
	nsec := int64((*ts - float64(sec)) * float64(time.Second))
	t := time.Unix(sec, nsec).UTC()
	return &t
}

// sortedSlugs converts a slug set to a sorted slice.
func sortedSlugs(set map[string]struct{}) []string {
	slugs := make([]string, 0, len(set))
	for slug := range set {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
