package internal

import "strings"

// ParseConversations fully reconstructs every raw conversation in the
// archive, preserving input order. Malformed entries degrade to
// conversations with fewer (possibly zero) messages, never errors.
func ParseConversations(raw []RawConversation) []*Conversation {
	conversations := make([]*Conversation, 0, len(raw))
	for i := range raw {
		conversations = append(conversations, ParseConversation(&raw[i]))
	}
	return conversations
}

// ParseConversation reconstructs a single conversation from its raw
// tree mapping.
func ParseConversation(raw *RawConversation) *Conversation {
	messages := traverseMapping(raw.Mapping)

	slugSet := make(map[string]struct{})
	for _, msg := range messages {
		if msg.ModelSlug != "" {
			slugSet[msg.ModelSlug] = struct{}{}
		}
	}

	return &Conversation{
		ID:         raw.ID,
		Title:      titleOrDefault(raw.Title),
		CreatedAt:  FromEpoch(raw.CreateTime),
		UpdatedAt:  FromEpoch(raw.UpdateTime),
		Messages:   messages,
		ModelSlugs: sortedSlugs(slugSet),
	}
}

// ParseMetadata runs the metadata-only fast path over the archive:
// message counts and model slugs without building content parts.
func ParseMetadata(raw []RawConversation) []*ConversationMeta {
	metas := make([]*ConversationMeta, 0, len(raw))
	for i := range raw {
		metas = append(metas, ParseConversationMeta(&raw[i]))
	}
	return metas
}

// ParseConversationMeta extracts metadata for one conversation. The
// count covers user/assistant payloads in the whole mapping; see
// ConversationMeta.MessageCount for how it can diverge from a full
// reconstruction.
func ParseConversationMeta(raw *RawConversation) *ConversationMeta {
	return &ConversationMeta{
		ID:           raw.ID,
		Title:        titleOrDefault(raw.Title),
		CreatedAt:    FromEpoch(raw.CreateTime),
		UpdatedAt:    FromEpoch(raw.UpdateTime),
		MessageCount: countMessages(raw.Mapping),
		ModelSlugs:   extractModelSlugs(raw.Mapping),
	}
}

// traverseMapping turns a branching edit-history tree into the single
// chronological message sequence a reader should see.
//
// The walk finds the root (the unique parentless node), descends via
// the last child at each level to the tip of the most recent edit
// branch, then collects message payloads back up the parent chain and
// reverses them. Siblings from earlier edits never appear.
func traverseMapping(mapping map[string]RawNode) []Message {
	if len(mapping) == 0 {
		return nil
	}

	rootID, ok := findRoot(mapping)
	if !ok {
		return nil
	}

	// Descend to the current leaf, always taking the last child. The
	// export lists siblings in creation order, so the last child is the
	// most recent edit.
	leafID := rootID
	for {
		node, ok := mapping[leafID]
		if !ok || len(node.Children) == 0 {
			break
		}
		leafID = node.Children[len(node.Children)-1]
	}

	// Walk backward from leaf to root, keeping visible payloads.
	var collected []*RawMessage
	currentID := leafID
	for {
		node, ok := mapping[currentID]
		if !ok {
			break
		}
		if isVisible(node.Message) {
			collected = append(collected, node.Message)
		}
		if node.Parent == nil {
			break
		}
		currentID = *node.Parent
	}

	// Reverse to root-to-leaf (chronological) order.
	messages := make([]Message, 0, len(collected))
	for i := len(collected) - 1; i >= 0; i-- {
		messages = append(messages, buildMessage(collected[i]))
	}
	return messages
}

// isVisible applies the content-visibility filter. A payload that fails
// any test is intentionally suppressed, not an error.
func isVisible(msg *RawMessage) bool {
	if msg == nil {
		return false
	}

	// Hide the hidden system prompt but keep user-authored system notes.
	if msg.Author.Role == "system" && !msg.IsUserSystemMessage() {
		return false
	}

	// Internal tool-call results are never shown.
	if msg.Author.Role == "tool" {
		return false
	}

	if msg.Content == nil || len(msg.Content.Parts) == 0 {
		return false
	}

	// Suppress placeholder turns: a text block whose parts are all
	// blank strings (e.g. aborted generations).
	if msg.Content.ContentType == "text" && !hasRenderableParts(msg.Content) {
		return false
	}

	return true
}

// hasRenderableParts reports whether any part is a non-blank string or
// a structured (object) fragment.
func hasRenderableParts(content *RawContent) bool {
	for _, part := range content.Parts {
		if s, ok := decodeString(part); ok {
			if strings.TrimSpace(s) != "" {
				return true
			}
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(string(part)), "{") {
			return true
		}
	}
	return false
}

// buildMessage converts a surviving raw payload to a Message.
func buildMessage(raw *RawMessage) Message {
	return Message{
		ID:        raw.ID,
		Role:      ParseRole(raw.Author.Role),
		Parts:     RenderContent(raw.Content),
		CreatedAt: FromEpoch(raw.CreateTime),
		ModelSlug: raw.ModelSlug(),
	}
}

// findRoot locates the unique node with no parent. Returns false for
// malformed mappings with no such node.
func findRoot(mapping map[string]RawNode) (string, bool) {
	for id, node := range mapping {
		if node.Parent == nil {
			return id, true
		}
	}
	return "", false
}

// countMessages counts user/assistant payloads across the whole
// mapping, without the full visibility filter.
func countMessages(mapping map[string]RawNode) int {
	count := 0
	for _, node := range mapping {
		if node.Message == nil {
			continue
		}
		switch node.Message.Author.Role {
		case "user", "assistant":
			count++
		}
	}
	return count
}

// extractModelSlugs collects every model identifier referenced by any
// payload in the mapping.
func extractModelSlugs(mapping map[string]RawNode) []string {
	set := make(map[string]struct{})
	for _, node := range mapping {
		if slug := node.Message.ModelSlug(); slug != "" {
			set[slug] = struct{}{}
		}
	}
	return sortedSlugs(set)
}

func titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}
	return title
}
