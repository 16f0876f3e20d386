package export

import (
	"fmt"
	"sort"

	"github.com/chatmd/chatmd/internal"
)

// DefaultMaxSize is the rendered-document bound in characters, sized
// for the Claude Project per-file limit (~100K) with headroom.
const DefaultMaxSize = 90000

// overheadPerMessage approximates the header and spacing the renderer
// adds around each message; the split estimate is calibrated, not an
// exact render.
const overheadPerMessage = 50

// MaybeSplit partitions a conversation whose rendered document exceeds
// maxSize into multiple parts, each independently renderable within the
// bound. Within the bound, the original conversation is returned as the
// single element, untouched.
//
// The walk is greedy and single-pass: a message moves to a new part
// only when adding it would exceed the bound and the current part is
// non-empty. A single message is never split internally, so one
// oversized message can push a part past the bound. Concatenating all
// parts' messages in order reproduces the original sequence exactly.
func MaybeSplit(conv *internal.Conversation, maxSize int) []*internal.Conversation {
	if len(ConversationToMarkdown(conv, DefaultOptions())) <= maxSize {
		return []*internal.Conversation{conv}
	}
	if len(conv.Messages) == 0 {
		return []*internal.Conversation{conv}
	}

	var parts []*internal.Conversation
	var current []internal.Message
	currentSize := 0
	partNum := 1

	for i := range conv.Messages {
		msg := conv.Messages[i]
		msgSize := estimateSize(&msg)

		if currentSize+msgSize > maxSize && len(current) > 0 {
			parts = append(parts, makePart(conv, current, partNum))
			partNum++
			current = nil
			currentSize = 0
		}

		current = append(current, msg)
		currentSize += msgSize
	}

	if len(current) > 0 {
		parts = append(parts, makePart(conv, current, partNum))
	}

	// The overhead estimate can disagree with the real render; a lone
	// part keeps the original identity rather than a spurious "(Part 1)".
	if len(parts) == 1 {
		return []*internal.Conversation{conv}
	}
	return parts
}

// estimateSize sums the raw text lengths of a message's parts plus the
// fixed per-message overhead.
func estimateSize(msg *internal.Message) int {
	size := overheadPerMessage
	for _, part := range msg.Parts {
		size += len(part.Text)
	}
	return size
}

// makePart builds a new conversation for one part of a split, with its
// own recomputed model set.
func makePart(original *internal.Conversation, messages []internal.Message, partNum int) *internal.Conversation {
	slugSet := make(map[string]struct{})
	for i := range messages {
		if messages[i].ModelSlug != "" {
			slugSet[messages[i].ModelSlug] = struct{}{}
		}
	}
	slugs := make([]string, 0, len(slugSet))
	for slug := range slugSet {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	return &internal.Conversation{
		ID:         fmt.Sprintf("%s_part%d", original.ID, partNum),
		Title:      fmt.Sprintf("%s (Part %d)", original.Title, partNum),
		CreatedAt:  original.CreatedAt,
		UpdatedAt:  original.UpdatedAt,
		Messages:   messages,
		ModelSlugs: slugs,
	}
}
