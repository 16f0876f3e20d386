package internal

import (
	"sort"
	"time"
)

// NewExportStatistics returns an empty accumulator with initialized
// counter maps.
func NewExportStatistics() *ExportStatistics {
	return &ExportStatistics{
		ModelsUsed:           make(map[string]int),
		MessagesByRole:       make(map[string]int),
		ConversationsByMonth: make(map[string]int),
	}
}

// ComputeStatistics folds a slice of full conversations into aggregate
// counters in a single pass.
func ComputeStatistics(conversations []*Conversation) *ExportStatistics {
	stats := NewExportStatistics()
	for _, conv := range conversations {
		stats.Add(conv)
	}
	return stats
}

// ComputeMetaStatistics folds conversation metadata records. Model
// identifiers are registered with a zero baseline since per-message
// counts cannot be recovered from metadata alone.
func ComputeMetaStatistics(metas []*ConversationMeta) *ExportStatistics {
	stats := NewExportStatistics()
	for _, meta := range metas {
		stats.AddMeta(meta)
	}
	return stats
}

// Add accumulates one full conversation.
func (s *ExportStatistics) Add(conv *Conversation) {
	s.TotalConversations++
	s.TotalMessages += len(conv.Messages)
	for i := range conv.Messages {
		msg := &conv.Messages[i]
		s.MessagesByRole[string(msg.Role)]++
		if msg.ModelSlug != "" {
			s.ModelsUsed[msg.ModelSlug]++
		}
	}
	s.trackDate(conv.CreatedAt)
}

// AddMeta accumulates one metadata record.
func (s *ExportStatistics) AddMeta(meta *ConversationMeta) {
	s.TotalConversations++
	s.TotalMessages += meta.MessageCount
	for _, slug := range meta.ModelSlugs {
		if _, ok := s.ModelsUsed[slug]; !ok {
			s.ModelsUsed[slug] = 0
		}
	}
	s.trackDate(meta.CreatedAt)
}

func (s *ExportStatistics) trackDate(dt *time.Time) {
	if dt == nil {
		return
	}
	s.ConversationsByMonth[dt.Format("2006-01")]++
	if s.Earliest == nil || dt.Before(*s.Earliest) {
		s.Earliest = dt
	}
	if s.Latest == nil || dt.After(*s.Latest) {
		s.Latest = dt
	}
}

// StatisticsDoc is the JSON-serializable form of ExportStatistics used
// by the reporting layers.
type StatisticsDoc struct {
	TotalConversations   int            `json:"total_conversations"`
	TotalMessages        int            `json:"total_messages"`
	DateRange            DateRangeDoc   `json:"date_range"`
	ModelsUsed           map[string]int `json:"models_used"`
	MessagesByRole       map[string]int `json:"messages_by_role"`
	ConversationsByMonth map[string]int `json:"conversations_by_month"`
}

// DateRangeDoc carries the (earliest, latest) pair as RFC 3339 strings,
// null when no conversation carried a creation timestamp.
type DateRangeDoc struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Doc converts the statistics to their serializable form.
func (s *ExportStatistics) Doc() StatisticsDoc {
	return StatisticsDoc{
		TotalConversations:   s.TotalConversations,
		TotalMessages:        s.TotalMessages,
		DateRange:            DateRangeDoc{Start: isoTime(s.Earliest), End: isoTime(s.Latest)},
		ModelsUsed:           s.ModelsUsed,
		MessagesByRole:       s.MessagesByRole,
		ConversationsByMonth: s.ConversationsByMonth,
	}
}

// SortedModels returns model names ordered alphabetically, for stable
// display output.
func (s *ExportStatistics) SortedModels() []string {
	models := make([]string, 0, len(s.ModelsUsed))
	for model := range s.ModelsUsed {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}

// SortedRoles returns role names ordered alphabetically.
func (s *ExportStatistics) SortedRoles() []string {
	roles := make([]string, 0, len(s.MessagesByRole))
	for role := range s.MessagesByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
