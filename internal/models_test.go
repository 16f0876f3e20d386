package internal

import (
	"testing"
	"time"
)

func TestFromEpoch(t *testing.T) {
	if got := FromEpoch(nil); got != nil {
		t.Errorf("FromEpoch(nil) = %v, want nil", got)
	}

	got := FromEpoch(epoch(1710081000))
	if got == nil {
		t.Fatal("FromEpoch() returned nil for a valid timestamp")
	}
	want := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("FromEpoch() = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("FromEpoch() location = %v, want UTC", got.Location())
	}
}

func TestFromEpoch_Fractional(t *testing.T) {
	got := FromEpoch(epoch(1710081000.5))
	if got == nil {
		t.Fatal("FromEpoch() returned nil")
	}
	if got.Nanosecond() != 500000000 {
		t.Errorf("FromEpoch() nanoseconds = %d, want 500000000", got.Nanosecond())
	}
}

func TestFromEpoch_OutOfRange(t *testing.T) {
	for _, ts := range []float64{1e18, -1e18} {
		if got := FromEpoch(&ts); got != nil {
			t.Errorf("FromEpoch(%g) = %v, want nil", ts, got)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want AuthorRole
	}{
		{"user", RoleUser},
		{"assistant", RoleAssistant},
		{"system", RoleSystem},
		{"tool", RoleTool},
		{"browser", RoleUser},
		{"", RoleUser},
	}
	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOrganizeMode(t *testing.T) {
	tests := []struct {
		in   string
		want OrganizeMode
	}{
		{"flat", OrganizeFlat},
		{"monthly", OrganizeMonthly},
		{"yearly", OrganizeYearly},
		{"bogus", OrganizeMonthly},
	}
	for _, tt := range tests {
		if got := ParseOrganizeMode(tt.in); got != tt.want {
			t.Errorf("ParseOrganizeMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRawMessage_ModelSlug(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]interface{}
		want string
	}{
		{"model_slug preferred", map[string]interface{}{"model_slug": "gpt-4", "model": "other"}, "gpt-4"},
		{"model fallback", map[string]interface{}{"model": "gpt-4o"}, "gpt-4o"},
		{"empty slug falls through", map[string]interface{}{"model_slug": "", "model": "gpt-4o"}, "gpt-4o"},
		{"non-string ignored", map[string]interface{}{"model_slug": 42}, ""},
		{"nil metadata", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &RawMessage{Metadata: tt.meta}
			if got := msg.ModelSlug(); got != tt.want {
				t.Errorf("ModelSlug() = %q, want %q", got, tt.want)
			}
		})
	}

	var nilMsg *RawMessage
	if got := nilMsg.ModelSlug(); got != "" {
		t.Errorf("nil ModelSlug() = %q, want empty", got)
	}
}

func TestRawMessage_IsUserSystemMessage(t *testing.T) {
	flagged := &RawMessage{Metadata: map[string]interface{}{"is_user_system_message": true}}
	if !flagged.IsUserSystemMessage() {
		t.Error("IsUserSystemMessage() = false for flagged message")
	}

	unflagged := &RawMessage{Metadata: map[string]interface{}{}}
	if unflagged.IsUserSystemMessage() {
		t.Error("IsUserSystemMessage() = true for unflagged message")
	}

	wrongType := &RawMessage{Metadata: map[string]interface{}{"is_user_system_message": "yes"}}
	if wrongType.IsUserSystemMessage() {
		t.Error("IsUserSystemMessage() = true for non-bool flag")
	}
}
