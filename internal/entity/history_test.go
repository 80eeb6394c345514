package entity

import (
	"encoding/json"
	"testing"
)

func TestStatusHistoryAppendDoesNotMutatePrior(t *testing.T) {
	h := StatusHistory{}.Append("pending", "a@test.com", "Initial creation")
	if len(h) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(h))
	}

	before, _ := json.Marshal(h)

	h2 := h.Append("approved", "b@test.com", "")
	if len(h2) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(h2))
	}

	after, _ := json.Marshal(h)
	if string(before) != string(after) {
		t.Errorf("Appending mutated the prior ledger: %s vs %s", before, after)
	}

	// prior entries are carried over unchanged
	if h2[0] != h[0] {
		t.Errorf("First entry changed after append: %+v vs %+v", h2[0], h[0])
	}
}

func TestStatusHistoryDefaultMessages(t *testing.T) {
	tests := []struct {
		status  string
		message string
		want    string
	}{
		{"approved", "", "Approved"},
		{"needs_revision", "", "Revision requested"},
		{"rejected", "", "rejected"},
		{"pending", "", "pending"},
		{"approved", "looks good", "looks good"},
	}

	for _, tt := range tests {
		h := StatusHistory{}.Append(tt.status, "u@test.com", tt.message)
		if got := h.Last().Message; got != tt.want {
			t.Errorf("Append(%q, %q): message = %q, want %q", tt.status, tt.message, got, tt.want)
		}
	}
}

func TestStatusHistoryLast(t *testing.T) {
	var empty StatusHistory
	if empty.Last() != nil {
		t.Error("Expected nil Last() on empty ledger")
	}

	h := StatusHistory{}.
		Append("pending", "a@test.com", "").
		Append("approved", "b@test.com", "")
	last := h.Last()
	if last == nil || last.Status != "approved" || last.User != "b@test.com" {
		t.Errorf("Unexpected last entry: %+v", last)
	}
}

func TestStatusHistoryScanTolerance(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"nil", nil, 0},
		{"empty bytes", []byte{}, 0},
		{"empty string", "", 0},
		{"malformed", []byte("{not json"), 0},
		{"wrong type", 42, 0},
		{"valid array", []byte(`[{"status":"pending","user":"a@test.com","message":"x","at":"2026-01-02T03:04:05Z"}]`), 1},
		{"double encoded", []byte(`"[{\"status\":\"approved\",\"user\":\"b@test.com\",\"message\":\"ok\",\"at\":\"2026-01-02T03:04:05Z\"}]"`), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h StatusHistory
			if err := h.Scan(tt.value); err != nil {
				t.Fatalf("Scan returned error: %v", err)
			}
			if len(h) != tt.want {
				t.Errorf("Expected %d entries, got %d", tt.want, len(h))
			}
		})
	}
}

func TestStatusHistoryScanDoubleEncodedContent(t *testing.T) {
	var h StatusHistory
	raw := `"[{\"status\":\"approved\",\"user\":\"b@test.com\",\"message\":\"ok\",\"at\":\"2026-01-02T03:04:05Z\"}]"`
	if err := h.Scan([]byte(raw)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(h) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(h))
	}
	if h[0].Status != "approved" || h[0].User != "b@test.com" {
		t.Errorf("Unexpected entry: %+v", h[0])
	}
}

func TestStatusHistoryValueRoundTrip(t *testing.T) {
	var nilHistory StatusHistory
	v, err := nilHistory.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("Expected empty array for nil history, got %s", v)
	}
}
