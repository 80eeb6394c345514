package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// HistoryEntry is a single status transition on a workflow document.
// Entries are append-only; "most recent" is always the last element.
type HistoryEntry struct {
	Status  string    `json:"status"`
	User    string    `json:"user"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// StatusHistory is the embedded transition ledger, stored as jsonb.
type StatusHistory []HistoryEntry

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(StatusHistory{})
	}
	return json.Marshal(h)
}

// Scan tolerates missing or malformed stored history: the ledger is
// supplementary audit data, so corruption degrades to an empty list
// instead of failing the read. Legacy rows sometimes hold the history
// double-encoded as a JSON string; that shape is unwrapped once.
func (h *StatusHistory) Scan(value interface{}) error {
	*h = nil
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var entries StatusHistory
	if err := json.Unmarshal(raw, &entries); err == nil {
		*h = entries
		return nil
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if err := json.Unmarshal([]byte(wrapped), &entries); err == nil {
			*h = entries
		}
	}
	return nil
}

// Append returns a new ledger with one entry added; the receiver is not
// mutated. An empty message falls back to the default for the status.
func (h StatusHistory) Append(status, actor, message string) StatusHistory {
	if message == "" {
		message = DefaultStatusMessage(status)
	}
	out := make(StatusHistory, len(h), len(h)+1)
	copy(out, h)
	return append(out, HistoryEntry{
		Status:  status,
		User:    actor,
		Message: message,
		At:      time.Now(),
	})
}

// Last returns the most recent entry, or nil for an empty ledger.
func (h StatusHistory) Last() *HistoryEntry {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}

// DefaultStatusMessage is used when a transition carries no explicit message.
func DefaultStatusMessage(status string) string {
	switch status {
	case PYCStatusApproved:
		return "Approved"
	case PYCStatusNeedsRevision:
		return "Revision requested"
	default:
		return status
	}
}

// Attachment is a stored file reference on a document header. File bytes
// live in the object store; the header only keeps the resolved URL.
type Attachment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// AttachmentList jsonb array type
type AttachmentList []Attachment

func (a AttachmentList) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(AttachmentList{})
	}
	return json.Marshal(a)
}

func (a *AttachmentList) Scan(value interface{}) error {
	*a = nil
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var list AttachmentList
	if err := json.Unmarshal(raw, &list); err == nil {
		*a = list
	}
	return nil
}
