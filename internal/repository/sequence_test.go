package repository

import "testing"

func TestDocumentCodePrefix(t *testing.T) {
	got := DocumentCodePrefix("PYC", "CHUNG", 2026, 8)
	if got != "PYC/CHUNG/2026/08/" {
		t.Errorf("DocumentCodePrefix = %q, want %q", got, "PYC/CHUNG/2026/08/")
	}
}

func TestFormatDocumentCode(t *testing.T) {
	tests := []struct {
		docType, project string
		year, month, seq int
		want             string
	}{
		{"PYC", "CHUNG", 2026, 8, 1, "PYC/CHUNG/2026/08/0001"},
		{"PYC", "CT01", 2026, 12, 42, "PYC/CT01/2026/12/0042"},
		{"DNTT", "CHUNG", 2025, 1, 9999, "DNTT/CHUNG/2025/01/9999"},
	}

	for _, tt := range tests {
		got := FormatDocumentCode(tt.docType, tt.project, tt.year, tt.month, tt.seq)
		if got != tt.want {
			t.Errorf("FormatDocumentCode = %q, want %q", got, tt.want)
		}
	}
}

func TestMaxSequence(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want int
	}{
		{"empty", nil, 0},
		{"sequential", []string{
			"PYC/CHUNG/2026/08/0001",
			"PYC/CHUNG/2026/08/0002",
			"PYC/CHUNG/2026/08/0003",
		}, 3},
		{"gaps", []string{
			"PYC/CT01/2026/08/0001",
			"PYC/CT01/2026/08/0007",
		}, 7},
		{"non-parsing ignored", []string{
			"PYC/CHUNG/2026/08/abc",
			"PYC/CHUNG/2026/08/0005",
			"no-slashes-at-all",
			"trailing/slash/",
		}, 5},
		{"none parse", []string{
			"PYC/CHUNG/2026/08/xyz",
			"garbage",
		}, 0},
		{"unpadded", []string{
			"PYC/CHUNG/2026/08/12",
		}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxSequence(tt.ids); got != tt.want {
				t.Errorf("maxSequence = %d, want %d", got, tt.want)
			}
		})
	}
}
