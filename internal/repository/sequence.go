package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// DocumentCodePrefix builds the code prefix for one project/month scope,
// e.g. "PYC/CHUNG/2026/08/". Document codes append a zero-padded sequence.
func DocumentCodePrefix(docType, projectCode string, year, month int) string {
	return fmt.Sprintf("%s/%s/%04d/%02d/", docType, projectCode, year, month)
}

// FormatDocumentCode renders a full document code with its sequence number.
func FormatDocumentCode(docType, projectCode string, year, month, seq int) string {
	return fmt.Sprintf("%s%04d", DocumentCodePrefix(docType, projectCode, year, month), seq)
}

// nextSequence scans existing document ids under the given prefix and
// returns max(sequence)+1, or 1 when none exist.
//
// Read-then-compute: two concurrent allocations in the same scope can
// observe the same maximum. The unique primary key turns that into an
// insert error rather than a duplicate code.
func nextSequence(ctx context.Context, db *gorm.DB, model interface{}, prefix string) (int, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(model).
		Where("id LIKE ?", prefix+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	return maxSequence(ids) + 1, nil
}

// maxSequence parses the last slash-delimited segment of every id as an
// integer and returns the largest, ignoring ids that do not parse.
func maxSequence(ids []string) int {
	max := 0
	for _, id := range ids {
		idx := strings.LastIndex(id, "/")
		if idx < 0 || idx == len(id)-1 {
			continue
		}
		seq, err := strconv.Atoi(id[idx+1:])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}
