package feedback

import (
	"strings"

	"github.com/nfrund/ipadmin/internal/domain"
)

// ColumnHeaders returns the union of all row keys in first-seen order.
func ColumnHeaders(rows []domain.FeedbackRow) []string {
	if len(rows) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	headers := []string{}
	for _, row := range rows {
		for _, key := range row.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			headers = append(headers, key)
		}
	}
	return headers
}

// IsDateColumn reports whether a header names a date column.
func IsDateColumn(header string) bool {
	return strings.Contains(strings.ToLower(header), "date")
}

// IsCommentColumn reports whether a header holds free-text comments, which
// are never charted.
func IsCommentColumn(header string) bool {
	return strings.Contains(strings.ToLower(header), "comment")
}

// DateKey picks the column used as the x-axis and for date filtering: the
// first date column, else the first column.
func DateKey(headers []string) string {
	for _, h := range headers {
		if IsDateColumn(h) {
			return h
		}
	}
	if len(headers) > 0 {
		return headers[0]
	}
	return ""
}

// ValueKeys lists the columns that can be charted.
func ValueKeys(headers []string, dateKey string) []string {
	keys := []string{}
	for _, h := range headers {
		if h == dateKey || IsCommentColumn(h) {
			continue
		}
		keys = append(keys, h)
	}
	return keys
}

// Columns bundles the discovered columns of one measure.
type Columns struct {
	Headers   []string
	DateKey   string
	ValueKeys []string
}

// Discover runs the column discovery steps in one go.
func Discover(rows []domain.FeedbackRow) Columns {
	headers := ColumnHeaders(rows)
	dateKey := DateKey(headers)
	return Columns{
		Headers:   headers,
		DateKey:   dateKey,
		ValueKeys: ValueKeys(headers, dateKey),
	}
}
