package feedback

import (
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
)

// DateRange bounds the rows shown for a measure. Zero bounds are open.
type DateRange struct {
	Start time.Time
	End   time.Time

	// Raw inputs, echoed back into the date pickers.
	StartRaw string
	EndRaw   string
}

// ParseDateRange reads YYYY-MM-DD picker values. Unparseable values leave
// that side of the range open.
func ParseDateRange(start, end string) DateRange {
	r := DateRange{StartRaw: start, EndRaw: end}
	if ts, err := time.Parse(time.DateOnly, start); err == nil {
		r.Start = ts
	}
	if ts, err := time.Parse(time.DateOnly, end); err == nil {
		r.End = ts
	}
	return r
}

// IsZero reports whether the range is unbounded.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether ts falls in the range. Both bounds are UTC
// midnight of the picked day, so rows later on the end date fall outside.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && ts.After(r.End) {
		return false
	}
	return true
}

// Filter keeps the rows whose dateKey value falls in the range. Rows with no
// usable date are kept.
func Filter(rows []domain.FeedbackRow, dateKey string, r DateRange, loc *time.Location) []domain.FeedbackRow {
	if r.IsZero() {
		return rows
	}
	out := make([]domain.FeedbackRow, 0, len(rows))
	for _, row := range rows {
		v, _ := row.Get(dateKey)
		ts, ok := ParseTime(v, loc)
		if ok && !r.Contains(ts) {
			continue
		}
		out = append(out, row)
	}
	return out
}
