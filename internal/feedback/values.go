package feedback

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
)

// Numeric coerces a cell value to a number. Finite numbers and numeric
// strings are accepted; anything else, NaN and infinities included, is not a
// data point.
func Numeric(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ValueText renders a raw cell value as text. Missing and null values are
// empty.
func ValueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// CellText is the text of row[header] for table display.
func CellText(row domain.FeedbackRow, header string) string {
	v, _ := row.Get(header)
	return ValueText(v)
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTime interprets a cell value as an instant. Date-only strings are UTC
// midnight, strings without a zone are read in loc and plain numbers are
// milliseconds since the epoch.
func ParseTime(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	switch t := v.(type) {
	case float64:
		return time.UnixMilli(int64(t)), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, true
		}
		if ts, err := time.Parse(time.DateOnly, s); err == nil {
			return ts, true
		}
		for _, layout := range localLayouts {
			if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// FormatDetailDate renders a date cell as MM/DD/YYYY HH:MM.
func FormatDetailDate(v any, loc *time.Location) string {
	return formatDate(v, loc, "01/02/2006 15:04")
}

// FormatLookupDate renders a date cell as "Jan 2, 2006, 03:04 PM".
func FormatLookupDate(v any, loc *time.Location) string {
	return formatDate(v, loc, "Jan 2, 2006, 03:04 PM")
}

func formatDate(v any, loc *time.Location, layout string) string {
	if v == nil {
		return ""
	}
	ts, ok := ParseTime(v, loc)
	if !ok {
		return ValueText(v)
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(layout)
}

// XLabel is the x-axis tick text: the date part of an ISO timestamp.
func XLabel(v any) string {
	s := ValueText(v)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
