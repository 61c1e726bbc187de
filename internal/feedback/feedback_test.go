package feedback

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rows decodes a JSON array of feedback rows, keeping key order.
func rows(t *testing.T, raw string) []domain.FeedbackRow {
	t.Helper()
	var out []domain.FeedbackRow
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestColumnDiscovery(t *testing.T) {
	data := rows(t, `[
		{"Sleep": 3, "responseDate": "2024-01-02T09:00:00Z"},
		{"responseDate": "2024-01-05T09:00:00Z", "Mood": 4, "Comments": "better"},
		{"Sleep": 5}
	]`)

	cols := Discover(data)
	assert.Equal(t, []string{"Sleep", "responseDate", "Mood", "Comments"}, cols.Headers)
	assert.Equal(t, "responseDate", cols.DateKey)
	assert.Equal(t, []string{"Sleep", "Mood"}, cols.ValueKeys)
}

func TestColumnDiscovery_EdgeCases(t *testing.T) {
	assert.Empty(t, ColumnHeaders(nil))
	assert.Equal(t, "", DateKey(nil))

	noDate := []string{"score", "other"}
	assert.Equal(t, "score", DateKey(noDate), "falls back to the first column")
	assert.Equal(t, []string{"other"}, ValueKeys(noDate, "score"))

	assert.True(t, IsDateColumn("SubmittedDATE"))
	assert.False(t, IsDateColumn("score"))
	assert.True(t, IsCommentColumn("clinicianComment"))
}

func TestSelection(t *testing.T) {
	valueKeys := []string{"a", "b", "c"}

	assert.Equal(t, valueKeys, AllSeries().Resolve(valueKeys))
	assert.False(t, AllSeries().IsSet())
	assert.True(t, AllSeries().Contains("anything"))

	sel := SelectSeries([]string{"c", "a", "zzz", "c"})
	assert.Equal(t, []string{"c", "a"}, sel.Resolve(valueKeys), "keeps selection order and drops unknown keys")
	assert.True(t, sel.Contains("c"))
	assert.False(t, sel.Contains("b"))

	none := SelectSeries(nil)
	assert.True(t, none.IsSet())
	assert.Empty(t, none.Resolve(valueKeys))

	t.Run("rechecked columns go last", func(t *testing.T) {
		unchecked := AllSeries().Merge([]string{"b", "c"}, valueKeys)
		assert.Equal(t, []string{"b", "c"}, unchecked.Resolve(valueKeys))

		// The form posts checkboxes in column order.
		rechecked := unchecked.Merge([]string{"a", "b", "c"}, valueKeys)
		assert.Equal(t, []string{"b", "c", "a"}, rechecked.Resolve(valueKeys))

		assert.Empty(t, rechecked.Merge(nil, valueKeys).Resolve(valueKeys))
	})
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeTable, ParseMode(""))
	assert.Equal(t, ModeTable, ParseMode("pie"))
	assert.Equal(t, ModeLineChart, ParseMode("lineChart"))
	assert.Equal(t, ModeBarChart, ParseMode("barChart"))
	assert.True(t, ModeBarChart.IsChart())
	assert.False(t, ModeTable.IsChart())
	assert.Equal(t, "Line Chart", ModeLineChart.Label())
}

func TestNumericAndText(t *testing.T) {
	tests := []struct {
		in    any
		num   float64
		numOK bool
		text  string
	}{
		{float64(3), 3, true, "3"},
		{2.5, 2.5, true, "2.5"},
		{" 7 ", 7, true, " 7 "},
		{"n/a", 0, false, "n/a"},
		{nil, 0, false, ""},
		{true, 0, false, "true"},
		{float64(0), 0, true, "0"},
		{"NaN", 0, false, "NaN"},
		{"-Inf", 0, false, "-Inf"},
		{"+Infinity", 0, false, "+Infinity"},
	}
	for _, tt := range tests {
		n, ok := Numeric(tt.in)
		assert.Equal(t, tt.numOK, ok, "Numeric(%v)", tt.in)
		assert.Equal(t, tt.num, n, "Numeric(%v)", tt.in)
		assert.Equal(t, tt.text, ValueText(tt.in), "ValueText(%v)", tt.in)
	}

	row := domain.FeedbackRow{{Key: "x", Value: float64(1)}}
	assert.Equal(t, "1", CellText(row, "x"))
	assert.Equal(t, "", CellText(row, "missing"), "missing fields render empty")
}

func TestDateFormatting(t *testing.T) {
	loc := time.UTC

	assert.Equal(t, "03/05/2024 14:30", FormatDetailDate("2024-03-05T14:30:00.000Z", loc))
	assert.Equal(t, "Mar 5, 2024, 02:30 PM", FormatLookupDate("2024-03-05T14:30:00Z", loc))
	assert.Equal(t, "03/05/2024 00:00", FormatDetailDate("2024-03-05", loc))
	assert.Equal(t, "soon", FormatDetailDate("soon", loc), "unparseable values render verbatim")
	assert.Equal(t, "", FormatDetailDate(nil, loc))

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "03/05/2024 09:30", FormatDetailDate("2024-03-05T14:30:00Z", ny))

	assert.Equal(t, "2024-03-05", XLabel("2024-03-05T14:30:00Z"))
	assert.Equal(t, "week 1", XLabel("week 1"))
}

func TestFilter(t *testing.T) {
	data := rows(t, `[
		{"date": "2024-01-01T08:00:00Z", "v": 1},
		{"date": "2024-01-10T23:30:00Z", "v": 2},
		{"date": "2024-01-11T00:00:00Z", "v": 3},
		{"date": "garbage", "v": 4},
		{"v": 5}
	]`)

	t.Run("unbounded keeps everything", func(t *testing.T) {
		assert.Len(t, Filter(data, "date", ParseDateRange("", ""), time.UTC), 5)
	})

	t.Run("end date stops at midnight", func(t *testing.T) {
		got := Filter(data, "date", ParseDateRange("2024-01-02", "2024-01-11"), time.UTC)
		var vs []string
		for _, r := range got {
			vs = append(vs, CellText(r, "v"))
		}
		assert.Equal(t, []string{"2", "3", "4", "5"}, vs, "rows without a usable date are kept")

		sameDay := rows(t, `[{"date": "2024-01-10T00:00:00Z"}, {"date": "2024-01-10T15:00:00Z"}]`)
		assert.Len(t, Filter(sameDay, "date", ParseDateRange("", "2024-01-10"), time.UTC), 1,
			"later rows on the end date are dropped")
	})

	t.Run("start only", func(t *testing.T) {
		got := Filter(data, "date", ParseDateRange("2024-01-11", ""), time.UTC)
		assert.Len(t, got, 3)
	})

	t.Run("malformed bounds are open", func(t *testing.T) {
		r := ParseDateRange("not-a-date", "")
		assert.True(t, r.IsZero())
		assert.Equal(t, "not-a-date", r.StartRaw)
	})
}

func TestPrioritize(t *testing.T) {
	measures := []domain.MeasureFeedback{{MeasureID: 1}, {MeasureID: 2}, {MeasureID: 3}}

	sel, rest := Prioritize(measures, 2)
	require.NotNil(t, sel)
	assert.Equal(t, 2, sel.MeasureID)
	assert.Equal(t, []domain.MeasureFeedback{{MeasureID: 1}, {MeasureID: 3}}, rest)

	sel, rest = Prioritize(measures, 0)
	assert.Nil(t, sel)
	assert.Equal(t, measures, rest)

	sel, rest = Prioritize(measures, 42)
	assert.Nil(t, sel, "unknown measure keeps the original order")
	assert.Equal(t, measures, rest)

	dupes := []domain.MeasureFeedback{{MeasureID: 2, MeasureName: "first"}, {MeasureID: 1}, {MeasureID: 2, MeasureName: "second"}}
	sel, rest = Prioritize(dupes, 2)
	require.NotNil(t, sel)
	assert.Equal(t, "first", sel.MeasureName)
	assert.Equal(t, []domain.MeasureFeedback{{MeasureID: 1}}, rest, "every copy of the selected measure leaves the list")
}

func TestBuildChart(t *testing.T) {
	data := rows(t, `[
		{"date": "2024-01-01T08:00:00Z", "a": 2, "b": "4"},
		{"date": "2024-01-02T08:00:00Z", "a": "x"},
		{"date": "2024-01-03T08:00:00Z", "a": 8, "b": 1}
	]`)

	c := BuildChart(data, "date", []string{"a", "b"})
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, c.Labels)
	require.Len(t, c.Series, 2)
	assert.Equal(t, Palette[0], c.Series[0].Color)
	assert.Equal(t, Palette[1], c.Series[1].Color)

	a := c.Series[0].Points
	require.NotNil(t, a[0])
	assert.Equal(t, 2.0, *a[0])
	assert.Nil(t, a[1], "non-numeric values are gaps")
	assert.Equal(t, 8.0, *a[2])
	assert.Nil(t, c.Series[1].Points[1], "missing fields are gaps")

	assert.Equal(t, 0.0, c.YMin)
	assert.GreaterOrEqual(t, c.YMax, 8.0)
	assert.Equal(t, c.YMin, c.Ticks[0])
	assert.Equal(t, c.YMax, c.Ticks[len(c.Ticks)-1])
	assert.True(t, c.HasData())

	empty := BuildChart(data, "date", []string{"missing"})
	assert.False(t, empty.HasData())

	t.Run("non-finite cells are gaps", func(t *testing.T) {
		c := BuildChart(rows(t, `[{"a": 2, "b": "NaN"}, {"a": 8, "b": 3}]`), "date", []string{"a", "b"})
		assert.False(t, math.IsNaN(c.YMin))
		assert.False(t, math.IsNaN(c.YMax))
		assert.NotEmpty(t, c.Ticks)
		assert.Nil(t, c.Series[1].Points[0])
		assert.NotContains(t, NewPlot(c, 800, 300).LinePath(c.Series[0]), "NaN")
	})
}

func TestPlotGeometry(t *testing.T) {
	one, two := 0.0, 10.0
	c := Chart{
		Labels: []string{"d1", "d2", "d3"},
		Series: []Series{{Key: "a", Points: []*float64{&one, nil, &two}}},
		YMin:   0,
		YMax:   10,
	}
	p := NewPlot(c, 400, 300)

	assert.InDelta(t, p.Margins.Top, p.Y(10), 0.001)
	assert.InDelta(t, p.Bottom(), p.Y(0), 0.001)
	assert.InDelta(t, p.Bottom(), p.Baseline(), 0.001)
	assert.Less(t, p.X(0), p.X(1))

	path := p.LinePath(c.Series[0])
	assert.Regexp(t, `^M[\d.]+ [\d.]+ L[\d.]+ [\d.]+$`, path, "gap is bridged by a single segment")

	bars := p.Bars(0)
	require.Len(t, bars, 2)
	assert.Equal(t, MinBarHeight, bars[0].Height, "zero values keep a visible bar")
	assert.Equal(t, "d3", bars[1].Label)
	assert.InDelta(t, p.Bottom()-p.Margins.Top, bars[1].Height, 0.001)
	assert.Nil(t, p.Bars(5))

	assert.Equal(t, 1, p.TickEvery(10))
	assert.Equal(t, 2, NewPlot(Chart{Labels: make([]string, 20)}, 400, 300).TickEvery(10))
}

func TestSummaries(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	c := Chart{Series: []Series{
		{Key: "rising", Color: "#1", Points: []*float64{v(1), nil, v(3), v(5)}},
		{Key: "single", Points: []*float64{nil, v(4)}},
		{Key: "empty", Points: []*float64{nil}},
	}}

	got := Summaries(c)
	require.Len(t, got, 2)

	r := got[0]
	assert.Equal(t, "rising", r.Key)
	assert.Equal(t, 3, r.Count)
	assert.Equal(t, 1.0, r.Min)
	assert.Equal(t, 5.0, r.Max)
	assert.InDelta(t, 3.0, r.Mean, 1e-9)
	assert.InDelta(t, 3.0, r.Median, 1e-9)
	assert.Equal(t, 5.0, r.Latest)
	require.True(t, r.HasTrend)
	assert.InDelta(t, 9.0/7.0, r.Trend, 1e-9)

	assert.False(t, got[1].HasTrend)
	assert.Equal(t, 4.0, got[1].Latest)
}

func TestHeaderColor(t *testing.T) {
	assert.Equal(t, DateColumnColor, HeaderColor("date", 0))
	assert.Equal(t, Palette[1], HeaderColor("score", 1))
	assert.Equal(t, Palette[0], SeriesColor(len(Palette)))
}
