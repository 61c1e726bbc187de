package feedback

import (
	"fmt"
	"math"
	"strings"

	"github.com/nfrund/ipadmin/internal/domain"
)

// Palette holds the series colors, reused cyclically.
var Palette = []string{
	"#8884d8",
	"#82ca9d",
	"#ffc658",
	"#ff7300",
	"#0088FE",
	"#00C49F",
	"#FFBB28",
	"#FF8042",
	"#A28FD0",
	"#FF6699",
}

// DateColumnColor is used for date column headers in tables.
const DateColumnColor = "#666666"

// SeriesColor returns the palette color for the idx-th series.
func SeriesColor(idx int) string {
	return Palette[idx%len(Palette)]
}

// HeaderColor returns the header tint for the idx-th table column.
func HeaderColor(header string, idx int) string {
	if IsDateColumn(header) {
		return DateColumnColor
	}
	return SeriesColor(idx)
}

// Series is one charted column. Points align with Chart.Labels; nil marks a
// row with no numeric value.
type Series struct {
	Key    string
	Color  string
	Points []*float64
}

// Chart is the data behind a line or bar chart.
type Chart struct {
	Labels []string
	Series []Series
	YMin   float64
	YMax   float64
	Ticks  []float64
}

// BuildChart turns filtered rows into chart series for keys.
func BuildChart(rows []domain.FeedbackRow, dateKey string, keys []string) Chart {
	c := Chart{
		Labels: make([]string, len(rows)),
		Series: make([]Series, len(keys)),
	}
	for i, row := range rows {
		v, _ := row.Get(dateKey)
		c.Labels[i] = XLabel(v)
	}

	lo, hi := 0.0, 0.0
	for si, key := range keys {
		s := Series{Key: key, Color: SeriesColor(si), Points: make([]*float64, len(rows))}
		for i, row := range rows {
			v, ok := row.Get(key)
			if !ok {
				continue
			}
			if f, ok := Numeric(v); ok {
				f := f
				s.Points[i] = &f
				lo = math.Min(lo, f)
				hi = math.Max(hi, f)
			}
		}
		c.Series[si] = s
	}

	c.YMin, c.YMax, c.Ticks = niceScale(lo, hi, 5)
	return c
}

// HasData reports whether any series has at least one point.
func (c Chart) HasData() bool {
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p != nil {
				return true
			}
		}
	}
	return false
}

// niceScale rounds [lo, hi] outwards to tick-friendly bounds.
func niceScale(lo, hi float64, maxTicks int) (float64, float64, []float64) {
	if hi == lo {
		hi = lo + 1
	}
	step := niceNum((hi-lo)/float64(maxTicks-1), true)
	low := math.Floor(lo/step) * step
	high := math.Ceil(hi/step) * step

	ticks := []float64{}
	for v := low; v <= high+step/2; v += step {
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return low, high, ticks
}

func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	switch {
	case round && f < 1.5:
		nf = 1
	case round && f < 3:
		nf = 2
	case round && f < 7:
		nf = 5
	case round:
		nf = 10
	case f <= 1:
		nf = 1
	case f <= 2:
		nf = 2
	case f <= 5:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

// Margins of the plot area inside the SVG viewport.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leave room for axis labels.
var DefaultMargins = Margins{Top: 20, Right: 30, Bottom: 40, Left: 50}

// Plot maps chart data to SVG coordinates.
type Plot struct {
	Chart   Chart
	Width   float64
	Height  float64
	Margins Margins
}

// NewPlot lays out c in a width x height viewport.
func NewPlot(c Chart, width, height float64) Plot {
	return Plot{Chart: c, Width: width, Height: height, Margins: DefaultMargins}
}

func (p Plot) innerWidth() float64  { return p.Width - p.Margins.Left - p.Margins.Right }
func (p Plot) innerHeight() float64 { return p.Height - p.Margins.Top - p.Margins.Bottom }

// Band is the horizontal space given to each row.
func (p Plot) Band() float64 {
	n := len(p.Chart.Labels)
	if n == 0 {
		return p.innerWidth()
	}
	return p.innerWidth() / float64(n)
}

// X is the center of row i.
func (p Plot) X(i int) float64 {
	return p.Margins.Left + p.Band()*(float64(i)+0.5)
}

// Y maps a value to its vertical position.
func (p Plot) Y(v float64) float64 {
	span := p.Chart.YMax - p.Chart.YMin
	if span == 0 {
		span = 1
	}
	return p.Margins.Top + p.innerHeight()*(1-(v-p.Chart.YMin)/span)
}

// Baseline is the y position of zero, clamped to the plot area.
func (p Plot) Baseline() float64 {
	zero := math.Max(p.Chart.YMin, math.Min(0, p.Chart.YMax))
	return p.Y(zero)
}

// Bottom and Right are the plot area edges.
func (p Plot) Bottom() float64 { return p.Height - p.Margins.Bottom }
func (p Plot) Right() float64  { return p.Width - p.Margins.Right }

// LinePath is the SVG path for a series. Gaps are bridged.
func (p Plot) LinePath(s Series) string {
	var b strings.Builder
	first := true
	for i, pt := range s.Points {
		if pt == nil {
			continue
		}
		cmd := "L"
		if first {
			cmd = "M"
			first = false
		}
		fmt.Fprintf(&b, "%s%.2f %.2f ", cmd, p.X(i), p.Y(*pt))
	}
	return strings.TrimSpace(b.String())
}

// Bar is a rectangle of a grouped bar chart.
type Bar struct {
	X, Y, Width, Height float64
	Value               float64
	Label               string
}

// MinBarHeight keeps zero values visible.
const MinBarHeight = 1.0

// Bars lays out the bars of series index si within each row's band.
func (p Plot) Bars(si int) []Bar {
	if si < 0 || si >= len(p.Chart.Series) {
		return nil
	}
	n := float64(len(p.Chart.Series))
	group := p.Band() * 0.8
	w := group / n
	s := p.Chart.Series[si]

	bars := []Bar{}
	base := p.Baseline()
	for i, pt := range s.Points {
		if pt == nil {
			continue
		}
		x := p.X(i) - group/2 + w*float64(si)
		y := p.Y(*pt)
		top, h := y, base-y
		if h < 0 {
			top, h = base, -h
		}
		if h < MinBarHeight {
			h = MinBarHeight
			if *pt >= 0 {
				top = base - MinBarHeight
			}
		}
		bars = append(bars, Bar{X: x, Y: top, Width: w, Height: h, Value: *pt, Label: p.Chart.Labels[i]})
	}
	return bars
}

// TickEvery thins x labels so at most limit are drawn.
func (p Plot) TickEvery(limit int) int {
	n := len(p.Chart.Labels)
	if limit <= 0 || n <= limit {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(limit)))
}
