package feedback

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one charted series over the filtered rows.
type Summary struct {
	Key    string
	Color  string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Latest float64
	// Trend is the least-squares slope per recorded response. HasTrend is
	// false with fewer than two points.
	Trend    float64
	HasTrend bool
}

// Summaries computes per-series statistics. Series without points are
// skipped.
func Summaries(c Chart) []Summary {
	out := []Summary{}
	for _, s := range c.Series {
		xs := []float64{}
		ys := []float64{}
		for i, p := range s.Points {
			if p == nil {
				continue
			}
			xs = append(xs, float64(i))
			ys = append(ys, *p)
		}
		if len(ys) == 0 {
			continue
		}

		data := stats.Float64Data(ys)
		sum := Summary{Key: s.Key, Color: s.Color, Count: len(ys), Latest: ys[len(ys)-1]}
		sum.Min, _ = data.Min()
		sum.Max, _ = data.Max()
		sum.Mean, _ = data.Mean()
		sum.Median, _ = data.Median()

		if len(ys) >= 2 {
			_, beta := stat.LinearRegression(xs, ys, nil, false)
			sum.Trend = beta
			sum.HasTrend = true
		}
		out = append(out, sum)
	}
	return out
}
