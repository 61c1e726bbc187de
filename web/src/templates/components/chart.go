package components

import (
	"fmt"

	"github.com/nfrund/ipadmin/internal/feedback"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const (
	chartWidth  = 800
	chartHeight = 300
	maxXLabels  = 12
)

var numbers = message.NewPrinter(language.English)

func num(v float64) string {
	return numbers.Sprintf("%.2f", v)
}

func f2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func svg(children ...cmp.Node) cmp.Node {
	return cmp.El("svg",
		cmp.Attr("viewBox", fmt.Sprintf("0 0 %d %d", chartWidth, chartHeight)),
		cmp.Attr("preserveAspectRatio", "xMidYMid meet"),
		cmp.Attr("role", "img"),
		g.Class("chart w-full h-auto"),
		cmp.Group(children),
	)
}

func line(x1, y1, x2, y2 float64, class string) cmp.Node {
	return cmp.El("line",
		cmp.Attr("x1", f2(x1)), cmp.Attr("y1", f2(y1)),
		cmp.Attr("x2", f2(x2)), cmp.Attr("y2", f2(y2)),
		cmp.Attr("class", class),
	)
}

func text(x, y float64, anchor, class, s string) cmp.Node {
	return cmp.El("text",
		cmp.Attr("x", f2(x)), cmp.Attr("y", f2(y)),
		cmp.Attr("text-anchor", anchor),
		cmp.Attr("class", class),
		cmp.Text(s),
	)
}

// axes draws the grid, y ticks and thinned x labels.
func axes(p feedback.Plot) cmp.Node {
	nodes := []cmp.Node{}
	for _, tick := range p.Chart.Ticks {
		y := p.Y(tick)
		nodes = append(nodes,
			line(p.Margins.Left, y, p.Right(), y, "grid"),
			text(p.Margins.Left-8, y+4, "end", "tick", numbers.Sprint(tick)),
		)
	}
	every := p.TickEvery(maxXLabels)
	for i, label := range p.Chart.Labels {
		if i%every != 0 {
			continue
		}
		nodes = append(nodes, text(p.X(i), p.Bottom()+18, "middle", "tick", label))
	}
	nodes = append(nodes,
		line(p.Margins.Left, p.Margins.Top, p.Margins.Left, p.Bottom(), "axis"),
		line(p.Margins.Left, p.Bottom(), p.Right(), p.Bottom(), "axis"),
	)
	return cmp.El("g", cmp.Group(nodes))
}

// LineChart draws one polyline per series with a dot at each point.
func LineChart(c feedback.Chart) cmp.Node {
	p := feedback.NewPlot(c, chartWidth, chartHeight)
	series := make([]cmp.Node, 0, len(c.Series))
	for _, s := range c.Series {
		dots := []cmp.Node{}
		for i, pt := range s.Points {
			if pt == nil {
				continue
			}
			dots = append(dots, cmp.El("circle",
				cmp.Attr("cx", f2(p.X(i))), cmp.Attr("cy", f2(p.Y(*pt))), cmp.Attr("r", "3"),
				cmp.Attr("fill", s.Color),
				cmp.El("title", cmp.Text(fmt.Sprintf("%s %s: %s", c.Labels[i], s.Key, num(*pt)))),
			))
		}
		series = append(series, cmp.El("g",
			cmp.Attr("data-series", s.Key),
			cmp.El("path",
				cmp.Attr("d", p.LinePath(s)),
				cmp.Attr("fill", "none"),
				cmp.Attr("stroke", s.Color),
				cmp.Attr("stroke-width", "2"),
			),
			cmp.Group(dots),
		))
	}
	return svg(axes(p), cmp.Group(series))
}

// BarChart draws grouped bars, one group per response.
func BarChart(c feedback.Chart) cmp.Node {
	p := feedback.NewPlot(c, chartWidth, chartHeight)
	series := make([]cmp.Node, 0, len(c.Series))
	for si, s := range c.Series {
		bars := []cmp.Node{}
		for _, b := range p.Bars(si) {
			bars = append(bars, cmp.El("rect",
				cmp.Attr("x", f2(b.X)), cmp.Attr("y", f2(b.Y)),
				cmp.Attr("width", f2(b.Width)), cmp.Attr("height", f2(b.Height)),
				cmp.Attr("fill", s.Color),
				cmp.El("title", cmp.Text(fmt.Sprintf("%s %s: %s", b.Label, s.Key, num(b.Value)))),
			))
		}
		series = append(series, cmp.El("g", cmp.Attr("data-series", s.Key), cmp.Group(bars)))
	}
	return svg(axes(p), cmp.Group(series))
}

// Legend lists the series colors.
func Legend(c feedback.Chart) cmp.Node {
	return g.Ul(
		g.Class("chart-legend flex flex-wrap gap-4 mt-2"),
		cmp.Map(c.Series, func(s feedback.Series) cmp.Node {
			return g.Li(
				g.Class("flex items-center gap-1 text-sm"),
				g.Span(g.Class("legend-swatch"), cmp.Attr("style", "background-color: "+s.Color)),
				cmp.Text(s.Key),
			)
		}),
	)
}

// SummaryTable shows per-series statistics under a chart.
func SummaryTable(sums []feedback.Summary) cmp.Node {
	if len(sums) == 0 {
		return nil
	}
	headers := []string{"Series", "Responses", "Min", "Max", "Mean", "Median", "Latest", "Trend"}
	return g.Table(
		g.Class("data-table summary-table mt-4"),
		g.THead(g.Tr(cmp.Map(headers, func(h string) cmp.Node { return g.Th(cmp.Text(h)) }))),
		g.TBody(cmp.Map(sums, func(s feedback.Summary) cmp.Node {
			trend := "n/a"
			if s.HasTrend {
				trend = numbers.Sprintf("%+.2f per response", s.Trend)
			}
			return g.Tr(
				g.Td(g.Span(g.Class("legend-swatch"), cmp.Attr("style", "background-color: "+s.Color)), cmp.Text(" "+s.Key)),
				g.Td(cmp.Text(numbers.Sprint(s.Count))),
				g.Td(cmp.Text(num(s.Min))),
				g.Td(cmp.Text(num(s.Max))),
				g.Td(cmp.Text(num(s.Mean))),
				g.Td(cmp.Text(num(s.Median))),
				g.Td(cmp.Text(num(s.Latest))),
				g.Td(cmp.Text(trend)),
			)
		})),
	)
}
