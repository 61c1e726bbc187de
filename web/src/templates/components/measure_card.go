package components

import (
	"strconv"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/feedback"
	"github.com/nfrund/ipadmin/internal/view/dto/details"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// MeasureCard is one measure on the details page. Every control re-fetches
// the card fragment and swaps it in place.
func MeasureCard(card details.MeasureCard) cmp.Node {
	target := "#" + card.ElementID()
	cls := "card measure-card"
	if card.Priority {
		cls += " priority"
	}
	return g.Div(
		g.ID(card.ElementID()),
		g.Class(cls),
		cmp.If(card.Priority, g.P(g.Class("priority-label"), cmp.Text("⭐ PRIORITY MEASURE"))),
		g.Div(
			g.Class("flex flex-wrap justify-between items-center gap-4 mb-4"),
			g.Div(
				g.H3(g.Class("text-lg font-semibold text-blue-700"), cmp.Text(card.MeasureName)),
				g.Div(
					g.Class("flex gap-2 mt-1"),
					Badge("blue", "ID: "+strconv.Itoa(card.MeasureID)),
					Badge("green", "MEASURING CADENCE: "+card.Cadence),
				),
			),
			modeToggle(card, target),
		),
		cardBody(card, target),
	)
}

func modeToggle(card details.MeasureCard, target string) cmp.Node {
	return g.Div(
		g.Class("btn-group"),
		cmp.Attr("role", "group"),
		cmp.Map(feedback.Modes, func(m feedback.ViewMode) cmp.Node {
			cls := "btn btn-sm"
			if m == card.Mode {
				cls += " btn-primary"
			}
			return g.Button(
				g.Type("button"),
				g.Class(cls),
				hx.Get(card.URL(m)),
				hx.Target(target),
				hx.Swap("outerHTML"),
				cmp.Text(m.Label()),
			)
		}),
	)
}

func cardBody(card details.MeasureCard, target string) cmp.Node {
	if card.TotalRows == 0 {
		return Muted(details.NoRecordsMessage)
	}
	var content cmp.Node
	switch {
	case card.Empty() != "":
		content = g.Div(g.Class("text-center py-4"), Muted(card.Empty()))
	case card.Mode == feedback.ModeLineChart:
		content = chartBlock(card, LineChart(card.Chart))
	case card.Mode == feedback.ModeBarChart:
		content = chartBlock(card, BarChart(card.Chart))
	default:
		content = DetailTable(card)
	}
	return g.Div(filters(card, target), content)
}

func chartBlock(card details.MeasureCard, chart cmp.Node) cmp.Node {
	return g.Div(
		g.Class("chart-block"),
		chart,
		Legend(card.Chart),
		SummaryTable(card.Summaries),
	)
}

// filters is the date range and, for charts, the column selection. The
// whole form is re-sent on every change.
func filters(card details.MeasureCard, target string) cmp.Node {
	return cmp.El("form",
		g.Class("card-filters flex flex-wrap items-end gap-4 mb-4"),
		hx.Get(card.BaseURL()),
		hx.Trigger("change"),
		hx.Target(target),
		hx.Swap("outerHTML"),
		g.Input(g.Type("hidden"), g.Name(details.ParamMode), g.Value(string(card.Mode))),
		cmp.If(card.Priority, g.Input(g.Type("hidden"), g.Name("priority"), g.Value("1"))),
		dateInput("Start Date", details.ParamStart, card.Range.StartRaw),
		dateInput("End Date", details.ParamEnd, card.Range.EndRaw),
		cmp.If(card.Mode.IsChart(), columnFilter(card)),
		cmp.If(!card.Mode.IsChart() && card.Selection.IsSet(), keepSelection(card)),
	)
}

func dateInput(label, name, value string) cmp.Node {
	return cmp.El("label",
		g.Class("flex flex-col text-sm text-gray-600"),
		cmp.Text(label),
		g.Input(g.Type("date"), g.Name(name), g.Value(value), g.Class("input")),
	)
}

func columnFilter(card details.MeasureCard) cmp.Node {
	return cmp.El("details",
		g.Class("column-filter"),
		cmp.El("summary", g.Class("btn btn-sm"), cmp.Text(card.SelectedLabel())),
		g.Input(g.Type("hidden"), g.Name(details.ParamColSet), g.Value("1")),
		g.Div(
			g.Class("column-filter-menu"),
			cmp.Map(card.Columns.ValueKeys, func(key string) cmp.Node {
				return cmp.El("label",
					g.Class("flex items-center gap-2"),
					g.Input(
						g.Type("checkbox"),
						g.Name(details.ParamColumn),
						g.Value(key),
						cmp.If(card.Selection.Contains(key), g.Checked()),
					),
					cmp.Text(key),
				)
			}),
		),
	)
}

// keepSelection carries a chart column selection through table mode.
func keepSelection(card details.MeasureCard) cmp.Node {
	return cmp.Group{
		g.Input(g.Type("hidden"), g.Name(details.ParamColSet), g.Value("1")),
		cmp.Map(card.Selected, func(key string) cmp.Node {
			return g.Input(g.Type("hidden"), g.Name(details.ParamColumn), g.Value(key))
		}),
	}
}

// DetailTable is the bordered table with tinted headers.
func DetailTable(card details.MeasureCard) cmp.Node {
	headers := card.Columns.Headers
	return g.Div(
		g.Class("overflow-x-auto"),
		g.Table(
			g.Class("data-table bordered"),
			g.THead(g.Tr(mapIndex(headers, func(i int, h string) cmp.Node {
				return g.Th(cmp.Attr("style", headerStyle(h, i)), cmp.Text(h))
			}))),
			g.TBody(cmp.Map(card.Rows, func(row domain.FeedbackRow) cmp.Node {
				return g.Tr(cmp.Map(headers, func(h string) cmp.Node {
					if feedback.IsDateColumn(h) {
						v, _ := row.Get(h)
						return g.Td(cmp.Text(feedback.FormatDetailDate(v, card.Location)))
					}
					return g.Td(cmp.Text(feedback.CellText(row, h)))
				}))
			})),
		),
	)
}

func headerStyle(header string, idx int) string {
	if feedback.IsDateColumn(header) {
		return "background-color: #e2e8f0"
	}
	// 40 is the hex alpha channel, a light tint of the series color.
	return "background-color: " + feedback.HeaderColor(header, idx) + "40"
}

func mapIndex[T any](ts []T, cb func(int, T) cmp.Node) cmp.Group {
	nodes := make(cmp.Group, 0, len(ts))
	for i, t := range ts {
		nodes = append(nodes, cb(i, t))
	}
	return nodes
}
