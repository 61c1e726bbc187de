package pages

import (
	"net/url"
	"strconv"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/view/dto/details"
	"github.com/nfrund/ipadmin/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

func backButton() cmp.Node {
	return g.A(g.Href(details.BackURL), g.Class("btn btn-outline mb-6 inline-block"), cmp.Text("‹ Back to Services"))
}

// Details is the patient details page.
func Details(data details.PageData) cmp.Node {
	switch {
	case data.Error != "":
		return g.Div(
			g.Class("container mx-auto p-8"),
			components.Alert(components.AlertError, "Error!", data.Error),
			g.Div(g.Class("mt-4"), backButton()),
		)
	case data.Patient == nil:
		return g.Div(
			g.Class("container mx-auto p-8"),
			components.Alert(components.AlertInfo, details.PatientNotFoundTitle, "The requested patient could not be found."),
			g.Div(g.Class("mt-4"), backButton()),
		)
	}

	exportURL := "/app/patients/" + url.PathEscape(data.LegacyID) + "/export.xlsx"
	return g.Div(
		g.Class("container mx-auto p-8"),
		backButton(),
		g.Div(
			g.Class("card mb-6"),
			g.Div(
				g.Class("flex justify-between items-center mb-4"),
				g.H2(g.Class("text-xl font-semibold"), cmp.Text("Patient Information")),
				g.A(g.Href(exportURL), g.Class("btn btn-sm btn-outline"), cmp.Text("Export to Excel")),
			),
			components.PatientInfo(data.Patient),
		),
		g.Div(
			g.Class("card"),
			g.H2(g.Class("text-xl font-semibold mb-4"), cmp.Text("Measures and Feedback")),
			MeasureList(data),
		),
	)
}

// MeasureList is the prioritize selector and the measure cards. It is
// swapped as a whole when the priority changes.
func MeasureList(data details.PageData) cmp.Node {
	measures := data.Patient.MeasuresWithFeedback
	if len(measures) == 0 {
		return g.Div(g.ID("measure-list"), components.Muted(details.NoMeasuresMessage))
	}

	listURL := "/app/patients/" + url.PathEscape(data.LegacyID)
	selected := data.SelectedMeasureID()
	return g.Div(
		g.ID("measure-list"),
		g.Class("space-y-4"),
		g.Div(
			g.Class("flex items-center gap-4 mb-4"),
			cmp.El("label", g.For("priority-select"), g.Class("font-bold text-gray-600"), cmp.Text("Select Measure to Prioritize:")),
			g.Select(
				g.ID("priority-select"),
				g.Name("measure"),
				g.Class("input max-w-xs"),
				hx.Get(listURL),
				hx.Trigger("change"),
				hx.Target("#measure-list"),
				hx.Swap("outerHTML"),
				hx.PushURL("true"),
				g.Option(g.Value(""), cmp.Text("Choose a measure")),
				cmp.Map(measures, func(m domain.MeasureFeedback) cmp.Node {
					return g.Option(
						g.Value(strconv.Itoa(m.MeasureID)),
						cmp.If(m.MeasureID == selected, g.Selected()),
						cmp.Textf("%s (ID: %d)", m.MeasureName, m.MeasureID),
					)
				}),
			),
			cmp.If(selected != 0, g.Button(
				g.Type("button"),
				g.Class("btn btn-sm btn-outline"),
				hx.Get(listURL),
				hx.Target("#measure-list"),
				hx.Swap("outerHTML"),
				hx.PushURL("true"),
				cmp.Text("Clear Selection"),
			)),
		),
		cmp.Iff(data.Priority != nil, func() cmp.Node {
			return components.MeasureCard(*data.Priority)
		}),
		cmp.Map(data.Cards, components.MeasureCard),
	)
}
