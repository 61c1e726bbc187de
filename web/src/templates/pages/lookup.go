package pages

import (
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/view/dto/lookup"
	"github.com/nfrund/ipadmin/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// Lookup is the patient lookup page.
func Lookup(data lookup.PageData) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8"),
		g.H1(g.Class("text-2xl font-bold mb-4"), cmp.Text("Patient Lookup")),
		cmp.El("form",
			g.Method("post"),
			g.Action("/app/lookup"),
			hx.Post("/app/lookup"),
			hx.Target("#lookup-results"),
			hx.Swap("outerHTML"),
			g.Class("flex gap-4 mb-6"),
			g.Input(g.Type("hidden"), g.Name("_csrf"), g.Value(data.CSRFToken)),
			g.Input(g.Type("text"), g.Name("legacyId"), g.Value(data.LegacyID), g.Placeholder("Enter Legacy Patient ID"), g.Class("input flex-1")),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Search")),
		),
		LookupResults(data),
	)
}

// LookupResults is the swappable result area.
func LookupResults(data lookup.PageData) cmp.Node {
	return g.Div(
		g.ID("lookup-results"),
		cmp.If(data.Error != "", components.Alert(components.AlertError, "", data.Error)),
		cmp.Iff(data.Patient != nil, func() cmp.Node { return patientFeedback(data) }),
	)
}

func patientFeedback(data lookup.PageData) cmp.Node {
	p := data.Patient
	return g.Div(
		g.Class("space-y-6"),
		g.P(
			g.Class("patient-info"),
			g.Strong(cmp.Text("Patient ID: ")), cmp.Textf("%d", p.PatientID), cmp.Text(" | "),
			g.Strong(cmp.Text("Legacy ID: ")), cmp.Text(p.LegacyPatientID), cmp.Text(" | "),
			g.Strong(cmp.Text("Name: ")), cmp.Text(p.PatientName.Full()), cmp.Text(" | "),
			g.Strong(cmp.Text("Email: ")), cmp.Text(p.EmailID),
		),
		cmp.Map(p.MeasuresWithFeedback, func(m domain.MeasureFeedback) cmp.Node {
			return g.Div(g.Class("card"), components.MeasureSection(m, data.Location))
		}),
	)
}
