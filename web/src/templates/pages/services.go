package pages

import (
	"github.com/nfrund/ipadmin/internal/view/dto/manage"
	"github.com/nfrund/ipadmin/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// Services is the patient management page.
func Services(data manage.PageData) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8"),
		g.H1(g.Class("text-2xl font-bold mb-4"), cmp.Text("Patient Management")),
		g.Div(
			g.Class("flex gap-4 mb-6"),
			cmp.El("form",
				g.Method("post"),
				g.Action("/app/services/search"),
				hx.Post("/app/services/search"),
				hx.Target("#patient-results"),
				hx.Swap("outerHTML"),
				g.Class("flex gap-4 flex-1"),
				g.Input(g.Type("hidden"), g.Name("_csrf"), g.Value(data.CSRFToken)),
				g.Input(g.Type("text"), g.Name("searchTerm"), g.Value(data.SearchTerm), g.Placeholder("Search by Patient ID"), g.Class("input flex-1")),
				g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Search")),
			),
			g.Button(
				g.Type("button"),
				g.Class("btn btn-success"),
				hx.Get("/app/services/patients/new"),
				hx.Target("#modal"),
				cmp.Text("Add Patient"),
			),
		),
		PatientResults(data),
	)
}

// PatientResults is the error and table area, swapped after a search and
// refreshed out of band after a save.
func PatientResults(data manage.PageData) cmp.Node {
	return patientResults(data, nil)
}

// PatientResultsOOB replaces the result area out of band, alongside the
// response to a dialog save.
func PatientResultsOOB(data manage.PageData) cmp.Node {
	return patientResults(data, hx.SwapOOB("true"))
}

func patientResults(data manage.PageData, oob cmp.Node) cmp.Node {
	return g.Div(
		g.ID("patient-results"),
		oob,
		cmp.If(data.Error != "", components.Alert(components.AlertError, "", data.Error)),
		components.PatientTable(data.Patients),
	)
}
