package components

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/nfrund/ipadmin/internal/domain"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// PatientRowID is the DOM id of a patient's table row.
func PatientRowID(patientID int) string {
	return "patient-row-" + strconv.Itoa(patientID)
}

// PatientTable lists the searched patients. Rows without a name are
// expected to be filtered out by the caller.
func PatientTable(patients []domain.Patient) cmp.Node {
	if len(patients) == 0 {
		return nil
	}
	headers := []string{"Legacy Patient ID", "Patient Name", "Email", "Assigned Measures", "Actions"}
	return g.Div(
		g.Class("card"),
		g.Table(
			g.Class("data-table patient-table"),
			g.THead(g.Tr(cmp.Map(headers, func(h string) cmp.Node { return g.Th(cmp.Text(h)) }))),
			g.TBody(cmp.Map(patients, PatientRow)),
		),
	)
}

// PatientRow is one patient with its actions menu.
func PatientRow(p domain.Patient) cmp.Node {
	base := "/app/services/patients/" + strconv.Itoa(p.PatientID)
	return g.Tr(
		g.ID(PatientRowID(p.PatientID)),
		g.Td(g.Div(cmp.Text(p.LegacyPatientID))),
		g.Td(cmp.Text(p.Name().Full())),
		g.Td(cmp.Text(p.EmailID)),
		g.Td(g.Div(
			g.Class("flex flex-wrap gap-1"),
			cmp.Map(p.AssignedMeasures, func(am domain.AssignedMeasure) cmp.Node {
				return Badge("plain", MeasureBadge(am))
			}),
		)),
		g.Td(
			cmp.El("details",
				g.Class("actions-menu"),
				cmp.El("summary", g.Class("btn btn-sm btn-outline"), cmp.Text("Actions")),
				g.Ul(
					g.Class("menu-list"),
					g.Li(g.A(g.Href("/app/patients/"+url.PathEscape(p.LegacyPatientID)), cmp.Text("Feedback Details"))),
					g.Li(g.Button(g.Type("button"), hx.Get(base+"/view"), hx.Target("#modal"), cmp.Text("Quick View"))),
					g.Li(g.Button(g.Type("button"), hx.Get(base+"/edit"), hx.Target("#modal"), cmp.Text("Edit Patient Details"))),
					g.Li(g.Button(
						g.Type("button"),
						hx.Post(base+"/invite"),
						hx.Target("#"+PatientRowID(p.PatientID)),
						hx.Swap("outerHTML"),
						cmp.Text("Invite Patient"),
					)),
				),
			),
			cmp.If(p.InviteSent, g.Div(g.Class("invite-sent"), cmp.Text("Invite Sent"))),
		),
	)
}

// MeasureBadge formats an assigned measure, e.g. "PHQ-9 (2 times per week)".
func MeasureBadge(am domain.AssignedMeasure) string {
	return fmt.Sprintf("%s (%d times per %s)", am.MeasureName, am.MeasuringCadence.FrequencyTimes, am.MeasuringCadence.FrequencyUnit)
}
