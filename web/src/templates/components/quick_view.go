package components

import (
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/view/dto/manage"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// QuickView is the read-only feedback dialog opened from the patient table.
func QuickView(data manage.QuickViewData) cmp.Node {
	var body cmp.Node
	switch {
	case data.Error != "":
		body = Alert(AlertError, "", data.Error)
	case data.Data == nil:
		body = Muted("No feedback found for this patient.")
	case len(data.Data.MeasuresWithFeedback) == 0:
		body = g.Div(PatientInfo(data.Data), Muted("No measures assigned to this patient"))
	default:
		body = g.Div(
			g.Class("space-y-6"),
			PatientInfo(data.Data),
			cmp.Map(data.Data.MeasuresWithFeedback, func(m domain.MeasureFeedback) cmp.Node {
				return MeasureSection(m, data.Location)
			}),
		)
	}
	footer := g.Button(g.Type("button"), g.Class("btn"), cmp.Attr("data-close-modal", ""), cmp.Text("Close"))
	return Modal("Patient Details", body, footer)
}
