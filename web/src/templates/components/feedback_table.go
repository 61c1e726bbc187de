package components

import (
	"strconv"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/feedback"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// FeedbackTable is the plain responses table used by the lookup page and
// the quick view. Date columns use the long date format.
func FeedbackTable(rows []domain.FeedbackRow, loc *time.Location) cmp.Node {
	headers := feedback.ColumnHeaders(rows)
	return g.Div(
		g.Class("overflow-x-auto"),
		g.Table(
			g.Class("data-table"),
			g.THead(g.Tr(cmp.Map(headers, func(h string) cmp.Node {
				return g.Th(cmp.Text(h))
			}))),
			g.TBody(cmp.Map(rows, func(row domain.FeedbackRow) cmp.Node {
				return g.Tr(cmp.Map(headers, func(h string) cmp.Node {
					if feedback.IsDateColumn(h) {
						v, _ := row.Get(h)
						return g.Td(cmp.Text(feedback.FormatLookupDate(v, loc)))
					}
					return g.Td(cmp.Text(feedback.CellText(row, h)))
				}))
			})),
		),
	)
}

// MeasureSection is a measure heading with ID and cadence badges followed by
// its responses.
func MeasureSection(m domain.MeasureFeedback, loc *time.Location) cmp.Node {
	return g.Section(
		g.Class("measure-section"),
		g.H3(g.Class("text-lg font-semibold text-blue-700"), cmp.Text(m.MeasureName)),
		g.Div(
			g.Class("flex gap-3 my-2"),
			Badge("blue", "ID: "+strconv.Itoa(m.MeasureID)),
			Badge("green", m.MeasuringCadence),
		),
		cmp.If(len(m.FeedbackRows) > 0, FeedbackTable(m.FeedbackRows, loc)),
		cmp.If(len(m.FeedbackRows) == 0, g.Div(g.Class("text-center py-4"), Muted("No feedback records available for this measure"))),
	)
}

// PatientInfo is the labelled grid of a patient's identifiers.
func PatientInfo(d *domain.PatientData) cmp.Node {
	field := func(label, value string) cmp.Node {
		return g.Div(
			g.P(g.Class("font-bold text-gray-500"), cmp.Text(label)),
			g.P(g.Class("text-lg"), cmp.Text(value)),
		)
	}
	return g.Div(
		g.Class("grid grid-cols-1 md:grid-cols-2 gap-6"),
		field("Patient ID", strconv.Itoa(d.PatientID)),
		field("Legacy ID", d.LegacyPatientID),
		field("Full Name", d.PatientName.Full()),
		field("Email", d.EmailID),
	)
}
