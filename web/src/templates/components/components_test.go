package components

import (
	"bytes"
	"testing"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/feedback"
	"github.com/nfrund/ipadmin/internal/patients"
	"github.com/nfrund/ipadmin/internal/view/dto/details"
	"github.com/nfrund/ipadmin/internal/view/dto/manage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
)

func render(t *testing.T, n cmp.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestPatientRow(t *testing.T) {
	p := domain.Patient{
		PatientID:       7,
		LegacyPatientID: "L7",
		PatientName:     &domain.PatientName{FirstName: "Ada", LastName: "Byron"},
		AssignedMeasures: []domain.AssignedMeasure{
			{MeasureName: "PHQ-9", MeasuringCadence: domain.MeasuringCadence{FrequencyTimes: 2, FrequencyUnit: "week"}},
		},
		InviteSent: true,
	}

	out := render(t, PatientRow(p))
	assert.Contains(t, out, `id="patient-row-7"`)
	assert.Contains(t, out, "Ada Byron")
	assert.Contains(t, out, "PHQ-9 (2 times per week)")
	assert.Contains(t, out, `href="/app/patients/L7"`)
	assert.Contains(t, out, `hx-post="/app/services/patients/7/invite"`)
	assert.Contains(t, out, "Invite Sent")

	assert.Nil(t, PatientTable(nil))
}

func TestPatientModal(t *testing.T) {
	catalog := domain.Catalog{{MeasureID: 1, MeasureName: "GAD-7"}, {MeasureID: 2, MeasureName: "PHQ-9"}}
	f := patients.EmptyForm()
	f.Assigned = append(f.Assigned, domain.AssignedMeasure{MeasureID: 2, MeasureName: "PHQ-9", MeasuringCadence: domain.DefaultCadence()})
	f.Error = patients.DuplicateMeasureMessage

	out := render(t, PatientModal(manage.ModalData{Form: f, Catalog: catalog}))
	assert.Contains(t, out, "Add New Patient")
	assert.Contains(t, out, patients.DuplicateMeasureMessage)
	assert.Contains(t, out, `<option value="2" selected>PHQ-9</option>`)
	assert.Contains(t, out, `name="assignedMeasureId" value="2"`)
	assert.Contains(t, out, `disabled>Save Changes`, "save is blocked while an error shows")

	empty := render(t, PatientModal(manage.ModalData{Form: patients.EmptyForm()}))
	assert.Contains(t, empty, "No measures available")
	assert.Regexp(t, `<button[^>]*disabled[^>]*>\+ Add Measure`, empty)
}

func TestMeasureCard(t *testing.T) {
	m := domain.MeasureFeedback{
		MeasureID:        4,
		MeasureName:      "Sleep",
		MeasuringCadence: "daily",
		FeedbackRows: []domain.FeedbackRow{
			{{Key: "date", Value: "2024-01-01T10:00:00Z"}, {Key: "hours", Value: float64(7)}},
			{{Key: "date", Value: "2024-01-02T10:00:00Z"}, {Key: "hours", Value: float64(5)}},
		},
	}

	table := render(t, MeasureCard(details.BuildMeasureCard("L1", m, details.CardQuery{}, time.UTC)))
	assert.Contains(t, table, `id="measure-4"`)
	assert.Contains(t, table, "MEASURING CADENCE: daily")
	assert.Contains(t, table, "01/01/2024 10:00")
	assert.Contains(t, table, "background-color: "+feedback.Palette[1]+"40")

	chart := render(t, MeasureCard(details.BuildMeasureCard("L1", m, details.CardQuery{Mode: "barChart"}, time.UTC)))
	assert.Contains(t, chart, "<svg")
	assert.Contains(t, chart, "<rect")
	assert.Contains(t, chart, "1 column selected")

	none := render(t, MeasureCard(details.BuildMeasureCard("L1", m, details.CardQuery{Mode: "lineChart", ColumnsSet: true}, time.UTC)))
	assert.Contains(t, none, details.NoColumnsMessage)
	assert.NotContains(t, none, "<svg")
}

func TestLineChart(t *testing.T) {
	v := 3.0
	c := feedback.Chart{
		Labels: []string{"2024-01-01"},
		Series: []feedback.Series{{Key: "mood", Color: "#8884d8", Points: []*float64{&v}}},
		YMin:   0,
		YMax:   5,
		Ticks:  []float64{0, 5},
	}
	out := render(t, LineChart(c))
	assert.Contains(t, out, `stroke="#8884d8"`)
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "2024-01-01 mood: 3.00")
}
