package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/nfrund/ipadmin/internal/apiclient"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/export"
	"github.com/nfrund/ipadmin/internal/handlers"
	"github.com/nfrund/ipadmin/internal/view/dto/details"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func patientData(t *testing.T) *domain.PatientData {
	t.Helper()
	raw := `{
		"patientId": 7,
		"legacyPatientId": "L7",
		"patientName": {"firstName": "Ada", "lastName": "Byron"},
		"emailId": "ada@example.com",
		"measuresWithFeedback": [
			{"measureId": 1, "measureName": "GAD-7", "measuringCadence": "weekly", "feedbackRows": [
				{"responseDate": "2024-01-01T10:00:00Z", "Worry": 3, "Restless": 1},
				{"responseDate": "2024-02-01T10:00:00Z", "Worry": 2, "Restless": 4}
			]},
			{"measureId": 2, "measureName": "PHQ-9", "measuringCadence": "monthly", "feedbackRows": []}
		]
	}`
	var d domain.PatientData
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return &d
}

func TestLookup(t *testing.T) {
	app := newTestApp(t)
	c := app.signIn(t, "test", "test")

	rec := c.post("/app/lookup", url.Values{"legacyId": {"   "}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), handlers.EnterPatientIDMessage)

	app.api.feedback = patientData(t)
	rec = c.post("/app/lookup", url.Values{"legacyId": {"L7"}}, true)
	body := rec.Body.String()
	assert.Contains(t, body, `id="lookup-results"`)
	assert.NotContains(t, body, "<html", "htmx gets the fragment")
	assert.Contains(t, body, "Ada Byron")
	assert.Contains(t, body, "Jan 1, 2024, 10:00 AM")
	assert.Contains(t, body, "No feedback records available for this measure")

	app.api.feedback = nil
	app.api.feedbackErr = &apiclient.APIError{Op: "Failed to fetch patient data", StatusCode: http.StatusNotFound, WithStatus: true}
	rec = c.post("/app/lookup", url.Values{"legacyId": {"L7"}}, false)
	assert.Contains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), "Failed to fetch patient data: Not Found")

	t.Run("null body renders nothing", func(t *testing.T) {
		app.api.feedbackErr = domain.ErrEmptyResponse
		defer func() { app.api.feedbackErr = nil }()

		rec := c.post("/app/lookup", url.Values{"legacyId": {"L7"}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `id="lookup-results"`)
		assert.NotContains(t, strings.ToLower(body), "no data received")
		assert.NotContains(t, body, `role="alert"`)
	})
}

func TestDetailsShow(t *testing.T) {
	app := newTestApp(t)
	c := app.signIn(t, "test", "test")

	t.Run("upstream error", func(t *testing.T) {
		app.api.feedbackErr = &apiclient.APIError{Op: "Failed to fetch patient data", StatusCode: http.StatusInternalServerError, WithStatus: true}
		defer func() { app.api.feedbackErr = nil }()

		rec := c.get("/app/patients/L7", false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to fetch patient details: Internal Server Error")
		assert.Contains(t, rec.Body.String(), `href="/app/services?preserve=1"`)
		assert.Equal(t, "Failed to fetch patient details: Internal Server Error", toast(t, rec.Header())["description"])
	})

	t.Run("null body is an error", func(t *testing.T) {
		app.api.feedbackErr = domain.ErrEmptyResponse
		defer func() { app.api.feedbackErr = nil }()

		rec := c.get("/app/patients/L7", false)
		assert.Contains(t, rec.Body.String(), details.NoDataMessage)
		assert.NotContains(t, rec.Body.String(), details.PatientNotFoundTitle)
		assert.Equal(t, details.NoDataMessage, toast(t, rec.Header())["description"])
	})

	t.Run("no patient", func(t *testing.T) {
		app.api.feedback = nil
		rec := c.get("/app/patients/L7", false)
		assert.Contains(t, rec.Body.String(), "No Patient Found")
	})

	t.Run("page with cards", func(t *testing.T) {
		app.api.feedback = patientData(t)
		rec := c.get("/app/patients/L7", false)
		body := rec.Body.String()
		assert.Contains(t, body, "Select Measure to Prioritize:")
		assert.Contains(t, body, `id="measure-1"`)
		assert.Contains(t, body, `id="measure-2"`)
		assert.Contains(t, body, "/app/patients/L7/export.xlsx")
		assert.NotContains(t, body, "PRIORITY MEASURE")
	})

	t.Run("prioritized measure list fragment", func(t *testing.T) {
		app.api.feedback = patientData(t)
		rec := c.get("/app/patients/L7?measure=2", true)
		body := rec.Body.String()
		assert.NotContains(t, body, "<html")
		assert.Contains(t, body, "PRIORITY MEASURE")
		assert.Contains(t, body, "Clear Selection")
		assert.Less(t, bytes.Index(rec.Body.Bytes(), []byte(`id="measure-2"`)), bytes.Index(rec.Body.Bytes(), []byte(`id="measure-1"`)))
	})
}

func TestDetailsCard(t *testing.T) {
	app := newTestApp(t)
	c := app.signIn(t, "test", "test")
	app.api.feedback = patientData(t)

	rec := c.get("/app/patients/L7/measures/1?mode=lineChart", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")
	assert.Contains(t, rec.Body.String(), "2 columns selected")

	rec = c.get("/app/patients/L7/measures/1?mode=barChart&colset=1", true)
	assert.Contains(t, rec.Body.String(), "Please select at least one column to display.")

	rec = c.get("/app/patients/L7/measures/1?start=2030-01-01", true)
	assert.Contains(t, rec.Body.String(), "No data in the selected date range.")

	rec = c.get("/app/patients/L7/measures/9", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDetailsCard_ViewSurvivesPriorityChange(t *testing.T) {
	app := newTestApp(t)
	c := app.signIn(t, "test", "test")
	app.api.feedback = patientData(t)

	rec := c.get("/app/patients/L7/measures/1?mode=barChart&start=2024-01-15", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<rect")

	rec = c.get("/app/patients/L7?measure=2", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "PRIORITY MEASURE")
	assert.Contains(t, body, "<rect", "measure 1 is still a bar chart")
	assert.Contains(t, body, `value="2024-01-15"`, "and keeps its date filter")

	rec = c.get("/app/patients/L7", true)
	assert.NotContains(t, rec.Body.String(), "PRIORITY MEASURE")
	assert.Contains(t, rec.Body.String(), "<rect", "clearing the selection keeps the view too")

	other := app.signIn(t, "test", "test")
	assert.NotContains(t, other.get("/app/patients/L7", true).Body.String(), "<rect", "views belong to one session")
}

func TestDetailsCard_SeriesFollowSelectionOrder(t *testing.T) {
	app := newTestApp(t)
	c := app.signIn(t, "test", "test")
	app.api.feedback = patientData(t)

	rec := c.get("/app/patients/L7/measures/1?mode=lineChart&colset=1&col=Restless", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 column selected")

	// Checkboxes are posted in column order.
	rec = c.get("/app/patients/L7/measures/1?mode=lineChart&colset=1&col=Worry&col=Restless", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.Bytes()
	restless := bytes.Index(body, []byte(`data-series="Restless"`))
	worry := bytes.Index(body, []byte(`data-series="Worry"`))
	require.NotEqual(t, -1, restless)
	require.NotEqual(t, -1, worry)
	assert.Less(t, restless, worry, "the re-checked column is drawn last")
}

func TestDetailsExport(t *testing.T) {
	app := newTestApp(t)
	c := app.signIn(t, "test", "test")
	app.api.feedback = patientData(t)

	rec := c.get("/app/patients/L7/export.xlsx?start-1=2024-01-15", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "feedback-L7.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Patient", f.GetSheetList()[0])
	rows, err := f.GetRows(f.GetSheetList()[1])
	require.NoError(t, err)
	assert.Len(t, rows, 2, "header plus the one row inside the range")
}

func TestAdmin(t *testing.T) {
	app := newTestApp(t)
	app.api.catalog = domain.Catalog{{MeasureID: 1, MeasureName: "GAD-7"}}

	rec := app.signIn(t, "test", "test").get("/app/admin", false)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c := app.signIn(t, "Admin", "admin")
	rec = c.get("/app/admin", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Measure Catalog")
	assert.Contains(t, rec.Body.String(), "GAD-7")

	rec = c.post("/app/admin/catalog/refresh", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, app.api.invalidated)
	assert.Equal(t, "Measure catalog refreshed", toast(t, rec.Header())["description"])
}
