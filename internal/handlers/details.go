package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/apiclient"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/export"
	"github.com/nfrund/ipadmin/internal/feedback"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/nfrund/ipadmin/internal/view/dto/details"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	"github.com/nfrund/ipadmin/internal/workspace"
	"github.com/nfrund/ipadmin/web/src/templates/components"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
)

// DetailsHandler serves the patient details page, its measure card
// fragments and the spreadsheet export. The last view of each card is kept
// in the session workspace.
type DetailsHandler struct {
	feedback   domain.FeedbackRepository
	workspaces *workspace.Workspaces
	layout     *Layout
	loc        *time.Location
}

// NewDetailsHandler creates a new DetailsHandler.
func NewDetailsHandler(feedback domain.FeedbackRepository, workspaces *workspace.Workspaces, layout *Layout, loc *time.Location) *DetailsHandler {
	return &DetailsHandler{feedback: feedback, workspaces: workspaces, layout: layout, loc: loc}
}

// fetch loads the patient's feedback and maps failures to the message
// shown on the page.
func (h *DetailsHandler) fetch(ctx context.Context, legacyID string) (*domain.PatientData, string) {
	if legacyID == "" {
		return nil, details.NoPatientIDMessage
	}
	data, err := h.feedback.FeedbackByLegacyID(ctx, legacyID)
	if err == nil {
		return data, ""
	}
	middleware.FromContext(ctx).Warn("Failed to fetch patient details", "legacy_id", legacyID, "error", err)
	switch code := apiclient.StatusCode(err); {
	case code != 0:
		return nil, "Failed to fetch patient details: " + http.StatusText(code)
	case errors.Is(err, domain.ErrEmptyResponse):
		return nil, details.NoDataMessage
	default:
		return nil, err.Error()
	}
}

// Show renders the details page (GET /app/patients/:legacyId). The measure
// query parameter selects the prioritized measure; htmx requests get just
// the measure list.
func (h *DetailsHandler) Show(c echo.Context) error {
	legacyID := strings.TrimSpace(c.Param("legacyId"))
	data, msg := h.fetch(c.Request().Context(), legacyID)

	selected, _ := strconv.Atoi(c.QueryParam("measure"))
	page := details.BuildPage(legacyID, data, selected, h.cardViews(c, legacyID), h.loc)
	page.Error = msg
	page.CSRFToken = CSRFToken(c)

	if page.Error == "" && page.Patient != nil {
		return h.layout.Respond(c, "Patient Details", layout.NavServices, pages.Details(page), pages.MeasureList(page))
	}
	if page.Error != "" {
		view.TriggerToast(c, view.ErrorToast(page.Error))
	}
	return h.layout.Page(c, http.StatusOK, "Patient Details", layout.NavServices, pages.Details(page))
}

// cardViews loads the saved card states of the patient. A store failure
// falls back to default views.
func (h *DetailsHandler) cardViews(c echo.Context, legacyID string) details.Views {
	ctx := c.Request().Context()
	saved, err := h.workspaces.CardViews(ctx, middleware.WorkspaceID(c), legacyID)
	if err != nil {
		middleware.FromContext(ctx).Warn("Failed to load card views", "legacy_id", legacyID, "error", err)
		return nil
	}
	views := make(details.Views, len(saved))
	for id, v := range saved {
		views[id] = details.CardQuery(v)
	}
	return views
}

// Card renders one measure card in the requested mode and filters
// (GET /app/patients/:legacyId/measures/:measureId).
func (h *DetailsHandler) Card(c echo.Context) error {
	legacyID := strings.TrimSpace(c.Param("legacyId"))
	measureID, err := strconv.Atoi(c.Param("measureId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid measure ID")
	}

	data, msg := h.fetch(c.Request().Context(), legacyID)
	if msg != "" {
		return h.layout.Fragment(c, http.StatusOK, components.Alert(components.AlertError, "Error!", msg))
	}
	if data == nil {
		return echo.NewHTTPError(http.StatusNotFound, details.PatientNotFoundTitle)
	}
	m, ok := data.Measure(measureID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Measure not found")
	}

	ctx := c.Request().Context()
	prev := h.cardViews(c, legacyID)[measureID]
	q := details.ParseCardQuery(c.QueryParams()).After(prev, feedback.Discover(m.FeedbackRows).ValueKeys)
	if err := h.workspaces.SaveCardView(ctx, middleware.WorkspaceID(c), legacyID, measureID, workspace.CardView(q)); err != nil {
		middleware.FromContext(ctx).Warn("Failed to save card view", "legacy_id", legacyID, "measure_id", measureID, "error", err)
	}

	card := details.BuildMeasureCard(legacyID, m, q, h.loc)
	card.Priority = c.QueryParam("priority") == "1"
	return h.layout.Fragment(c, http.StatusOK, components.MeasureCard(card))
}

// Export downloads the patient's feedback as an xlsx workbook. Date ranges
// per measure can be passed as start-<id> and end-<id>.
func (h *DetailsHandler) Export(c echo.Context) error {
	legacyID := strings.TrimSpace(c.Param("legacyId"))
	data, msg := h.fetch(c.Request().Context(), legacyID)
	if msg != "" {
		return echo.NewHTTPError(http.StatusBadGateway, msg)
	}
	if data == nil {
		return echo.NewHTTPError(http.StatusNotFound, details.PatientNotFoundTitle)
	}

	opts := export.Options{Ranges: map[int]feedback.DateRange{}, Location: h.loc}
	for _, m := range data.MeasuresWithFeedback {
		id := strconv.Itoa(m.MeasureID)
		r := feedback.ParseDateRange(c.QueryParam("start-"+id), c.QueryParam("end-"+id))
		if !r.IsZero() {
			opts.Ranges[m.MeasureID] = r
		}
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, data, opts); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.FileName(legacyID)+`"`)
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}
