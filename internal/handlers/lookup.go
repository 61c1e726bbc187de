package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	"github.com/nfrund/ipadmin/internal/view/dto/lookup"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
)

// EnterPatientIDMessage is shown when the lookup is submitted empty.
const EnterPatientIDMessage = "Please enter a patient ID"

// LookupHandler serves the patient lookup page.
type LookupHandler struct {
	feedback domain.FeedbackRepository
	layout   *Layout
	loc      *time.Location
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(feedback domain.FeedbackRepository, layout *Layout, loc *time.Location) *LookupHandler {
	return &LookupHandler{feedback: feedback, layout: layout, loc: loc}
}

// LookupGet renders the empty lookup page.
func (h *LookupHandler) LookupGet(c echo.Context) error {
	data := lookup.PageData{Location: h.loc, CSRFToken: CSRFToken(c)}
	return h.layout.Page(c, http.StatusOK, "Patient Lookup", layout.NavLookup, pages.Lookup(data))
}

// LookupPost fetches the feedback of one legacy patient ID.
func (h *LookupHandler) LookupPost(c echo.Context) error {
	var req LookupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid lookup form")
	}
	data := lookup.PageData{
		LegacyID:  strings.TrimSpace(req.LegacyID),
		Location:  h.loc,
		CSRFToken: CSRFToken(c),
	}

	if data.LegacyID == "" {
		data.Error = EnterPatientIDMessage
	} else {
		patient, err := h.feedback.FeedbackByLegacyID(c.Request().Context(), data.LegacyID)
		switch {
		case errors.Is(err, domain.ErrEmptyResponse):
			// A null body shows neither a patient nor an error.
		case err != nil:
			middleware.FromContext(c.Request().Context()).Warn("Patient lookup failed", "legacy_id", data.LegacyID, "error", err)
			data.Error = err.Error()
		default:
			data.Patient = patient
		}
	}

	return h.layout.Respond(c, "Patient Lookup", layout.NavLookup, pages.Lookup(data), pages.LookupResults(data))
}
