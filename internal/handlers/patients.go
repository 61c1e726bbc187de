package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/apiclient"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/patients"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	"github.com/nfrund/ipadmin/internal/view/dto/manage"
	"github.com/nfrund/ipadmin/internal/workspace"
	"github.com/nfrund/ipadmin/web/src/templates/components"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
	"golang.org/x/sync/errgroup"
)

// Toast messages of the management page.
const (
	PatientUpdatedMessage = "Patient updated successfully"
	PatientAddedMessage   = "Patient added successfully"
	InviteSentMessage     = "Invitation sent successfully"
	PatientNotListed      = "Patient is no longer in the search results"
)

// PatientsDeps are the upstream services the management page uses.
type PatientsDeps struct {
	Patients domain.PatientRepository
	Feedback domain.FeedbackRepository
	Catalog  domain.MeasureCatalog
	Inviter  domain.Inviter
}

// PatientsHandler serves the patient management page and its dialogs.
type PatientsHandler struct {
	deps       PatientsDeps
	workspaces *workspace.Workspaces
	recorder   *activity.Recorder
	validator  *patients.Validator
	layout     *Layout
	createdBy  string
	loc        *time.Location
}

// NewPatientsHandler creates a new PatientsHandler.
func NewPatientsHandler(deps PatientsDeps, workspaces *workspace.Workspaces, recorder *activity.Recorder, layout *Layout, createdBy string, loc *time.Location) *PatientsHandler {
	return &PatientsHandler{
		deps:       deps,
		workspaces: workspaces,
		recorder:   recorder,
		validator:  patients.NewValidator(),
		layout:     layout,
		createdBy:  createdBy,
		loc:        loc,
	}
}

func (h *PatientsHandler) pageData(c echo.Context, st workspace.State) manage.PageData {
	return manage.PageData{
		SearchTerm: st.SearchTerm,
		Patients:   st.Visible(),
		CSRFToken:  CSRFToken(c),
	}
}

// ServicesGet renders the management page. The saved results are dropped
// unless the request asks to preserve them.
func (h *PatientsHandler) ServicesGet(c echo.Context) error {
	ctx := c.Request().Context()
	id := middleware.WorkspaceID(c)

	if c.QueryParam("preserve") != "1" {
		if err := h.workspaces.Clear(ctx, id); err != nil {
			return err
		}
	}
	st, err := h.workspaces.Load(ctx, id)
	if err != nil {
		return err
	}
	return h.layout.Page(c, http.StatusOK, "Patient Management", layout.NavServices, pages.Services(h.pageData(c, st)))
}

// SearchPost loads the patients with a legacy ID into the workspace. An
// empty term leaves the results as they are.
func (h *PatientsHandler) SearchPost(c echo.Context) error {
	ctx := c.Request().Context()
	id := middleware.WorkspaceID(c)

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid search form")
	}
	term := strings.TrimSpace(req.SearchTerm)

	st, err := h.workspaces.Load(ctx, id)
	if err != nil {
		return err
	}

	var searchErr string
	if term != "" {
		found, err := h.deps.Patients.PatientsByLegacyID(ctx, term)
		if err != nil {
			middleware.FromContext(ctx).Warn("Patient search failed", "term", term, "error", err)
			searchErr = err.Error()
		} else {
			st.SearchTerm = term
			st.Patients = found
			if err := h.workspaces.Save(ctx, id, st); err != nil {
				return err
			}
		}
	}

	data := h.pageData(c, st)
	data.Error = searchErr
	return h.layout.Respond(c, "Patient Management", layout.NavServices, pages.Services(data), pages.PatientResults(data))
}

// NewGet opens the add patient dialog.
func (h *PatientsHandler) NewGet(c echo.Context) error {
	data := manage.ModalData{Form: patients.EmptyForm(), CSRFToken: CSRFToken(c)}
	data.Catalog, data.CatalogError = h.catalog(c.Request().Context())
	return h.layout.Fragment(c, http.StatusOK, components.PatientModal(data))
}

// EditGet opens the edit dialog for a listed patient. The workspace row and
// the measure catalog are loaded together.
func (h *PatientsHandler) EditGet(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid patient ID")
	}

	var (
		wsID     = middleware.WorkspaceID(c)
		patient  domain.Patient
		found    bool
		catalog  domain.Catalog
		catalogE string
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		st, err := h.workspaces.Load(ctx, wsID)
		if err != nil {
			return err
		}
		patient, found = st.Find(patientID)
		return nil
	})
	g.Go(func() error {
		catalog, catalogE = h.catalog(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if !found {
		return h.notListed(c)
	}

	data := manage.ModalData{
		Form:         patients.FormFromPatient(patient),
		Catalog:      catalog,
		CatalogError: catalogE,
		CSRFToken:    CSRFToken(c),
	}
	return h.layout.Fragment(c, http.StatusOK, components.PatientModal(data))
}

// ModalPost applies one dialog control change and redraws the dialog.
func (h *PatientsHandler) ModalPost(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dialog form")
	}
	data := manage.ModalData{Form: patients.Parse(values), CSRFToken: CSRFToken(c)}
	data.Catalog, data.CatalogError = h.catalog(c.Request().Context())
	data.Form.Apply(data.Catalog, patients.ParseAction(values))
	return h.layout.Fragment(c, http.StatusOK, components.PatientModal(data))
}

// SavePost creates or updates the patient in the dialog. On success the
// dialog closes and the result table is replaced out of band.
func (h *PatientsHandler) SavePost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dialog form")
	}
	data := manage.ModalData{Form: patients.Parse(values), CSRFToken: CSRFToken(c)}
	data.Catalog, data.CatalogError = h.catalog(ctx)

	if err := h.validator.Validate(data.Form); err != nil {
		var verr *patients.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		data.Problems = verr
		return h.layout.Fragment(c, http.StatusOK, components.PatientModal(data))
	}

	var (
		saved   domain.Patient
		kind    activity.Kind
		message string
	)
	if data.Form.IsEdit() {
		saved, err = h.update(ctx, data.Form)
		kind, message = activity.KindPatientUpdated, PatientUpdatedMessage
	} else {
		var created *domain.Patient
		created, err = h.deps.Patients.CreatePatient(ctx, data.Form.Input(h.createdBy))
		if err == nil && created != nil {
			saved = *created
		}
		kind, message = activity.KindPatientCreated, PatientAddedMessage
	}
	if err != nil {
		logger.Error("Failed to save patient", "patient_id", data.Form.PatientID, "error", err)
		data.SaveError = saveErrorMessage(err)
		view.TriggerToast(c, view.ErrorToast(data.SaveError))
		return h.layout.Fragment(c, http.StatusOK, components.PatientModal(data))
	}

	st, err := h.workspaces.Update(ctx, middleware.WorkspaceID(c), func(st *workspace.State) {
		if data.Form.IsEdit() {
			st.Upsert(saved)
		} else {
			st.Append(saved)
		}
	})
	if err != nil {
		return err
	}

	h.recorder.Record(ctx, kind, actor(c), saved)
	view.TriggerToast(c, view.SuccessToast(message))
	return h.layout.Fragment(c, http.StatusOK, pages.PatientResultsOOB(h.pageData(c, st)))
}

func (h *PatientsHandler) update(ctx context.Context, f patients.Form) (domain.Patient, error) {
	in := f.Input(h.createdBy)
	prev := domain.Patient{
		ID:               f.ID,
		PatientID:        f.PatientID,
		LegacyPatientID:  in.LegacyPatientID,
		PatientName:      &in.PatientName,
		EmailID:          in.EmailID,
		AssignedMeasures: in.AssignedMeasures,
		CreatedBy:        in.CreatedBy,
		InviteSent:       f.InviteSent,
	}
	resp, err := h.deps.Patients.UpdatePatient(ctx, f.PatientID, in)
	if err != nil {
		return domain.Patient{}, err
	}
	return patients.ReconcileUpdate(prev, resp)
}

// saveErrorMessage keeps upstream messages such as "Failed to update
// patient" and hides transport details.
func saveErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyResponse):
		return patients.EmptyUpdateMessage
	case apiclient.StatusCode(err) != 0:
		return err.Error()
	default:
		return patients.SaveFailedMessage
	}
}

// InvitePost sends the patient their invitation and redraws the row.
func (h *PatientsHandler) InvitePost(c echo.Context) error {
	ctx := c.Request().Context()
	patientID, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid patient ID")
	}

	id := middleware.WorkspaceID(c)
	st, err := h.workspaces.Load(ctx, id)
	if err != nil {
		return err
	}
	patient, ok := st.Find(patientID)
	if !ok {
		return h.notListed(c)
	}

	if err := h.deps.Inviter.SendInvite(ctx, patientID); err != nil {
		middleware.FromContext(ctx).Error("Failed to send invitation", "patient_id", patientID, "error", err)
		view.TriggerToast(c, view.ErrorToast(err.Error()))
		return h.layout.Fragment(c, http.StatusOK, components.PatientRow(patient))
	}

	st.MarkInvited(patientID)
	if err := h.workspaces.Save(ctx, id, st); err != nil {
		return err
	}
	patient, _ = st.Find(patientID)

	h.recorder.Record(ctx, activity.KindPatientInvited, actor(c), patient)
	view.TriggerToast(c, view.SuccessToast(InviteSentMessage))
	return h.layout.Fragment(c, http.StatusOK, components.PatientRow(patient))
}

// QuickViewGet shows a listed patient's feedback tables in a dialog.
func (h *PatientsHandler) QuickViewGet(c echo.Context) error {
	ctx := c.Request().Context()
	patientID, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid patient ID")
	}

	st, err := h.workspaces.Load(ctx, middleware.WorkspaceID(c))
	if err != nil {
		return err
	}
	patient, ok := st.Find(patientID)
	if !ok {
		return h.notListed(c)
	}

	data := manage.QuickViewData{Patient: patient, Location: h.loc}
	data.Data, err = h.deps.Feedback.FeedbackByLegacyID(ctx, patient.LegacyPatientID)
	if err != nil {
		middleware.FromContext(ctx).Warn("Quick view fetch failed", "legacy_id", patient.LegacyPatientID, "error", err)
		data.Error = err.Error()
	}
	return h.layout.Fragment(c, http.StatusOK, components.QuickView(data))
}

// catalog returns the measure catalog or the message to show instead.
func (h *PatientsHandler) catalog(ctx context.Context) (domain.Catalog, string) {
	all, err := h.deps.Catalog.ListMeasures(ctx)
	if err != nil {
		middleware.FromContext(ctx).Warn("Failed to load measure catalog", "error", err)
		return nil, err.Error()
	}
	return all, ""
}

func (h *PatientsHandler) notListed(c echo.Context) error {
	view.TriggerToast(c, view.ErrorToast(PatientNotListed))
	return c.NoContent(http.StatusNoContent)
}
