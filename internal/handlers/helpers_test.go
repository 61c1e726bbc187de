package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/handlers"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/pubsub"
	"github.com/nfrund/ipadmin/internal/rendering"
	"github.com/nfrund/ipadmin/internal/statestore"
	"github.com/nfrund/ipadmin/internal/workspace"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!!"

// fakeAPI stands in for the practice API client.
type fakeAPI struct {
	mu sync.Mutex

	loginErr    error
	patients    []domain.Patient
	searchErr   error
	feedback    *domain.PatientData
	feedbackErr error
	created     *domain.Patient
	createErr   error
	updateResp  []domain.Patient
	updateErr   error
	catalog     domain.Catalog
	catalogErr  error
	inviteErr   error

	logins      []string
	invited     []int
	lastInput   domain.PatientInput
	invalidated int
}

func (f *fakeAPI) Login(ctx context.Context, userName, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, userName)
	return f.loginErr
}

func (f *fakeAPI) PatientsByLegacyID(ctx context.Context, legacyID string) ([]domain.Patient, error) {
	return f.patients, f.searchErr
}

func (f *fakeAPI) FeedbackByLegacyID(ctx context.Context, legacyID string) (*domain.PatientData, error) {
	return f.feedback, f.feedbackErr
}

func (f *fakeAPI) CreatePatient(ctx context.Context, in domain.PatientInput) (*domain.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInput = in
	return f.created, f.createErr
}

func (f *fakeAPI) UpdatePatient(ctx context.Context, patientID int, in domain.PatientInput) ([]domain.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInput = in
	return f.updateResp, f.updateErr
}

func (f *fakeAPI) ListMeasures(ctx context.Context) (domain.Catalog, error) {
	return f.catalog, f.catalogErr
}

func (f *fakeAPI) Invalidate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	return nil
}

func (f *fakeAPI) SendInvite(ctx context.Context, patientID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inviteErr != nil {
		return f.inviteErr
	}
	f.invited = append(f.invited, patientID)
	return nil
}

// recordingPublisher keeps published messages.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) events(t *testing.T) []activity.Event {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]activity.Event, 0, len(p.msgs))
	for _, m := range p.msgs {
		ev, err := pubsub.Decode(activity.PatientActivity, m)
		require.NoError(t, err)
		out = append(out, ev)
	}
	return out
}

type testApp struct {
	e          *echo.Echo
	api        *fakeAPI
	workspaces *workspace.Workspaces
	publisher  *recordingPublisher
	feed       *activity.Feed
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	api := &fakeAPI{}
	ws := workspace.New(statestore.NewMemoryStore())
	pub := &recordingPublisher{}
	feed := activity.NewFeed(5, nil)
	layout := handlers.NewLayout(rendering.NewUniversalRenderer(), "Interpersonal Psychiatry", "info@example.com")

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	auth := handlers.NewAuthHandler(api, ws, layout, handlers.AuthOptions{
		DevLogin:        handlers.Credentials{UserName: "test", Password: "test"},
		DevLoginEnabled: true,
		Admin:           handlers.Credentials{UserName: "Admin", Password: "admin"},
	})
	e.GET("/auth/login", auth.LoginGet)
	e.POST("/auth/login", auth.LoginPost)
	e.POST("/auth/logout", auth.Logout)

	app := e.Group("/app", middleware.Auth())
	home := handlers.NewHomeHandler(layout, feed)
	app.GET("/home", home.HomeGet)

	lookup := handlers.NewLookupHandler(api, layout, time.UTC)
	app.GET("/lookup", lookup.LookupGet)
	app.POST("/lookup", lookup.LookupPost)

	p := handlers.NewPatientsHandler(handlers.PatientsDeps{
		Patients: api, Feedback: api, Catalog: api, Inviter: api,
	}, ws, activity.NewRecorder(pub, nil), layout, "RY", time.UTC)
	app.GET("/services", p.ServicesGet)
	app.POST("/services/search", p.SearchPost)
	app.GET("/services/patients/new", p.NewGet)
	app.GET("/services/patients/:patientId/edit", p.EditGet)
	app.POST("/services/patients/modal", p.ModalPost)
	app.POST("/services/patients/save", p.SavePost)
	app.POST("/services/patients/:patientId/invite", p.InvitePost)
	app.GET("/services/patients/:patientId/view", p.QuickViewGet)

	d := handlers.NewDetailsHandler(api, ws, layout, time.UTC)
	app.GET("/patients/:legacyId", d.Show)
	app.GET("/patients/:legacyId/measures/:measureId", d.Card)
	app.GET("/patients/:legacyId/export.xlsx", d.Export)

	admin := handlers.NewAdminHandler(api, feed, layout)
	app.GET("/admin", admin.AdminGet, middleware.RequireAdmin())
	app.POST("/admin/catalog/refresh", admin.RefreshCatalogPost, middleware.RequireAdmin())

	return &testApp{e: e, api: api, workspaces: ws, publisher: pub, feed: feed}
}

// client carries the session cookies between requests.
type client struct {
	t       *testing.T
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) client(t *testing.T) *client {
	return &client{t: t, app: a, cookies: map[string]*http.Cookie{}}
}

// signIn logs in through the dev login.
func (a *testApp) signIn(t *testing.T, user, password string) *client {
	t.Helper()
	c := a.client(t)
	rec := c.post("/auth/login", url.Values{"userName": {user}, "password": {password}}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	return c
}

func (c *client) do(req *http.Request, htmx bool) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	c.app.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string, htmx bool) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil), htmx)
}

func (c *client) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return c.do(req, htmx)
}

func (c *client) workspace() workspace.State {
	c.t.Helper()
	// The workspace ID lives in the session; read it back through a route.
	var id string
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.GET("/", func(ec echo.Context) error {
		id = middleware.WorkspaceID(ec)
		return nil
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	e.ServeHTTP(httptest.NewRecorder(), req)
	require.NotEmpty(c.t, id)

	st, err := c.app.workspaces.Load(context.Background(), id)
	require.NoError(c.t, err)
	return st
}

func samplePatient() domain.Patient {
	return domain.Patient{
		ID:              "rec-1",
		PatientID:       7,
		LegacyPatientID: "L7",
		PatientName:     &domain.PatientName{FirstName: "Ada", LastName: "Byron"},
		EmailID:         "ada@example.com",
		AssignedMeasures: []domain.AssignedMeasure{{
			MeasureID:        1,
			MeasureName:      "GAD-7",
			MeasuringCadence: domain.MeasuringCadence{FrequencyTimes: 2, FrequencyUnit: "week"},
		}},
	}
}
