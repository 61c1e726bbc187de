package server

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/apiclient"
	"github.com/nfrund/ipadmin/internal/catalog"
	"github.com/nfrund/ipadmin/internal/handlers"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/workspace"
	"github.com/nfrund/ipadmin/web"
	"github.com/samber/do/v2"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() error {
	api := do.MustInvoke[*apiclient.Client](s.injector)
	measures := do.MustInvoke[*catalog.CachedCatalog](s.injector)
	workspaces := do.MustInvoke[*workspace.Workspaces](s.injector)
	feed := do.MustInvoke[*activity.Feed](s.injector)
	recorder := do.MustInvoke[*activity.Recorder](s.injector)
	loc := s.Cfg.GetLocation()

	content, err := handlers.NewContentHandler(s.layout, web.Content, "content/about.md")
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	devUser, devPassword, devEnabled := s.Cfg.GetDevLogin()
	adminUser, adminPassword := s.Cfg.GetAdminCredentials()
	authHandler := handlers.NewAuthHandler(api, workspaces, s.layout, handlers.AuthOptions{
		DevLogin:        handlers.Credentials{UserName: devUser, Password: devPassword},
		DevLoginEnabled: devEnabled,
		Admin:           handlers.Credentials{UserName: adminUser, Password: adminPassword},
	})
	homeHandler := handlers.NewHomeHandler(s.layout, feed)
	lookupHandler := handlers.NewLookupHandler(api, s.layout, loc)
	patientsHandler := handlers.NewPatientsHandler(handlers.PatientsDeps{
		Patients: api,
		Feedback: api,
		Catalog:  measures,
		Inviter:  api,
	}, workspaces, recorder, s.layout, s.Cfg.GetCreatedBy(), loc)
	detailsHandler := handlers.NewDetailsHandler(api, workspaces, s.layout, loc)
	adminHandler := handlers.NewAdminHandler(measures, feed, s.layout)

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", handlers.RootGet)
	s.E.GET("/health", handlers.HealthGet)

	s.E.GET(middleware.LoginPath, authHandler.LoginGet)
	s.E.POST(middleware.LoginPath, authHandler.LoginPost, middleware.RateLimiter(5, 5))
	s.E.POST("/auth/logout", authHandler.Logout)

	app := s.E.Group("/app", middleware.Auth())
	app.GET("/home", homeHandler.HomeGet)
	app.GET("/about", content.AboutGet)
	app.GET("/contact", content.ContactGet)

	app.GET("/lookup", lookupHandler.LookupGet)
	app.POST("/lookup", lookupHandler.LookupPost)

	app.GET("/services", patientsHandler.ServicesGet)
	app.POST("/services/search", patientsHandler.SearchPost)
	app.GET("/services/patients/new", patientsHandler.NewGet)
	app.POST("/services/patients/modal", patientsHandler.ModalPost)
	app.POST("/services/patients/save", patientsHandler.SavePost)
	app.GET("/services/patients/:patientId/edit", patientsHandler.EditGet)
	app.GET("/services/patients/:patientId/view", patientsHandler.QuickViewGet)
	app.POST("/services/patients/:patientId/invite", patientsHandler.InvitePost)

	app.GET("/patients/:legacyId", detailsHandler.Show)
	app.GET("/patients/:legacyId/measures/:measureId", detailsHandler.Card)
	app.GET("/patients/:legacyId/export.xlsx", detailsHandler.Export)

	admin := app.Group("/admin", middleware.RequireAdmin())
	admin.GET("", adminHandler.AdminGet)
	admin.POST("/catalog/refresh", adminHandler.RefreshCatalogPost)

	return nil
}
