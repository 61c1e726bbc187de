package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
)

// RefreshableCatalog is a measure catalog with a cache that can be dropped.
type RefreshableCatalog interface {
	domain.MeasureCatalog
	Invalidate(ctx context.Context) error
}

// AdminHandler serves the admin panel.
type AdminHandler struct {
	catalog RefreshableCatalog
	feed    *activity.Feed
	layout  *Layout
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog RefreshableCatalog, feed *activity.Feed, layout *Layout) *AdminHandler {
	return &AdminHandler{catalog: catalog, feed: feed, layout: layout}
}

func (h *AdminHandler) data(c echo.Context) pages.AdminData {
	data := pages.AdminData{CSRFToken: CSRFToken(c)}
	if h.feed != nil {
		data.Events = h.feed.Recent()
	}
	all, err := h.catalog.ListMeasures(c.Request().Context())
	if err != nil {
		data.CatalogError = err.Error()
	}
	data.Catalog = all
	return data
}

// AdminGet renders the admin panel.
func (h *AdminHandler) AdminGet(c echo.Context) error {
	return h.layout.Page(c, http.StatusOK, "Admin Panel", layout.NavAdmin, pages.Admin(h.data(c)))
}

// RefreshCatalogPost drops the cached catalog and redraws it.
func (h *AdminHandler) RefreshCatalogPost(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.catalog.Invalidate(ctx); err != nil {
		middleware.FromContext(ctx).Warn("Failed to invalidate measure cache", "error", err)
		view.TriggerToast(c, view.ErrorToast("Could not refresh the measure catalog"))
	} else {
		view.TriggerToast(c, view.SuccessToast("Measure catalog refreshed"))
	}
	return h.layout.Fragment(c, http.StatusOK, pages.CatalogPanel(h.data(c)))
}
