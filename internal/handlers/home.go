package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	layout *Layout
	feed   *activity.Feed
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(layout *Layout, feed *activity.Feed) *HomeHandler {
	return &HomeHandler{layout: layout, feed: feed}
}

// HomeGet renders the welcome page with recent activity.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	var events []activity.Event
	if h.feed != nil {
		events = h.feed.Recent()
	}
	content := pages.Home(middleware.CurrentUser(c), h.layout.CompanyName(), events)
	return h.layout.Page(c, http.StatusOK, "Home", layout.NavHome, content)
}

// RootGet sends visitors to the home page or the login page.
func RootGet(c echo.Context) error {
	if middleware.SessionUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/app/home")
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
