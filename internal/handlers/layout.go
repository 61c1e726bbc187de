package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/rendering"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	"github.com/nfrund/ipadmin/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
)

// Layout renders pages inside the application shell and bare fragments for
// htmx swaps.
type Layout struct {
	renderer     rendering.Renderer
	companyName  string
	contactEmail string
	now          func() time.Time
}

// NewLayout creates a Layout.
func NewLayout(renderer rendering.Renderer, companyName, contactEmail string) *Layout {
	return &Layout{
		renderer:     renderer,
		companyName:  companyName,
		contactEmail: contactEmail,
		now:          time.Now,
	}
}

// CompanyName is the practice name shown in the shell.
func (l *Layout) CompanyName() string { return l.companyName }

// ContactEmail is the address shown in the footer.
func (l *Layout) ContactEmail() string { return l.contactEmail }

// Page renders content as a full document.
func (l *Layout) Page(c echo.Context, status int, title, active string, content cmp.Node) error {
	shell := layout.Shell{
		Title:        title,
		User:         middleware.CurrentUser(c),
		CompanyName:  l.companyName,
		ContactEmail: l.contactEmail,
		Year:         l.now().Year(),
		Active:       active,
		CSRFToken:    CSRFToken(c),
		Flash:        view.GetFlashData(c),
	}
	page := layouts.Base(shell, view.AdaptGomponentToTempl(content))
	return l.renderer.RenderPage(c, status, page)
}

// Fragment renders node alone.
func (l *Layout) Fragment(c echo.Context, status int, node cmp.Node) error {
	return l.renderer.RenderPage(c, status, node)
}

// Respond renders a fragment for htmx requests and a full page otherwise.
func (l *Layout) Respond(c echo.Context, title, active string, page, fragment cmp.Node) error {
	if view.IsHTMX(c) {
		return l.Fragment(c, http.StatusOK, fragment)
	}
	return l.Page(c, http.StatusOK, title, active, page)
}

// CSRFToken returns the token set by the CSRF middleware, if it ran.
func CSRFToken(c echo.Context) string {
	token, _ := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string)
	return token
}

func actor(c echo.Context) string {
	if u := middleware.CurrentUser(c); u != nil {
		return u.UserName
	}
	return ""
}
