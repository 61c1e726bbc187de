package layout

import (
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/view"
)

// Sidebar entries. Active marks the current one.
const (
	NavHome     = "home"
	NavLookup   = "lookup"
	NavServices = "services"
	NavAbout    = "about"
	NavContact  = "contact"
	NavAdmin    = "admin"
)

// Shell is what the page chrome needs on every full render.
type Shell struct {
	Title        string
	User         *domain.User
	CompanyName  string
	ContactEmail string
	Year         int
	Active       string
	CSRFToken    string
	Flash        view.FlashData
}

// SignedIn reports whether the sidebar should be drawn.
func (s Shell) SignedIn() bool {
	return s.User != nil
}
