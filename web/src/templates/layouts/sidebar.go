package layouts

import (
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

type navItem struct {
	key   string
	label string
	href  string
}

var navItems = []navItem{
	{layout.NavHome, "Home", "/app/home"},
	{layout.NavLookup, "Patient Lookup", "/app/lookup"},
	{layout.NavAbout, "About", "/app/about"},
	{layout.NavServices, "Services", "/app/services"},
	{layout.NavContact, "Contact", "/app/contact"},
}

// Sidebar is the hover-revealed navigation. A thin trigger strip on the left
// edge opens it; leaving the panel closes it (see app.js).
func Sidebar(shell layout.Shell) cmp.Node {
	return g.Div(
		g.Div(g.Class("sidebar-trigger"), g.ID("sidebar-trigger")),
		g.Aside(
			g.ID("sidebar"),
			g.Class("sidebar"),
			g.Div(
				g.Class("sidebar-content"),
				g.H2(g.Class("text-xl font-bold mb-2"), cmp.Text(shell.CompanyName)),
				g.Div(
					g.Class("user-info mb-4"),
					g.Span(g.Class("user-type"), cmp.Text(shell.User.Type.Label())),
				),
				g.Nav(
					g.Ul(
						cmp.Map(navItems, func(item navItem) cmp.Node {
							return navLink(item, shell.Active)
						}),
						cmp.If(shell.User.IsAdmin(), navLink(navItem{layout.NavAdmin, "Admin Panel", "/app/admin"}, shell.Active)),
					),
				),
				cmp.El("form",
					g.Method("post"),
					g.Action("/auth/logout"),
					g.Input(g.Type("hidden"), g.Name("_csrf"), g.Value(shell.CSRFToken)),
					g.Button(g.Type("submit"), g.Class("logout-button"), cmp.Text("Logout")),
				),
			),
		),
	)
}

func navLink(item navItem, active string) cmp.Node {
	class := "nav-link"
	if item.key == active {
		class += " active"
	}
	return g.Li(g.A(g.Href(item.href), g.Class(class), cmp.Text(item.label)))
}
