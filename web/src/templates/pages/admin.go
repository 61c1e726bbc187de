package pages

import (
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// AdminData is the admin panel.
type AdminData struct {
	Catalog      domain.Catalog
	CatalogError string
	Events       []activity.Event
	CSRFToken    string
}

// Admin is the admin panel: the measure catalog and the activity feed.
func Admin(data AdminData) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8 space-y-8"),
		g.H1(g.Class("text-2xl font-bold"), cmp.Text("Admin Panel")),
		CatalogPanel(data),
		ActivityFeed(data.Events),
	)
}

// CatalogPanel lists the cached measure catalog with a refresh button.
func CatalogPanel(data AdminData) cmp.Node {
	return g.Section(
		g.ID("catalog-panel"),
		g.Class("card"),
		g.Div(
			g.Class("flex justify-between items-center mb-4"),
			g.H2(g.Class("text-xl font-semibold"), cmp.Text("Measure Catalog")),
			g.Button(
				g.Type("button"),
				g.Class("btn btn-sm btn-outline"),
				hx.Post("/app/admin/catalog/refresh"),
				hx.Target("#catalog-panel"),
				hx.Swap("outerHTML"),
				cmp.Text("Refresh"),
			),
		),
		cmp.If(data.CatalogError != "", components.Alert(components.AlertError, "", data.CatalogError)),
		cmp.If(len(data.Catalog) == 0 && data.CatalogError == "", components.Muted("No measures available")),
		cmp.If(len(data.Catalog) > 0, g.Table(
			g.Class("data-table"),
			g.THead(g.Tr(g.Th(cmp.Text("ID")), g.Th(cmp.Text("Name")))),
			g.TBody(cmp.Map(data.Catalog, func(m domain.Measure) cmp.Node {
				return g.Tr(g.Td(cmp.Textf("%d", m.MeasureID)), g.Td(cmp.Text(m.MeasureName)))
			})),
		)),
	)
}
