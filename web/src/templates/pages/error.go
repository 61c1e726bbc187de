package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Error is the full page shown for unhandled errors.
func Error(status int, message string) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8 text-center"),
		g.H1(g.Class("text-4xl font-bold mb-4"), cmp.Textf("%d", status)),
		g.P(g.Class("text-gray-600 mb-6"), cmp.Text(message)),
		g.A(g.Href("/app/home"), g.Class("btn btn-primary"), cmp.Text("Go home")),
	)
}
