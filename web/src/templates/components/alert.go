package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Alert statuses.
const (
	AlertError   = "error"
	AlertInfo    = "info"
	AlertSuccess = "success"
)

// Alert renders a status box with an optional title.
func Alert(status, title, message string) cmp.Node {
	role := "status"
	if status == AlertError {
		role = "alert"
	}
	return g.Div(
		g.Class("alert alert-"+status),
		cmp.Attr("role", role),
		cmp.If(title != "", g.Strong(g.Class("mr-2"), cmp.Text(title))),
		cmp.Text(message),
	)
}

// Muted is grey helper text, used for empty states.
func Muted(text string) cmp.Node {
	return g.P(g.Class("text-gray-500"), cmp.Text(text))
}

// Badge is a small rounded label.
func Badge(color, text string) cmp.Node {
	return g.Span(g.Class("badge badge-"+color), cmp.Text(text))
}
