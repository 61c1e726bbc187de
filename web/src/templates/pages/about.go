package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// About renders pre-converted markdown. html must come from a trusted
// source, it is not escaped.
func About(html string) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8"),
		g.Article(g.Class("prose card"), cmp.Raw(html)),
	)
}
