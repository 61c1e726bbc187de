package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Contact shows the practice's contact address.
func Contact(company, email string) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8"),
		g.Div(
			g.Class("card"),
			g.H1(g.Class("text-2xl font-bold mb-4"), cmp.Text("Contact")),
			g.P(cmp.Text("Questions about "+company+" or this console?")),
			cmp.If(email != "", g.P(
				g.Class("mt-2"),
				cmp.Text("Email us at "),
				g.A(g.Href("mailto:"+email), g.Class("text-blue-600 underline"), cmp.Text(email)),
			)),
		),
	)
}
