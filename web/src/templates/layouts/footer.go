package layouts

import (
	"strconv"

	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Footer shows contact details, the copyright year and the tagline.
func Footer(shell layout.Shell) cmp.Node {
	return g.Footer(
		g.Class("footer"),
		g.Div(
			g.Class("footer-content"),
			g.Div(g.Class("footer-section footer-left"),
				g.Span(cmp.Text("Contact: "+shell.ContactEmail)),
			),
			g.Div(g.Class("footer-section footer-center"),
				g.Span(cmp.Raw("&copy; "), cmp.Text(strconv.Itoa(shell.Year)+" "+shell.CompanyName)),
			),
			g.Div(g.Class("footer-section footer-right"),
				g.Span(cmp.Text("Empowering wellness, one patient at a time.")),
			),
		),
	)
}
