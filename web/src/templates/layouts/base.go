package layouts

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"
const tailwindSrc = "https://cdn.tailwindcss.com"

// Base wraps page content in the HTML document, sidebar and footer. Signed
// out pages (login, errors before login) get the document only.
func Base(shell layout.Shell, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(shell, view.AdaptTemplToGomponentContext(ctx, content)).Render(w)
	})
}

func document(shell layout.Shell, body cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				cmp.If(shell.CSRFToken != "", g.Meta(g.Name("csrf-token"), g.Content(shell.CSRFToken))),
				cmp.El("title", cmp.Text(CalculateTitle(shell.Title, shell.CompanyName))),
				g.Script(g.Src(tailwindSrc)),
				g.Script(g.Src(htmxSrc)),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src("/static/js/app.js"), g.Defer()),
			),
			g.Body(
				g.Class("bg-gray-100 min-h-screen flex flex-col"),
				csrfHeaders(shell.CSRFToken),
				cmp.Iff(shell.SignedIn(), func() cmp.Node { return Sidebar(shell) }),
				g.Main(
					g.ID("main"),
					g.Class("main-content flex-1"),
					Flash(shell.Flash),
					body,
				),
				cmp.If(shell.SignedIn(), Footer(shell)),
				g.Div(g.ID("toasts"), g.Class("toast-region")),
				g.Div(g.ID("modal")),
			),
		),
	)
}

// csrfHeaders makes every htmx request carry the CSRF token.
func csrfHeaders(token string) cmp.Node {
	if token == "" {
		return nil
	}
	b, err := json.Marshal(map[string]string{"X-CSRF-Token": token})
	if err != nil {
		return nil
	}
	return hx.Headers(string(b))
}

// Flash renders one-shot session messages.
func Flash(f view.FlashData) cmp.Node {
	if f.Empty() {
		return nil
	}
	return g.Div(
		g.Class("container mx-auto px-8 pt-6 space-y-2"),
		cmp.Map(f.Success, func(msg string) cmp.Node {
			return g.Div(g.Class("alert alert-success"), cmp.Attr("role", "status"), cmp.Text(msg))
		}),
		cmp.Map(f.Error, func(msg string) cmp.Node {
			return g.Div(g.Class("alert alert-error"), cmp.Attr("role", "alert"), cmp.Text(msg))
		}),
	)
}
