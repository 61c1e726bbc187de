package pages

import (
	"github.com/nfrund/ipadmin/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Login is the sign-in form. It posts as a regular form so the session
// cookie is set on a full navigation.
func Login(data auth.LoginData, company string) cmp.Node {
	return g.Div(
		g.Class("login-container"),
		g.Div(
			g.Class("login-box"),
			g.H1(cmp.Text("Welcome to "+upper(company))),
			cmp.El("form",
				g.Method("post"),
				g.Action("/auth/login"),
				g.Class("login-form"),
				g.Input(g.Type("hidden"), g.Name("_csrf"), g.Value(data.CSRFToken)),
				g.Div(
					g.Class("form-group"),
					cmp.El("label", g.For("username"), cmp.Text("Username")),
					g.Input(g.Type("text"), g.ID("username"), g.Name("userName"), g.Value(data.UserName),
						g.Placeholder("Enter your username"), g.Required(), g.AutoFocus()),
				),
				g.Div(
					g.Class("form-group"),
					cmp.El("label", g.For("password"), cmp.Text("Password")),
					g.Input(g.Type("password"), g.ID("password"), g.Name("password"),
						g.Placeholder("Enter your password"), g.Required()),
				),
				cmp.If(data.Error != "", g.Div(g.Class("error-message"), cmp.Attr("role", "alert"), cmp.Text(data.Error))),
				g.Button(g.Type("submit"), g.Class("login-button"), cmp.Text("Login")),
			),
		),
	)
}
