package pages

import (
	"github.com/nfrund/ipadmin/internal/activity"
	"github.com/nfrund/ipadmin/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Home greets the signed-in user and lists recent patient activity.
func Home(user *domain.User, company string, events []activity.Event) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8 space-y-8"),
		g.Header(
			g.H1(g.Class("text-3xl font-bold"), cmp.Text("Welcome to "+company)),
			cmp.Iff(user != nil, func() cmp.Node {
				return g.P(g.Class("text-gray-600 mt-2"), cmp.Text("Signed in as "+displayName(user)))
			}),
		),
		ActivityFeed(events),
	)
}

func displayName(u *domain.User) string {
	return u.UserName + " (" + u.Type.Label() + ")"
}

// ActivityFeed is the list of recent patient changes.
func ActivityFeed(events []activity.Event) cmp.Node {
	return g.Section(
		g.Class("card"),
		g.H2(g.Class("text-xl font-semibold mb-4"), cmp.Text("Recent Activity")),
		cmp.If(len(events) == 0, g.P(g.Class("text-gray-500"), cmp.Text("No patient activity yet."))),
		cmp.If(len(events) > 0, g.Ul(
			g.Class("divide-y"),
			cmp.Map(events, func(ev activity.Event) cmp.Node {
				return g.Li(
					g.Class("py-2 flex justify-between"),
					g.Span(cmp.Text(ev.Summary())),
					cmp.El("time",
						g.Class("text-sm text-gray-500"),
						cmp.Attr("datetime", ev.At.Format("2006-01-02T15:04:05Z07:00")),
						cmp.Text(ev.At.Local().Format("Jan 2, 15:04")),
					),
				)
			}),
		)),
	)
}
