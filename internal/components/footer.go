package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	ContactEmail = "kamil@kamilvitek.cz"
	LinkedInURL  = "https://www.linkedin.com/in/kamil-vitek"
)

func PageFooter() g.Node {
	return Footer(
		Class("mt-auto py-8 bg-gray-800 text-gray-100 text-center space-y-2"),
		P(
			g.Text("Contact: "),
			A(Class("underline"), Href("mailto:"+ContactEmail), g.Text(ContactEmail)),
		),
		P(
			A(
				Class("underline"),
				Href(LinkedInURL),
				Target("_blank"),
				Rel("noopener noreferrer"),
				g.Text("LinkedIn"),
			),
		),
	)
}
