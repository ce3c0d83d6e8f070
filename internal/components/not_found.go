package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func NotFoundPage() g.Node {
	return Layout(
		PageConfig{Title: "Page not found - Frix"},
		Main(
			Class("flex flex-col items-center justify-center min-h-screen font-sans space-y-4 px-4 text-center"),
			H1(Class("text-4xl font-bold"), g.Text("Page not found")),
			P(Class("text-lg"), g.Text("The page you are looking for does not exist.")),
			A(Class("underline text-blue-600"), Href("/"), g.Text("Back to the home page")),
		),
	)
}
