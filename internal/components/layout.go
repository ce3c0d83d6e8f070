package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	defaultTitle       = "Frix - Plan Events with Confidence"
	defaultDescription = "Find the best dates and avoid scheduling conflicts."
)

type PageConfig struct {
	Title       string
	Description string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = defaultTitle
	}

	if config.Description == "" {
		config.Description = defaultDescription
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Link(Rel("icon"), Href("/static/favicon.svg"), Type("image/svg+xml")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),

				Script(Src("https://cdn.tailwindcss.com")),
			),
			Body(
				Class("bg-gray-50 text-black"),
				g.Group(content),
			),
		),
	})
}
