package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func WhyItMatters() g.Node {
	benefits := []string{
		"Save time by avoiding date clashes.",
		"Improve attendance with optimal timing.",
		"Stay ahead of competing events.",
	}

	return Section(
		ID("why-it-matters"),
		Class("py-20"),
		Div(
			Class("container mx-auto px-4 text-center"),
			H2(Class("text-2xl font-bold mb-8"), g.Text("Why It Matters")),
			Ul(
				Class("list-disc list-inside max-w-md mx-auto space-y-2 text-left"),
				g.Group(g.Map(benefits, func(benefit string) g.Node {
					return Li(g.Text(benefit))
				})),
			),
		),
	)
}
