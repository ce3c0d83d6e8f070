package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type HowItWorksStep struct {
	Title string
	Body  string
}

func HowItWorks() g.Node {
	steps := []HowItWorksStep{
		{"1. Enter Details", "Tell us about your event and preferred dates."},
		{"2. We Analyze", "Our engine checks thousands of events for conflicts."},
		{"3. Pick Dates", "Choose from the low-conflict dates we recommend."},
	}

	return Section(
		ID("how-it-works"),
		Class("py-20 bg-white"),
		Div(
			Class("container mx-auto px-4 text-center"),
			H2(Class("text-2xl font-bold mb-8"), g.Text("How It Works")),
			Div(
				Class("grid md:grid-cols-3 gap-8"),
				g.Group(g.Map(steps, func(s HowItWorksStep) g.Node {
					return Div(
						Class("space-y-2"),
						H3(Class("font-semibold"), g.Text(s.Title)),
						P(g.Text(s.Body)),
					)
				})),
			),
		),
	)
}
