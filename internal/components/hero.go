package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const fieldClass = "w-full border rounded p-2"

var eventTypes = []string{"Conference", "Meetup", "Workshop"}

func Hero() g.Node {
	return Section(
		ID("hero"),
		Class("flex flex-col md:flex-row items-center justify-between gap-8 container mx-auto px-4 py-20"),

		Div(
			Class("md:w-1/2 space-y-4 text-center md:text-left"),
			H1(Class("text-4xl font-bold"), g.Text("Plan Events with Confidence")),
			P(Class("text-lg text-black"), g.Text("Find the best dates and avoid scheduling conflicts.")),
		),

		LeadForm(),
	)
}

// LeadForm is the "Check Your Dates" card. The fields are unbound: no names,
// no action, nothing reads them.
func LeadForm() g.Node {
	return Form(
		Class("md:w-1/2 bg-white shadow rounded p-6 space-y-4 w-full"),
		H2(Class("text-xl font-semibold"), g.Text("Check Your Dates")),

		textField("Event Name"),

		Select(
			Class(fieldClass),
			Option(Value(""), g.Text("Event Type")),
			g.Group(g.Map(eventTypes, func(t string) g.Node {
				return Option(g.Text(t))
			})),
		),

		textField("Event Theme"),

		Div(
			Label(Class("block text-sm mb-1"), g.Text("Tentative Dates")),
			Div(
				Class("flex gap-2"),
				dateField(),
				dateField(),
			),
		),

		textField("City"),

		Button(
			Class("w-full bg-blue-600 text-white rounded p-2"),
			Type("submit"),
			g.Text("Submit"),
		),
	)
}

func textField(placeholder string) g.Node {
	return Input(Class(fieldClass), Type("text"), Placeholder(placeholder))
}

func dateField() g.Node {
	return Input(Class(fieldClass), Type("date"))
}
