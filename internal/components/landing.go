package components

import (
	"bytes"
	"io"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// LandingPage is the whole document served at "/". It takes no input and
// renders the same bytes every time.
func LandingPage() g.Node {
	return Layout(
		PageConfig{},
		Div(
			Class("flex flex-col min-h-screen font-sans"),
			Hero(),
			HowItWorks(),
			WhyItMatters(),
			PageFooter(),
		),
	)
}

// Render writes the landing page to w.
func Render(w io.Writer) error {
	return LandingPage().Render(w)
}

// RenderBytes renders the landing page into memory.
func RenderBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
