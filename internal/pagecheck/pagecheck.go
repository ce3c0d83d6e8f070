// Package pagecheck verifies rendered landing page HTML against its content
// contract: form controls, select options, the three steps, the three
// benefits and the footer links. It parses whatever HTML it is given, so it
// works on live renders as well as on exported files.
package pagecheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kamilvitek/frix/pkg/tracing"
)

const (
	ContactHref  = "mailto:kamil@kamilvitek.cz"
	LinkedInHref = "https://www.linkedin.com/in/kamil-vitek"
)

var (
	wantInputTypes   = []string{"text", "text", "date", "date", "text"}
	wantPlaceholders = []string{"Event Name", "Event Theme", "", "", "City"}
	wantOptions      = []string{"", "Conference", "Meetup", "Workshop"}
	wantSteps    = []string{"1. Enter Details", "2. We Analyze", "3. Pick Dates"}
	wantBenefits = []string{
		"Save time by avoiding date clashes.",
		"Improve attendance with optimal timing.",
		"Stay ahead of competing events.",
	}
)

// Violation is one broken rule of the contract.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Rule + ": " + v.Message
}

// Report collects the violations found in one page.
type Report struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether the page satisfied every rule.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Err joins all violations into one error, nil when the report is OK.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Violations))
	for _, v := range r.Violations {
		errs = append(errs, errors.New(v.String()))
	}
	return errors.Join(errs...)
}

func (r *Report) addf(rule, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

// RenderFunc writes a complete page to w.
type RenderFunc func(w io.Writer) error

// Verify parses the HTML read from r and checks the structural rules.
// The returned error is only set when the input cannot be read or parsed.
func Verify(r io.Reader) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("parse page: %w", err)
	}

	var report Report
	checkForm(doc, &report)
	checkSteps(doc, &report)
	checkBenefits(doc, &report)
	checkFooter(doc, &report)
	return report, nil
}

// VerifyIdempotent renders the page twice and reports a violation when the
// two outputs differ.
func VerifyIdempotent(render RenderFunc) (Report, error) {
	var first, second bytes.Buffer
	if err := render(&first); err != nil {
		return Report{}, fmt.Errorf("render page: %w", err)
	}
	if err := render(&second); err != nil {
		return Report{}, fmt.Errorf("render page again: %w", err)
	}

	var report Report
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		report.addf("render.idempotent", "two renders differ (%d vs %d bytes)", first.Len(), second.Len())
	}
	return report, nil
}

// Run performs the idempotence check and then verifies the rendered output.
func Run(ctx context.Context, render RenderFunc) (Report, error) {
	_, span := tracing.Start(ctx, "pagecheck.run")
	defer span.End()

	report, err := VerifyIdempotent(render)
	if err != nil {
		span.RecordError(err)
		return Report{}, err
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		span.RecordError(err)
		return Report{}, fmt.Errorf("render page: %w", err)
	}
	span.SetAttributes(attribute.Int("frix.page.bytes", buf.Len()))

	structural, err := Verify(&buf)
	if err != nil {
		span.RecordError(err)
		return Report{}, err
	}
	report.Violations = append(report.Violations, structural.Violations...)

	span.SetAttributes(attribute.Int("frix.pagecheck.violations", len(report.Violations)))
	return report, nil
}

func checkForm(doc *goquery.Document, report *Report) {
	forms := doc.Find("form")
	if forms.Length() != 1 {
		report.addf("form.count", "want exactly 1 form, found %d", forms.Length())
		if forms.Length() == 0 {
			return
		}
	}
	form := forms.First()

	inputs := form.Find("input")
	if inputs.Length() != 5 {
		report.addf("form.inputs", "want 5 inputs, found %d", inputs.Length())
	}
	if n := inputs.Filter(`[type="date"]`).Length(); n != 2 {
		report.addf("form.dates", "want 2 date inputs, found %d", n)
	}

	city := inputs.Filter(`[placeholder="City"]`)
	if city.Length() != 1 {
		report.addf("form.city", "want 1 city input, found %d", city.Length())
	}

	var types, placeholders []string
	inputs.Each(func(_ int, s *goquery.Selection) {
		kind, _ := s.Attr("type")
		placeholder, _ := s.Attr("placeholder")
		types = append(types, kind)
		placeholders = append(placeholders, placeholder)
	})
	if !slices.Equal(types, wantInputTypes) || !slices.Equal(placeholders, wantPlaceholders) {
		report.addf("form.fields", "want inputs %q with placeholders %q, found %q with %q",
			wantInputTypes, wantPlaceholders, types, placeholders)
	}

	selects := form.Find("select")
	if selects.Length() != 1 {
		report.addf("form.select", "want 1 select, found %d", selects.Length())
	} else {
		var options []string
		selects.Find("option").Each(func(_ int, s *goquery.Selection) {
			value, ok := s.Attr("value")
			if !ok {
				value = strings.TrimSpace(s.Text())
			}
			options = append(options, value)
		})
		if !slices.Equal(options, wantOptions) {
			report.addf("form.select.options", "want options %q, found %q", wantOptions, options)
		}
	}

	submits := form.Find(`button[type="submit"]`)
	if submits.Length() != 1 {
		report.addf("form.submit", "want 1 submit button, found %d", submits.Length())
	}
}

func checkSteps(doc *goquery.Document, report *Report) {
	section := sectionWithHeading(doc, "How It Works")
	if section.Length() == 0 {
		report.addf("steps.section", `no section headed "How It Works"`)
		return
	}

	titles := section.Find("h3")
	if titles.Length() != len(wantSteps) {
		report.addf("steps.count", "want %d steps, found %d", len(wantSteps), titles.Length())
	}

	var got []string
	titles.Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		got = append(got, title)
		if body := strings.TrimSpace(s.Parent().Find("p").Text()); body == "" {
			report.addf("steps.body", "step %q has no body text", title)
		}
	})
	if len(got) == len(wantSteps) && !slices.Equal(got, wantSteps) {
		report.addf("steps.order", "want steps %q, found %q", wantSteps, got)
	}
}

func checkBenefits(doc *goquery.Document, report *Report) {
	section := sectionWithHeading(doc, "Why It Matters")
	if section.Length() == 0 {
		report.addf("benefits.section", `no section headed "Why It Matters"`)
		return
	}

	var got []string
	section.Find("ul > li").Each(func(_ int, s *goquery.Selection) {
		got = append(got, strings.TrimSpace(s.Text()))
	})
	if len(got) != len(wantBenefits) {
		report.addf("benefits.count", "want %d benefits, found %d", len(wantBenefits), len(got))
		return
	}
	if !slices.Equal(got, wantBenefits) {
		report.addf("benefits.text", "want benefits %q, found %q", wantBenefits, got)
	}
}

func checkFooter(doc *goquery.Document, report *Report) {
	footer := doc.Find("footer")
	if footer.Length() == 0 {
		report.addf("footer.missing", "no footer element")
		return
	}

	if footer.Find(fmt.Sprintf(`a[href=%q]`, ContactHref)).Length() == 0 {
		report.addf("footer.mailto", "no link to %s", ContactHref)
	}

	linkedIn := footer.Find(fmt.Sprintf(`a[href=%q]`, LinkedInHref))
	if linkedIn.Length() == 0 {
		report.addf("footer.linkedin", "no link to %s", LinkedInHref)
		return
	}
	if target, _ := linkedIn.Attr("target"); target != "_blank" {
		report.addf("footer.linkedin.target", `want target="_blank", found %q`, target)
	}
	if rel, _ := linkedIn.Attr("rel"); rel != "noopener noreferrer" {
		report.addf("footer.linkedin.rel", `want rel="noopener noreferrer", found %q`, rel)
	}
}

func sectionWithHeading(doc *goquery.Document, heading string) *goquery.Selection {
	return doc.Find("section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Find("h2").First().Text()) == heading
	}).First()
}
