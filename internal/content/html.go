package content

import (
	"html"
	"strings"
)

// ToHTML renders a document as an HTML fragment. Every text fragment is
// escaped; no input text reaches the output raw.
//
// Layout: h1 headline, h2.subheadline, one p per body paragraph,
// blockquote > p + cite per quote, section.boilerplate and
// section.disclaimer wrappers.
func ToHTML(doc Document) string {
	var b strings.Builder

	if doc.Headline != "" {
		b.WriteString("<h1>")
		b.WriteString(html.EscapeString(doc.Headline))
		b.WriteString("</h1>\n")
	}
	if doc.Subheadline != "" {
		b.WriteString(`<h2 class="subheadline">`)
		b.WriteString(html.EscapeString(doc.Subheadline))
		b.WriteString("</h2>\n")
	}
	for _, p := range doc.Body {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(p))
		b.WriteString("</p>\n")
	}
	for _, q := range doc.Quotes {
		b.WriteString("<blockquote><p>")
		b.WriteString(html.EscapeString(q.Text))
		b.WriteString("</p>")
		if q.Attribution != "" {
			b.WriteString("<cite>")
			b.WriteString(html.EscapeString(q.Attribution))
			b.WriteString("</cite>")
		}
		b.WriteString("</blockquote>\n")
	}
	if doc.Boilerplate != "" {
		b.WriteString(`<section class="boilerplate"><p>`)
		b.WriteString(html.EscapeString(doc.Boilerplate))
		b.WriteString("</p></section>\n")
	}
	if doc.Disclaimer != "" {
		b.WriteString(`<section class="disclaimer"><p>`)
		b.WriteString(html.EscapeString(doc.Disclaimer))
		b.WriteString("</p></section>\n")
	}

	return b.String()
}
