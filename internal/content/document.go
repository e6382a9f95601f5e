package content

import "strings"

// Document is the canonical structured shape for a piece of PR content.
// Every editor surface and every generation prompt speaks this shape; the
// JSON tags are the canonical keys that NormalizeKeys maps aliases onto.
type Document struct {
	Headline    string   `json:"headline,omitempty"`
	Subheadline string   `json:"subheadline,omitempty"`
	Body        []string `json:"body,omitempty"`
	Quotes      []Quote  `json:"quotes,omitempty"`
	Boilerplate string   `json:"boilerplate,omitempty"`
	Disclaimer  string   `json:"disclaimer,omitempty"`
}

type Quote struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution,omitempty"`
}

// PlainText joins every text fragment of the document for phrase
// scanning. Section order matches the rendered order.
func (d Document) PlainText() string {
	var parts []string
	appendPart := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	appendPart(d.Headline)
	appendPart(d.Subheadline)
	for _, p := range d.Body {
		appendPart(p)
	}
	for _, q := range d.Quotes {
		appendPart(q.Text)
		appendPart(q.Attribution)
	}
	appendPart(d.Boilerplate)
	appendPart(d.Disclaimer)

	return strings.Join(parts, "\n\n")
}

func (d Document) IsEmpty() bool {
	return d.Headline == "" &&
		d.Subheadline == "" &&
		len(d.Body) == 0 &&
		len(d.Quotes) == 0 &&
		d.Boilerplate == "" &&
		d.Disclaimer == ""
}
