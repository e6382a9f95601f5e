package content

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML parses an HTML fragment back into a Document. It is the
// inverse of ToHTML for documents that came from it, and tolerant of
// foreign markup otherwise: unknown wrappers are descended into, stray
// elements are flattened into their text content.
func FromHTML(s string) (Document, error) {
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return Document{}, fmt.Errorf("parsing html: %w", err)
	}

	var doc Document
	collectDocument(root, &doc)
	return doc, nil
}

func collectDocument(n *html.Node, doc *Document) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "h1":
			doc.Headline = strings.TrimSpace(textContent(c))
		case "h2":
			doc.Subheadline = strings.TrimSpace(textContent(c))
		case "p":
			if t := strings.TrimSpace(textContent(c)); t != "" {
				doc.Body = append(doc.Body, t)
			}
		case "blockquote":
			if q := quoteFromNode(c); q.Text != "" {
				doc.Quotes = append(doc.Quotes, q)
			}
		case "section":
			switch attrValue(c, "class") {
			case "boilerplate":
				doc.Boilerplate = strings.TrimSpace(textContent(c))
			case "disclaimer":
				doc.Disclaimer = strings.TrimSpace(textContent(c))
			default:
				collectDocument(c, doc)
			}
		default:
			collectDocument(c, doc)
		}
	}
}

func quoteFromNode(n *html.Node) Quote {
	var q Quote
	var paragraphs []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "p":
			if t := strings.TrimSpace(textContent(c)); t != "" {
				paragraphs = append(paragraphs, t)
			}
		case "cite":
			q.Attribution = strings.TrimSpace(textContent(c))
		}
	}
	q.Text = strings.Join(paragraphs, "\n\n")
	return q
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
