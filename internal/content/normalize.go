package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var ErrEmptyDocument = errors.New("document has no usable content")

// Canonical document keys.
const (
	keyHeadline    = "headline"
	keySubheadline = "subheadline"
	keyBody        = "body"
	keyQuotes      = "quotes"
	keyBoilerplate = "boilerplate"
	keyDisclaimer  = "disclaimer"
	keyText        = "text"
	keyAttribution = "attribution"
)

// documentAliases maps folded key spellings onto canonical document keys.
// Models name these fields inconsistently from one completion to the
// next; canonical keys map to themselves so normalization is idempotent.
var documentAliases = map[string]string{
	keyHeadline:         keyHeadline,
	"title":             keyHeadline,
	"header":            keyHeadline,
	"heading":           keyHeadline,
	keySubheadline:      keySubheadline,
	"subtitle":          keySubheadline,
	"subheader":         keySubheadline,
	"deck":              keySubheadline,
	keyBody:             keyBody,
	"paragraphs":        keyBody,
	"content":           keyBody,
	"text":              keyBody,
	"bodyparagraphs":    keyBody,
	keyQuotes:           keyQuotes,
	"quotations":        keyQuotes,
	"pullquotes":        keyQuotes,
	keyBoilerplate:      keyBoilerplate,
	"about":             keyBoilerplate,
	"companyinfo":       keyBoilerplate,
	keyDisclaimer:       keyDisclaimer,
	"safetyinformation": keyDisclaimer,
	"isi":               keyDisclaimer,
	"legal":             keyDisclaimer,
}

// quoteAliases is the same mechanism for keys inside a quote object.
var quoteAliases = map[string]string{
	keyText:        keyText,
	"quote":        keyText,
	keyAttribution: keyAttribution,
	"author":       keyAttribution,
	"source":       keyAttribution,
	"speaker":      keyAttribution,
}

// fold lowercases a key and strips spaces, hyphens, and underscores, so
// "bodyParagraphs", "Body_Paragraphs", and "body paragraphs" all look up
// the same alias entry.
func fold(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NormalizeKeys maps inconsistent AI output keys onto canonical document
// keys. Values are carried over untouched except for quote lists, whose
// element keys are normalized with the quote alias table. Unknown keys
// pass through unchanged.
//
// Normalizing an already-normalized map is the identity. When a canonical
// key collides with one of its aliases the canonical key wins; alias
// collisions resolve in sorted raw-key order.
func NormalizeKeys(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))

	// Canonical spellings claim their slot first so aliases cannot
	// shadow them.
	for k, v := range raw {
		folded := fold(k)
		if canonical, ok := documentAliases[folded]; ok && folded == canonical {
			out[canonical] = normalizeValue(canonical, v)
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		canonical, ok := documentAliases[fold(k)]
		if !ok {
			if _, exists := out[k]; !exists {
				out[k] = raw[k]
			}
			continue
		}
		if _, exists := out[canonical]; !exists {
			out[canonical] = normalizeValue(canonical, raw[k])
		}
	}

	return out
}

func normalizeValue(canonical string, v any) any {
	if canonical != keyQuotes {
		return v
	}
	items, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(items))
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			out[i] = normalizeQuoteKeys(m)
		} else {
			out[i] = item
		}
	}
	return out
}

func normalizeQuoteKeys(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		folded := fold(k)
		if canonical, ok := quoteAliases[folded]; ok && folded == canonical {
			out[canonical] = v
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		canonical, ok := quoteAliases[fold(k)]
		if !ok {
			if _, exists := out[k]; !exists {
				out[k] = raw[k]
			}
			continue
		}
		if _, exists := out[canonical]; !exists {
			out[canonical] = raw[k]
		}
	}

	return out
}

// Decode parses model output into a Document: unmarshal to a map,
// normalize keys, then coerce loosely. Body given as a single string
// splits on blank lines; body elements given as objects use their text
// field; quotes given as plain strings become attribution-less quotes.
// Unknown keys are dropped. Fails only on malformed JSON or a document
// with nothing usable in it.
func Decode(raw []byte) (Document, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Document{}, fmt.Errorf("parsing document: %w", err)
	}

	doc := fromMap(NormalizeKeys(m))
	if doc.IsEmpty() {
		return Document{}, ErrEmptyDocument
	}
	return doc, nil
}

func fromMap(m map[string]any) Document {
	return Document{
		Headline:    strings.TrimSpace(stringValue(m[keyHeadline])),
		Subheadline: strings.TrimSpace(stringValue(m[keySubheadline])),
		Body:        bodyValue(m[keyBody]),
		Quotes:      quotesValue(m[keyQuotes]),
		Boilerplate: strings.TrimSpace(stringValue(m[keyBoilerplate])),
		Disclaimer:  strings.TrimSpace(stringValue(m[keyDisclaimer])),
	}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func bodyValue(v any) []string {
	switch t := v.(type) {
	case string:
		return splitParagraphs(t)
	case []any:
		var out []string
		for _, item := range t {
			var text string
			switch e := item.(type) {
			case string:
				text = e
			case map[string]any:
				text = stringValue(e[keyText])
			}
			if text = strings.TrimSpace(text); text != "" {
				out = append(out, text)
			}
		}
		return out
	}
	return nil
}

// splitParagraphs splits prose on blank lines.
func splitParagraphs(s string) []string {
	var out []string
	for _, part := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func quotesValue(v any) []Quote {
	items, ok := v.([]any)
	if !ok {
		if s := strings.TrimSpace(stringValue(v)); s != "" {
			return []Quote{{Text: s}}
		}
		return nil
	}

	var out []Quote
	for _, item := range items {
		var q Quote
		switch e := item.(type) {
		case string:
			q.Text = strings.TrimSpace(e)
		case map[string]any:
			// Keys were normalized alongside the document keys.
			q.Text = strings.TrimSpace(stringValue(e[keyText]))
			q.Attribution = strings.TrimSpace(stringValue(e[keyAttribution]))
		}
		if q.Text != "" {
			out = append(out, q)
		}
	}
	return out
}
