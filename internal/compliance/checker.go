package compliance

import (
	"fmt"
	"regexp"
	"strings"

	"inkwire.app/newsroom/internal/content"
)

const (
	MaxScore = 100
	MinScore = 0

	// PhrasePenalty is charged once per distinct banned phrase matched,
	// regardless of how often it occurs. MissingDisclaimerPenalty is
	// charged when neither a disclaimer section nor a marker is present.
	PhrasePenalty            = 10
	MissingDisclaimerPenalty = 25
)

type Result struct {
	Score           int     `json:"score"`
	Matches         []Match `json:"matches,omitempty"`
	DisclaimerFound bool    `json:"disclaimer_found"`
}

type Match struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

type compiledPhrase struct {
	phrase string
	re     *regexp.Regexp
}

// Checker scans text against a compiled rule set. Build one per rule set
// and reuse it; compilation is the expensive part.
type Checker struct {
	phrases []compiledPhrase
	markers []*regexp.Regexp
}

func NewChecker(rules RuleSet) (*Checker, error) {
	c := &Checker{}

	for _, phrase := range rules.BannedPhrases {
		re, err := phrasePattern(phrase)
		if err != nil {
			return nil, fmt.Errorf("compiling banned phrase %q: %w", phrase, err)
		}
		c.phrases = append(c.phrases, compiledPhrase{phrase: phrase, re: re})
	}

	for _, marker := range rules.DisclaimerMarkers {
		re, err := phrasePattern(marker)
		if err != nil {
			return nil, fmt.Errorf("compiling disclaimer marker %q: %w", marker, err)
		}
		c.markers = append(c.markers, re)
	}

	return c, nil
}

// phrasePattern compiles a phrase into a case-insensitive, word-bounded
// pattern that tolerates any whitespace run between words.
func phrasePattern(phrase string) (*regexp.Regexp, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty phrase")
	}

	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(`(?i)\b` + strings.Join(escaped, `\s+`) + `\b`)
}

// CheckText scores a flat piece of text. The disclaimer requirement can
// only be satisfied by a marker occurring in the text itself.
func (c *Checker) CheckText(text string) Result {
	return c.check(text, false)
}

// CheckDocument scores a structured document. A non-empty disclaimer
// section satisfies the disclaimer requirement even without a marker.
func (c *Checker) CheckDocument(doc content.Document) Result {
	return c.check(doc.PlainText(), strings.TrimSpace(doc.Disclaimer) != "")
}

// check starts at MaxScore, subtracts PhrasePenalty once per distinct
// phrase matched, subtracts MissingDisclaimerPenalty when no disclaimer
// is found, and clamps into [MinScore, MaxScore]. The score never
// increases as matches accumulate.
func (c *Checker) check(text string, hasDisclaimerSection bool) Result {
	res := Result{Score: MaxScore}

	for _, p := range c.phrases {
		hits := p.re.FindAllStringIndex(text, -1)
		if len(hits) == 0 {
			continue
		}
		res.Matches = append(res.Matches, Match{Phrase: p.phrase, Count: len(hits)})
		res.Score -= PhrasePenalty
	}

	res.DisclaimerFound = hasDisclaimerSection || c.markerIn(text)
	if !res.DisclaimerFound {
		res.Score -= MissingDisclaimerPenalty
	}

	if res.Score < MinScore {
		res.Score = MinScore
	}
	if res.Score > MaxScore {
		res.Score = MaxScore
	}
	return res
}

func (c *Checker) markerIn(text string) bool {
	for _, re := range c.markers {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
