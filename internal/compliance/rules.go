package compliance

import "strings"

// RuleSet is the input to a Checker: phrases that must not appear and
// markers that satisfy the safety-disclaimer requirement.
type RuleSet struct {
	BannedPhrases     []string `json:"banned_phrases"`
	DisclaimerMarkers []string `json:"disclaimer_markers"`
}

// DefaultRuleSet returns the built-in pharma marketing rules. Per-client
// additions are layered on with Merge.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		BannedPhrases: []string{
			"miracle cure",
			"guaranteed results",
			"100% effective",
			"no side effects",
			"completely safe",
			"instant relief",
			"works for everyone",
			"breakthrough treatment",
			"clinically proven",
			"risk free",
			"permanent cure",
			"magic pill",
		},
		DisclaimerMarkers: []string{
			"important safety information",
			"full prescribing information",
			"side effects may include",
			"consult your doctor",
		},
	}
}

// Merge returns a new rule set with extra rules appended. Duplicates are
// dropped case-insensitively, keeping the first spelling seen.
func (r RuleSet) Merge(extra RuleSet) RuleSet {
	return RuleSet{
		BannedPhrases:     dedupeFold(r.BannedPhrases, extra.BannedPhrases),
		DisclaimerMarkers: dedupeFold(r.DisclaimerMarkers, extra.DisclaimerMarkers),
	}
}

func dedupeFold(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
