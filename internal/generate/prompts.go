package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"inkwire.app/newsroom/common/llm"
	"inkwire.app/newsroom/internal/compliance"
)

// angle is one of the fixed editorial treatments a draft is generated
// under. Three angles, three parallel calls, every request.
type angle struct {
	Name        string
	Instruction string
}

var variantAngles = [3]angle{
	{
		Name: "announcement",
		Instruction: "Write it as straight news in inverted-pyramid order: the concrete announcement " +
			"in the first sentence, supporting facts next, background last. No superlatives.",
	},
	{
		Name: "human_impact",
		Instruction: "Center the people affected. Open with the problem patients or clinicians face " +
			"today, then present the announcement as what changes for them. Keep clinical claims modest.",
	},
	{
		Name: "expert_voice",
		Instruction: "Frame the announcement inside the wider industry picture and let an expert carry " +
			"the argument. Give the quotes real substance; the narration stays neutral.",
	},
}

const variantSystemPrompt = `You are a senior copywriter at a healthcare PR agency drafting client content.

## Hard rules

- Marketing claims must stay defensible: no cure language, no efficacy percentages, no promises of safety.
- Pharma content requires a safety disclaimer section. Always fill the disclaimer field.
- Quotes must be attributed to a plausible role (never invent a real person's name).
- Respond with a single JSON object matching the provided schema. No commentary, no markdown fences.`

const titleSystemPrompt = `You improve headlines for healthcare PR content.

A good headline is concrete, active, and under 90 characters. It names who did what; it never overclaims.
Respond with a JSON object of the form {"title": "..."} and nothing else.`

func buildVariantPrompt(req VariantRequest, a angle) string {
	var sb strings.Builder

	sb.WriteString("## Assignment\n")
	fmt.Fprintf(&sb, "Draft a %s for the client below.\n\n", displayKind(req.Kind))

	if req.ClientName != "" {
		fmt.Fprintf(&sb, "## Client\n%s\n\n", req.ClientName)
	}

	sb.WriteString("## Brief\n")
	sb.WriteString(req.Brief)
	sb.WriteString("\n\n")

	if req.Tone != "" {
		fmt.Fprintf(&sb, "## Tone\n%s\n\n", req.Tone)
	}
	if req.Audience != "" {
		fmt.Fprintf(&sb, "## Audience\n%s\n\n", req.Audience)
	}

	sb.WriteString("## Editorial angle\n")
	sb.WriteString(a.Instruction)
	sb.WriteString("\n\n")

	writeComplianceGuidance(&sb, req.ExtraRules)

	sb.WriteString("## Output shape\n")
	sb.WriteString(variantSchemaJSON)
	sb.WriteString("\n")

	return sb.String()
}

// writeComplianceGuidance tells the model up front what the checker will
// penalize afterwards.
func writeComplianceGuidance(sb *strings.Builder, extra compliance.RuleSet) {
	rules := compliance.DefaultRuleSet().Merge(extra)

	sb.WriteString("## Compliance\n")
	sb.WriteString("Never use these phrases (any casing):\n")
	for _, p := range rules.BannedPhrases {
		fmt.Fprintf(sb, "- %s\n", p)
	}
	if len(extra.DisclaimerMarkers) > 0 {
		sb.WriteString("The disclaimer section must contain:\n")
		for _, m := range extra.DisclaimerMarkers {
			fmt.Fprintf(sb, "- %s\n", m)
		}
	}
	sb.WriteString("\n")
}

func buildTitlePrompt(req TitleRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Current title\n%s\n\n", req.Title)
	if req.Kind != "" {
		fmt.Fprintf(&sb, "## Content kind\n%s\n\n", displayKind(req.Kind))
	}
	if req.Brief != "" {
		fmt.Fprintf(&sb, "## What the piece is about\n%s\n\n", req.Brief)
	}
	sb.WriteString("Rewrite the title.\n")

	return sb.String()
}

func displayKind(kind string) string {
	if kind == "" {
		return "press release"
	}
	return strings.ReplaceAll(kind, "_", " ")
}

// variantPayload is the shape requested from the model. Whatever comes
// back still goes through content.Decode, so aliased or malformed keys
// degrade gracefully instead of failing the call.
type variantPayload struct {
	Headline    string         `json:"headline" jsonschema_description:"The headline of the piece"`
	Subheadline string         `json:"subheadline" jsonschema_description:"One-line deck under the headline"`
	Body        []string       `json:"body" jsonschema_description:"Body paragraphs, plain text, no markup"`
	Quotes      []quotePayload `json:"quotes" jsonschema_description:"Attributed quotes, at most two"`
	Boilerplate string         `json:"boilerplate" jsonschema_description:"About-the-company paragraph"`
	Disclaimer  string         `json:"disclaimer" jsonschema_description:"Safety disclaimer section, always required"`
}

type quotePayload struct {
	Text        string `json:"text" jsonschema_description:"The quote itself"`
	Attribution string `json:"attribution" jsonschema_description:"Role of the speaker, e.g. Chief Medical Officer"`
}

type titlePayload struct {
	Title string `json:"title" jsonschema_description:"The improved title"`
}

var (
	variantSchema = llm.GenerateSchema[variantPayload]()
	titleSchema   = llm.GenerateSchema[titlePayload]()

	variantSchemaJSON = func() string {
		b, _ := json.MarshalIndent(variantSchema, "", "  ")
		return string(b)
	}()
)
