package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"inkwire.app/newsroom/common/llm"
	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/content"
)

var (
	ErrRateLimited   = errors.New("generation rate limited by provider")
	ErrProvider      = errors.New("generation provider error")
	ErrBadCompletion = errors.New("model returned unusable content")
)

type Service interface {
	GenerateVariants(ctx context.Context, req VariantRequest) (*VariantResult, error)
	EnhanceTitle(ctx context.Context, req TitleRequest) (*TitleResult, error)
}

type VariantRequest struct {
	ClientName string
	Kind       string
	Brief      string
	Tone       string
	Audience   string
	ExtraRules compliance.RuleSet
}

type Variant struct {
	Angle      string            `json:"angle"`
	Document   content.Document  `json:"document"`
	HTML       string            `json:"html"`
	Compliance compliance.Result `json:"compliance"`
}

type VariantResult struct {
	Variants         []Variant `json:"variants"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
}

type TitleRequest struct {
	Title string
	Kind  string
	Brief string
}

type TitleResult struct {
	Title            string `json:"title"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

type service struct {
	variantLLM llm.Client
	titleLLM   llm.Client
}

func NewService(variantLLM, titleLLM llm.Client) Service {
	return &service{
		variantLLM: variantLLM,
		titleLLM:   titleLLM,
	}
}

// GenerateVariants issues one call per editorial angle, all in parallel,
// awaited together. If any call fails the whole operation fails; there
// are no partial results.
func (s *service) GenerateVariants(ctx context.Context, req VariantRequest) (*VariantResult, error) {
	if strings.TrimSpace(req.Brief) == "" {
		return nil, fmt.Errorf("%w: brief is required", ErrBadCompletion)
	}

	checker, err := compliance.NewChecker(compliance.DefaultRuleSet().Merge(req.ExtraRules))
	if err != nil {
		return nil, fmt.Errorf("compiling compliance rules: %w", err)
	}

	type outcome struct {
		variant Variant
		usage   llm.Response
		err     error
	}

	start := time.Now()
	outcomes := make([]outcome, len(variantAngles))

	var wg sync.WaitGroup
	for i, a := range variantAngles {
		wg.Add(1)
		go func(idx int, a angle) {
			defer wg.Done()

			variant, usage, err := s.generateVariant(ctx, req, a, checker)
			outcomes[idx] = outcome{variant: variant, usage: usage, err: err}
		}(i, a)
	}
	wg.Wait()

	result := &VariantResult{Variants: make([]Variant, 0, len(outcomes))}
	for _, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		result.Variants = append(result.Variants, o.variant)
		result.PromptTokens += o.usage.PromptTokens
		result.CompletionTokens += o.usage.CompletionTokens
	}

	slog.InfoContext(ctx, "variants generated",
		"count", len(result.Variants),
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", result.PromptTokens,
		"completion_tokens", result.CompletionTokens)

	return result, nil
}

func (s *service) generateVariant(ctx context.Context, req VariantRequest, a angle, checker *compliance.Checker) (Variant, llm.Response, error) {
	raw, usage, err := s.chatWithRetry(ctx, s.variantLLM, llm.Request{
		SystemPrompt: variantSystemPrompt,
		UserPrompt:   buildVariantPrompt(req, a),
		SchemaName:   "content_variant",
		Schema:       variantSchema,
		Temperature:  llm.Temp(0.7), // Variants should differ; leave room for style
	})
	if err != nil {
		return Variant{}, usage, fmt.Errorf("%s variant: %w", a.Name, err)
	}

	doc, err := content.Decode(stripFences(raw))
	if err != nil {
		return Variant{}, usage, fmt.Errorf("%w: %s variant: %v", ErrBadCompletion, a.Name, err)
	}

	return Variant{
		Angle:      a.Name,
		Document:   doc,
		HTML:       content.ToHTML(doc),
		Compliance: checker.CheckDocument(doc),
	}, usage, nil
}

// EnhanceTitle is a single short call. A response that is not the
// expected one-key JSON falls back to the first non-empty line of text.
func (s *service) EnhanceTitle(ctx context.Context, req TitleRequest) (*TitleResult, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrBadCompletion)
	}

	raw, usage, err := s.chatWithRetry(ctx, s.titleLLM, llm.Request{
		SystemPrompt: titleSystemPrompt,
		UserPrompt:   buildTitlePrompt(req),
		SchemaName:   "enhanced_title",
		Schema:       titleSchema,
		Temperature:  llm.Temp(0.4),
	})
	if err != nil {
		return nil, fmt.Errorf("enhance title: %w", err)
	}

	title := titleFromRaw(raw)
	if title == "" {
		return nil, fmt.Errorf("%w: empty title response", ErrBadCompletion)
	}

	slog.InfoContext(ctx, "title enhanced",
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens)

	return &TitleResult{
		Title:            title,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
	}, nil
}

// chatWithRetry retries a transient failure once, then classifies the
// final error for the HTTP layer.
func (s *service) chatWithRetry(ctx context.Context, client llm.Client, req llm.Request) (json.RawMessage, llm.Response, error) {
	var raw json.RawMessage
	var resp *llm.Response
	var err error

	for attempt := 0; attempt < 2; attempt++ {
		raw = nil
		resp, err = client.Chat(ctx, req, &raw)
		if err == nil {
			return raw, *resp, nil
		}
		if !llm.IsRetryable(ctx, err) {
			break
		}
		if attempt == 0 {
			slog.WarnContext(ctx, "generation retry",
				"schema", req.SchemaName,
				"error", err)
			time.Sleep(time.Second)
		}
	}

	if llm.IsRateLimited(err) {
		return nil, llm.Response{}, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return nil, llm.Response{}, fmt.Errorf("%w: %w", ErrProvider, err)
}

// stripFences removes a markdown code fence wrapper if the model added
// one despite instructions.
func stripFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}

func titleFromRaw(raw []byte) string {
	cleaned := stripFences(raw)

	// A response that parses as the expected object is final, even when
	// the title inside is blank.
	var payload titlePayload
	if err := json.Unmarshal(cleaned, &payload); err == nil {
		return strings.TrimSpace(payload.Title)
	}

	// Maybe a bare JSON string
	var s string
	if err := json.Unmarshal(cleaned, &s); err == nil {
		cleaned = []byte(s)
	}

	for _, line := range strings.Split(string(cleaned), "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), `"`))
		if line != "" {
			return line
		}
	}
	return ""
}
