package generate_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inkwire.app/newsroom/common/llm"
	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/content"
	"inkwire.app/newsroom/internal/generate"
)

// mockLLMClient implements llm.Client. Chat may be called from several
// goroutines at once, so the counter is guarded.
type mockLLMClient struct {
	mu        sync.Mutex
	chatFn    func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
	callCount int
}

func (m *mockLLMClient) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.chatFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req, result)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockLLMClient) Model() string {
	return "test-model"
}

func (m *mockLLMClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// fillRaw writes a canned completion into the result the way a real
// client would.
func fillRaw(result any, completion string) {
	raw, ok := result.(*json.RawMessage)
	if !ok {
		panic("unexpected result type")
	}
	*raw = json.RawMessage(completion)
}

var _ = Describe("Service", func() {
	var (
		svc        generate.Service
		variantLLM *mockLLMClient
		titleLLM   *mockLLMClient
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		variantLLM = &mockLLMClient{}
		titleLLM = &mockLLMClient{}
		svc = generate.NewService(variantLLM, titleLLM)
	})

	Describe("GenerateVariants", func() {
		var req generate.VariantRequest

		BeforeEach(func() {
			req = generate.VariantRequest{
				ClientName: "Acme Pharma",
				Kind:       "press_release",
				Brief:      "Acme received approval for Zenophil in adult patients.",
				Tone:       "measured",
				Audience:   "healthcare trade press",
			}
		})

		It("returns three variants from three parallel calls", func() {
			variantLLM.chatFn = func(_ context.Context, chatReq llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, `{
					"headline": "Acme Receives Approval for Zenophil",
					"body": ["Paragraph one.", "Paragraph two."],
					"quotes": [{"text": "An important day.", "attribution": "Chief Medical Officer"}],
					"disclaimer": "Important Safety Information: see full prescribing information."
				}`)
				return &llm.Response{PromptTokens: 200, CompletionTokens: 150}, nil
			}

			res, err := svc.GenerateVariants(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Variants).To(HaveLen(3))
			Expect(variantLLM.calls()).To(Equal(3))

			angles := make([]string, 0, 3)
			for _, v := range res.Variants {
				angles = append(angles, v.Angle)
				Expect(v.Document.Headline).To(Equal("Acme Receives Approval for Zenophil"))
				Expect(v.HTML).To(ContainSubstring("<h1>Acme Receives Approval for Zenophil</h1>"))
				Expect(v.Compliance.Score).To(Equal(100))
				Expect(v.Compliance.DisclaimerFound).To(BeTrue())
			}
			Expect(angles).To(ConsistOf("announcement", "human_impact", "expert_voice"))

			Expect(res.PromptTokens).To(Equal(600))
			Expect(res.CompletionTokens).To(Equal(450))
		})

		It("normalizes aliased keys in the response", func() {
			variantLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, `{
					"title": "Aliased Keys Everywhere",
					"paragraphs": ["Body."],
					"quotations": [{"quote": "Works.", "author": "CEO"}],
					"safety_information": "Important Safety Information."
				}`)
				return &llm.Response{}, nil
			}

			res, err := svc.GenerateVariants(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			v := res.Variants[0]
			Expect(v.Document.Headline).To(Equal("Aliased Keys Everywhere"))
			Expect(v.Document.Body).To(Equal([]string{"Body."}))
			Expect(v.Document.Quotes).To(ConsistOf(content.Quote{Text: "Works.", Attribution: "CEO"}))
			Expect(v.Document.Disclaimer).To(Equal("Important Safety Information."))
		})

		It("strips markdown fences before decoding", func() {
			variantLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, "```json\n{\"headline\": \"Fenced\", \"disclaimer\": \"ISI.\"}\n```")
				return &llm.Response{}, nil
			}

			res, err := svc.GenerateVariants(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Variants[0].Document.Headline).To(Equal("Fenced"))
		})

		It("scores variants against merged client rules", func() {
			req.ExtraRules = compliance.RuleSet{BannedPhrases: []string{"zenophil cures"}}

			variantLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, `{
					"headline": "Zenophil cures everything",
					"body": ["A miracle cure."],
					"disclaimer": "Important Safety Information."
				}`)
				return &llm.Response{}, nil
			}

			res, err := svc.GenerateVariants(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			v := res.Variants[0]
			Expect(v.Compliance.Score).To(Equal(80))
			Expect(v.Compliance.Matches).To(ConsistOf(
				compliance.Match{Phrase: "miracle cure", Count: 1},
				compliance.Match{Phrase: "zenophil cures", Count: 1},
			))
		})

		It("fails the whole operation when any call fails", func() {
			variantLLM.chatFn = func(_ context.Context, chatReq llm.Request, result any) (*llm.Response, error) {
				return nil, &anthropic.Error{StatusCode: 400}
			}

			_, err := svc.GenerateVariants(ctx, req)
			Expect(err).To(MatchError(generate.ErrProvider))
			Expect(variantLLM.calls()).To(Equal(3))
		})

		It("maps provider 429s to ErrRateLimited", func() {
			variantLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				return nil, &anthropic.Error{StatusCode: 429}
			}

			_, err := svc.GenerateVariants(ctx, req)
			Expect(err).To(MatchError(generate.ErrRateLimited))
		})

		It("fails on an unusable completion", func() {
			variantLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, `{"word_count": 10}`)
				return &llm.Response{}, nil
			}

			_, err := svc.GenerateVariants(ctx, req)
			Expect(err).To(MatchError(generate.ErrBadCompletion))
		})

		It("requires a brief", func() {
			req.Brief = "   "
			_, err := svc.GenerateVariants(ctx, req)
			Expect(err).To(MatchError(generate.ErrBadCompletion))
			Expect(variantLLM.calls()).To(Equal(0))
		})

		It("embeds the output schema in the prompt", func() {
			var prompts []string
			var mu sync.Mutex
			variantLLM.chatFn = func(_ context.Context, chatReq llm.Request, result any) (*llm.Response, error) {
				mu.Lock()
				prompts = append(prompts, chatReq.UserPrompt)
				mu.Unlock()
				fillRaw(result, `{"headline": "H", "disclaimer": "ISI."}`)
				return &llm.Response{}, nil
			}

			_, err := svc.GenerateVariants(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			for _, p := range prompts {
				Expect(p).To(ContainSubstring(`"headline"`))
				Expect(p).To(ContainSubstring("Never use these phrases"))
			}
		})
	})

	Describe("EnhanceTitle", func() {
		It("returns the improved title", func() {
			titleLLM.chatFn = func(_ context.Context, chatReq llm.Request, result any) (*llm.Response, error) {
				Expect(chatReq.UserPrompt).To(ContainSubstring("Acme announces thing"))
				fillRaw(result, `{"title": "Acme Brings Zenophil to Market"}`)
				return &llm.Response{PromptTokens: 50, CompletionTokens: 10}, nil
			}

			res, err := svc.EnhanceTitle(ctx, generate.TitleRequest{Title: "Acme announces thing"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Title).To(Equal("Acme Brings Zenophil to Market"))
			Expect(res.PromptTokens).To(Equal(50))
			Expect(titleLLM.calls()).To(Equal(1))
		})

		It("falls back to the first non-empty line of raw text", func() {
			titleLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, "```\n\nA Stronger Headline\nsecond line ignored\n```")
				return &llm.Response{}, nil
			}

			res, err := svc.EnhanceTitle(ctx, generate.TitleRequest{Title: "old"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Title).To(Equal("A Stronger Headline"))
		})

		It("accepts a bare JSON string response", func() {
			titleLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, `"Quoted Title"`)
				return &llm.Response{}, nil
			}

			res, err := svc.EnhanceTitle(ctx, generate.TitleRequest{Title: "old"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Title).To(Equal("Quoted Title"))
		})

		It("retries a transient failure once", func() {
			titleLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				if titleLLM.calls() == 1 {
					return nil, &anthropic.Error{StatusCode: 503}
				}
				fillRaw(result, `{"title": "Recovered"}`)
				return &llm.Response{}, nil
			}

			res, err := svc.EnhanceTitle(ctx, generate.TitleRequest{Title: "old"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Title).To(Equal("Recovered"))
			Expect(titleLLM.calls()).To(Equal(2))
		})

		It("does not retry a non-retryable failure", func() {
			titleLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				return nil, &anthropic.Error{StatusCode: 401}
			}

			_, err := svc.EnhanceTitle(ctx, generate.TitleRequest{Title: "old"})
			Expect(err).To(MatchError(generate.ErrProvider))
			Expect(titleLLM.calls()).To(Equal(1))
		})

		It("fails on an empty response", func() {
			titleLLM.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				fillRaw(result, `{"title": "  "}`)
				return &llm.Response{}, nil
			}

			_, err := svc.EnhanceTitle(ctx, generate.TitleRequest{Title: "old"})
			Expect(err).To(MatchError(generate.ErrBadCompletion))
		})
	})
})
