package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/generate"
	"inkwire.app/newsroom/internal/http/handler"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
)

var _ = Describe("GenerateHandler", func() {
	var (
		router  *gin.Engine
		gen     *mockGenerateService
		clients *mockClientService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		gen = &mockGenerateService{}
		clients = &mockClientService{}
		h := handler.NewGenerateHandler(gen, clients)
		router.POST("/generate/variants", h.Variants)
		router.POST("/generate/title", h.Title)
		router.POST("/compliance/check", h.ComplianceCheck)
	})

	post := func(path string, payload map[string]interface{}) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Variants", func() {
		It("wraps the result in the success envelope", func() {
			gen.generateVariantsFn = func(_ context.Context, req generate.VariantRequest) (*generate.VariantResult, error) {
				Expect(req.Brief).To(Equal("New sleep aid hits shelves"))
				return &generate.VariantResult{
					Variants:         []generate.Variant{{Angle: "informative"}},
					PromptTokens:     120,
					CompletionTokens: 800,
				}, nil
			}

			w := post("/generate/variants", map[string]interface{}{
				"kind":  "press_release",
				"brief": "New sleep aid hits shelves",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Success bool `json:"success"`
				Data    struct {
					Variants     []map[string]interface{} `json:"variants"`
					PromptTokens int                      `json:"prompt_tokens"`
				} `json:"data"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Data.Variants).To(HaveLen(1))
			Expect(resp.Data.PromptTokens).To(Equal(120))
		})

		It("loads the client's rules when a client is named", func() {
			clients.getFn = func(_ context.Context, id int64) (*model.Client, error) {
				return &model.Client{ID: id, Name: "Helix Health"}, nil
			}
			clients.complianceRulesFn = func(_ context.Context, _ int64) (compliance.RuleSet, error) {
				return compliance.RuleSet{BannedPhrases: []string{"wonder drug"}}, nil
			}
			gen.generateVariantsFn = func(_ context.Context, req generate.VariantRequest) (*generate.VariantResult, error) {
				Expect(req.ClientName).To(Equal("Helix Health"))
				Expect(req.ExtraRules.BannedPhrases).To(ContainElement("wonder drug"))
				return &generate.VariantResult{}, nil
			}

			w := post("/generate/variants", map[string]interface{}{
				"client_id": 3,
				"kind":      "press_release",
				"brief":     "New sleep aid hits shelves",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("maps an unknown client to the not_found envelope", func() {
			clients.getFn = func(_ context.Context, _ int64) (*model.Client, error) {
				return nil, service.ErrClientNotFound
			}

			w := post("/generate/variants", map[string]interface{}{
				"client_id": 999,
				"kind":      "press_release",
				"brief":     "New sleep aid hits shelves",
			})

			Expect(w.Code).To(Equal(http.StatusNotFound))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeFalse())
			errObj := resp["error"].(map[string]interface{})
			Expect(errObj["code"]).To(Equal("not_found"))
		})

		It("maps rate limiting to 429", func() {
			gen.generateVariantsFn = func(_ context.Context, _ generate.VariantRequest) (*generate.VariantResult, error) {
				return nil, fmt.Errorf("informative variant: %w", generate.ErrRateLimited)
			}

			w := post("/generate/variants", map[string]interface{}{
				"kind":  "press_release",
				"brief": "New sleep aid hits shelves",
			})

			Expect(w.Code).To(Equal(http.StatusTooManyRequests))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			errObj := resp["error"].(map[string]interface{})
			Expect(errObj["code"]).To(Equal("rate_limited"))
		})

		It("maps provider failures to 502", func() {
			gen.generateVariantsFn = func(_ context.Context, _ generate.VariantRequest) (*generate.VariantResult, error) {
				return nil, generate.ErrProvider
			}

			w := post("/generate/variants", map[string]interface{}{
				"kind":  "press_release",
				"brief": "New sleep aid hits shelves",
			})

			Expect(w.Code).To(Equal(http.StatusBadGateway))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			errObj := resp["error"].(map[string]interface{})
			Expect(errObj["code"]).To(Equal("provider_error"))
		})

		It("rejects a blank brief before calling the provider", func() {
			called := false
			gen.generateVariantsFn = func(_ context.Context, _ generate.VariantRequest) (*generate.VariantResult, error) {
				called = true
				return &generate.VariantResult{}, nil
			}

			w := post("/generate/variants", map[string]interface{}{
				"kind":  "press_release",
				"brief": "   ",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(called).To(BeFalse())
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			errObj := resp["error"].(map[string]interface{})
			Expect(errObj["code"]).To(Equal("invalid_request"))
		})
	})

	Describe("Title", func() {
		It("returns the enhanced title in the envelope", func() {
			gen.enhanceTitleFn = func(_ context.Context, req generate.TitleRequest) (*generate.TitleResult, error) {
				Expect(req.Title).To(Equal("sleep aid launch"))
				return &generate.TitleResult{Title: "Restful Nights Ahead: Sleep Aid Launches Nationwide"}, nil
			}

			w := post("/generate/title", map[string]interface{}{"title": "sleep aid launch"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Success bool `json:"success"`
				Data    struct {
					Title string `json:"title"`
				} `json:"data"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Data.Title).To(ContainSubstring("Restful"))
		})

		It("requires a title", func() {
			w := post("/generate/title", map[string]interface{}{"brief": "something"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("ComplianceCheck", func() {
		It("scores raw text against the default rules", func() {
			w := post("/compliance/check", map[string]interface{}{
				"text": "Experience instant relief today. Consult your doctor before use.",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Success bool `json:"success"`
				Data    struct {
					Score           int  `json:"score"`
					DisclaimerFound bool `json:"disclaimer_found"`
				} `json:"data"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Success).To(BeTrue())
			// one banned phrase, disclaimer marker present
			Expect(resp.Data.Score).To(Equal(90))
			Expect(resp.Data.DisclaimerFound).To(BeTrue())
		})

		It("scores a structured document", func() {
			w := post("/compliance/check", map[string]interface{}{
				"document": map[string]interface{}{
					"headline": "Guaranteed results for everyone",
					"body":     "A bold claim.",
				},
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Data struct {
					Score int `json:"score"`
				} `json:"data"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			// one banned phrase and no disclaimer
			Expect(resp.Data.Score).To(Equal(65))
		})

		It("uses the client's rule set when client_id is given", func() {
			clients.complianceRulesFn = func(_ context.Context, clientID int64) (compliance.RuleSet, error) {
				Expect(clientID).To(Equal(int64(3)))
				return compliance.RuleSet{
					BannedPhrases:     []string{"quantum healing"},
					DisclaimerMarkers: []string{"side effects may include"},
				}, nil
			}

			w := post("/compliance/check", map[string]interface{}{
				"client_id": 3,
				"text":      "Our quantum healing mattress. Side effects may include drowsiness.",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Data struct {
					Score   int `json:"score"`
					Matches []struct {
						Phrase string `json:"phrase"`
					} `json:"matches"`
				} `json:"data"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Data.Score).To(Equal(90))
			Expect(resp.Data.Matches).To(HaveLen(1))
			Expect(resp.Data.Matches[0].Phrase).To(Equal("quantum healing"))
		})

		It("requires text or a document", func() {
			w := post("/compliance/check", map[string]interface{}{"client_id": 3})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			errObj := resp["error"].(map[string]interface{})
			Expect(errObj["code"]).To(Equal("invalid_request"))
		})

		It("rejects a malformed document", func() {
			body := []byte(`{"document": "not an object"}`)
			req := httptest.NewRequest(http.MethodPost, "/compliance/check", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
