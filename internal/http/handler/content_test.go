package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inkwire.app/newsroom/internal/http/handler"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
)

var _ = Describe("ContentHandler", func() {
	var (
		router *gin.Engine
		svc    *mockContentService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockContentService{}
		h := handler.NewContentHandler(svc)
		router.POST("/projects/:id/content", h.CreateItem)
		router.GET("/content/:id", h.Get)
		router.POST("/content/:id/versions", h.SaveVersion)
		router.POST("/content/:id/submit", h.Submit)
		router.POST("/content/:id/review", h.Review)
	})

	Describe("CreateItem", func() {
		It("creates an item under the project from the path", func() {
			svc.createItemFn = func(_ context.Context, params service.CreateItemParams) (*model.ContentItem, error) {
				Expect(params.ProjectID).To(Equal(int64(10)))
				Expect(params.Kind).To(Equal(model.ContentKindPressRelease))
				return &model.ContentItem{ID: 100, ProjectID: params.ProjectID, Title: params.Title, Kind: params.Kind, Status: model.ContentStatusDraft}, nil
			}

			body, _ := json.Marshal(map[string]interface{}{
				"title": "Launch press release",
				"kind":  "press_release",
			})
			req := httptest.NewRequest(http.MethodPost, "/projects/10/content", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("draft"))
		})

		It("rejects an unknown kind", func() {
			svc.createItemFn = func(_ context.Context, _ service.CreateItemParams) (*model.ContentItem, error) {
				return nil, service.ErrInvalidKind
			}

			body, _ := json.Marshal(map[string]interface{}{
				"title": "Whitepaper",
				"kind":  "whitepaper",
			})
			req := httptest.NewRequest(http.MethodPost, "/projects/10/content", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Get", func() {
		It("returns the item with a null version before any save", func() {
			svc.getWithVersionFn = func(_ context.Context, id int64) (*model.ContentItem, *model.ContentVersion, error) {
				return &model.ContentItem{ID: id, Status: model.ContentStatusDraft}, nil, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/content/100", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]json.RawMessage
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(string(resp["current_version"])).To(Equal("null"))
		})

		It("returns 404 for a missing item", func() {
			svc.getWithVersionFn = func(_ context.Context, _ int64) (*model.ContentItem, *model.ContentVersion, error) {
				return nil, nil, service.ErrContentNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/content/404", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("SaveVersion", func() {
		It("saves a document and returns the scored version", func() {
			svc.saveVersionFn = func(_ context.Context, params service.SaveVersionParams) (*model.ContentVersion, error) {
				Expect(params.ContentItemID).To(Equal(int64(100)))
				score := int32(65)
				return &model.ContentVersion{ID: 900, ContentItemID: params.ContentItemID, VersionNumber: 3, ComplianceScore: &score}, nil
			}

			body, _ := json.Marshal(map[string]interface{}{
				"document": map[string]interface{}{"headline": "Hello", "body": "World"},
			})
			req := httptest.NewRequest(http.MethodPost, "/content/100/versions", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["compliance_score"]).To(BeEquivalentTo(65))
		})

		It("rejects a document with no usable content", func() {
			svc.saveVersionFn = func(_ context.Context, _ service.SaveVersionParams) (*model.ContentVersion, error) {
				return nil, service.ErrInvalidDocument
			}

			body, _ := json.Marshal(map[string]interface{}{
				"document": map[string]interface{}{"internal_notes": "not content"},
			})
			req := httptest.NewRequest(http.MethodPost, "/content/100/versions", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("requires a document field", func() {
			req := httptest.NewRequest(http.MethodPost, "/content/100/versions", bytes.NewBufferString(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Submit", func() {
		It("submits with an empty body", func() {
			svc.submitFn = func(_ context.Context, itemID int64, actorID *int64) (*model.ContentItem, error) {
				Expect(actorID).To(BeNil())
				return &model.ContentItem{ID: itemID, Status: model.ContentStatusInReview}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/content/100/submit", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("answers 409 when no version has been saved", func() {
			svc.submitFn = func(_ context.Context, _ int64, _ *int64) (*model.ContentItem, error) {
				return nil, service.ErrNoVersion
			}

			req := httptest.NewRequest(http.MethodPost, "/content/100/submit", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Review", func() {
		It("passes the approve decision through", func() {
			svc.reviewFn = func(_ context.Context, params service.ReviewParams) (*model.ContentItem, error) {
				Expect(params.Approve).To(BeFalse())
				return &model.ContentItem{ID: params.ContentItemID, Status: model.ContentStatusNeedsChanges}, nil
			}

			body, _ := json.Marshal(map[string]interface{}{"approve": false, "actor_id": 7})
			req := httptest.NewRequest(http.MethodPost, "/content/100/review", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("needs_changes"))
		})

		It("requires the approve field", func() {
			req := httptest.NewRequest(http.MethodPost, "/content/100/review", bytes.NewBufferString(`{"actor_id": 7}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("answers 409 for an out-of-order review", func() {
			svc.reviewFn = func(_ context.Context, _ service.ReviewParams) (*model.ContentItem, error) {
				return nil, service.ErrInvalidTransition
			}

			body, _ := json.Marshal(map[string]interface{}{"approve": true})
			req := httptest.NewRequest(http.MethodPost, "/content/100/review", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})
})
