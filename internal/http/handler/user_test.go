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

var _ = Describe("UserHandler", func() {
	var (
		router *gin.Engine
		svc    *mockUserService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockUserService{}
		h := handler.NewUserHandler(svc)
		router.POST("/users", h.Create)
		router.GET("/users/:id", h.Get)
		router.GET("/organizations/:id/users", h.ListByOrganization)
	})

	post := func(body map[string]interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns 201 when a user is created", func() {
		svc.createFn = func(_ context.Context, params service.CreateUserParams) (*model.User, error) {
			Expect(params.Role).To(Equal(model.RoleStaff))
			return &model.User{ID: 1, OrganizationID: params.OrganizationID, Name: params.Name, Email: params.Email, Role: params.Role}, nil
		}

		w := post(map[string]interface{}{
			"organization_id": 42,
			"name":            "Dana Reyes",
			"email":           "dana@meridianpr.example",
			"role":            "staff",
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["email"]).To(Equal("dana@meridianpr.example"))
	})

	It("returns 400 when the email is malformed", func() {
		w := post(map[string]interface{}{
			"organization_id": 42,
			"name":            "Dana Reyes",
			"email":           "not-an-email",
			"role":            "staff",
		})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 400 when a reviewer has no client", func() {
		svc.createFn = func(context.Context, service.CreateUserParams) (*model.User, error) {
			return nil, service.ErrClientRequired
		}

		w := post(map[string]interface{}{
			"organization_id": 42,
			"name":            "Jordan Oyelaran",
			"email":           "jordan@client.example",
			"role":            "client_reviewer",
		})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 409 when the email is already taken", func() {
		svc.createFn = func(context.Context, service.CreateUserParams) (*model.User, error) {
			return nil, service.ErrEmailTaken
		}

		w := post(map[string]interface{}{
			"organization_id": 42,
			"name":            "Dana Reyes",
			"email":           "dana@meridianpr.example",
			"role":            "staff",
		})

		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("returns 404 when the user does not exist", func() {
		svc.getFn = func(context.Context, int64) (*model.User, error) {
			return nil, service.ErrUserNotFound
		}

		req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("lists an organization's users", func() {
		svc.listByOrganizationFn = func(_ context.Context, orgID int64) ([]model.User, error) {
			Expect(orgID).To(Equal(int64(42)))
			return []model.User{{ID: 1, Role: model.RoleAdmin}, {ID: 2, Role: model.RoleStaff}}, nil
		}

		req := httptest.NewRequest(http.MethodGet, "/organizations/42/users", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string][]model.User
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["users"]).To(HaveLen(2))
	})
})
