package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/content"
	"inkwire.app/newsroom/internal/generate"
	"inkwire.app/newsroom/internal/service"
)

// GenerateHandler serves the generation and compliance endpoints. These
// keep the {success, data} / {success, error} envelope the dashboard
// editor consumes, unlike the plain CRUD surface.
type GenerateHandler struct {
	generateService generate.Service
	clientService   service.ClientService
}

func NewGenerateHandler(generateService generate.Service, clientService service.ClientService) *GenerateHandler {
	return &GenerateHandler{
		generateService: generateService,
		clientService:   clientService,
	}
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

type generateVariantsRequest struct {
	ClientID   *int64 `json:"client_id,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	Kind       string `json:"kind" binding:"required"`
	Brief      string `json:"brief" binding:"required"`
	Tone       string `json:"tone,omitempty"`
	Audience   string `json:"audience,omitempty"`
}

// Variants answers POST /generate/variants. When a client is named its
// banned phrases and disclaimer ride along so every variant is scored
// against the rules it will eventually be reviewed under.
func (h *GenerateHandler) Variants(c *gin.Context) {
	ctx := c.Request.Context()

	var req generateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "kind and brief are required")
		return
	}
	if strings.TrimSpace(req.Brief) == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", "brief must not be blank")
		return
	}

	genReq := generate.VariantRequest{
		ClientName: req.ClientName,
		Kind:       req.Kind,
		Brief:      req.Brief,
		Tone:       req.Tone,
		Audience:   req.Audience,
	}

	if req.ClientID != nil {
		client, err := h.clientService.Get(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, service.ErrClientNotFound) {
				respondError(c, http.StatusNotFound, "not_found", "client not found")
				return
			}
			slog.ErrorContext(ctx, "failed to load client for generation", "error", err, "client_id", *req.ClientID)
			respondError(c, http.StatusInternalServerError, "internal_error", "failed to load client")
			return
		}
		if genReq.ClientName == "" {
			genReq.ClientName = client.Name
		}

		rules, err := h.clientService.ComplianceRules(ctx, *req.ClientID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load compliance rules", "error", err, "client_id", *req.ClientID)
			respondError(c, http.StatusInternalServerError, "internal_error", "failed to load compliance rules")
			return
		}
		genReq.ExtraRules = rules
	}

	result, err := h.generateService.GenerateVariants(ctx, genReq)
	if err != nil {
		h.respondGenerateError(c, err, "variant generation failed")
		return
	}

	respondData(c, result)
}

type enhanceTitleRequest struct {
	Title string `json:"title" binding:"required"`
	Kind  string `json:"kind,omitempty"`
	Brief string `json:"brief,omitempty"`
}

// Title answers POST /generate/title.
func (h *GenerateHandler) Title(c *gin.Context) {
	ctx := c.Request.Context()

	var req enhanceTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", "title must not be blank")
		return
	}

	result, err := h.generateService.EnhanceTitle(ctx, generate.TitleRequest{
		Title: req.Title,
		Kind:  req.Kind,
		Brief: req.Brief,
	})
	if err != nil {
		h.respondGenerateError(c, err, "title enhancement failed")
		return
	}

	respondData(c, result)
}

func (h *GenerateHandler) respondGenerateError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, generate.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, "rate_limited", "provider rate limit hit, retry shortly")
	case errors.Is(err, generate.ErrProvider), errors.Is(err, generate.ErrBadCompletion):
		respondError(c, http.StatusBadGateway, "provider_error", message)
	default:
		slog.ErrorContext(c.Request.Context(), message, "error", err)
		respondError(c, http.StatusInternalServerError, "internal_error", message)
	}
}

type complianceCheckRequest struct {
	ClientID *int64          `json:"client_id,omitempty"`
	Text     string          `json:"text,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
}

// ComplianceCheck answers POST /compliance/check. Accepts either raw
// text or a structured document; a client_id swaps in that client's
// effective rule set.
func (h *GenerateHandler) ComplianceCheck(c *gin.Context) {
	ctx := c.Request.Context()

	var req complianceCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if strings.TrimSpace(req.Text) == "" && len(req.Document) == 0 {
		respondError(c, http.StatusBadRequest, "invalid_request", "text or document is required")
		return
	}

	rules := compliance.DefaultRuleSet()
	if req.ClientID != nil {
		clientRules, err := h.clientService.ComplianceRules(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, service.ErrClientNotFound) {
				respondError(c, http.StatusNotFound, "not_found", "client not found")
				return
			}
			slog.ErrorContext(ctx, "failed to load compliance rules", "error", err, "client_id", *req.ClientID)
			respondError(c, http.StatusInternalServerError, "internal_error", "failed to load compliance rules")
			return
		}
		rules = clientRules
	}

	checker, err := compliance.NewChecker(rules)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compile compliance rules", "error", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to compile compliance rules")
		return
	}

	var result compliance.Result
	if len(req.Document) > 0 {
		doc, err := content.Decode(req.Document)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_request", "document could not be parsed")
			return
		}
		result = checker.CheckDocument(doc)
	} else {
		result = checker.CheckText(req.Text)
	}

	respondData(c, result)
}
