package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brownstreet/backend/internal/application/classify"
	"github.com/brownstreet/backend/internal/infrastructure/vision"
	"github.com/brownstreet/backend/internal/interfaces/http/dto"
	"github.com/brownstreet/backend/internal/interfaces/http/middleware"
)

// ClassifyHandler handles classification and vision endpoints.
type ClassifyHandler struct {
	BaseHandler
	classifyService *classify.ClassificationService
}

// NewClassifyHandler creates a new ClassifyHandler
func NewClassifyHandler(classifyService *classify.ClassificationService) *ClassifyHandler {
	return &ClassifyHandler{classifyService: classifyService}
}

// Classify handles POST /api/v1/classify/:productNo
func (h *ClassifyHandler) Classify(c *gin.Context) {
	productNo := c.Param("productNo")
	if productNo == "" {
		h.BadRequest(c, "product number is required")
		return
	}

	result, err := h.classifyService.Classify(c.Request.Context(), productNo)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// ClassifyPending handles POST /api/v1/classify/pending
func (h *ClassifyHandler) ClassifyPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	result, err := h.classifyService.ClassifyPending(c.Request.Context(), limit)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// UnclassifiedCount handles GET /api/v1/classify/unclassified/count
func (h *ClassifyHandler) UnclassifiedCount(c *gin.Context) {
	count, err := h.classifyService.CountUnclassified(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// Analyze handles POST /api/v1/vision/analyze
func (h *ClassifyHandler) Analyze(c *gin.Context) {
	var req classify.AnalyzeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	result, err := h.classifyService.Analyze(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, vision.ErrAnalyzerUnavailable) {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeAnalyzerUnavailable, err.Error())
			return
		}
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// AnalyzeBatch handles POST /api/v1/vision/analyze/batch
func (h *ClassifyHandler) AnalyzeBatch(c *gin.Context) {
	var req classify.BatchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	result, err := h.classifyService.AnalyzeBatch(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// RecordManual handles POST /api/v1/vision/manual
func (h *ClassifyHandler) RecordManual(c *gin.Context) {
	var req classify.ManualSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	result, err := h.classifyService.RecordManual(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}
