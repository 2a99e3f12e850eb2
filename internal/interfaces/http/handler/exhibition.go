package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brownstreet/backend/internal/application/exhibition"
	"github.com/brownstreet/backend/internal/interfaces/http/middleware"
)

// ExhibitionHandler handles exhibition synchronization endpoints.
type ExhibitionHandler struct {
	BaseHandler
	syncService *exhibition.SyncService
}

// NewExhibitionHandler creates a new ExhibitionHandler
func NewExhibitionHandler(syncService *exhibition.SyncService) *ExhibitionHandler {
	return &ExhibitionHandler{syncService: syncService}
}

// Sync handles POST /api/v1/exhibition/sync. The response is a server-sent
// event stream: one data frame per progress event, terminated by a complete
// or error event, after which the stream ends.
func (h *ExhibitionHandler) Sync(c *gin.Context) {
	var req exhibition.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}
	req.SyncedBy = getOperator(c)

	events, err := h.syncService.Run(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.Internal(c, "streaming unsupported")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	flusher.Flush()

	for event := range events {
		frame, err := json.Marshal(event)
		if err != nil {
			continue
		}
		if _, err := c.Writer.Write([]byte("data: ")); err != nil {
			return
		}
		if _, err := c.Writer.Write(frame); err != nil {
			return
		}
		if _, err := c.Writer.Write([]byte("\n\n")); err != nil {
			return
		}
		flusher.Flush()
	}
}

// Logs handles GET /api/v1/exhibition/logs
func (h *ExhibitionHandler) Logs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	result, err := h.syncService.Logs(c.Request.Context(), page, pageSize)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
