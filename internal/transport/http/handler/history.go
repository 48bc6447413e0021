package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"studymate/internal/app"
	"studymate/internal/transport/http/response"
)

type HistoryHandler struct {
	historyService *app.HistoryService
}

type DeleteHistoryRequest struct {
	RecordID string `json:"record_id" binding:"required"`
	Source   string `json:"source" binding:"required"`
}

func NewHistoryHandler(historyService *app.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) List(c *gin.Context) {
	username, ok := getUsernameFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	entries, err := h.historyService.List(c.Request.Context(), username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list history failed")
		return
	}

	response.OK(c, entries)
}

// Delete removes one history record. The record identifier is either a
// record id, or, when it does not parse as one, a zero-based position
// into the kind's records in creation order.
func (h *HistoryHandler) Delete(c *gin.Context) {
	username, ok := getUsernameFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req DeleteHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	handle, ok := resolveRecordHandle(req.RecordID)
	if !ok {
		response.Error(c, http.StatusNotFound, response.CodeRecordNotFound, "history record not found")
		return
	}

	if err := h.historyService.Delete(c.Request.Context(), username, handle, req.Source); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, response.CodeRecordNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete history failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "history deleted successfully"})
}

// resolveRecordHandle turns the raw identifier into a tagged handle: a
// well-formed ULID addresses the record directly, a non-negative integer
// is a position, anything else cannot address a record.
func resolveRecordHandle(raw string) (app.RecordHandle, bool) {
	if _, err := ulid.Parse(raw); err == nil {
		return app.HandleByID(raw), true
	}
	if pos, err := strconv.Atoi(raw); err == nil && pos >= 0 {
		return app.HandleByPosition(pos), true
	}
	return app.RecordHandle{}, false
}
