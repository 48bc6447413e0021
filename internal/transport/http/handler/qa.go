package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studymate/internal/app"
	"studymate/internal/transport/http/response"
)

type QAHandler struct {
	qaService *app.QAService
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func NewQAHandler(qaService *app.QAService) *QAHandler {
	return &QAHandler{qaService: qaService}
}

// Ask answers a question grounded in the user's uploaded paragraphs.
func (h *QAHandler) Ask(c *gin.Context) {
	username, ok := getUsernameFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.qaService.Ask(c.Request.Context(), username, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNoContent):
			response.Error(c, http.StatusNotFound, response.CodeNoContent, err.Error())
		case errors.Is(err, app.ErrModel):
			response.Error(c, http.StatusBadGateway, response.CodeModelError, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}

	response.OK(c, result)
}

// Chat sends a free-form message to the model with no document grounding.
func (h *QAHandler) Chat(c *gin.Context) {
	username, ok := getUsernameFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	answer, err := h.qaService.Chat(c.Request.Context(), username, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrModel):
			response.Error(c, http.StatusBadGateway, response.CodeModelError, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "chat failed")
		}
		return
	}

	response.OK(c, gin.H{"response": answer})
}
