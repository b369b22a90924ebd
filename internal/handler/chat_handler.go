package handler

import (
	"errors"
	"net/http"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/flowbit/flowbit/analytics-api/internal/vanna"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ChatHandler proxies chat-with-data requests to the Vanna service
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest is a natural-language question about the invoice data
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatHealthResponse reports the upstream chat service status
type ChatHealthResponse struct {
	Status string `json:"status"`
}

// Ask handles POST /api/v1/chat
func (h *ChatHandler) Ask(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", []ValidationError{
			{Field: "question", Message: "Request body must be valid JSON"},
		})
	}

	resp, err := h.chatService.Ask(c.Request().Context(), req.Question)
	if err != nil {
		var upstream *vanna.UpstreamError
		switch {
		case errors.Is(err, domain.ErrQuestionRequired):
			return NewValidationError(c, "Question is required", []ValidationError{
				{Field: "question", Message: "Must not be empty"},
			})
		case errors.Is(err, domain.ErrChatUnavailable):
			return NewUnavailableError(c, "Vanna AI service is not available")
		case errors.As(err, &upstream):
			return NewUpstreamError(c, upstream.StatusCode, upstream.Detail)
		default:
			log.Error().Err(err).Msg("Chat query failed")
			return NewInternalError(c, "Failed to process chat question")
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Health handles GET /api/v1/chat/health
func (h *ChatHandler) Health(c echo.Context) error {
	if err := h.chatService.Health(c.Request().Context()); err != nil {
		if errors.Is(err, domain.ErrChatUnavailable) {
			return NewUnavailableError(c, "Vanna AI service is not available")
		}
		log.Error().Err(err).Msg("Chat health check failed")
		return NewInternalError(c, "Failed to check chat service health")
	}
	return c.JSON(http.StatusOK, ChatHealthResponse{Status: "ok"})
}
