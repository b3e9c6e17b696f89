package assistant

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/apierror"
	"github.com/Sudhamsh22/voyagefix/internal/app/models"
	"github.com/Sudhamsh22/voyagefix/internal/observability/metrics"
)

// Handler serves assistant chat and destination suggestions.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Chat handles POST /api/v1/assistant/chat.
func (h *Handler) Chat(c *gin.Context) {
	var req models.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, fmt.Errorf("invalid request body: %w", models.ErrBadRequest))
		return
	}

	resp, detected, err := h.service.Chat(c.Request.Context(), req)
	h.countRequest(c, "chat", err)
	if err != nil {
		h.logger.Warn("Assistant chat failed", zap.Error(err))
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assistantResponse": resp.AssistantResponse,
		"detectedInterests": detected,
	})
}

// SuggestDestinations handles POST /api/v1/destinations/suggestions.
func (h *Handler) SuggestDestinations(c *gin.Context) {
	var req models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, fmt.Errorf("invalid request body: %w", models.ErrBadRequest))
		return
	}

	resp, err := h.service.SuggestDestinations(c.Request.Context(), req)
	h.countRequest(c, "suggestions", err)
	if err != nil {
		h.logger.Warn("Destination suggestions failed", zap.Error(err))
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) countRequest(c *gin.Context, operation string, err error) {
	m := metrics.Get()
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.AssistantRequestsTotal.Add(c.Request.Context(), 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
}
