// Package handler provides the public HTTP surface of the chat relay.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weitseng/rolechat/internal/domain"
	"github.com/weitseng/rolechat/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the chat API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	e.POST("/chat", h.Chat)

	e.GET("/v1/roles", h.ListRoles)
	e.POST("/v1/roles", h.DefineRole)
	e.PUT("/v1/sessions/:session_id/role", h.SetRole)
	e.GET("/v1/sessions/:session_id/history", h.GetHistory)
	e.DELETE("/v1/sessions/:session_id/history", h.ClearHistory)
	e.GET("/v1/sessions/:session_id/transcript", h.GetTranscript)
}

// Root describes the service.
func (h *Handler) Root(c echo.Context) error {
	roleNames := []string{}
	for _, role := range h.service.ListRoles() {
		roleNames = append(roleNames, role.Name)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "智能聊天機器人 API",
		"version":         "2.0.0",
		"available_roles": roleNames,
		"endpoints": map[string]string{
			"callback": "/callback - Webhook 端點",
			"chat":     "/chat - 一般聊天 API（測試用）",
		},
	})
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// errorJSON maps domain errors onto status codes with a structured
// payload. Completion causes never leak verbatim: only the user-safe
// message crosses the process boundary.
func errorJSON(c echo.Context, err error) error {
	var completionErr *domain.CompletionError
	switch {
	case errors.As(err, &completionErr):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": completionErr.Message})
	case errors.Is(err, domain.ErrRoleNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrPolicyBlocked):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}
