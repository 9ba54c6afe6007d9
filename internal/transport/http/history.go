package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetHistory returns the live history of a session.
// GET /v1/sessions/:session_id/history
func (h *Handler) GetHistory(c echo.Context) error {
	sessionID := c.Param("session_id")

	result, err := h.service.GetHistory(sessionID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ClearHistory empties the history of a session.
// DELETE /v1/sessions/:session_id/history
func (h *Handler) ClearHistory(c echo.Context) error {
	sessionID := c.Param("session_id")

	if err := h.service.ClearHistory(sessionID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "對話已重置！",
	})
}

// GetTranscript returns the archived transcript of a session.
// GET /v1/sessions/:session_id/transcript
func (h *Handler) GetTranscript(c echo.Context) error {
	sessionID := c.Param("session_id")
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	entries, err := h.service.GetTranscript(c.Request().Context(), sessionID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": entries,
	})
}
