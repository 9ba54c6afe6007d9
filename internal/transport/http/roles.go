package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weitseng/rolechat/internal/domain"
)

// ListRoles returns the role catalog.
// GET /v1/roles
func (h *Handler) ListRoles(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"roles": h.service.ListRoles(),
	})
}

// SetRole assigns a registered role to a session.
// PUT /v1/sessions/:session_id/role
func (h *Handler) SetRole(c echo.Context) error {
	sessionID := c.Param("session_id")

	var req domain.SetRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Role == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "role must not be empty"})
	}

	result, err := h.service.SetRole(sessionID, req.Role)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// DefineRole registers a custom role.
// POST /v1/roles
func (h *Handler) DefineRole(c echo.Context) error {
	var req domain.DefineRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.service.DefineRole(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
