// Package webhook adapts messaging-platform events onto the chat
// orchestrator. Each event reduces to (user id, text) -> reply text; the
// envelope and signature details stay in this package and the messaging
// adapter.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weitseng/rolechat/internal/adapter/messaging"
	"github.com/weitseng/rolechat/internal/domain"
	"github.com/weitseng/rolechat/internal/service"
)

// Replier delivers the reply for one webhook event.
type Replier interface {
	ReplyText(ctx context.Context, replyToken, text string) error
}

// Handler handles webhook deliveries.
type Handler struct {
	service       *service.Service
	replier       Replier
	channelSecret string
}

// NewHandler creates a webhook handler. An empty channelSecret disables
// signature validation (local runs).
func NewHandler(service *service.Service, replier Replier, channelSecret string) *Handler {
	return &Handler{
		service:       service,
		replier:       replier,
		channelSecret: channelSecret,
	}
}

// RegisterRoutes registers the webhook routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/callback", h.Callback)
	// Alias kept for deployments configured with the older path.
	e.POST("/webhook", h.Callback)
}

// Callback processes one webhook delivery.
// POST /callback
func (h *Handler) Callback(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read body"})
	}

	if h.channelSecret != "" {
		signature := c.Request().Header.Get("X-Line-Signature")
		if !messaging.ValidateSignature(h.channelSecret, body, signature) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid signature"})
		}
	}

	var envelope messaging.WebhookBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid webhook body"})
	}

	ctx := c.Request().Context()
	for _, event := range envelope.Events {
		h.handleEvent(ctx, event)
	}
	return c.String(http.StatusOK, "OK")
}

// handleEvent answers one event. Failures are logged, never surfaced to
// the platform: the delivery as a whole already succeeded.
func (h *Handler) handleEvent(ctx context.Context, event messaging.Event) {
	if event.Type != "message" || event.Message == nil || event.ReplyToken == "" {
		return
	}

	var reply string
	switch event.Message.Type {
	case "text":
		var err error
		reply, err = h.service.HandleEvent(ctx, event.Source.UserID, event.Message.Text)
		if err != nil {
			var completionErr *domain.CompletionError
			if errors.As(err, &completionErr) {
				reply = completionErr.Message
			} else {
				log.Printf("ERROR: webhook event for user %s failed: %v", event.Source.UserID, err)
				reply = domain.NewCompletionError(nil).Message
			}
		}
	case "sticker":
		reply = service.ReplySticker
	case "image":
		reply = service.ReplyImage
	case "video":
		reply = service.ReplyVideo
	default:
		return
	}

	if err := h.replier.ReplyText(ctx, event.ReplyToken, reply); err != nil {
		log.Printf("WARN: failed to deliver reply for user %s: %v", event.Source.UserID, err)
	}
}
