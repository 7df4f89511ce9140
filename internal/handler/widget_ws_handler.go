package handler

import (
	"lead-engagement-be/internal/pkg/logger"
	"lead-engagement-be/internal/pkg/serverutils"
	"lead-engagement-be/internal/service"
	internalWS "lead-engagement-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type WidgetSocketHandler struct {
	service service.IWidgetService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewWidgetSocketHandler(service service.IWidgetService, hub *internalWS.Hub, log logger.ILogger) *WidgetSocketHandler {
	return &WidgetSocketHandler{service: service, hub: hub, logger: log}
}

// ServeWs upgrades GET /sessions/:id/ws. The session id is the visitor's only
// credential.
func (h *WidgetSocketHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if _, err := h.service.GetSession(c.UserContext(), sessionID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("WidgetSocketHandler", "WebSocket session started", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID)
		h.logger.Info("WidgetSocketHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}
