package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
)

const upstreamProbeTimeout = 15 * time.Second

type ConnectorsHandler struct {
	registry *connectors.Registry
}

func NewConnectorsHandler(registry *connectors.Registry) *ConnectorsHandler {
	return &ConnectorsHandler{registry: registry}
}

func (h *ConnectorsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.registry.List()})
}

// Health probes every registered site root. Any failing probe degrades the
// whole response to 503 and reports the first failure.
func (h *ConnectorsHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), upstreamProbeTimeout)
	defer cancel()

	items := h.registry.Health(ctx)
	for _, item := range items {
		if !item.Healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  item.Error,
				"items":  items,
			})
		}
	}

	return c.JSON(fiber.Map{"status": "ok", "items": items})
}
