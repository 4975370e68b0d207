package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
)

type CatalogHandler struct {
	registry *connectors.Registry
}

func NewCatalogHandler(registry *connectors.Registry) *CatalogHandler {
	return &CatalogHandler{registry: registry}
}

func (h *CatalogHandler) connector() (connectors.Connector, error) {
	connector, ok := h.registry.Primary()
	if !ok {
		return nil, connectors.Errorf(connectors.KindInternal, "catalog", "no source connector registered")
	}
	return connector, nil
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	connector, err := h.connector()
	if err != nil {
		return writeError(c, err)
	}

	response, err := connector.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(response)
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	connector, err := h.connector()
	if err != nil {
		return writeError(c, err)
	}

	record, err := connector.Detail(c.UserContext(), c.Query("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(record)
}

func (h *CatalogHandler) Videos(c *fiber.Ctx) error {
	connector, err := h.connector()
	if err != nil {
		return writeError(c, err)
	}

	response, err := connector.Videos(c.UserContext(), c.Query("ep_slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(response)
}
