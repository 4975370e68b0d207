package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type endpoint struct {
	Name       string            `json:"name"`
	Path       string            `json:"path"`
	Method     string            `json:"method"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Example    string            `json:"example"`
}

type HomeHandler struct {
	appName string
}

func NewHomeHandler(appName string) *HomeHandler {
	return &HomeHandler{appName: appName}
}

func (h *HomeHandler) Index(c *fiber.Ctx) error {
	base := c.BaseURL()
	return c.JSON(fiber.Map{
		"api_name":    h.appName,
		"description": "API service for AnimeXin website data",
		"endpoints": []endpoint{
			{
				Name:       "Search Donghua",
				Path:       "/search",
				Method:     fiber.MethodGet,
				Parameters: map[string]string{"query": "Search term (required)"},
				Example:    base + "/search?query=Martial+Universe",
			},
			{
				Name:       "Get Donghua/Movie Info",
				Path:       "/donghua/info",
				Method:     fiber.MethodGet,
				Parameters: map[string]string{"slug": "Donghua or movie slug (required)"},
				Example:    base + "/donghua/info?slug=some-slug",
			},
			{
				Name:       "Get Episode Videos",
				Path:       "/episode/videos",
				Method:     fiber.MethodGet,
				Parameters: map[string]string{"ep_slug": "Episode slug (required)"},
				Example:    base + "/episode/videos?ep_slug=some-episode-slug",
			},
			{
				Name:    "Upstream Health",
				Path:    "/health/upstream",
				Method:  fiber.MethodGet,
				Example: base + "/health/upstream",
			},
		},
	})
}
