package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/VkTheEncoder/AnimeXin-API/internal/config"
	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
	"github.com/VkTheEncoder/AnimeXin-API/internal/http/handlers"
)

func NewServer(cfg config.Config, registry *connectors.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(accessLog())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	home := handlers.NewHomeHandler(cfg.AppName)
	health := handlers.NewHealthHandler()
	catalog := handlers.NewCatalogHandler(registry)
	connectorHandlers := handlers.NewConnectorsHandler(registry)

	app.Get("/", home.Index)
	app.Get("/search", catalog.Search)
	app.Get("/donghua/info", catalog.Detail)
	app.Get("/episode/videos", catalog.Videos)
	app.Get("/health", health.Check)
	app.Get("/health/upstream", connectorHandlers.Health)
	app.Get("/v1/health", health.Check)

	v1 := app.Group("/v1")
	v1.Get("/search", catalog.Search)
	v1.Get("/donghua/info", catalog.Detail)
	v1.Get("/episode/videos", catalog.Videos)
	v1.Get("/connectors", connectorHandlers.List)
	v1.Get("/connectors/health", connectorHandlers.Health)

	return app
}
