package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
)

var kindStatus = map[connectors.Kind]int{
	connectors.KindInvalidInput:         fiber.StatusBadRequest,
	connectors.KindNotFound:             fiber.StatusNotFound,
	connectors.KindNoServersFound:       fiber.StatusNotFound,
	connectors.KindUnreachable:          fiber.StatusBadGateway,
	connectors.KindMissingTitle:         fiber.StatusInternalServerError,
	connectors.KindMissingEpisodeSource: fiber.StatusInternalServerError,
	connectors.KindInternal:             fiber.StatusInternalServerError,
}

func StatusForKind(kind connectors.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	kind := connectors.KindOf(err)
	status := StatusForKind(kind)

	message := "internal error"
	var classified *connectors.Error
	if errors.As(err, &classified) && classified.Err != nil {
		message = classified.Err.Error()
	}

	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "kind", kind, "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": message, "kind": kind})
}

// ErrorHandler renders errors that escape a handler, including recovered
// panics and unknown routes, with the same body as classified failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		kind := connectors.KindInternal
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			kind = connectors.KindNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			kind = connectors.KindInvalidInput
		}
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message, "kind": kind})
	}
	return writeError(c, err)
}
