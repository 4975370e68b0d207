package defaults

import (
	"fmt"
	"log/slog"

	"github.com/VkTheEncoder/AnimeXin-API/internal/config"
	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors/animexin"
	"github.com/VkTheEncoder/AnimeXin-API/internal/fetcher"
)

// NewRegistry builds the site connector from the embedded profile, or the one
// at cfg.SiteProfilePath, and registers it as the primary source.
func NewRegistry(cfg config.Config, logger *slog.Logger) (*connectors.Registry, error) {
	profile, err := animexin.LoadProfile(cfg.SiteProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load site profile: %w", err)
	}
	if cfg.UpstreamBaseURL != "" {
		profile = profile.WithBaseURL(cfg.UpstreamBaseURL)
	}

	pages := fetcher.New(fetcher.Options{
		Timeout: cfg.UpstreamTimeout,
		Headers: profile.Headers,
	})

	registry := connectors.NewRegistry()
	if err := registry.Register(animexin.NewConnector(profile, pages, logger)); err != nil {
		return nil, fmt.Errorf("register connector %q: %w", profile.Key, err)
	}
	return registry, nil
}
