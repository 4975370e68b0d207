package connectors

import (
	"context"

	"github.com/VkTheEncoder/AnimeXin-API/internal/models"
)

type Connector interface {
	Key() string
	Name() string
	HealthCheck(ctx context.Context) error
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
	Detail(ctx context.Context, slug string) (*models.DetailRecord, error)
	Videos(ctx context.Context, episodeSlug string) (*models.VideoResponse, error)
}
