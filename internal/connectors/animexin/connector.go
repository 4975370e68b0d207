package animexin

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
	"github.com/VkTheEncoder/AnimeXin-API/internal/fetcher"
	"github.com/VkTheEncoder/AnimeXin-API/internal/models"
	"github.com/VkTheEncoder/AnimeXin-API/internal/selector"
)

type pageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Page, error)
}

// Connector holds only immutable state; every call builds its records from
// scratch, so one instance serves concurrent requests.
type Connector struct {
	profile Profile
	fetcher pageFetcher
	logger  *slog.Logger
}

func NewConnector(profile Profile, pages pageFetcher, logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Connector{
		profile: profile,
		fetcher: pages,
		logger:  logger.With("connector", profile.Key),
	}
}

func (c *Connector) Key() string {
	return c.profile.Key
}

func (c *Connector) Name() string {
	return c.profile.Name
}

func (c *Connector) HealthCheck(ctx context.Context) error {
	_, err := c.fetcher.Fetch(ctx, c.profile.BaseURL+"/")
	return err
}

func (c *Connector) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, connectors.Errorf(connectors.KindInvalidInput, "search", "query parameter is required")
	}

	values := url.Values{}
	values.Set(c.profile.Search.QueryParam, query)
	endpoint := c.profile.absoluteURL(c.profile.Search.Path) + "?" + values.Encode()

	page, err := c.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, connectors.NewError(connectors.KindUnreachable, "search", errors.Wrap(err, "fetch search page"))
	}

	doc, err := selector.Parse(page.Body)
	if err != nil {
		return nil, connectors.NewError(connectors.KindInternal, "search", errors.Wrap(err, "parse search page"))
	}

	results := c.extractSearchResults(doc)
	c.logger.Debug("search completed", "query", query, "results", len(results))
	return &models.SearchResponse{Query: query, Results: results}, nil
}

func (c *Connector) Detail(ctx context.Context, slug string) (*models.DetailRecord, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, connectors.Errorf(connectors.KindInvalidInput, "detail", "slug parameter is required")
	}

	location, err := c.Locate(ctx, slug)
	if err != nil {
		return nil, err
	}

	doc, err := selector.Parse(location.Page.Body)
	if err != nil {
		return nil, connectors.NewError(connectors.KindInternal, "detail", errors.Wrap(err, "parse detail page"))
	}

	record, err := c.extractDetail(doc)
	if err != nil {
		return nil, err
	}

	source, err := c.selectEpisodeSource(doc)
	if err != nil {
		return nil, err
	}
	episodes, err := source.list(ctx, c)
	if err != nil {
		return nil, err
	}

	record.Episodes = episodes
	record.SourceURL = location.URL
	record.ContentType = location.Namespace
	return record, nil
}

func (c *Connector) Videos(ctx context.Context, episodeSlug string) (*models.VideoResponse, error) {
	episodeSlug = strings.TrimSpace(episodeSlug)
	if episodeSlug == "" {
		return nil, connectors.Errorf(connectors.KindInvalidInput, "videos", "ep_slug parameter is required")
	}

	location, err := c.Locate(ctx, episodeSlug)
	if err != nil {
		return nil, err
	}

	doc, err := selector.Parse(location.Page.Body)
	if err != nil {
		return nil, connectors.NewError(connectors.KindInternal, "videos", errors.Wrap(err, "parse episode page"))
	}

	servers, err := c.decodeServers(doc)
	if err != nil {
		return nil, err
	}

	resolved := 0
	for _, server := range servers {
		if server.VideoURL != nil {
			resolved++
		}
	}

	return &models.VideoResponse{
		EpisodeURL:       location.URL,
		ContentType:      location.Namespace,
		AvailableServers: len(servers),
		ResolvedServers:  resolved,
		VideoServers:     servers,
	}, nil
}
