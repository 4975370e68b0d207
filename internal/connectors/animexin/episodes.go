package animexin

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
	"github.com/VkTheEncoder/AnimeXin-API/internal/models"
	"github.com/VkTheEncoder/AnimeXin-API/internal/selector"
)

// episodeSource is picked once per document: either the list is rendered in
// the page markup, or the page only carries the id of a JSON listing that the
// browser would load. The two are never mixed.
type episodeSource interface {
	list(ctx context.Context, c *Connector) ([]models.EpisodeEntry, error)
}

type staticEpisodes struct {
	container *goquery.Selection
}

type remoteEpisodes struct {
	listingID string
}

func (c *Connector) selectEpisodeSource(doc *goquery.Document) (episodeSource, error) {
	if strings.TrimSpace(c.profile.Episodes.Container) != "" {
		if container, ok := selector.Find(doc.Selection, c.profile.Episodes.Container); ok {
			return staticEpisodes{container: container}, nil
		}
	}
	if listingID := c.findListingID(doc); listingID != "" {
		return remoteEpisodes{listingID: listingID}, nil
	}
	return nil, connectors.Errorf(connectors.KindMissingEpisodeSource, "episodes", "page has neither an episode list nor a listing id")
}

// findListingID scans inline scripts in document order; the first script
// matching the listing pattern wins.
func (c *Connector) findListingID(doc *goquery.Document) string {
	pattern := c.profile.listingPattern
	if pattern == nil {
		return ""
	}

	listingID := ""
	doc.Find(c.profile.EpisodeSource.Scripts).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		match := pattern.FindStringSubmatch(script.Text())
		if len(match) < 2 || match[1] == "" {
			return true
		}
		listingID = match[1]
		return false
	})
	return listingID
}

func (s staticEpisodes) list(_ context.Context, c *Connector) ([]models.EpisodeEntry, error) {
	sel := c.profile.Episodes
	episodes := []models.EpisodeEntry{}

	s.container.Find(sel.Items).Each(func(_ int, item *goquery.Selection) {
		href := selector.AttrOr(item, sel.Link, "href", "")
		if href == "" {
			return
		}
		episodes = append(episodes, models.EpisodeEntry{
			EpisodeNumber: selector.TextOr(item, sel.Number, ""),
			Title:         selector.TextOr(item, sel.Title, ""),
			SubType:       selector.TextOr(item, sel.SubType, ""),
			ReleaseDate:   selector.TextOr(item, sel.ReleaseDate, ""),
			URL:           href,
			EpSlug:        SlugFromURL(href),
		})
	})

	return episodes, nil
}

// list fetches the JSON listing. The listing carries only the episode label
// and id, so title, sub type and release date stay empty: unknown, not
// confirmed blank.
func (s remoteEpisodes) list(ctx context.Context, c *Connector) ([]models.EpisodeEntry, error) {
	listing := c.profile.EpisodeSource
	endpoint := c.profile.absoluteURL(strings.ReplaceAll(listing.Endpoint, "{id}", s.listingID))

	page, err := c.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, connectors.NewError(connectors.KindUnreachable, "episodes", errors.Wrap(err, "fetch episode listing"))
	}
	if !gjson.ValidBytes(page.Body) {
		return nil, connectors.Errorf(connectors.KindInternal, "episodes", "episode listing %s is not valid json", s.listingID)
	}

	items := gjson.GetBytes(page.Body, listing.ItemsPath)
	if !items.IsArray() {
		return nil, connectors.Errorf(connectors.KindInternal, "episodes", "episode listing %s has no item collection at %q", s.listingID, listing.ItemsPath)
	}

	episodes := []models.EpisodeEntry{}
	items.ForEach(func(_, item gjson.Result) bool {
		episodeID := strings.TrimSpace(item.Get(listing.IDField).String())
		if episodeID == "" {
			return true
		}
		episodeURL := strings.NewReplacer("{base}", c.profile.BaseURL, "{id}", episodeID).Replace(listing.URLTemplate)
		episodes = append(episodes, models.EpisodeEntry{
			EpisodeNumber: strings.TrimSpace(item.Get(listing.NumberField).String()),
			URL:           episodeURL,
			EpSlug:        SlugFromURL(episodeURL),
		})
		return true
	})

	c.logger.Debug("episode listing fetched", "listing_id", s.listingID, "episodes", len(episodes))
	return episodes, nil
}
