package animexin

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/VkTheEncoder/AnimeXin-API/internal/models"
	"github.com/VkTheEncoder/AnimeXin-API/internal/selector"
)

func (c *Connector) extractSearchResults(doc *goquery.Document) []models.SearchResult {
	sel := c.profile.Search
	results := []models.SearchResult{}

	doc.Find(sel.Items).Each(func(_ int, item *goquery.Selection) {
		link, ok := selector.Find(item, sel.Link)
		if !ok {
			return
		}
		href := selector.AttrOr(link, "", "href", "")
		if href == "" {
			return
		}

		image := selector.Attr(item, sel.Image, "src")
		if image == nil || *image == "" {
			image = selector.Attr(item, sel.Image, "data-src")
		}

		results = append(results, models.SearchResult{
			Title:         selector.AttrOr(link, "", "title", ""),
			Slug:          SlugFromURL(href),
			URL:           href,
			Image:         image,
			Status:        selector.Text(item, sel.Status),
			Type:          selector.Text(item, sel.Type),
			EpisodeStatus: selector.Text(item, sel.EpisodeStatus),
			SubStatus:     selector.Text(item, sel.SubStatus),
			IsHot:         sel.Hot != "" && selector.Exists(item, sel.Hot),
		})
	})

	return results
}
