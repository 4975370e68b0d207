package animexin

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
	"github.com/VkTheEncoder/AnimeXin-API/internal/models"
	"github.com/VkTheEncoder/AnimeXin-API/internal/selector"
)

// extractDetail builds everything but the episode list. Only the title is
// required; every other field degrades to nil or empty on its own.
func (c *Connector) extractDetail(doc *goquery.Document) (*models.DetailRecord, error) {
	sel := c.profile.Detail
	root := doc.Selection

	title := selector.Text(root, sel.Title)
	if title == nil {
		return nil, connectors.Errorf(connectors.KindMissingTitle, "detail", "title element %q not found", sel.Title)
	}

	record := &models.DetailRecord{
		Title:          *title,
		AlternateTitle: selector.Text(root, sel.AlternateTitle),
		Description:    selector.Text(root, sel.Description),
		CoverImages: models.CoverImages{
			Main:  selector.Attr(root, sel.CoverMain, "src"),
			Thumb: selector.Attr(root, sel.CoverThumb, "src"),
		},
		Rating:           extractRating(root, sel.Rating),
		Followers:        extractFollowers(root, sel.Followers, sel.FollowerLabels),
		Info:             extractInfo(root, sel.InfoItems, sel.InfoLabel),
		Genres:           selector.Texts(root, sel.Genres),
		Tags:             selector.Texts(root, sel.Tags),
		Synopsis:         extractSynopsis(root, sel.Synopsis),
		FirstLastEpisode: extractFirstLast(root, sel.FirstLast),
		Episodes:         []models.EpisodeEntry{},
	}

	return record, nil
}

func extractRating(root *goquery.Selection, sel RatingSelectors) *models.Rating {
	container, ok := selector.Find(root, sel.Container)
	if !ok {
		return nil
	}

	rating := &models.Rating{
		Value: selector.Attr(container, sel.Value, "content"),
		Best:  selector.Attr(container, sel.Best, "content"),
		Count: selector.Attr(container, sel.Count, "content"),
	}
	// The star bar lives beside the rating block, not inside it.
	if style := selector.Attr(root, sel.Visual, "style"); style != nil {
		visual := visualPercentage(*style)
		rating.Visual = &visual
	}
	return rating
}

// visualPercentage turns "width: 87%" into "87".
func visualPercentage(style string) string {
	value := strings.ReplaceAll(style, "width:", "")
	value = strings.ReplaceAll(value, "%", "")
	value = strings.TrimSuffix(strings.TrimSpace(value), ";")
	return strings.TrimSpace(value)
}

func extractFollowers(root *goquery.Selection, path string, labels []string) *string {
	raw := selector.Text(root, path)
	if raw == nil {
		return nil
	}
	value := *raw
	for _, label := range labels {
		if label == "" {
			continue
		}
		value = strings.ReplaceAll(value, label, "")
	}
	value = strings.TrimSpace(value)
	return &value
}

// extractInfo reads "<span><b>Label:</b> value</span>" pairs. The label
// element is detached from a copy of the pair before the value is read, so
// the label text never leaks into the value.
func extractInfo(root *goquery.Selection, itemsPath string, labelPath string) models.InfoTable {
	var info models.InfoTable
	if strings.TrimSpace(itemsPath) == "" || strings.TrimSpace(labelPath) == "" {
		return info
	}

	root.Find(itemsPath).Each(func(_ int, item *goquery.Selection) {
		pair := item.Clone()
		label := pair.Find(labelPath).First()
		if label.Length() == 0 {
			return
		}
		key := cleanLabel(label.Text())
		if key == "" {
			return
		}
		label.Remove()
		info.Set(key, strings.TrimSpace(pair.Text()))
	})

	return info
}

func cleanLabel(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), ": \t\r\n\u00a0")
}

func extractSynopsis(root *goquery.Selection, sel SynopsisSelectors) models.Synopsis {
	container, ok := selector.Find(root, sel.Container)
	if !ok {
		return models.Synopsis{}
	}
	return models.Synopsis{
		English:    selector.Text(container, sel.English),
		Indonesian: selector.Text(container, sel.Indonesian),
	}
}

// extractFirstLast pairs anchors with markers by position only: the first
// anchor in the container is the first episode, the second is the latest.
// The site marks neither anchor semantically.
func extractFirstLast(root *goquery.Selection, sel FirstLastSelectors) *models.FirstLastEpisode {
	container, ok := selector.Find(root, sel.Container)
	if !ok {
		return nil
	}

	anchors := container.Find(sel.Anchors)
	markers := &models.FirstLastEpisode{
		First: models.EpisodeMarker{Episode: selector.Text(container, sel.FirstLabel)},
		Last:  models.EpisodeMarker{Episode: selector.Text(container, sel.LastLabel)},
	}
	if anchors.Length() > 0 {
		markers.First.URL = selector.Attr(anchors.Eq(0), "", "href")
	}
	if anchors.Length() > 1 {
		markers.Last.URL = selector.Attr(anchors.Eq(1), "", "href")
	}
	return markers
}
