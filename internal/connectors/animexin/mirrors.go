package animexin

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
	"github.com/VkTheEncoder/AnimeXin-API/internal/models"
	"github.com/VkTheEncoder/AnimeXin-API/internal/selector"
)

// decodeServers returns one entry per option carrying a payload. An option
// that fails to decode keeps its entry with a nil URL.
func (c *Connector) decodeServers(doc *goquery.Document) ([]models.VideoServerEntry, error) {
	sel := c.profile.Mirrors
	control, ok := selector.Find(doc.Selection, sel.Control)
	if !ok {
		return nil, connectors.Errorf(connectors.KindNoServersFound, "videos", "no video servers found")
	}

	servers := []models.VideoServerEntry{}
	control.Find(sel.Option).Each(func(_ int, option *goquery.Selection) {
		payload := strings.TrimSpace(option.AttrOr("value", ""))
		if payload == "" {
			return
		}

		name := strings.TrimSpace(option.Text())
		videoURL, err := decodeMirror(payload, sel.Frame)
		if err != nil {
			c.logger.Warn("mirror decode failed", "server", name, "error", err)
		}
		servers = append(servers, models.VideoServerEntry{
			ServerName: name,
			VideoURL:   videoURL,
		})
	})

	return servers, nil
}

// decodeMirror recovers the embed fragment from a base64 payload and returns
// the frame source as an absolute URL.
func decodeMirror(payload string, framePath string) (*string, error) {
	compact := strings.Join(strings.Fields(payload), "")
	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}
	if !utf8.Valid(raw) {
		return nil, errors.New("payload is not utf-8 text")
	}

	fragment, err := selector.ParseString(string(raw))
	if err != nil {
		return nil, errors.Wrap(err, "parse embed fragment")
	}

	src := selector.Attr(fragment.Selection, framePath, "src")
	if src == nil || *src == "" {
		return nil, errors.Errorf("embed fragment has no %s source", framePath)
	}

	normalized := absoluteEmbedURL(*src)
	return &normalized, nil
}

func absoluteEmbedURL(src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}
