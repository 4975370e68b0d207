package models

import (
	"bytes"
	"encoding/json"
)

type SearchResult struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	URL           string  `json:"url"`
	Image         *string `json:"image"`
	Status        *string `json:"status"`
	Type          *string `json:"type"`
	EpisodeStatus *string `json:"episode_status"`
	SubStatus     *string `json:"sub_status"`
	IsHot         bool    `json:"is_hot"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

type CoverImages struct {
	Main  *string `json:"main"`
	Thumb *string `json:"thumb"`
}

type Rating struct {
	Value  *string `json:"value"`
	Best   *string `json:"best"`
	Count  *string `json:"count"`
	Visual *string `json:"visual"`
}

type Synopsis struct {
	English    *string `json:"english"`
	Indonesian *string `json:"indonesian"`
}

type EpisodeMarker struct {
	Episode *string `json:"episode"`
	URL     *string `json:"url"`
}

type FirstLastEpisode struct {
	First EpisodeMarker `json:"first"`
	Last  EpisodeMarker `json:"last"`
}

type EpisodeEntry struct {
	EpisodeNumber string `json:"episode_number"`
	Title         string `json:"title"`
	SubType       string `json:"sub_type"`
	ReleaseDate   string `json:"release_date"`
	URL           string `json:"url"`
	EpSlug        string `json:"ep_slug"`
}

type DetailRecord struct {
	Title            string            `json:"title"`
	AlternateTitle   *string           `json:"alternate_title"`
	Description      *string           `json:"description"`
	CoverImages      CoverImages       `json:"cover_images"`
	Rating           *Rating           `json:"rating,omitempty"`
	Followers        *string           `json:"followers"`
	Info             InfoTable         `json:"info"`
	Genres           []string          `json:"genres"`
	Tags             []string          `json:"tags"`
	Synopsis         Synopsis          `json:"synopsis"`
	FirstLastEpisode *FirstLastEpisode `json:"first_last_episode,omitempty"`
	Episodes         []EpisodeEntry    `json:"episodes"`
	SourceURL        string            `json:"source_url"`
	ContentType      string            `json:"content_type"`
}

type VideoServerEntry struct {
	ServerName string  `json:"server_name"`
	VideoURL   *string `json:"video_url"`
}

type VideoResponse struct {
	EpisodeURL       string             `json:"episode_url"`
	ContentType      string             `json:"content_type"`
	AvailableServers int                `json:"available_servers"`
	ResolvedServers  int                `json:"resolved_servers"`
	VideoServers     []VideoServerEntry `json:"video_servers"`
}

// InfoTable is a label -> value mapping that serializes in insertion order.
// Setting an existing label replaces its value but keeps its position.
type InfoTable struct {
	keys   []string
	values map[string]string
}

func (t *InfoTable) Set(label string, value string) {
	if t.values == nil {
		t.values = map[string]string{}
	}
	if _, exists := t.values[label]; !exists {
		t.keys = append(t.keys, label)
	}
	t.values[label] = value
}

func (t InfoTable) Get(label string) (string, bool) {
	value, ok := t.values[label]
	return value, ok
}

func (t InfoTable) Labels() []string {
	return append([]string(nil), t.keys...)
}

func (t InfoTable) Len() int {
	return len(t.keys)
}

func (t InfoTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		rawKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		rawValue, err := json.Marshal(t.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(rawKey)
		buf.WriteByte(':')
		buf.Write(rawValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
