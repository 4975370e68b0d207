package animexin

import (
	_ "embed"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfileYAML []byte

type Profile struct {
	Key        string            `yaml:"key"`
	Name       string            `yaml:"name"`
	BaseURL    string            `yaml:"base_url"`
	Headers    map[string]string `yaml:"headers"`
	Namespaces []string          `yaml:"namespaces"`

	Search        SearchSelectors   `yaml:"search"`
	Detail        DetailSelectors   `yaml:"detail"`
	Episodes      EpisodeSelectors  `yaml:"episodes"`
	EpisodeSource EpisodeSourceSpec `yaml:"episode_source"`
	Mirrors       MirrorSelectors   `yaml:"mirrors"`

	listingPattern *regexp.Regexp
}

type SearchSelectors struct {
	Path          string `yaml:"path"`
	QueryParam    string `yaml:"query_param"`
	Items         string `yaml:"items"`
	Link          string `yaml:"link"`
	Image         string `yaml:"image"`
	Status        string `yaml:"status"`
	Type          string `yaml:"type"`
	Hot           string `yaml:"hot"`
	EpisodeStatus string `yaml:"episode_status"`
	SubStatus     string `yaml:"sub_status"`
}

type RatingSelectors struct {
	Container string `yaml:"container"`
	Value     string `yaml:"value"`
	Best      string `yaml:"best"`
	Count     string `yaml:"count"`
	Visual    string `yaml:"visual"`
}

type SynopsisSelectors struct {
	Container  string `yaml:"container"`
	English    string `yaml:"english"`
	Indonesian string `yaml:"indonesian"`
}

type FirstLastSelectors struct {
	Container  string `yaml:"container"`
	FirstLabel string `yaml:"first_label"`
	LastLabel  string `yaml:"last_label"`
	Anchors    string `yaml:"anchors"`
}

type DetailSelectors struct {
	Title          string             `yaml:"title"`
	AlternateTitle string             `yaml:"alternate_title"`
	Description    string             `yaml:"description"`
	CoverMain      string             `yaml:"cover_main"`
	CoverThumb     string             `yaml:"cover_thumb"`
	Rating         RatingSelectors    `yaml:"rating"`
	Followers      string             `yaml:"followers"`
	FollowerLabels []string           `yaml:"follower_labels"`
	InfoItems      string             `yaml:"info_items"`
	InfoLabel      string             `yaml:"info_label"`
	Genres         string             `yaml:"genres"`
	Tags           string             `yaml:"tags"`
	Synopsis       SynopsisSelectors  `yaml:"synopsis"`
	FirstLast      FirstLastSelectors `yaml:"first_last"`
}

type EpisodeSelectors struct {
	Container   string `yaml:"container"`
	Items       string `yaml:"items"`
	Link        string `yaml:"link"`
	Number      string `yaml:"number"`
	Title       string `yaml:"title"`
	SubType     string `yaml:"sub_type"`
	ReleaseDate string `yaml:"release_date"`
}

// EpisodeSourceSpec describes the client-rendered episode listing: the inline
// script pattern exposing the numeric listing id and the JSON endpoint it
// feeds. Field paths are gjson paths.
type EpisodeSourceSpec struct {
	Scripts     string `yaml:"scripts"`
	Pattern     string `yaml:"pattern"`
	Endpoint    string `yaml:"endpoint"`
	ItemsPath   string `yaml:"items_path"`
	NumberField string `yaml:"number_field"`
	IDField     string `yaml:"id_field"`
	URLTemplate string `yaml:"url_template"`
}

type MirrorSelectors struct {
	Control string `yaml:"control"`
	Option  string `yaml:"option"`
	Frame   string `yaml:"frame"`
}

func DefaultProfile() (Profile, error) {
	return ParseProfile(defaultProfileYAML)
}

// LoadProfile reads a profile from path, or returns the embedded profile when
// path is empty.
func LoadProfile(path string) (Profile, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DefaultProfile()
	}

	content, err := os.ReadFile(trimmed)
	if err != nil {
		return Profile{}, errors.Wrap(err, "read site profile")
	}
	profile, err := ParseProfile(content)
	if err != nil {
		return Profile{}, errors.Wrap(err, trimmed)
	}
	return profile, nil
}

func ParseProfile(content []byte) (Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(content, &profile); err != nil {
		return Profile{}, errors.Wrap(err, "decode site profile")
	}
	if err := profile.normalizeAndValidate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// WithBaseURL returns a copy of the profile pointed at another site root.
func (p Profile) WithBaseURL(baseURL string) Profile {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed != "" {
		p.BaseURL = trimmed
	}
	return p
}

func (p *Profile) normalizeAndValidate() error {
	p.Key = strings.TrimSpace(p.Key)
	p.Name = strings.TrimSpace(p.Name)
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")

	if p.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if p.Key == "" {
		p.Key = "animexin"
	}
	if p.Name == "" {
		p.Name = p.Key
	}

	namespaces := make([]string, 0, len(p.Namespaces))
	for _, namespace := range p.Namespaces {
		namespace = strings.Trim(strings.TrimSpace(namespace), "/")
		if namespace != "" {
			namespaces = append(namespaces, namespace)
		}
	}
	if len(namespaces) == 0 {
		return errors.New("namespaces must list at least one path segment")
	}
	p.Namespaces = namespaces

	if strings.TrimSpace(p.Detail.Title) == "" {
		return errors.New("detail.title is required")
	}
	if strings.TrimSpace(p.Mirrors.Control) == "" {
		return errors.New("mirrors.control is required")
	}
	if strings.TrimSpace(p.Mirrors.Option) == "" {
		return errors.New("mirrors.option is required")
	}
	if strings.TrimSpace(p.Mirrors.Frame) == "" {
		p.Mirrors.Frame = "iframe"
	}

	if strings.TrimSpace(p.Search.Path) == "" {
		p.Search.Path = "/"
	}
	if strings.TrimSpace(p.Search.QueryParam) == "" {
		p.Search.QueryParam = "s"
	}
	if strings.TrimSpace(p.Search.Link) == "" {
		p.Search.Link = "a[href]"
	}
	if strings.TrimSpace(p.Episodes.Items) == "" {
		p.Episodes.Items = "li"
	}
	if strings.TrimSpace(p.Episodes.Link) == "" {
		p.Episodes.Link = "a[href]"
	}
	if strings.TrimSpace(p.Detail.FirstLast.Anchors) == "" {
		p.Detail.FirstLast.Anchors = "a"
	}

	if strings.TrimSpace(p.EpisodeSource.Scripts) == "" {
		p.EpisodeSource.Scripts = "script"
	}
	if strings.TrimSpace(p.EpisodeSource.ItemsPath) == "" {
		p.EpisodeSource.ItemsPath = "@this"
	}
	if strings.TrimSpace(p.EpisodeSource.NumberField) == "" {
		p.EpisodeSource.NumberField = "episode"
	}
	if strings.TrimSpace(p.EpisodeSource.IDField) == "" {
		p.EpisodeSource.IDField = "id"
	}
	if strings.TrimSpace(p.EpisodeSource.URLTemplate) == "" {
		p.EpisodeSource.URLTemplate = "{base}/{id}/"
	}
	if pattern := strings.TrimSpace(p.EpisodeSource.Pattern); pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return errors.Wrap(err, "episode_source.pattern")
		}
		if compiled.NumSubexp() < 1 {
			return errors.New("episode_source.pattern must capture the listing id")
		}
		if strings.TrimSpace(p.EpisodeSource.Endpoint) == "" {
			return errors.New("episode_source.endpoint is required with a pattern")
		}
		p.listingPattern = compiled
	}

	return nil
}

func (p Profile) absoluteURL(rawPath string) string {
	rawPath = strings.TrimSpace(rawPath)
	if strings.HasPrefix(rawPath, "http://") || strings.HasPrefix(rawPath, "https://") {
		return rawPath
	}
	if !strings.HasPrefix(rawPath, "/") {
		rawPath = "/" + rawPath
	}
	return p.BaseURL + rawPath
}
