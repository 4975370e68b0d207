package animexin

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors"
	"github.com/VkTheEncoder/AnimeXin-API/internal/fetcher"
)

// Attempt records one candidate page tried by the locator.
type Attempt struct {
	Namespace string
	URL       string
	Err       error
}

type Location struct {
	Page      *fetcher.Page
	URL       string
	Namespace string
	Attempts  []Attempt
}

// candidateURLs accepts a slug either raw or in the percent-encoded form the
// site uses in its own links, and escapes it exactly once.
func (c *Connector) candidateURLs(slug string) []Attempt {
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}
	segment := url.PathEscape(slug)

	candidates := make([]Attempt, 0, len(c.profile.Namespaces))
	for _, namespace := range c.profile.Namespaces {
		candidates = append(candidates, Attempt{
			Namespace: namespace,
			URL:       c.profile.BaseURL + "/" + namespace + "/" + segment,
		})
	}
	return candidates
}

// Locate fetches the first candidate page that answers successfully, trying
// namespaces strictly in profile order. When every candidate fails it
// reports not_found if the site answered at least once with an error status,
// and unreachable if no candidate got a response at all.
func (c *Connector) Locate(ctx context.Context, slug string) (*Location, error) {
	candidates := c.candidateURLs(slug)
	attempts := make([]Attempt, 0, len(candidates))
	answered := false

	for _, candidate := range candidates {
		page, err := c.fetcher.Fetch(ctx, candidate.URL)
		candidate.Err = err
		attempts = append(attempts, candidate)

		if err == nil {
			c.logger.Debug("resolved page", "slug", slug, "namespace", candidate.Namespace, "url", candidate.URL)
			return &Location{
				Page:      page,
				URL:       candidate.URL,
				Namespace: candidate.Namespace,
				Attempts:  attempts,
			}, nil
		}

		if fetcher.Answered(err) {
			answered = true
		}
		c.logger.Debug("candidate page failed", "slug", slug, "namespace", candidate.Namespace, "url", candidate.URL, "error", err)

		if ctx.Err() != nil {
			break
		}
	}

	var lastErr error
	if len(attempts) > 0 {
		lastErr = attempts[len(attempts)-1].Err
	}
	if answered && ctx.Err() == nil {
		return nil, connectors.NewError(connectors.KindNotFound, "locate", errors.Wrapf(lastErr, "%q not found under any known namespace", slug))
	}
	return nil, connectors.NewError(connectors.KindUnreachable, "locate", errors.Wrapf(lastErr, "failed to reach %q", slug))
}
