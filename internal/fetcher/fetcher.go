package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 8 << 20
)

// Options is built once at startup and shared read-only by every request.
type Options struct {
	Timeout      time.Duration
	Headers      map[string]string
	MaxBodyBytes int64
}

type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// UnreachableError is the single failure outcome of Fetch. StatusCode is zero
// when the request never produced a response.
type UnreachableError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UnreachableError) Error() string {
	if e == nil {
		return "upstream unreachable"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream unreachable: %s: HTTP %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream unreachable: %s: %v", e.URL, e.Err)
	}
	return "upstream unreachable: " + e.URL
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// HTTPStatus reports whether the upstream answered with an error status
// rather than failing at the transport level.
func (e *UnreachableError) HTTPStatus() bool {
	return e != nil && e.StatusCode != 0
}

// Answered reports whether err came from an upstream that responded with an
// error status, as opposed to one that could not be reached at all.
func Answered(err error) bool {
	var target *UnreachableError
	return errors.As(err, &target) && target.HTTPStatus()
}

type Fetcher struct {
	client       *http.Client
	maxBodyBytes int64
}

func New(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxBodyBytes := opts.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	headers := make(http.Header, len(opts.Headers))
	for key, value := range opts.Headers {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers.Set(key, value)
	}

	return &Fetcher{
		client: &http.Client{
			Transport: &headerTransport{base: http.DefaultTransport, headers: headers},
			Timeout:   timeout,
		},
		maxBodyBytes: maxBodyBytes,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &UnreachableError{URL: rawURL, Err: errors.Wrap(err, "create request")}
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, &UnreachableError{URL: rawURL, Err: errors.Wrap(err, "request failed")}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &UnreachableError{URL: rawURL, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, &UnreachableError{URL: rawURL, Err: errors.Wrap(err, "read response body")}
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, &UnreachableError{URL: rawURL, Err: errors.Errorf("response body exceeds %d bytes", f.maxBodyBytes)}
	}

	finalURL := rawURL
	if res.Request != nil && res.Request.URL != nil {
		finalURL = res.Request.URL.String()
	}

	return &Page{URL: finalURL, StatusCode: res.StatusCode, Body: body}, nil
}

// headerTransport stamps the fixed browser header set onto every outbound
// request without touching the caller's request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	r := req.Clone(req.Context())
	for key, values := range t.headers {
		if r.Header.Get(key) != "" {
			continue
		}
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}
	return base.RoundTrip(r)
}
