package animexin

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VkTheEncoder/AnimeXin-API/internal/fetcher"
)

type upstream struct {
	mu     sync.Mutex
	paths  []string
	server *httptest.Server
}

// newUpstream serves routes by exact path and answers 404 for anything else,
// recording every requested path in order.
func newUpstream(t *testing.T, routes map[string]http.HandlerFunc) *upstream {
	t.Helper()

	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.paths = append(u.paths, r.URL.Path)
		u.mu.Unlock()

		handler, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) requested() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.paths...)
}

func html(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
}

func newTestConnector(t *testing.T, baseURL string) *Connector {
	t.Helper()

	profile, err := DefaultProfile()
	require.NoError(t, err)
	profile = profile.WithBaseURL(baseURL)

	pages := fetcher.New(fetcher.Options{Timeout: 5 * time.Second, Headers: profile.Headers})
	return NewConnector(profile, pages, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func embed(fragment string) string {
	return base64.StdEncoding.EncodeToString([]byte(fragment))
}
