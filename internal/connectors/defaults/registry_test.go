package defaults_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VkTheEncoder/AnimeXin-API/internal/config"
	"github.com/VkTheEncoder/AnimeXin-API/internal/connectors/defaults"
)

func TestNewRegistryUsesUpstreamOverride(t *testing.T) {
	userAgents := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgents <- r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.Config{UpstreamBaseURL: server.URL, UpstreamTimeout: 5 * time.Second}
	registry, err := defaults.NewRegistry(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	primary, ok := registry.Primary()
	require.True(t, ok)
	assert.Equal(t, "animexin", primary.Key())

	require.NoError(t, primary.HealthCheck(context.Background()))
	assert.Contains(t, <-userAgents, "Mozilla/5.0")
}

func TestNewRegistryRejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("key: broken\nnamespaces: []\n"), 0o600))

	_, err := defaults.NewRegistry(config.Config{SiteProfilePath: path}, nil)
	assert.Error(t, err)
}
