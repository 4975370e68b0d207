package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSendsFixedHeaders(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	f := New(Options{Headers: map[string]string{
		"User-Agent":      "Mozilla/5.0 test",
		"Accept-Language": "en-US,en;q=0.9",
	}})

	page, err := f.Fetch(context.Background(), server.URL+"/donghua/x")
	require.NoError(t, err)

	assert.Equal(t, "Mozilla/5.0 test", gotUA)
	assert.Equal(t, "en-US,en;q=0.9", gotLang)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, "<html>ok</html>", string(page.Body))
	assert.Equal(t, server.URL+"/donghua/x", page.URL)
}

func TestFetchErrorStatusIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>missing</html>"))
	}))
	defer server.Close()

	_, err := New(Options{}).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, Answered(err))

	var unreachable *UnreachableError
	require.ErrorAs(t, err, &unreachable)
	assert.Equal(t, http.StatusNotFound, unreachable.StatusCode)
	assert.True(t, unreachable.HTTPStatus())
}

func TestFetchTransportFailureIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := server.URL
	server.Close()

	_, err := New(Options{}).Fetch(context.Background(), target)
	require.Error(t, err)

	var unreachable *UnreachableError
	require.ErrorAs(t, err, &unreachable)
	assert.False(t, unreachable.HTTPStatus())
	assert.False(t, Answered(err))
}

func TestFetchTimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	_, err := New(Options{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var unreachable *UnreachableError
	require.ErrorAs(t, err, &unreachable)
	assert.False(t, Answered(err))
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size := 64
		if r.URL.Path == "/large" {
			size = 65
		}
		_, _ = w.Write([]byte(strings.Repeat("x", size)))
	}))
	defer server.Close()

	f := New(Options{MaxBodyBytes: 64})

	page, err := f.Fetch(context.Background(), server.URL+"/exact")
	require.NoError(t, err)
	assert.Len(t, page.Body, 64)

	_, err = f.Fetch(context.Background(), server.URL+"/large")
	require.Error(t, err)

	var unreachable *UnreachableError
	require.ErrorAs(t, err, &unreachable)
	assert.False(t, Answered(err))
	assert.Contains(t, err.Error(), "exceeds 64 bytes")
}

func TestFetchKeepsCallerHeader(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	tr := &headerTransport{base: http.DefaultTransport, headers: http.Header{"User-Agent": {"fixed"}}}
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "caller")

	res, err := tr.RoundTrip(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	assert.Equal(t, "caller", gotUA)
	assert.Equal(t, "caller", req.Header.Get("User-Agent"))
}
