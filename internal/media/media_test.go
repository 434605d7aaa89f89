package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/watchhaven/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

// smallest valid PNG signature plus padding; enough for content sniffing
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 24)...)

func TestEncodeDataURI(t *testing.T) {
	uri, err := EncodeDataURI("image/png", pngBytes)

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes), uri)
	assert.True(t, IsDataURI(uri))
}

func TestEncodeDataURI_SniffsType(t *testing.T) {
	uri, err := EncodeDataURI("", pngBytes)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEncodeDataURI_Rejects(t *testing.T) {
	_, err := EncodeDataURI("image/png", nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = EncodeDataURI("text/plain", []byte("hello"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func newTestResolver(maxBytes int64) *Resolver {
	return NewResolverWithClient(resty.New(), maxBytes)
}

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/watch.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	})
	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><meta property="og:image" content="/watch.png"></head><body></body></html>`)
	})
	mux.HandleFunc("/twitter", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><meta name="twitter:image" content="https://cdn.example.com/t.jpg"></head></html>`)
	})
	mux.HandleFunc("/bare", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>nothing</title></head></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolver_Resolve(t *testing.T) {
	srv := newImageServer(t)
	r := newTestResolver(0)
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"data uri passes through", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"image extension kept without fetch", "https://unreachable.invalid/a/watch.JPG", "https://unreachable.invalid/a/watch.JPG"},
		{"image content type kept", srv.URL + "/render", srv.URL + "/render"},
		{"og:image resolved against page", srv.URL + "/page", srv.URL + "/watch.png"},
		{"twitter image fallback", srv.URL + "/twitter", "https://cdn.example.com/t.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(ctx, tt.url, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ResolveInline(t *testing.T) {
	srv := newImageServer(t)
	r := newTestResolver(1 << 20)
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	got, err := r.Resolve(context.Background(), srv.URL+"/page", true)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = r.Resolve(context.Background(), srv.URL+"/watch.png", true)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolver_Errors(t *testing.T) {
	srv := newImageServer(t)
	ctx := context.Background()

	_, err := newTestResolver(0).Resolve(ctx, "ftp://example.com/a.png", false)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = newTestResolver(0).Resolve(ctx, "not a url", false)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = newTestResolver(0).Resolve(ctx, srv.URL+"/bare", false)
	assert.ErrorIs(t, err, ErrNoImageFound)

	_, err = newTestResolver(4).Resolve(ctx, srv.URL+"/watch.png", true)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestResolver_StreamedBodyCappedWhileReading(t *testing.T) {
	const total = 256 << 20
	var written atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		chunk := make([]byte, 32<<10)
		copy(chunk, pngBytes)
		for written.Load() < total {
			n, err := w.Write(chunk)
			written.Add(int64(n))
			if err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	_, err := newTestResolver(1<<10).Resolve(context.Background(), srv.URL+"/stream.png", true)

	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestPublicIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"8.8.8.8", true},
		{"93.184.216.34", true},
		{"2606:4700::1111", true},
		{"127.0.0.1", false},
		{"10.0.0.1", false},
		{"172.16.5.4", false},
		{"192.168.1.1", false},
		{"169.254.169.254", false},
		{"0.0.0.0", false},
		{"255.255.255.255", false},
		{"224.0.0.1", false},
		{"::1", false},
		{"fe80::1", false},
		{"fd00::1", false},
		{"::ffff:127.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, publicIP(net.ParseIP(tt.ip)))
		})
	}
}

func TestDialControl(t *testing.T) {
	assert.NoError(t, dialControl("tcp", "8.8.8.8:443", nil))
	assert.ErrorIs(t, dialControl("tcp", "127.0.0.1:80", nil), ErrBlockedHost)
	assert.ErrorIs(t, dialControl("tcp", "[::1]:80", nil), ErrBlockedHost)
	assert.Error(t, dialControl("tcp", "no-port", nil))
}

func TestResolver_RefusesInternalHosts(t *testing.T) {
	srv := newImageServer(t)
	r := NewResolver(config.MediaConfig{FetchTimeout: 2 * time.Second, MaxImageBytes: 1 << 20})
	t.Cleanup(func() { _ = r.Close() })
	ctx := context.Background()

	targets := []string{
		srv.URL + "/page",
		"http://127.0.0.1/render",
		"http://169.254.169.254/latest/meta-data/",
		"http://10.0.0.1/admin",
		"http://[::1]:8080/",
	}
	for _, target := range targets {
		_, err := r.Resolve(ctx, target, false)
		assert.ErrorIs(t, err, ErrBlockedHost, target)
	}

	// image links are not fetched unless inlined
	got, err := r.Resolve(ctx, "http://127.0.0.1/a.png", false)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1/a.png", got)

	_, err = r.Resolve(ctx, "http://127.0.0.1/a.png", true)
	assert.ErrorIs(t, err, ErrBlockedHost)
}
