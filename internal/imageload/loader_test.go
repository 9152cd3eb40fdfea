package imageload

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func imageServer(t *testing.T, hits *atomic.Int32, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if delay > 0 {
			time.Sleep(delay)
		}
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(pngHeader)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadInvalidRefKeepsPlaceholder(t *testing.T) {
	l := NewLoader(nil, 0)

	for _, ref := range []string{"", "not a url", "ftp://files.example.com/a.png", "/relative.png"} {
		img := l.Load(context.Background(), ref).Value()
		assert.True(t, img.Placeholder, ref)
		assert.False(t, img.Loaded(), ref)
	}
}

func TestLoadPublishesFetchedImage(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits, 0)
	l := NewLoader(srv.Client(), 10)

	prop := l.Load(context.Background(), srv.URL+"/a.png")

	require.Eventually(t, func() bool {
		return prop.Value().Loaded()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "image/png", prop.Value().ContentType)

	// Second load comes from the cache without a request
	again := l.Load(context.Background(), srv.URL+"/a.png")
	assert.True(t, again.Value().Loaded())
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchFailureIsNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits, 0)
	l := NewLoader(srv.Client(), 10)

	_, err := l.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestConcurrentFetchesShareOneRequest(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits, 50*time.Millisecond)
	l := NewLoader(srv.Client(), 10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := l.Fetch(context.Background(), srv.URL+"/shared.png")
			assert.NoError(t, err)
			assert.True(t, img.Loaded())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits, 0)
	l := NewLoader(srv.Client(), 2)
	ctx := context.Background()

	ref := func(n int) string { return fmt.Sprintf("%s/%d.png", srv.URL, n) }

	for _, n := range []int{1, 2} {
		_, err := l.Fetch(ctx, ref(n))
		require.NoError(t, err)
	}
	// Touch 1 so 2 becomes the oldest
	_, err := l.Fetch(ctx, ref(1))
	require.NoError(t, err)
	_, err = l.Fetch(ctx, ref(3))
	require.NoError(t, err)

	assert.Equal(t, 2, l.Len())
	_, ok := l.cached(ref(2))
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = l.cached(ref(1))
	assert.True(t, ok)
}

func TestPlaceholderPatternHasFinderSquares(t *testing.T) {
	grid := PlaceholderPattern()

	for _, corner := range [][2]int{{0, 0}, {PlaceholderSize - 3, 0}, {0, PlaceholderSize - 3}} {
		ox, oy := corner[0], corner[1]
		assert.True(t, grid[oy][ox])
		assert.False(t, grid[oy+1][ox+1], "finder centre is hollow")
	}
	assert.Equal(t, grid, PlaceholderPattern(), "pattern is deterministic")
}
