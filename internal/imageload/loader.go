// Package imageload fetches the remote bitmaps referenced by QR code records.
// Rows show a placeholder until the bitmap arrives.
package imageload

import (
	"container/list"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/pstuifzand/microqrart/internal/observable"
)

const (
	// DefaultCacheSize is the number of bitmaps kept in memory
	DefaultCacheSize = 100
	maxImageSize     = 2 << 20
)

// Image is a fetched bitmap or the placeholder
type Image struct {
	Data        []byte
	ContentType string
	Placeholder bool
}

// Loaded reports whether the image holds fetched data
func (i Image) Loaded() bool {
	return !i.Placeholder && len(i.Data) > 0
}

// Loader fetches images with a bounded cache
type Loader struct {
	client *http.Client
	group  singleflight.Group

	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key   string
	image Image
}

// NewLoader creates a loader holding up to capacity images
func NewLoader(client *http.Client, capacity int) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Loader{
		client:   client,
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Load returns a property that starts with the placeholder and switches to
// the fetched image once it arrives. Empty or unparsable references, and
// failed fetches, keep the placeholder.
func (l *Loader) Load(ctx context.Context, ref string) *observable.Property[Image] {
	if img, ok := l.cached(ref); ok {
		return observable.NewProperty(img)
	}

	prop := observable.NewProperty(Placeholder())
	if !validRef(ref) {
		return prop
	}

	go func() {
		img, err := l.Fetch(ctx, ref)
		if err != nil {
			log.Printf("Image %s: %v", ref, err)
			return
		}
		prop.Set(img)
	}()
	return prop
}

// Fetch downloads ref, sharing one request between concurrent callers and
// caching the result
func (l *Loader) Fetch(ctx context.Context, ref string) (Image, error) {
	if img, ok := l.cached(ref); ok {
		return img, nil
	}
	if !validRef(ref) {
		return Image{}, fmt.Errorf("invalid image reference %q", ref)
	}

	v, err, _ := l.group.Do(ref, func() (interface{}, error) {
		img, err := l.download(ctx, ref)
		if err != nil {
			return nil, err
		}
		l.store(ref, img)
		return img, nil
	})
	if err != nil {
		return Image{}, err
	}
	return v.(Image), nil
}

func (l *Loader) download(ctx context.Context, ref string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return Image{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return Image{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return Image{}, err
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("empty image")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return Image{Data: data, ContentType: contentType}, nil
}

func (l *Loader) cached(ref string) (Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	el, ok := l.entries[ref]
	if !ok {
		return Image{}, false
	}
	l.order.MoveToFront(el)
	return el.Value.(*cacheEntry).image, true
}

func (l *Loader) store(ref string, img Image) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if el, ok := l.entries[ref]; ok {
		el.Value.(*cacheEntry).image = img
		l.order.MoveToFront(el)
		return
	}

	l.entries[ref] = l.order.PushFront(&cacheEntry{key: ref, image: img})
	for l.order.Len() > l.capacity {
		oldest := l.order.Back()
		l.order.Remove(oldest)
		delete(l.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Len returns the number of cached images
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}

func validRef(ref string) bool {
	if ref == "" {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
