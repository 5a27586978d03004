// Package maplib makes sure the Google Maps JavaScript library is available
// before any map is drawn.
//
// The loader keeps a process-wide availability flag. Once the library has been
// fetched, or was declared present up front, further loads return straight
// away without touching the script tag.
//
// Load is not serialized: calling it again while a fetch is still in flight
// sets the tag's src a second time and issues a second fetch. Callers load
// once at startup.
package maplib

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/manzanit0/addressmap/pkg/apperr"
	"github.com/manzanit0/addressmap/pkg/whttp"
)

const DefaultBaseURL = "https://maps.googleapis.com"

type MapLibraryLoader interface {
	Load(ctx context.Context) error
}

type Option func(*Loader)

// WithBaseURL points the loader at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(l *Loader) {
		l.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLibraryPresent marks the library as already available, so Load never
// fetches it.
func WithLibraryPresent() Option {
	return func(l *Loader) {
		l.available.Store(true)
	}
}

type Loader struct {
	h       *http.Client
	tag     *ScriptTag
	apiKey  string
	baseURL string

	available atomic.Bool
}

var _ MapLibraryLoader = (*Loader)(nil)

func NewLoader(h *http.Client, tag *ScriptTag, apiKey string, opts ...Option) *Loader {
	l := &Loader{h: h, tag: tag, apiKey: apiKey, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Available reports whether the library has been loaded.
func (l *Loader) Available() bool {
	return l.available.Load()
}

// ScriptURL is the address the script tag is pointed at.
func (l *Loader) ScriptURL() string {
	q := url.Values{}
	q.Set("key", l.apiKey)
	q.Set("libraries", "places")
	return fmt.Sprintf("%s/maps/api/js?%s", l.baseURL, q.Encode())
}

// Load resolves once the library is available. A failed fetch returns an
// *apperr.Error of KindLoad.
func (l *Loader) Load(ctx context.Context) error {
	if l.available.Load() {
		return nil
	}

	src := l.ScriptURL()
	l.tag.SetSrc(src)

	f := newFuture()
	go l.fetch(ctx, src, f)

	return f.Wait(ctx)
}

func (l *Loader) fetch(ctx context.Context, src string, f *future) {
	onload := func() {
		l.available.Store(true)
		f.resolve()
	}

	onerror := func(err error) {
		f.reject(apperr.Load(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		onerror(fmt.Errorf("build request: %w", err))
		return
	}

	res, err := l.h.Do(req)
	if err != nil {
		onerror(whttp.StripURL(err))
		return
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		onerror(fmt.Errorf("unexpected response status: %s", res.Status))
		return
	}

	onload()
}
