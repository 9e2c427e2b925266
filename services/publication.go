package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RootPath is the default invalidation target.
const RootPath = "/"

// Invalidation is the result of one publication trigger.
type Invalidation struct {
	Invalidated bool      `json:"invalidated"`
	Path        string    `json:"path"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher tells a render layer that cached output for a path is stale.
// Implementations never return errors: failures are logged and reported
// through Invalidated=false.
type Publisher interface {
	Invalidate(ctx context.Context, path string) Invalidation
}

// NormalizePath maps "" to "/" and strips trailing slashes.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return RootPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return RootPath
		}
	}
	return path
}

// RenderFunc produces the public payload for a page.
type RenderFunc func(ctx context.Context) (any, error)

var ErrUnknownPage = errors.New("no renderer registered for page")

// ErrDegraded is returned by a RenderFunc together with a usable payload
// built from fallback data. The payload is served but not cached, so the
// first request after the store recovers renders real content.
var ErrDegraded = errors.New("page rendered from fallback data")

// PageResult pairs payload with ErrDegraded when any read behind it fell back.
func PageResult(payload any, degraded ...bool) (any, error) {
	for _, d := range degraded {
		if d {
			return payload, ErrDegraded
		}
	}
	return payload, nil
}

// PageCache keeps rendered public payloads until they are invalidated.
// Concurrent misses on the same page share one render.
type PageCache struct {
	mu         sync.RWMutex
	pages      map[string]any
	renderers  map[string]RenderFunc
	generation uint64
	group      singleflight.Group
	logger     *slog.Logger
	now        func() time.Time
}

func NewPageCache(logger *slog.Logger) *PageCache {
	return &PageCache{
		pages:     map[string]any{},
		renderers: map[string]RenderFunc{},
		logger:    logger,
		now:       time.Now,
	}
}

// Register installs the renderer for path, replacing any previous one.
func (c *PageCache) Register(path string, render RenderFunc) {
	path = NormalizePath(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderers[path] = render
	delete(c.pages, path)
}

// Get returns the cached payload for path, rendering it on a miss.
func (c *PageCache) Get(ctx context.Context, path string) (any, error) {
	path = NormalizePath(path)

	c.mu.RLock()
	page, ok := c.pages[path]
	render, known := c.renderers[path]
	gen := c.generation
	c.mu.RUnlock()
	if ok {
		return page, nil
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, path)
	}

	// The generation is part of the key so a render started before an
	// invalidation is never shared with requests that arrive after it.
	key := fmt.Sprintf("%s#%d", path, gen)
	v, err, _ := c.group.Do(key, func() (any, error) {
		body, err := render(context.WithoutCancel(ctx))
		if errors.Is(err, ErrDegraded) {
			c.logger.Warn("serving uncached fallback page", "path", path)
			return body, nil
		}
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation == gen {
			c.pages[path] = body
		}
		c.mu.Unlock()
		return body, nil
	})
	return v, err
}

// Invalidate drops path and every page below it; "/" drops everything.
func (c *PageCache) Invalidate(_ context.Context, path string) Invalidation {
	path = NormalizePath(path)

	c.mu.Lock()
	c.generation++
	dropped := 0
	for key := range c.pages {
		if covers(path, key) {
			delete(c.pages, key)
			dropped++
		}
	}
	c.mu.Unlock()

	invalidations.WithLabelValues("page_cache", "ok").Inc()
	c.logger.Debug("page cache invalidated", "path", path, "dropped", dropped)
	return Invalidation{Invalidated: true, Path: path, Timestamp: c.now().UTC()}
}

func covers(prefix, key string) bool {
	if prefix == RootPath || key == prefix {
		return true
	}
	return strings.HasPrefix(key, prefix+"/")
}

// WebhookPublisher forwards invalidations to an external renderer, e.g. a
// frontend exposing POST /api/revalidate?path=.
type WebhookPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
	now      func() time.Time
}

func NewWebhookPublisher(endpoint string, timeout time.Duration, logger *slog.Logger) *WebhookPublisher {
	return &WebhookPublisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		now:      time.Now,
	}
}

func (w *WebhookPublisher) Invalidate(ctx context.Context, path string) Invalidation {
	path = NormalizePath(path)
	result := Invalidation{Path: path, Timestamp: w.now().UTC()}

	err := w.post(ctx, path)
	invalidations.WithLabelValues("webhook", outcome(err)).Inc()
	if err != nil {
		w.logger.Warn("revalidate webhook failed", "path", path, "error", err)
		return result
	}
	result.Invalidated = true
	return result
}

func (w *WebhookPublisher) post(ctx context.Context, path string) error {
	target, err := url.Parse(w.endpoint)
	if err != nil {
		return fmt.Errorf("parse webhook url: %w", err)
	}
	q := target.Query()
	q.Set("path", path)
	target.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}
	return nil
}

// AsyncPublisher runs the wrapped publisher in the background so the caller
// never waits on it. The returned Invalidation has Invalidated=false because
// the outcome is not known yet.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewAsyncPublisher(next Publisher, timeout time.Duration, logger *slog.Logger) *AsyncPublisher {
	return &AsyncPublisher{next: next, timeout: timeout, logger: logger}
}

func (a *AsyncPublisher) Invalidate(ctx context.Context, path string) Invalidation {
	path = NormalizePath(path)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		res := a.next.Invalidate(ctx, path)
		a.logger.Debug("background invalidation finished", "path", res.Path, "invalidated", res.Invalidated)
	}()
	return Invalidation{Path: path, Timestamp: time.Now().UTC()}
}

// Wait blocks until every background invalidation has finished.
func (a *AsyncPublisher) Wait() {
	a.wg.Wait()
}

// MultiPublisher fans an invalidation out to every publisher. The result
// reports success when at least one of them succeeded.
type MultiPublisher []Publisher

func (m MultiPublisher) Invalidate(ctx context.Context, path string) Invalidation {
	result := Invalidation{Path: NormalizePath(path), Timestamp: time.Now().UTC()}
	for _, p := range m {
		if p == nil {
			continue
		}
		res := p.Invalidate(ctx, path)
		if res.Invalidated {
			result.Invalidated = true
			result.Timestamp = res.Timestamp
		}
	}
	return result
}
