package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/platform/cache"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/redact"
)

// Cache status header values.
const (
	CacheHeader = "X-Cache"
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
)

// ResponseCache serves GET responses from a cache backend, answers
// If-None-Match with 304 and drops every entry after a successful write.
//
// generation is bumped by every invalidation. A GET that was in flight
// across an invalidation never leaves its response in the cache.
type ResponseCache struct {
	backend    cache.Cache
	ttl        time.Duration
	logger     *slog.Logger
	generation atomic.Uint64
}

// NewResponseCache creates a ResponseCache. A ttl of zero uses the
// backend's default.
func NewResponseCache(backend cache.Cache, ttl time.Duration, logger *slog.Logger) *ResponseCache {
	if backend == nil {
		backend = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseCache{
		backend: backend,
		ttl:     ttl,
		logger:  logger.With(slog.String("component", "response_cache")),
	}
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	ETag        string `json:"etag"`
	Body        []byte `json:"body"`
}

// Key returns the cache key of r. Documents embed absolute links, so the
// host and scheme are part of the key.
func Key(r *http.Request) string {
	return "response:" + r.Method + ":" + shared.RequestScheme(r) + "://" + r.Host + r.URL.RequestURI()
}

// Handler caches successful GET responses of next.
func (c *ResponseCache) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		log := logger.FromContextOrDefault(ctx, c.logger)
		key := Key(r)

		if data, err := c.backend.Get(ctx, key); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				w.Header().Set(CacheHeader, CacheHit)
				c.write(w, r, cached)
				return
			}
			log.Warn("discarding undecodable cache entry", slog.String("key", key))
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("cache lookup failed", slog.String("error", redact.Error(err)))
		}

		gen := c.generation.Load()
		rec := newBufferedWriter()
		next.ServeHTTP(rec, r)

		for k, values := range rec.header {
			for _, v := range values {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set(CacheHeader, CacheMiss)

		if rec.status < 200 || rec.status >= 300 {
			w.WriteHeader(rec.status)
			_, _ = w.Write(rec.body.Bytes())
			return
		}

		cached := cachedResponse{
			Status:      rec.status,
			ContentType: rec.header.Get("Content-Type"),
			ETag:        cache.ETag(rec.body.Bytes()),
			Body:        rec.body.Bytes(),
		}
		c.store(ctx, log, key, cached, gen)

		c.write(w, r, cached)
	})
}

// store saves cached under key unless an invalidation happened since gen
// was read. An invalidation racing with Set removes the entry again.
func (c *ResponseCache) store(ctx context.Context, log *slog.Logger, key string, cached cachedResponse, gen uint64) {
	if c.generation.Load() != gen {
		log.Debug("skipping cache store after invalidation", slog.String("key", key))
		return
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.backend.Set(ctx, key, data, c.ttl); err != nil {
		log.Warn("cache store failed", slog.String("error", redact.Error(err)))
		return
	}

	if c.generation.Load() != gen {
		if err := c.backend.Delete(ctx, key); err != nil {
			log.Warn("cache delete failed", slog.String("error", redact.Error(err)))
		}
	}
}

func (c *ResponseCache) write(w http.ResponseWriter, r *http.Request, cached cachedResponse) {
	if cached.ContentType != "" {
		w.Header().Set("Content-Type", cached.ContentType)
	}
	w.Header().Set("ETag", cached.ETag)
	w.Header().Set("Cache-Control", "no-cache")

	if cache.MatchesIfNoneMatch(r.Header.Get("If-None-Match"), cached.ETag) {
		w.Header().Del("Content-Type")
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(cached.Status)
	_, _ = w.Write(cached.Body)
}

// Invalidate clears the cache when next answers a non-safe request with a
// 2xx status. The cache is cleared before the status line is sent.
func (c *ResponseCache) Invalidate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		iw := &invalidatingWriter{ResponseWriter: w, clear: func() {
			c.generation.Add(1)
			if err := c.backend.Clear(r.Context()); err != nil {
				logger.FromContextOrDefault(r.Context(), c.logger).Warn("cache invalidation failed",
					slog.String("error", redact.Error(err)))
			}
		}}
		next.ServeHTTP(iw, r)
	})
}

type bufferedWriter struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(status int) {
	if !b.wroteHeader {
		b.status = status
		b.wroteHeader = true
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

type invalidatingWriter struct {
	http.ResponseWriter
	clear       func()
	wroteHeader bool
}

func (w *invalidatingWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if status >= 200 && status < 300 {
			w.clear()
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *invalidatingWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}
