package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/platform/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingHandler(calls *atomic.Int32, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", jsonapi.MediaType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func backends(t *testing.T) map[string]cache.Cache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]cache.Cache{
		"memory": cache.NewMemoryCache(time.Minute),
		"redis":  cache.NewRedisCacheWithClient(client, cache.KeyPrefix, time.Minute),
	}
}

func TestResponseCache_HitAndMiss(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			h := NewResponseCache(backend, 0, nil).Handler(countingHandler(&calls, http.StatusOK, `{"data":[]}`))

			first := httptest.NewRecorder()
			h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
			assert.Equal(t, http.StatusOK, first.Code)
			assert.Equal(t, CacheMiss, first.Header().Get(CacheHeader))
			assert.Equal(t, jsonapi.MediaType, first.Header().Get("Content-Type"))
			etag := first.Header().Get("ETag")
			require.NotEmpty(t, etag)

			second := httptest.NewRecorder()
			h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
			assert.Equal(t, http.StatusOK, second.Code)
			assert.Equal(t, CacheHit, second.Header().Get(CacheHeader))
			assert.Equal(t, etag, second.Header().Get("ETag"))
			assert.Equal(t, `{"data":[]}`, second.Body.String())

			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestResponseCache_IfNoneMatch(t *testing.T) {
	var calls atomic.Int32
	h := NewResponseCache(cache.NewMemoryCache(time.Minute), 0, nil).
		Handler(countingHandler(&calls, http.StatusOK, `{"data":{}}`))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/posts/1", nil))
	etag := first.Header().Get("ETag")

	for _, tc := range []struct {
		name   string
		header string
		want   int
	}{
		{"matching", etag, http.StatusNotModified},
		{"wildcard", "*", http.StatusNotModified},
		{"stale", `"deadbeef"`, http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/1", nil)
			req.Header.Set("If-None-Match", tc.header)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusNotModified {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}

func TestResponseCache_NoopStillSendsETag(t *testing.T) {
	var calls atomic.Int32
	h := NewResponseCache(nil, 0, nil).Handler(countingHandler(&calls, http.StatusOK, `{}`))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	req.Header.Set("If-None-Match", first.Header().Get("ETag"))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestResponseCache_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	h := NewResponseCache(cache.NewMemoryCache(time.Minute), 0, nil).
		Handler(countingHandler(&calls, http.StatusNotFound, `{"errors":[]}`))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/posts/missing", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Header().Get("ETag"))
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestResponseCache_KeyIncludesHost(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "http://a.example/api/v1/posts?x=1", nil)
	b := httptest.NewRequest(http.MethodGet, "http://b.example/api/v1/posts?x=1", nil)
	assert.NotEqual(t, Key(a), Key(b))
	assert.Equal(t, "response:GET:http://a.example/api/v1/posts?x=1", Key(a))

	a.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "response:GET:https://a.example/api/v1/posts?x=1", Key(a))
}

func TestResponseCache_KeyIgnoresUnknownForwardedProto(t *testing.T) {
	for _, proto := range []string{"javascript", "ftp", "https://evil"} {
		t.Run(proto, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://a.example/api/v1/posts", nil)
			r.Header.Set("X-Forwarded-Proto", proto)
			assert.Equal(t, "response:GET:http://a.example/api/v1/posts", Key(r))
		})
	}
}

func TestResponseCache_Invalidate(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		status    int
		wantClear bool
	}{
		{"created", http.MethodPost, http.StatusCreated, true},
		{"updated", http.MethodPatch, http.StatusOK, true},
		{"deleted", http.MethodDelete, http.StatusOK, true},
		{"rejected", http.MethodPost, http.StatusBadRequest, false},
		{"read", http.MethodGet, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := cache.NewMemoryCache(time.Minute)
			require.NoError(t, backend.Set(ctx, "k", []byte("v"), 0))

			var calls atomic.Int32
			h := NewResponseCache(backend, 0, nil).Invalidate(countingHandler(&calls, tt.status, `{}`))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tt.method, "/api/v1/admin/posts", nil))

			assert.Equal(t, tt.status, rr.Code)
			_, err := backend.Get(ctx, "k")
			if tt.wantClear {
				assert.True(t, errors.Is(err, cache.ErrCacheMiss))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResponseCache_InFlightReadDoesNotOutliveWrite(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var current atomic.Value
			current.Store("old")

			var blockNext atomic.Bool
			blockNext.Store(true)
			readDone := make(chan struct{})
			release := make(chan struct{})

			app := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPost {
					current.Store("new")
					w.WriteHeader(http.StatusCreated)
					return
				}
				body := current.Load().(string)
				if blockNext.CompareAndSwap(true, false) {
					close(readDone)
					<-release
				}
				w.Header().Set("Content-Type", jsonapi.MediaType)
				_, _ = w.Write([]byte(body))
			})

			rc := NewResponseCache(backend, 0, nil)
			h := rc.Invalidate(rc.Handler(app))

			slow := make(chan *httptest.ResponseRecorder, 1)
			go func() {
				rr := httptest.NewRecorder()
				h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
				slow <- rr
			}()
			<-readDone

			write := httptest.NewRecorder()
			h.ServeHTTP(write, httptest.NewRequest(http.MethodPost, "/api/v1/posts/1/comments", nil))
			require.Equal(t, http.StatusCreated, write.Code)

			close(release)
			inFlight := <-slow
			assert.Equal(t, "old", inFlight.Body.String())

			next := httptest.NewRecorder()
			h.ServeHTTP(next, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
			assert.Equal(t, CacheMiss, next.Header().Get(CacheHeader))
			assert.Equal(t, "new", next.Body.String())
		})
	}
}
