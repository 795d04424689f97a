package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appcache "github.com/darklord813/gamevault/pkg/cache"
	kvc "github.com/darklord813/gamevault/pkg/internal/storage/kv"
	"github.com/darklord813/gamevault/pkg/middleware"
)

// newCachedRouter 构造挂了响应缓存的测试路由，handler 每次调用计数加一.
func newCachedRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem, err := kvc.NewKVStore(context.Background(), kvc.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	cfg := middleware.DefaultCacheConfig(appcache.NewCache(mem))
	cfg.TTL = time.Minute

	calls := 0
	r := gin.New()
	r.GET("/items", middleware.CacheMiddleware(cfg), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})

	return r, &calls
}

func doGet(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestCacheMiddlewareHitAndMiss(t *testing.T) {
	r, calls := newCachedRouter(t)

	first := doGet(r, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", first.Code)
	}

	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("X-Cache = %q, want MISS", got)
	}

	// 异步写缓存，轮询等待命中
	var second *httptest.ResponseRecorder
	for n := 0; n < 50; n++ {
		second = doGet(r, nil)
		if second.Header().Get("X-Cache") == "HIT" {
			break
		}

		time.Sleep(10 * time.Millisecond)
	}

	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("X-Cache = %q, want HIT", got)
	}

	if *calls != 1 {
		t.Fatalf("handler calls = %d, want 1", *calls)
	}

	if second.Body.String() != first.Body.String() {
		t.Fatalf("cached body %q differs from original %q", second.Body.String(), first.Body.String())
	}
}

func TestCacheMiddlewareBypassHeader(t *testing.T) {
	r, calls := newCachedRouter(t)

	for i := 1; i <= 2; i++ {
		w := doGet(r, map[string]string{"X-Cache-Bypass": "1"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		if *calls != i {
			t.Fatalf("handler calls = %d, want %d", *calls, i)
		}
	}
}

func TestCacheMiddlewareNotModified(t *testing.T) {
	r, _ := newCachedRouter(t)

	doGet(r, nil)

	// 等待缓存写入后取 ETag
	var etag string
	for n := 0; n < 50; n++ {
		w := doGet(r, nil)
		if w.Header().Get("X-Cache") == "HIT" {
			etag = w.Header().Get("ETag")
			break
		}

		time.Sleep(10 * time.Millisecond)
	}

	if etag == "" {
		t.Fatal("no ETag from cached response")
	}

	w := doGet(r, map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotModified)
	}
}

func TestCacheMiddlewareSkipsNonGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mem, err := kvc.NewKVStore(context.Background(), kvc.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	cfg := middleware.DefaultCacheConfig(appcache.NewCache(mem))
	cfg.TTL = time.Minute

	posts := 0
	r := gin.New()
	r.POST("/items", middleware.CacheMiddleware(cfg), func(c *gin.Context) {
		posts++
		c.JSON(http.StatusOK, gin.H{"posts": posts})
	})

	for i := 1; i <= 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/items", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		// POST 不在可缓存方法内，每次都应落到 handler
		if posts != i {
			t.Fatalf("posts = %d, want %d", posts, i)
		}
	}
}
