package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fliamecomm/storefront/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type failingCounter struct{}

func (failingCounter) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	counter := cache.NewInMemoryWindowCounter(time.Minute)
	defer counter.Close()

	router := gin.New()
	router.Use(RateLimit(counter, RateLimitConfig{Name: "test", Limit: 2, Window: time.Minute}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	var last *httptest.ResponseRecorder
	for i := range codes {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/test", nil))
		codes[i] = last.Code
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", last.Header().Get("Retry-After"))
}

func TestRateLimit_SeparateKeys(t *testing.T) {
	counter := cache.NewInMemoryWindowCounter(time.Minute)
	defer counter.Close()

	router := gin.New()
	router.Use(RateLimit(counter, RateLimitConfig{
		Name: "test", Limit: 1, Window: time.Minute,
		KeyFunc: func(c *gin.Context) string { return c.GetHeader("X-Client") },
	}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, client := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Client", client)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, client)
	}
}

func TestRateLimit_CounterFailureAllows(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(failingCounter{}, RateLimitConfig{Name: "test", Limit: 1, Window: time.Minute}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestPostOnly(t *testing.T) {
	counter := cache.NewInMemoryWindowCounter(time.Minute)
	defer counter.Close()

	router := gin.New()
	router.Use(PostOnly(RateLimit(counter, RateLimitConfig{Name: "auth", Limit: 1, Window: time.Minute})))
	router.GET("/login/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/login/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
