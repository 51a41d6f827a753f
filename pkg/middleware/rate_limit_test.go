package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// injectUser fakes an upstream Identity resolution so each test rate-limits an
// isolated key instead of the shared test client IP.
func injectUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, id)
		c.Next()
	}
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(injectUser("rl-user-under"))
	r.Use(RateLimitMiddleware(10, 2)) // generous rate
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// two quick requests should pass
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, w2.Code)
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(injectUser("rl-user-exceed"))
	// low rate to force rejections
	r.Use(RateLimitMiddleware(2, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// first request -> allowed
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest("GET", "/limited", nil))
	require.Equal(t, http.StatusOK, w1.Code)

	// immediate second request -> should be rate-limited
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/limited", nil))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)

	// at 2 rps a token replenishes in 500ms; wait a bit longer and retry
	time.Sleep(600 * time.Millisecond)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest("GET", "/limited", nil))
	require.Equal(t, http.StatusOK, w3.Code)
}

func TestRateLimitMiddleware_KeysPerUser(t *testing.T) {
	mk := func(user string) *gin.Engine {
		r := gin.New()
		r.Use(injectUser(user))
		r.Use(RateLimitMiddleware(2, 1))
		r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
		return r
	}
	ra := mk("rl-user-a")
	rb := mk("rl-user-b")

	// exhaust user a's bucket
	w1 := httptest.NewRecorder()
	ra.ServeHTTP(w1, httptest.NewRequest("GET", "/u", nil))
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := httptest.NewRecorder()
	ra.ServeHTTP(w2, httptest.NewRequest("GET", "/u", nil))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)

	// user b is unaffected
	w3 := httptest.NewRecorder()
	rb.ServeHTTP(w3, httptest.NewRequest("GET", "/u", nil))
	require.Equal(t, http.StatusOK, w3.Code)
}
