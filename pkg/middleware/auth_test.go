package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/recipebook/go-services/internal/models"
	"github.com/recipebook/go-services/internal/tokens"
)

const mwSecret = "middleware-test-secret-32-bytes-xx"

func identityRouter() *gin.Engine {
	r := gin.New()
	r.Use(Identity(mwSecret))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c), "email": CurrentEmail(c)})
	})
	r.GET("/private", RequireUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
	})
	return r
}

func TestIdentity_NoHeaderIsAnonymous(t *testing.T) {
	r := identityRouter()
	req := httptest.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":""`)
}

func TestIdentity_InvalidTokenIsAnonymousNotAnError(t *testing.T) {
	r := identityRouter()
	for _, header := range []string{
		"Bearer garbage",
		"Bearer a.b.c",
		"not-even-bearer",
	} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "header %q should degrade to anonymous", header)
		assert.Contains(t, w.Body.String(), `"userId":""`)
	}
}

func TestIdentity_ValidToken(t *testing.T) {
	u := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com"}
	tok, err := tokens.Issue(mwSecret, u)
	assert.NoError(t, err)

	r := identityRouter()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.HexID())
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestIdentity_BearerPrefixOptional(t *testing.T) {
	u := &models.User{ID: primitive.NewObjectID(), Email: "bare@example.com"}
	tok, err := tokens.Issue(mwSecret, u)
	assert.NoError(t, err)

	r := identityRouter()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", tok) // no "Bearer " prefix
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.HexID())
}

func TestIdentity_WrongSecretIsAnonymous(t *testing.T) {
	u := &models.User{ID: primitive.NewObjectID(), Email: "x@x"}
	tok, err := tokens.Issue("some-other-secret-32-bytes-xxxxxxx", u)
	assert.NoError(t, err)

	r := identityRouter()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":""`)
}

func TestRequireUser_RejectsAnonymous(t *testing.T) {
	r := identityRouter()
	req := httptest.NewRequest("GET", "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_PassesAuthenticated(t *testing.T) {
	u := &models.User{ID: primitive.NewObjectID(), Email: "p@x"}
	tok, err := tokens.Issue(mwSecret, u)
	assert.NoError(t, err)

	r := identityRouter()
	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
