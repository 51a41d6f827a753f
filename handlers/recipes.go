package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/go-services/internal/recipes"
	"github.com/recipebook/go-services/pkg/logger"
	"github.com/recipebook/go-services/pkg/middleware"
)

// ImageStorage stores recipe image objects. *storage.ImageStore implements
// it; tests substitute an in-memory fake.
type ImageStorage interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// CreateRecipeRequest is the payload for creating a recipe. Any owner field a
// client might send simply has nowhere to land here.
type CreateRecipeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
}

// UpdateRecipeRequest is a partial update; absent fields stay unchanged.
type UpdateRecipeRequest struct {
	Title       *string   `json:"title"`
	Ingredients *[]string `json:"ingredients"`
	Steps       *[]string `json:"steps"`
	Category    *string   `json:"category"`
	Image       *string   `json:"image"`
}

// RecipeHandler exposes recipe CRUD plus image upload. Images may be nil when
// object storage is not configured.
type RecipeHandler struct {
	svc    *recipes.Service
	images ImageStorage
}

func NewRecipeHandler(s *recipes.Service, images ImageStorage) *RecipeHandler {
	return &RecipeHandler{svc: s, images: images}
}

// Register routes under /api/v1/recipes
func (h *RecipeHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/v1/recipes")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/image", h.UploadImage)
}

// List returns all recipes, optionally filtered with ?category=.
func (h *RecipeHandler) List(c *gin.Context) {
	rs, err := h.svc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		logger.Errorf("recipe list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recipe list failed"})
		return
	}
	c.JSON(http.StatusOK, rs)
}

// Get returns a single recipe by id. No ownership filter on reads.
func (h *RecipeHandler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Create inserts a recipe owned by the caller.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), recipes.CreateInput{
		Title:       req.Title,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Update applies a partial update to a recipe the caller owns.
func (h *RecipeHandler) Update(c *gin.Context) {
	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), recipes.UpdatePatch{
		Title:       req.Title,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Delete removes a recipe the caller owns and returns the removed record so
// clients can evict exactly that id from cached lists.
func (h *RecipeHandler) Delete(c *gin.Context) {
	r, err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UploadImage stores a multipart "image" file for a recipe the caller owns
// and records the object key on the recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}
	// anonymous callers never reach the bucket
	caller := middleware.CurrentUserID(c)
	if caller == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id := c.Param("id")
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
		return
	}
	defer f.Close()

	key := "recipes/" + id + "/" + path.Base(fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if err := h.images.Put(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		logger.Errorf("image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
		return
	}

	// recording the key runs through the same (id AND owner) filter as any
	// other mutation; when the filter matches nothing the stored object must
	// not survive either
	r, err := h.svc.Update(c.Request.Context(), caller, id, recipes.UpdatePatch{Image: &key})
	if err != nil {
		if rmErr := h.images.Remove(c.Request.Context(), key); rmErr != nil {
			logger.Errorf("orphaned image cleanup failed for %s: %v", key, rmErr)
		}
		h.writeError(c, err)
		return
	}
	url, err := h.images.PresignedURL(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		logger.Errorf("presign failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": r, "imageUrl": url})
}

func (h *RecipeHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recipes.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, recipes.ErrNotFound):
		// also covers records owned by someone else; existence is not disclosed
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	default:
		logger.Errorf("recipe operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
