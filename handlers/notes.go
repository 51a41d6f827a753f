package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/go-services/internal/notes"
	"github.com/recipebook/go-services/pkg/logger"
	"github.com/recipebook/go-services/pkg/middleware"
)

// CreateNoteRequest is the payload for creating a note. Notes always attach
// to a recipe.
type CreateNoteRequest struct {
	Content  string `json:"content" binding:"required"`
	RecipeID string `json:"recipeId" binding:"required"`
}

// UpdateNoteRequest is a partial update.
type UpdateNoteRequest struct {
	Content *string `json:"content"`
}

// NotesHandler exposes the REST notes API. Every route requires an
// authenticated caller, matching the mobile client's usage.
type NotesHandler struct {
	svc *notes.Service
}

func NewNotesHandler(s *notes.Service) *NotesHandler {
	return &NotesHandler{svc: s}
}

// Register routes under /api/notes
func (h *NotesHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/notes", middleware.RequireUser())
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *NotesHandler) Create(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), notes.CreateInput{
		Content:  req.Content,
		RecipeID: req.RecipeID,
	})
	if err != nil {
		if errors.Is(err, notes.ErrBadRecipeRef) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe reference"})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// List returns the caller's notes with owner profiles populated.
func (h *NotesHandler) List(c *gin.Context) {
	views, err := h.svc.ListByOwner(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *NotesHandler) Get(c *gin.Context) {
	n, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotesHandler) Update(c *gin.Context) {
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), notes.UpdatePatch{Content: req.Content})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// Delete removes a note the caller owns and returns the removed record.
func (h *NotesHandler) Delete(c *gin.Context) {
	n, err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotesHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, notes.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, notes.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
	default:
		logger.Errorf("note operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
