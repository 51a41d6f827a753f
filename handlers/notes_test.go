package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/go-services/internal/notes"
)

func createNote(t *testing.T, env *testEnv, token, recipeID, content string) notes.Note {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/notes", token, gin.H{"content": content, "recipeId": recipeID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var n notes.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	return n
}

func TestNotesRequireAuthentication(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes"},
		{http.MethodGet, "/api/notes/abc"},
		{http.MethodPatch, "/api/notes/abc"},
		{http.MethodDelete, "/api/notes/abc"},
	} {
		w := env.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateNoteStampsOwner(t *testing.T) {
	env := newTestEnv(t)
	ana := env.signup(t, "Ana", "ana@example.com", "s3cret-pw")
	r := createRecipe(t, env, ana.Token, "Soup")

	n := createNote(t, env, ana.Token, r.ID.Hex(), "needs more salt")
	assert.Equal(t, ana.ID, n.OwnerID.Hex())
	assert.Equal(t, r.ID, n.RecipeID)
	assert.Equal(t, "needs more salt", n.Content)
}

func TestCreateNoteRequiresRecipeReference(t *testing.T) {
	env := newTestEnv(t)
	ana := env.signup(t, "Ana", "ana@example.com", "s3cret-pw")

	// absent reference
	w := env.do(t, http.MethodPost, "/api/notes", ana.Token, gin.H{
		"content": "simmer longer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// malformed reference
	w = env.do(t, http.MethodPost, "/api/notes", ana.Token, gin.H{
		"content": "simmer longer", "recipeId": "not-a-hex-id",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListNotesIsOwnerScopedAndPopulated(t *testing.T) {
	env := newTestEnv(t)
	ana := env.signup(t, "Ana", "ana@example.com", "s3cret-pw")
	ben := env.signup(t, "Ben", "ben@example.com", "other-pw")
	r := createRecipe(t, env, ana.Token, "Soup")
	createNote(t, env, ana.Token, r.ID.Hex(), "ana's note")
	createNote(t, env, ben.Token, r.ID.Hex(), "ben's note")

	w := env.do(t, http.MethodGet, "/api/notes", ana.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []struct {
		Content string `json:"content"`
		User    *struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "ana's note", views[0].Content)
	require.NotNil(t, views[0].User)
	assert.Equal(t, ana.ID, views[0].User.ID)
	assert.Equal(t, "Ana", views[0].User.Name)
}

func TestUpdateNoteRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	ana := env.signup(t, "Ana", "ana@example.com", "s3cret-pw")
	ben := env.signup(t, "Ben", "ben@example.com", "other-pw")
	r := createRecipe(t, env, ana.Token, "Soup")
	n := createNote(t, env, ana.Token, r.ID.Hex(), "draft")

	w := env.do(t, http.MethodPatch, "/api/notes/"+n.ID.Hex(), ben.Token, gin.H{"content": "hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPatch, "/api/notes/"+n.ID.Hex(), ana.Token, gin.H{"content": "final"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated notes.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "final", updated.Content)
}

func TestDeleteNoteReturnsRemovedRecord(t *testing.T) {
	env := newTestEnv(t)
	ana := env.signup(t, "Ana", "ana@example.com", "s3cret-pw")
	ben := env.signup(t, "Ben", "ben@example.com", "other-pw")
	r := createRecipe(t, env, ana.Token, "Soup")
	n := createNote(t, env, ana.Token, r.ID.Hex(), "to remove")

	w := env.do(t, http.MethodDelete, "/api/notes/"+n.ID.Hex(), ben.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/notes/"+n.ID.Hex(), ana.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var removed notes.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &removed))
	assert.Equal(t, n.ID, removed.ID)

	w = env.do(t, http.MethodDelete, "/api/notes/"+n.ID.Hex(), ana.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
