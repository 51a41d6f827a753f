package notes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is an owned content record, optionally attached to a recipe. As with
// recipes, OwnerID is stamped from the verified identity at creation and is
// immutable.
type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"user" json:"userId"`
	RecipeID  primitive.ObjectID `bson:"recipe" json:"recipeId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OwnerSummary is the owner profile joined onto listed notes.
type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// View is a note with its owner profile populated. Owner is nil when the
// owning account no longer exists (see Service.ListByOwner).
type View struct {
	*Note
	Owner *OwnerSummary `json:"user,omitempty"`
}

// CreateInput carries the caller-supplied fields of a new note. RecipeID is
// mandatory; a note always belongs to a recipe.
type CreateInput struct {
	Content  string
	RecipeID string
}

// UpdatePatch is a partial update; nil fields are left unchanged.
type UpdatePatch struct {
	Content *string
}
