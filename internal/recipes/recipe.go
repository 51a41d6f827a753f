package recipes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe is an owned content record. OwnerID is set once at creation from the
// caller's verified identity and never changes afterwards.
type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner" json:"ownerId"`
	Title       string             `bson:"title" json:"title"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Steps       []string           `bson:"steps" json:"steps"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateInput carries the caller-supplied fields of a new recipe. There is
// deliberately no owner field here.
type CreateInput struct {
	Title       string
	Ingredients []string
	Steps       []string
	Category    string
	Image       string
}

// UpdatePatch is a partial update; nil fields are left unchanged.
type UpdatePatch struct {
	Title       *string
	Ingredients *[]string
	Steps       *[]string
	Category    *string
	Image       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UpdatePatch) IsEmpty() bool {
	return p.Title == nil && p.Ingredients == nil && p.Steps == nil && p.Category == nil && p.Image == nil
}
