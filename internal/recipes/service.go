package recipes

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUnauthorized signals a mutation attempted without a resolved identity.
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotFound covers both a genuinely absent recipe and one owned by
	// someone else: the (id AND owner) filter makes the two cases
	// indistinguishable, so existence never leaks to non-owners.
	ErrNotFound = errors.New("recipe not found")
)

// Service gates recipe mutations on the caller's identity. Reads are open to
// anyone, including anonymous callers.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create inserts a recipe owned by the caller. The owner always comes from
// the resolved identity, never from the payload.
func (s *Service) Create(ctx context.Context, callerID string, in CreateInput) (*Recipe, error) {
	owner, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	r := &Recipe{
		OwnerID:     owner,
		Title:       in.Title,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		Category:    in.Category,
		Image:       in.Image,
	}
	return s.repo.Insert(ctx, r)
}

// Get returns the recipe with the given id regardless of owner.
func (s *Service) Get(ctx context.Context, id string) (*Recipe, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// List returns all recipes, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string) ([]*Recipe, error) {
	return s.repo.FindAll(ctx, category)
}

// Update applies a partial update to a recipe the caller owns.
func (s *Service) Update(ctx context.Context, callerID, id string, patch UpdatePatch) (*Recipe, error) {
	if _, err := requireCaller(callerID); err != nil {
		return nil, err
	}
	r, err := s.repo.UpdateOwned(ctx, id, callerID, patch)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// Delete removes a recipe the caller owns and returns the removed record, so
// clients can drop exactly that id from cached views.
func (s *Service) Delete(ctx context.Context, callerID, id string) (*Recipe, error) {
	if _, err := requireCaller(callerID); err != nil {
		return nil, err
	}
	r, err := s.repo.DeleteOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

func requireCaller(callerID string) (primitive.ObjectID, error) {
	if callerID == "" {
		return primitive.NilObjectID, ErrUnauthorized
	}
	oid, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		// token subjects are always hex ids this process issued
		return primitive.NilObjectID, ErrUnauthorized
	}
	return oid, nil
}
