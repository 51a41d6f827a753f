package notes

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/recipebook/go-services/internal/models"
	"github.com/recipebook/go-services/internal/users"
	"github.com/recipebook/go-services/pkg/logger"
)

var (
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotFound conflates "absent" and "not yours" for mutations, same as
	// the recipe service.
	ErrNotFound = errors.New("note not found")
	// ErrBadRecipeRef signals a create with a missing or malformed recipe
	// reference.
	ErrBadRecipeRef = errors.New("invalid recipe reference")
)

// OwnerDirectory resolves user profiles for the owner join on note listings.
// users.Service satisfies it.
type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Service gates note mutations on the caller's identity and joins owner
// profiles onto listings.
type Service struct {
	repo   Repository
	owners OwnerDirectory
}

func NewService(r Repository, owners OwnerDirectory) *Service {
	return &Service{repo: r, owners: owners}
}

// Create inserts a note owned by the caller. Every note belongs to a recipe;
// a missing or malformed reference is rejected.
func (s *Service) Create(ctx context.Context, callerID string, in CreateInput) (*Note, error) {
	owner, err := primitive.ObjectIDFromHex(callerID)
	if callerID == "" || err != nil {
		return nil, ErrUnauthorized
	}
	rid, err := primitive.ObjectIDFromHex(in.RecipeID)
	if err != nil {
		return nil, ErrBadRecipeRef
	}
	return s.repo.Insert(ctx, &Note{OwnerID: owner, RecipeID: rid, Content: in.Content})
}

// ListByOwner returns the caller's notes with the owner profile populated.
// A note whose owner no longer exists is a data-integrity fault: it is logged
// and returned with a nil owner, never silently dropped.
func (s *Service) ListByOwner(ctx context.Context, callerID string) ([]*View, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	ns, err := s.repo.FindByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	// one lookup per distinct owner; listings are owner-scoped so in practice
	// this resolves once
	profiles := map[string]*OwnerSummary{}
	out := make([]*View, 0, len(ns))
	for _, n := range ns {
		ownerID := n.OwnerID.Hex()
		summary, seen := profiles[ownerID]
		if !seen {
			u, err := s.owners.GetByID(ctx, ownerID)
			switch {
			case errors.Is(err, users.ErrNotFound):
				logger.Errorf("note %s references missing owner %s", n.ID.Hex(), ownerID)
				summary = nil
			case err != nil:
				return nil, err
			default:
				summary = &OwnerSummary{ID: u.HexID(), Name: u.Name, Email: u.Email}
			}
			profiles[ownerID] = summary
		}
		out = append(out, &View{Note: n, Owner: summary})
	}
	return out, nil
}

// Get returns the note with the given id regardless of owner.
func (s *Service) Get(ctx context.Context, id string) (*Note, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

// Update applies a partial update to a note the caller owns.
func (s *Service) Update(ctx context.Context, callerID, id string, patch UpdatePatch) (*Note, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	n, err := s.repo.UpdateOwned(ctx, id, callerID, patch)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

// Delete removes a note the caller owns and returns the removed record.
func (s *Service) Delete(ctx context.Context, callerID, id string) (*Note, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	n, err := s.repo.DeleteOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}
