package recipes

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides recipe persistence. Reads are unscoped; UpdateOwned and
// DeleteOwned filter on (id AND owner) in a single storage operation, so a
// non-owner can neither mutate a record nor learn that it exists. Lookups
// that match nothing return (nil, nil).
type Repository interface {
	Insert(ctx context.Context, r *Recipe) (*Recipe, error)
	FindByID(ctx context.Context, id string) (*Recipe, error)
	FindAll(ctx context.Context, category string) ([]*Recipe, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch UpdatePatch) (*Recipe, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (*Recipe, error)
}

// MongoRepository implements Repository on a Mongo collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (m *MongoRepository) Insert(ctx context.Context, r *Recipe) (*Recipe, error) {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if _, err := m.col.InsertOne(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *MongoRepository) FindByID(ctx context.Context, id string) (*Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var r Recipe
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (m *MongoRepository) FindAll(ctx context.Context, category string) ([]*Recipe, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Recipe{}
	for cur.Next(ctx) {
		var r Recipe
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, cur.Err()
}

// ownedFilter builds the combined (id AND owner) filter every mutation runs
// through. Unparseable ids cannot match anything.
func ownedFilter(id, ownerID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "owner": owner}, true
}

func (m *MongoRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch UpdatePatch) (*Recipe, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, nil
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Ingredients != nil {
		set["ingredients"] = *patch.Ingredients
	}
	if patch.Steps != nil {
		set["steps"] = *patch.Steps
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Recipe
	if err := m.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MongoRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*Recipe, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, nil
	}
	var removed Recipe
	if err := m.col.FindOneAndDelete(ctx, filter).Decode(&removed); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &removed, nil
}
