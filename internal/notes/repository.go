package notes

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides note persistence with the same contract as the recipe
// repository: unscoped reads, (id AND owner)-filtered mutations, (nil, nil)
// on no match.
type Repository interface {
	Insert(ctx context.Context, n *Note) (*Note, error)
	FindByID(ctx context.Context, id string) (*Note, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Note, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch UpdatePatch) (*Note, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (*Note, error)
}

// MongoRepository implements Repository on a Mongo collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	// notes are always listed per owner
	idx := mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

func (m *MongoRepository) Insert(ctx context.Context, n *Note) (*Note, error) {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if _, err := m.col.InsertOne(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (m *MongoRepository) FindByID(ctx context.Context, id string) (*Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var n Note
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (m *MongoRepository) FindByOwner(ctx context.Context, ownerID string) ([]*Note, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*Note{}, nil
	}
	cur, err := m.col.Find(ctx, bson.M{"user": owner})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Note{}
	for cur.Next(ctx) {
		var n Note
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, cur.Err()
}

func (m *MongoRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch UpdatePatch) (*Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, nil
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Note
	err = m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "user": owner}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MongoRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, nil
	}
	var removed Note
	if err := m.col.FindOneAndDelete(ctx, bson.M{"_id": oid, "user": owner}).Decode(&removed); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &removed, nil
}
