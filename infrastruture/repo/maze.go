package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mazeRecord is the BSON form of a stored maze document.
type mazeRecord struct {
	ID        string    `bson:"_id"`
	Document  string    `bson:"document"`
	CreatedAt time.Time `bson:"createdAt"`
}

// MazeRepo handles the persistence of maze documents in MongoDB.
type MazeRepo struct {
	collection *mongo.Collection
}

var _ i.MazeStore = &MazeRepo{}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// EnsureTTLIndex makes MongoDB expire documents ttl after they were saved.
// A zero ttl leaves documents in place.
func (r *MazeRepo) EnsureTTLIndex(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, index)
	return err
}

// Save inserts or updates a maze document.
func (r *MazeRepo) Save(ctx context.Context, m *i.StoredMaze) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": m.ID.String()}
	update := bson.M{
		"$set": bson.M{
			"document":  string(m.Document),
			"createdAt": m.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a maze document by its ID.
// Returns i.ErrMazeNotFound if the document is not found.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*i.StoredMaze, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var record mazeRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}

	return &i.StoredMaze{
		ID:        id,
		Document:  []byte(record.Document),
		CreatedAt: record.CreatedAt,
	}, nil
}

// Delete removes a maze document.
// Returns i.ErrMazeNotFound if the document is not found.
func (r *MazeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	if res.DeletedCount == 0 {
		return i.ErrMazeNotFound
	}
	return nil
}
