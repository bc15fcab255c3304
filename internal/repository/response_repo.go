package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teampulse/internal/model"
)

// ResponseRepo stores immutable response sets. Insert-only by design; a
// resubmission is a new document, never an overwrite.
type ResponseRepo interface {
	Insert(ctx context.Context, set *model.ResponseSet) error
	GetByID(ctx context.Context, id string) (*model.ResponseSet, error)
	ListBySource(ctx context.Context, kind model.SourceKind, sourceID string) ([]*model.ResponseSet, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*model.ResponseSet, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a ResponseRepo backed by the response_sets collection
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{collection: db.Collection("response_sets")}
}

func (r *responseRepo) Insert(ctx context.Context, set *model.ResponseSet) error {
	_, err := r.collection.InsertOne(ctx, set)
	return err
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.ResponseSet, error) {
	var set model.ResponseSet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&set)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *responseRepo) ListBySource(ctx context.Context, kind model.SourceKind, sourceID string) ([]*model.ResponseSet, error) {
	return r.list(ctx, bson.M{"sourceKind": kind, "sourceId": sourceID})
}

func (r *responseRepo) ListBySubject(ctx context.Context, subjectID string) ([]*model.ResponseSet, error) {
	return r.list(ctx, bson.M{"subjectId": subjectID})
}

func (r *responseRepo) list(ctx context.Context, filter bson.M) ([]*model.ResponseSet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []*model.ResponseSet
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}
