package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teampulse/internal/model"
)

// InsightRepo stores insight records. Append-only from the pipeline's
// perspective; deletion is an administrative operation outside this service.
type InsightRepo interface {
	Insert(ctx context.Context, insight *model.Insight) error
	ListByMember(ctx context.Context, memberID string, limit int64) ([]*model.Insight, error)
}

type insightRepo struct {
	collection *mongo.Collection
}

// NewInsightRepo creates an InsightRepo backed by the insights collection
func NewInsightRepo(db *mongo.Database) InsightRepo {
	return &insightRepo{collection: db.Collection("insights")}
}

func (r *insightRepo) Insert(ctx context.Context, insight *model.Insight) error {
	_, err := r.collection.InsertOne(ctx, insight)
	return err
}

func (r *insightRepo) ListByMember(ctx context.Context, memberID string, limit int64) ([]*model.Insight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"memberId": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var insights []*model.Insight
	if err = cursor.All(ctx, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}
