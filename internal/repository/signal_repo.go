package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teampulse/internal/model"
)

// SignalRepo stores signal time series points. Append-only; the current
// signal for a member is the most recent point.
type SignalRepo interface {
	Insert(ctx context.Context, signal *model.Signal) error
	LatestByMember(ctx context.Context, memberID string) (*model.Signal, error)
	ListByMember(ctx context.Context, memberID string, limit int64) ([]*model.Signal, error)
}

type signalRepo struct {
	collection *mongo.Collection
}

// NewSignalRepo creates a SignalRepo backed by the signals collection
func NewSignalRepo(db *mongo.Database) SignalRepo {
	return &signalRepo{collection: db.Collection("signals")}
}

func (r *signalRepo) Insert(ctx context.Context, signal *model.Signal) error {
	_, err := r.collection.InsertOne(ctx, signal)
	return err
}

func (r *signalRepo) LatestByMember(ctx context.Context, memberID string) (*model.Signal, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var signal model.Signal
	err := r.collection.FindOne(ctx, bson.M{"memberId": memberID}, opts).Decode(&signal)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &signal, nil
}

func (r *signalRepo) ListByMember(ctx context.Context, memberID string, limit int64) ([]*model.Signal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"memberId": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var signals []*model.Signal
	if err = cursor.All(ctx, &signals); err != nil {
		return nil, err
	}
	return signals, nil
}
