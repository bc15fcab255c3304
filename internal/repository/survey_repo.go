package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"teampulse/internal/model"
)

// SurveyRepo stores survey templates. MarkSent is the one mutation the
// dispatch workflow performs; pipeline-owned records are never updated.
type SurveyRepo interface {
	Insert(ctx context.Context, survey *model.Survey) error
	GetByID(ctx context.Context, id string) (*model.Survey, error)
	ListRecurring(ctx context.Context) ([]*model.Survey, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a SurveyRepo backed by the surveys collection
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{collection: db.Collection("surveys")}
}

func (r *surveyRepo) Insert(ctx context.Context, survey *model.Survey) error {
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, survey)
	return err
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) ListRecurring(ctx context.Context) ([]*model.Survey, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"recurring": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.Survey
	if err = cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	update := bson.M{"$set": bson.M{"lastSentAt": sentAt}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
