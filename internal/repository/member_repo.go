package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"teampulse/internal/model"
)

// MemberRepo stores team members
type MemberRepo interface {
	Insert(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	ListByTeam(ctx context.Context, teamID string) ([]*model.Member, error)
	ListAll(ctx context.Context) ([]*model.Member, error)
}

type memberRepo struct {
	collection *mongo.Collection
}

// NewMemberRepo creates a MemberRepo backed by the members collection
func NewMemberRepo(db *mongo.Database) MemberRepo {
	return &memberRepo{collection: db.Collection("members")}
}

func (r *memberRepo) Insert(ctx context.Context, member *model.Member) error {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, member)
	return err
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Member, error) {
	return r.list(ctx, bson.M{"teamId": teamID})
}

func (r *memberRepo) ListAll(ctx context.Context) ([]*model.Member, error) {
	return r.list(ctx, bson.M{})
}

func (r *memberRepo) list(ctx context.Context, filter bson.M) ([]*model.Member, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []*model.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
