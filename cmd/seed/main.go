package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teampulse/internal/model"
	"teampulse/internal/repository"
)

func main() {
	mongoURI := os.Getenv("TEAMPULSE_MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("teampulse")
	memberRepo := repository.NewMemberRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)

	teamID := "team_demo"

	members := []*model.Member{
		{ID: uuid.New().String(), TeamID: teamID, Name: "Dana Reyes", Email: "dana@example.com", Role: "engineer"},
		{ID: uuid.New().String(), TeamID: teamID, Name: "Sam Okafor", Email: "sam@example.com", Role: "engineer"},
		{ID: uuid.New().String(), TeamID: teamID, Name: "Priya Nair", Email: "priya@example.com", Role: "designer"},
	}
	for _, m := range members {
		if err := memberRepo.Insert(ctx, m); err != nil {
			log.Fatalf("Failed to insert member %s: %v", m.Name, err)
		}
		log.Printf("Seeded member %s (%s)", m.Name, m.ID)
	}

	survey := &model.Survey{
		ID:     uuid.New().String(),
		TeamID: teamID,
		Title:  "Weekly Pulse Check",
		Questions: []model.Question{
			{ID: "Q1", Type: model.AnswerTypeRating, Prompt: "How satisfied are you with your work this week? (1-10)"},
			{ID: "Q2", Type: model.AnswerTypeText, Prompt: "What went well this week?"},
			{ID: "Q3", Type: model.AnswerTypeText, Prompt: "What was challenging this week?"},
			{ID: "Q4", Type: model.AnswerTypeBoolean, Prompt: "Do you feel supported by your manager?"},
			{ID: "Q5", Type: model.AnswerTypeChoice, Prompt: "What is your main focus next week?"},
		},
		Recurring:    true,
		IntervalDays: 7,
	}
	if err := surveyRepo.Insert(ctx, survey); err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}
	log.Printf("Seeded recurring survey %s (%s)", survey.Title, survey.ID)
}
