package app

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"teampulse/internal/cache"
	"teampulse/internal/repository"
)

// App bundles the data-layer collaborators shared across services.
type App struct {
	ResponseRepo repository.ResponseRepo
	InsightRepo  repository.InsightRepo
	SignalRepo   repository.SignalRepo
	MemberRepo   repository.MemberRepo
	SurveyRepo   repository.SurveyRepo

	SignalCache cache.SignalCache
	HealthCache cache.HealthCache
}

// New builds the repositories and caches over live connections.
func New(db *mongo.Database, rdb *redis.Client) *App {
	return &App{
		ResponseRepo: repository.NewResponseRepo(db),
		InsightRepo:  repository.NewInsightRepo(db),
		SignalRepo:   repository.NewSignalRepo(db),
		MemberRepo:   repository.NewMemberRepo(db),
		SurveyRepo:   repository.NewSurveyRepo(db),
		SignalCache:  cache.NewSignalCache(rdb),
		HealthCache:  cache.NewHealthCache(rdb),
	}
}
