package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"teampulse/internal/repository"
	"teampulse/internal/service"
	"teampulse/internal/transport/rest/handler"
	"teampulse/internal/transport/rest/middleware"
	"teampulse/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	PipelineService *service.PipelineService
	HealthService   *service.HealthService
	AlertService    *service.AlertService
	DispatchService *service.DispatchService
	SignalRepo      repository.SignalRepo
	InsightRepo     repository.InsightRepo
	WSHandler       *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	analyzeHandler := handler.NewAnalyzeHandler(c.PipelineService)
	memberHandler := handler.NewMemberHandler(c.SignalRepo, c.InsightRepo)
	teamHandler := handler.NewTeamHandler(c.HealthService, c.AlertService, c.DispatchService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/teams/{teamId}", c.WSHandler.TeamWS).Methods("GET")

	// Health check and metrics
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/analyze/survey", analyzeHandler.AnalyzeSurvey).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/analyze/meeting", analyzeHandler.AnalyzeMeeting).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/members/{memberId}/signals", memberHandler.Signals).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/members/{memberId}/insights", memberHandler.Insights).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/teams/{teamId}/health", teamHandler.Health).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/alerts/scan", teamHandler.ScanAlerts).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/dispatch/run", teamHandler.RunDispatch).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
