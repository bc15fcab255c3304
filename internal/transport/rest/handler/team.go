package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"teampulse/internal/service"
)

// TeamHandler serves team aggregates and administrative triggers
type TeamHandler struct {
	healthSvc   *service.HealthService
	alertSvc    *service.AlertService
	dispatchSvc *service.DispatchService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(healthSvc *service.HealthService, alertSvc *service.AlertService, dispatchSvc *service.DispatchService) *TeamHandler {
	return &TeamHandler{
		healthSvc:   healthSvc,
		alertSvc:    alertSvc,
		dispatchSvc: dispatchSvc,
	}
}

// Health handles GET /v1/teams/{teamId}/health
func (h *TeamHandler) Health(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]

	health, err := h.healthSvc.Snapshot(r.Context(), teamID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, health)
}

// ScanAlerts handles POST /v1/alerts/scan; teamId is an optional query param
func (h *TeamHandler) ScanAlerts(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")

	alerts, err := h.alertSvc.Scan(r.Context(), teamID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

// RunDispatch handles POST /v1/dispatch/run
func (h *TeamHandler) RunDispatch(w http.ResponseWriter, r *http.Request) {
	dispatched, err := h.dispatchSvc.DispatchDue(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"dispatched": dispatched})
}
