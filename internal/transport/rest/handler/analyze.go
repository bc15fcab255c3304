package handler

import (
	"encoding/json"
	"net/http"

	"teampulse/internal/service"
)

// AnalyzeHandler handles the pipeline endpoints
type AnalyzeHandler struct {
	pipeline *service.PipelineService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(pipeline *service.PipelineService) *AnalyzeHandler {
	return &AnalyzeHandler{pipeline: pipeline}
}

// AnalyzeSurvey handles POST /v1/analyze/survey
func (h *AnalyzeHandler) AnalyzeSurvey(w http.ResponseWriter, r *http.Request) {
	var req service.SurveyAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.pipeline.AnalyzeSurvey(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// AnalyzeMeeting handles POST /v1/analyze/meeting
func (h *AnalyzeHandler) AnalyzeMeeting(w http.ResponseWriter, r *http.Request) {
	var req service.MeetingAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.pipeline.AnalyzeMeeting(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
