package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"teampulse/internal/repository"
)

// MemberHandler serves member dashboard reads
type MemberHandler struct {
	signals  repository.SignalRepo
	insights repository.InsightRepo
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(signals repository.SignalRepo, insights repository.InsightRepo) *MemberHandler {
	return &MemberHandler{
		signals:  signals,
		insights: insights,
	}
}

// Signals handles GET /v1/members/{memberId}/signals
func (h *MemberHandler) Signals(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["memberId"]

	signals, err := h.signals.ListByMember(r.Context(), memberID, parseLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"signals": signals})
}

// Insights handles GET /v1/members/{memberId}/insights
func (h *MemberHandler) Insights(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["memberId"]

	insights, err := h.insights.ListByMember(r.Context(), memberID, parseLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"insights": insights})
}

func parseLimit(r *http.Request) int64 {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return 50
}
