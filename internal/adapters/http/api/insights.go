// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/joblens/internal/domain/insights"
)

// InsightDependencies defines the interface for insight reads.
type InsightDependencies interface {
	Insights(ctx context.Context) insights.Insights
}

// InsightsHandler handles insight requests.
type InsightsHandler struct {
	deps InsightDependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps InsightDependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// HandleGetInsights handles GET /insights requests.
func (h *InsightsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Insights(r.Context()))
}

// HandleGetTable handles GET /insights/{table} requests, serving one table
// of the full result: roles, salaries, skills, countries, or trend.
func (h *InsightsHandler) HandleGetTable(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_insights_table"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	table := strings.TrimPrefix(r.URL.Path, "/insights/")
	if table == "" || strings.Contains(table, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	all := h.deps.Insights(r.Context())
	switch table {
	case "roles":
		writeJSON(w, http.StatusOK, all.TopRoles)
	case "salaries":
		writeJSON(w, http.StatusOK, all.SalaryByRole)
	case "skills":
		writeJSON(w, http.StatusOK, all.SkillsDemand)
	case "countries":
		writeJSON(w, http.StatusOK, all.JobsByCountry)
	case "trend":
		writeJSON(w, http.StatusOK, all.SalaryTrend)
	default:
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrBadRequest))
	}
}
