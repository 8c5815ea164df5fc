package httpapi

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futplanner/internal/domain/planner"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

// Plan builds a calendar from ?name=&timeZone=&entries=. entries is a flat
// league,team sequence given as one comma separated value or repeated.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := planRequest{
		Name:     strings.TrimSpace(query.Get("name")),
		TimeZone: strings.TrimSpace(query.Get("timeZone")),
		Entries:  planner.SplitEntries(query["entries"]),
	}

	ctx, span := startSpan(r.Context(), "httpapi.Handler.Plan", attribute.Int("plan.entries", len(req.Entries)))
	defer span.End()
	if req.TimeZone == "" {
		req.TimeZone = h.cfg.DefaultTimeZone
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.planner.Plan(ctx, usecase.PlanInput{
		Name:     req.Name,
		TimeZone: req.TimeZone,
		Entries:  req.Entries,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "plan calendar failed",
			"name", req.Name,
			"time_zone", req.TimeZone,
			"entries", len(req.Entries),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
