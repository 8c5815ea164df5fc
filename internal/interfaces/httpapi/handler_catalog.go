package httpapi

import "net/http"

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.catalog.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueDTOs(items))
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCountries")
	defer span.End()

	items, err := h.catalog.ListCountries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list countries failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]countryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, countryDTO{
			Name:    item.Name,
			Flag:    item.Flag,
			Leagues: toLeagueDTOs(item.Leagues),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
