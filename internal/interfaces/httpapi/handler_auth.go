package httpapi

import (
	"net/http"
	"strings"
)

// BeginAuth redirects the calendar owner to the consent screen.
func (h *Handler) BeginAuth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginAuth")
	defer span.End()

	authURL, err := h.auth.BeginAuth(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "begin auth failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuthCallback")
	defer span.End()

	query := r.URL.Query()
	if denied := strings.TrimSpace(query.Get("error")); denied != "" {
		h.logger.WarnContext(ctx, "auth consent denied", "reason", denied)
	}

	req := authCallbackRequest{
		Code:  strings.TrimSpace(query.Get("code")),
		State: strings.TrimSpace(query.Get("state")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.auth.CompleteAuth(ctx, req.Code, req.State); err != nil {
		h.logger.ErrorContext(ctx, "complete auth failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "authorized"})
}
