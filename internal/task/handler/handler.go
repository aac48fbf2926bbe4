// Package handler exposes the task workflow over HTTP. Tasks are opened by
// customer lifecycle commands; operators close them here to unblock the
// guarded reverse transitions.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custodia/internal/task/service"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/httputil"
	"custodia/pkg/requestcontext"
)

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/customers/{identifier}/tasks/{kind}/close", h.closeTask)
	r.Get("/customers/{identifier}/tasks/{kind}", h.getTaskStatus)
}

func (h *Handler) closeTask(w http.ResponseWriter, r *http.Request) {
	if requestcontext.Actor(r.Context()) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "command requires an acting user"))
		return
	}

	customerID := domain.CustomerID(chi.URLParam(r, "identifier"))
	kind := chi.URLParam(r, "kind")
	if err := h.svc.CloseTask(r.Context(), customerID, kind); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "task closed",
		"customer", customerID,
		"kind", kind,
		"actor", requestcontext.Actor(r.Context()),
	)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) getTaskStatus(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerID(chi.URLParam(r, "identifier"))
	kind := chi.URLParam(r, "kind")

	open, err := h.svc.HasOpenTask(r.Context(), customerID, kind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"open": open})
}
