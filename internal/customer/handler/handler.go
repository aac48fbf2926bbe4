// Package handler exposes the customer aggregate over HTTP. Lifecycle
// transitions go through a single commands endpoint; sub-entities get
// their own REST surfaces nested under the customer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custodia/internal/customer/models"
	"custodia/internal/customer/service"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/httputil"
)

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the customer surface on r. Auth middleware is attached by
// the caller.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.createCustomer)
		r.Route("/{identifier}", func(r chi.Router) {
			r.Get("/", h.getCustomer)
			r.Put("/", h.updateCustomer)
			r.Post("/commands", h.executeCommand)
			r.Get("/commands", h.listCommands)

			r.Get("/address", h.getAddress)
			r.Put("/address", h.updateAddress)

			r.Get("/contact", h.getContactDetails)
			r.Put("/contact", h.updateContactDetails)

			r.Get("/fields", h.getFieldValues)

			r.Route("/identifications", func(r chi.Router) {
				r.Get("/", h.listCards)
				r.Post("/", h.createCard)
				r.Route("/{number}", func(r chi.Router) {
					r.Get("/", h.getCard)
					r.Put("/", h.updateCard)
					r.Delete("/", h.deleteCard)

					r.Get("/scans", h.listScans)
					r.Post("/scans", h.createScan)
					r.Get("/scans/{scanIdentifier}", h.getScan)
					r.Get("/scans/{scanIdentifier}/image", h.getScanImage)
					r.Delete("/scans/{scanIdentifier}", h.deleteScan)
				})
			})

			r.Get("/portrait", h.getPortrait)
			r.Post("/portrait", h.createPortrait)
			r.Delete("/portrait", h.deletePortrait)
		})
	})
}

func customerID(r *http.Request) domain.CustomerID {
	return domain.CustomerID(chi.URLParam(r, "identifier"))
}

func cardNumber(r *http.Request) domain.CardNumber {
	return domain.CardNumber(chi.URLParam(r, "number"))
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	customer, err := h.svc.CreateCustomer(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, customerFromModel(customer))
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.svc.GetCustomer(r.Context(), customerID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, customerFromModel(customer))
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.svc.UpdateCustomer(r.Context(), customerID(r), input); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) executeCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	id := customerID(r)
	var err error
	switch models.Action(req.Action) {
	case models.ActionActivate:
		err = h.svc.ActivateCustomer(r.Context(), id, req.Comment)
	case models.ActionLock:
		err = h.svc.LockCustomer(r.Context(), id, req.Comment)
	case models.ActionUnlock:
		err = h.svc.UnlockCustomer(r.Context(), id, req.Comment)
	case models.ActionClose:
		err = h.svc.CloseCustomer(r.Context(), id, req.Comment)
	case models.ActionReopen:
		err = h.svc.ReopenCustomer(r.Context(), id, req.Comment)
	default:
		err = dErrors.New(dErrors.CodeBadRequest, "unknown command action %q", req.Action)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) listCommands(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.GetCommandLog(r.Context(), customerID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, commandLogFromModel(entries))
}

func (h *Handler) getAddress(w http.ResponseWriter, r *http.Request) {
	address, err := h.svc.GetAddress(r.Context(), customerID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, addressFromModel(address))
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	var req addressPayload
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.UpdateAddress(r.Context(), customerID(r), req.toModel()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) getContactDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.GetContactDetails(r.Context(), customerID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contactDetailsFromModel(details))
}

func (h *Handler) updateContactDetails(w http.ResponseWriter, r *http.Request) {
	var req []contactDetailPayload
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.UpdateContactDetails(r.Context(), customerID(r), contactDetailsToModel(req)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) getFieldValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.GetFieldValues(r.Context(), customerID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fieldValuesFromModel(values))
}

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.GetIdentificationCards(r.Context(), customerID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]cardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, cardFromModel(&cards[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.CreateIdentificationCard(r.Context(), customerID(r), input); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) getCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.svc.GetIdentificationCard(r.Context(), customerID(r), cardNumber(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cardFromModel(card))
}

func (h *Handler) updateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.svc.UpdateIdentificationCard(r.Context(), customerID(r), cardNumber(r), input); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteIdentificationCard(r.Context(), customerID(r), cardNumber(r)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listScans(w http.ResponseWriter, r *http.Request) {
	scans, err := h.svc.GetIdentificationCardScans(r.Context(), customerID(r), cardNumber(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]scanResponse, 0, len(scans))
	for i := range scans {
		out = append(out, scanFromModel(&scans[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) createScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	input := service.ScanInput{
		Identifier:  domain.ScanID(req.Identifier),
		Description: req.Description,
		Image:       req.Image,
		ContentType: req.ContentType,
	}
	if err := h.svc.CreateIdentificationCardScan(r.Context(), customerID(r), cardNumber(r), input); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) getScan(w http.ResponseWriter, r *http.Request) {
	scan, err := h.svc.GetIdentificationCardScan(r.Context(), customerID(r), cardNumber(r),
		domain.ScanID(chi.URLParam(r, "scanIdentifier")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scanFromModel(scan))
}

func (h *Handler) getScanImage(w http.ResponseWriter, r *http.Request) {
	scan, err := h.svc.GetIdentificationCardScan(r.Context(), customerID(r), cardNumber(r),
		domain.ScanID(chi.URLParam(r, "scanIdentifier")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", scan.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(scan.Image)
}

func (h *Handler) deleteScan(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteIdentificationCardScan(r.Context(), customerID(r), cardNumber(r),
		domain.ScanID(chi.URLParam(r, "scanIdentifier")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getPortrait(w http.ResponseWriter, r *http.Request) {
	portrait, err := h.svc.GetPortrait(r.Context(), customerID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", portrait.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(portrait.Image)
}

func (h *Handler) createPortrait(w http.ResponseWriter, r *http.Request) {
	var req portraitRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	input := service.PortraitInput{Image: req.Image, ContentType: req.ContentType}
	if err := h.svc.CreatePortrait(r.Context(), customerID(r), input); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) deletePortrait(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePortrait(r.Context(), customerID(r)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
