package consent

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tendant/simple-consent/pkg/errs"
	"github.com/tendant/simple-consent/pkg/resulthttp"
)

// Handler exposes consent operations over HTTP.
type Handler struct {
	service  *Service
	boundary *resulthttp.Handler
}

func NewHandler(service *Service, boundary *resulthttp.Handler) *Handler {
	return &Handler{service: service, boundary: boundary}
}

// RegisterRoutes mounts the consent endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/consents", func(r chi.Router) {
		r.Post("/", h.boundary.Wrap(h.CreateConsent))
		r.Get("/", h.boundary.Wrap(h.ListConsents))
		r.Get("/verify", h.boundary.Wrap(h.VerifyConsent))
		r.Get("/{id}", h.boundary.Wrap(h.GetConsent))
		r.Delete("/{id}", h.boundary.Wrap(h.WithdrawConsent))
	})
}

func (h *Handler) CreateConsent(w http.ResponseWriter, r *http.Request) error {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return errs.New("invalid request body", errs.Options{
			Code:     errs.CodeBadRequest,
			Status:   http.StatusBadRequest,
			Category: errs.CategoryValidation,
			Cause:    err,
		})
	}
	resulthttp.Respond(h.boundary, w, r, h.service.CreateConsent(r.Context(), body), http.StatusCreated)
	return nil
}

func (h *Handler) GetConsent(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	res := h.service.GetConsent(ctx, chi.URLParam(r, "id")).Await(ctx)
	resulthttp.Respond(h.boundary, w, r, res, http.StatusOK)
	return nil
}

func (h *Handler) ListConsents(w http.ResponseWriter, r *http.Request) error {
	subjectID := r.URL.Query().Get("subjectId")
	resulthttp.Respond(h.boundary, w, r, h.service.ListConsents(r.Context(), subjectID), http.StatusOK)
	return nil
}

func (h *Handler) WithdrawConsent(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	res := h.service.WithdrawConsent(ctx, chi.URLParam(r, "id")).Await(ctx)
	resulthttp.Respond(h.boundary, w, r, res, http.StatusOK)
	return nil
}

func (h *Handler) VerifyConsent(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	subjectID, domain, purpose := q.Get("subjectId"), q.Get("domain"), q.Get("purpose")
	if subjectID == "" || domain == "" || purpose == "" {
		return errs.New("subjectId, domain and purpose are required", errs.Options{
			Code:     errs.CodeInvalidRequest,
			Status:   http.StatusBadRequest,
			Category: errs.CategoryValidation,
		})
	}
	res := h.service.VerifyConsent(r.Context(), subjectID, domain, purpose)
	resulthttp.Respond(h.boundary, w, r, res, http.StatusOK)
	return nil
}
