package payment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/habipro/habipay/internal/fixture"
)

type Handler struct {
	store *fixture.Store
}

func NewHandler(store *fixture.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.store.Payments()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createPaymentRequest struct {
	Tenant             int64  `json:"tenant"`
	Property           int64  `json:"property"`
	Location           *int64 `json:"location"`
	Amount             int64  `json:"amount"`
	PaymentMonth       string `json:"payment_month"`
	PaymentMethod      string `json:"payment_method"`
	AutoPaymentEnabled bool   `json:"auto_payment_enabled"`
	Status             string `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFieldErrors(w, map[string][]string{"non_field_errors": {err.Error()}})
		return
	}

	if fieldErrs := validate(req); len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	p, err := h.store.AddPayment(fixture.Payment{
		Location:           req.Location,
		Amount:             req.Amount,
		PaymentMonth:       req.PaymentMonth,
		PaymentMethod:      req.PaymentMethod,
		AutoPaymentEnabled: req.AutoPaymentEnabled,
		Status:             req.Status,
	})
	if err != nil {
		var dup *fixture.DuplicateMonthError
		if errors.As(err, &dup) {
			writeFieldErrors(w, map[string][]string{"payment_month": {dup.Error()}})
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func validate(req createPaymentRequest) map[string][]string {
	errs := map[string][]string{}

	if req.PaymentMonth == "" {
		errs["payment_month"] = []string{"Ce champ est obligatoire."}
	}

	if req.PaymentMethod == "" {
		errs["payment_method"] = []string{"Ce champ est obligatoire."}
	}

	if req.Amount <= 0 {
		errs["amount"] = []string{"Le montant doit être positif."}
	}

	return errs
}

// Validation failures come back field-keyed with a 400, matching the
// platform's serializer errors.
func writeFieldErrors(w http.ResponseWriter, errs map[string][]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	if err := json.NewEncoder(w).Encode(errs); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
