package contract

import (
	"encoding/json"
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
}

// The platform paginates contracts, so the list comes wrapped in a results
// envelope. Payments, for contrast, are served as a bare array.
type listResponse struct {
	Count   int                `json:"count"`
	Results []fixture.Contract `json:"results"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	contracts := h.store.Contracts()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(listResponse{Count: len(contracts), Results: contracts}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
