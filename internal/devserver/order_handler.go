package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/orderfoodonline/checkout/internal/models"
)

// The note column on the backend is bounded; anything longer than this
// is rejected outright.
const maxNoteLen = 2000

// OrderHandler serves POST /api/orders and the address book.
type OrderHandler struct {
	repo *Repository
	log  *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(repo *Repository, log *slog.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, log: log}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if len([]rune(req.Note)) > maxNoteLen {
		writeError(w, http.StatusBadRequest, "Note too long", h.log)
		return
	}

	orderID := uuid.New().String()
	result, err := h.repo.CreateOrder(r.Context(), requestToken(r), orderID, req)
	if err != nil {
		switch err {
		case ErrAddressNotFound:
			writeError(w, http.StatusBadRequest, "Unknown delivery address", h.log)
		case ErrEmptyCart:
			writeError(w, http.StatusBadRequest, "Cart is empty", h.log)
		default:
			h.log.Error("failed to create order", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("order created",
		"order_id", result.OrderID,
		"total_amount", result.TotalAmount.StringFixed(2),
		"payment_type", req.PaymentType,
	)
	writeJSON(w, http.StatusOK, result, h.log)
}

// ListAddresses handles GET /api/addresses
func (h *OrderHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.repo.Addresses(r.Context())
	if err != nil {
		h.log.Error("failed to list addresses", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"addresses": addresses}, h.log)
}
