package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orderfoodonline/checkout/internal/models"
)

// CartHandler serves the authenticated cart endpoints.
type CartHandler struct {
	repo *Repository
	log  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(repo *Repository, log *slog.Logger) *CartHandler {
	return &CartHandler{repo: repo, log: log}
}

// GetCart handles GET /api/products/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.repo.Cart(r.Context(), requestToken(r))
	if err != nil {
		h.log.Error("failed to read cart", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": lines}, h.log)
}

// AddCartLine handles POST /api/products/cart
func (h *CartHandler) AddCartLine(w http.ResponseWriter, r *http.Request) {
	var req models.AddCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode cart request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	line, err := h.repo.AddCartLine(r.Context(), requestToken(r), req)
	if err != nil {
		if err == ErrProductNotFound {
			writeError(w, http.StatusBadRequest, "Invalid product", h.log)
			return
		}
		h.log.Error("failed to add cart line", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	writeJSON(w, http.StatusCreated, line, h.log)
}

// UpdateCartLine handles PUT /api/products/cart/{lineId}
func (h *CartHandler) UpdateCartLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.lineID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.repo.UpdateCartLineQuantity(r.Context(), requestToken(r), lineID, req.Quantity); err != nil {
		if err == ErrCartLineNotFound {
			writeError(w, http.StatusNotFound, "Cart line not found", h.log)
			return
		}
		h.log.Error("failed to update cart line", "lineId", lineID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"}, h.log)
}

// RemoveCartLine handles DELETE /api/products/cart/{lineId}
func (h *CartHandler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.lineID(w, r)
	if !ok {
		return
	}

	if err := h.repo.RemoveCartLine(r.Context(), requestToken(r), lineID); err != nil {
		if err == ErrCartLineNotFound {
			writeError(w, http.StatusNotFound, "Cart line not found", h.log)
			return
		}
		h.log.Error("failed to remove cart line", "lineId", lineID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"}, h.log)
}

func (h *CartHandler) lineID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "lineId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return 0, false
	}
	return id, true
}
