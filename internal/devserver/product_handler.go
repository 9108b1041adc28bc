package devserver

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	repo *Repository
	log  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(repo *Repository, log *slog.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, log: log}
}

// envelope matches the backend's catalog response wrapper.
type envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.Products(r.Context())
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: products}, h.log)
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.Product(r.Context(), id)
	if err != nil {
		if err == ErrProductNotFound {
			writeError(w, http.StatusNotFound, "Product not found", h.log)
			return
		}
		h.log.Error("failed to get product", "productId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: product}, h.log)
}

// GetProductOptions handles GET /api/products/{productId}/options.
// The body is a bare array of option groups, not an envelope.
func (h *ProductHandler) GetProductOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	groups, err := h.repo.ProductOptions(r.Context(), id)
	if err != nil {
		if err == ErrProductNotFound {
			writeError(w, http.StatusNotFound, "Product not found", h.log)
			return
		}
		h.log.Error("failed to get product options", "productId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	writeJSON(w, http.StatusOK, groups, h.log)
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.log.Warn("invalid product ID format", "productId", raw, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return 0, false
	}
	return id, true
}
