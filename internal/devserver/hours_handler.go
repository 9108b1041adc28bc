package devserver

import (
	"log/slog"
	"net/http"

	"github.com/orderfoodonline/checkout/internal/models"
)

// HoursHandler serves GET /api/restaurant-hours/check.
type HoursHandler struct {
	open bool
	log  *slog.Logger
}

// NewHoursHandler creates a hours handler reporting the given state.
func NewHoursHandler(open bool, log *slog.Logger) *HoursHandler {
	return &HoursHandler{open: open, log: log}
}

// Check reports whether the restaurant accepts orders right now.
func (h *HoursHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := models.HoursStatus{
		IsOpen: h.open,
		WorkingHours: &models.WorkingHours{
			OpeningTime: "09:00:00",
			ClosingTime: "22:30:00",
		},
	}
	writeJSON(w, http.StatusOK, status, h.log)
}
