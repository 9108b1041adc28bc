package models

import "github.com/shopspring/decimal"

// OrderRequest is the body of POST /api/orders. The note carries the
// composed option summary plus any user free text, under the backend
// column limit.
type OrderRequest struct {
	AddressID   int64  `json:"address_id"`
	PaymentType string `json:"payment_type"`
	Note        string `json:"note"`
}

// OrderResult is the successful response of POST /api/orders.
type OrderResult struct {
	OrderID     string          `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// HoursStatus is the response of GET /api/restaurant-hours/check.
type HoursStatus struct {
	IsOpen       bool          `json:"is_open"`
	WorkingHours *WorkingHours `json:"working_hours,omitempty"`
}

// WorkingHours describes today's opening window, HH:MM:SS strings.
type WorkingHours struct {
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

// Address is one delivery address from the user's address book.
type Address struct {
	ID            int64  `json:"id"`
	Title         string `json:"title,omitempty"`
	Neighborhood  string `json:"neighborhood"`
	Street        string `json:"street"`
	AddressDetail string `json:"address_detail"`
}
