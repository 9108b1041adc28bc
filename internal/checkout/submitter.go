// Package checkout drives one order submission attempt: the pre-submit
// gates, the fail-closed hours check, the cart read, note composition
// and the order-create call, in that exact sequence.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/api"
	"github.com/orderfoodonline/checkout/internal/models"
	"github.com/orderfoodonline/checkout/internal/options"
	"github.com/orderfoodonline/checkout/internal/session"
)

// State of one submission attempt. Success and Failed are terminal; a
// new user-initiated submit starts a fresh attempt.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reason tags a Failed result. The raw error never reaches the caller.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonAlreadySubmitting Reason = "already_submitting"
	ReasonNotAuthenticated  Reason = "not_authenticated"
	ReasonNoAddress         Reason = "no_address"
	ReasonOutsideHours      Reason = "outside_hours"
	ReasonEmptyCart         Reason = "empty_cart"
	ReasonTransport         Reason = "transport"
	ReasonDecode            Reason = "decode"
	ReasonRejected          Reason = "rejected"
)

// Message returns the user-facing text for a failure reason.
func (r Reason) Message() string {
	switch r {
	case ReasonAlreadySubmitting:
		return "Your order is already being submitted."
	case ReasonNotAuthenticated:
		return "Please sign in to place an order."
	case ReasonNoAddress:
		return "Please choose a delivery address."
	case ReasonOutsideHours:
		return "We are outside operating hours right now. Please try again later."
	case ReasonEmptyCart:
		return "Your cart is empty."
	case ReasonRejected:
		return "The order could not be placed."
	case ReasonTransport, ReasonDecode:
		return "A connection problem occurred. Please check your network and try again."
	default:
		return ""
	}
}

// Backend is the slice of the API client the submitter needs.
type Backend interface {
	CheckHours(ctx context.Context) (models.HoursStatus, error)
	Cart(ctx context.Context) ([]models.CartLine, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderResult, error)
}

// Sessions supplies the current session snapshot.
type Sessions interface {
	Snapshot() session.Snapshot
}

// CartClearer is the local cart representation emptied on success.
type CartClearer interface {
	Clear()
}

// SubmitRequest is one user-initiated submission.
type SubmitRequest struct {
	AddressID   int64
	PaymentType string
	UserNote    string
}

// Result is the terminal outcome of one attempt.
type Result struct {
	State       State
	Reason      Reason
	OrderID     string
	TotalAmount decimal.Decimal
}

// Submitter runs submission attempts. A single instance guards against
// overlapping attempts: a second Submit while one is in flight is
// ignored, not queued.
type Submitter struct {
	backend  Backend
	sessions Sessions
	cart     CartClearer
	log      *slog.Logger

	inFlight atomic.Bool
}

// NewSubmitter creates a submitter over the given collaborators.
func NewSubmitter(backend Backend, sessions Sessions, cart CartClearer, log *slog.Logger) *Submitter {
	return &Submitter{
		backend:  backend,
		sessions: sessions,
		cart:     cart,
		log:      log,
	}
}

// Submit runs one attempt: local gates, hours check, cart read, order
// create. The three network calls are strictly sequential; each result
// can short-circuit the rest.
//
// The hours check fails closed: an unreachable or erroring check is
// treated as outside operating hours. This is stricter than the passive
// foreground poll on purpose; submission is the safety-critical path.
func (s *Submitter) Submit(ctx context.Context, req SubmitRequest) Result {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.log.Debug("submit ignored, attempt already in flight")
		return Result{State: StateSubmitting, Reason: ReasonAlreadySubmitting}
	}
	defer s.inFlight.Store(false)

	snap := s.sessions.Snapshot()
	if !snap.LoggedIn || snap.Token == "" {
		return Result{State: StateFailed, Reason: ReasonNotAuthenticated}
	}
	if req.AddressID == 0 {
		return Result{State: StateFailed, Reason: ReasonNoAddress}
	}

	status, err := s.backend.CheckHours(ctx)
	if err != nil {
		s.log.Warn("hours check failed at submit time, treating as closed", "error", err)
		return Result{State: StateFailed, Reason: ReasonOutsideHours}
	}
	if !status.IsOpen {
		s.log.Info("order rejected, outside operating hours")
		return Result{State: StateFailed, Reason: ReasonOutsideHours}
	}

	lines, err := s.backend.Cart(ctx)
	if err != nil {
		s.log.Error("cart read failed", "error", err)
		return Result{State: StateFailed, Reason: failureReason(err)}
	}
	if len(lines) == 0 {
		return Result{State: StateFailed, Reason: ReasonEmptyCart}
	}

	note := options.ComposeNote(options.CartLabels(lines), req.UserNote)

	result, err := s.backend.CreateOrder(ctx, models.OrderRequest{
		AddressID:   req.AddressID,
		PaymentType: req.PaymentType,
		Note:        note,
	})
	if err != nil {
		s.log.Error("order create failed", "error", err)
		return Result{State: StateFailed, Reason: failureReason(err)}
	}

	// Required side effect: the local cart must be emptied on success.
	s.cart.Clear()

	s.log.Info("order created",
		"order_id", result.OrderID,
		"total_amount", result.TotalAmount.StringFixed(2),
	)

	return Result{
		State:       StateSuccess,
		OrderID:     result.OrderID,
		TotalAmount: result.TotalAmount,
	}
}

// failureReason maps an API error to its Failed reason. Decode errors
// stay distinguishable from transport errors; a 4xx answer means the
// server refused the request.
func failureReason(err error) Reason {
	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return ReasonDecode
	}
	var transportErr *api.TransportError
	if errors.As(err, &transportErr) && transportErr.Rejected() {
		return ReasonRejected
	}
	return ReasonTransport
}
