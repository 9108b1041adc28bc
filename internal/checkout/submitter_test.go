package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/api"
	"github.com/orderfoodonline/checkout/internal/models"
	"github.com/orderfoodonline/checkout/internal/session"
)

type fakeBackend struct {
	hours      models.HoursStatus
	hoursErr   error
	cart       []models.CartLine
	cartErr    error
	orderErr   error
	orderCalls atomic.Int64
	gotOrder   models.OrderRequest
	mu         sync.Mutex
	block      chan struct{} // when set, CreateOrder waits on it
	started    chan struct{} // when set, signalled once CreateOrder is entered
}

func (f *fakeBackend) CheckHours(ctx context.Context) (models.HoursStatus, error) {
	return f.hours, f.hoursErr
}

func (f *fakeBackend) Cart(ctx context.Context) ([]models.CartLine, error) {
	return f.cart, f.cartErr
}

func (f *fakeBackend) CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderResult, error) {
	if f.orderCalls.Add(1) == 1 && f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.gotOrder = req
	f.mu.Unlock()
	if f.orderErr != nil {
		return models.OrderResult{}, f.orderErr
	}
	return models.OrderResult{OrderID: "ord-1", TotalAmount: decimal.NewFromInt(42)}, nil
}

type fakeSessions struct {
	snap session.Snapshot
}

func (f *fakeSessions) Snapshot() session.Snapshot { return f.snap }

func loggedIn() *fakeSessions {
	return &fakeSessions{snap: session.Snapshot{Token: "tok", LoggedIn: true}}
}

func testCartLines() []models.CartLine {
	return []models.CartLine{
		{
			ID: 1, ProductID: 7, Name: "Pizza",
			BasePrice: decimal.NewFromInt(20), Quantity: 2,
			Options: []models.SelectedGroup{
				{GroupID: "1", Values: []models.SelectedValue{
					{ValueID: "2", Label: "Large", PriceAdjustment: decimal.NewFromInt(5)},
				}},
			},
		},
	}
}

func newTestSubmitter(backend Backend, sessions Sessions) (*Submitter, *LocalCart) {
	cart := NewLocalCart()
	cart.Replace(testCartLines())
	return NewSubmitter(backend, sessions, cart, slog.New(slog.NewTextHandler(io.Discard, nil))), cart
}

func TestSubmit_Success(t *testing.T) {
	backend := &fakeBackend{
		hours: models.HoursStatus{IsOpen: true},
		cart:  testCartLines(),
	}
	submitter, cart := newTestSubmitter(backend, loggedIn())

	result := submitter.Submit(context.Background(), SubmitRequest{
		AddressID:   1,
		PaymentType: "cash",
		UserNote:    "ring the bell",
	})

	if result.State != StateSuccess {
		t.Fatalf("state = %s (%s), want success", result.State, result.Reason)
	}
	if result.OrderID != "ord-1" {
		t.Errorf("order id = %q, want ord-1", result.OrderID)
	}
	if want := decimal.NewFromInt(42); !result.TotalAmount.Equal(want) {
		t.Errorf("total = %s, want 42", result.TotalAmount)
	}

	// The composed note carries the cart's option labels plus the user
	// note, and the order request fields pass through unchanged.
	backend.mu.Lock()
	got := backend.gotOrder
	backend.mu.Unlock()
	if got.AddressID != 1 || got.PaymentType != "cash" {
		t.Errorf("order request = %+v", got)
	}
	if got.Note != "Large | ring the bell" {
		t.Errorf("note = %q, want %q", got.Note, "Large | ring the bell")
	}

	// Required side effect: the local cart is emptied.
	if len(cart.Lines()) != 0 {
		t.Errorf("local cart not cleared after success")
	}
}

func TestSubmit_FailClosedOnHoursError(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
	}{
		{
			name: "hours check unreachable",
			backend: &fakeBackend{
				hoursErr: &api.TransportError{Op: "check operating hours", Err: errors.New("timeout")},
				cart:     testCartLines(),
			},
		},
		{
			name: "restaurant closed",
			backend: &fakeBackend{
				hours: models.HoursStatus{IsOpen: false},
				cart:  testCartLines(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter, cart := newTestSubmitter(tt.backend, loggedIn())
			result := submitter.Submit(context.Background(), SubmitRequest{AddressID: 1, PaymentType: "cash"})

			if result.State != StateFailed || result.Reason != ReasonOutsideHours {
				t.Fatalf("result = %s/%s, want failed/outside_hours", result.State, result.Reason)
			}
			if tt.backend.orderCalls.Load() != 0 {
				t.Error("order must not be created when the hours gate fails")
			}
			if len(cart.Lines()) == 0 {
				t.Error("cart must not be cleared on failure")
			}
		})
	}
}

func TestSubmit_LocalGates(t *testing.T) {
	tests := []struct {
		name     string
		sessions Sessions
		req      SubmitRequest
		want     Reason
	}{
		{
			name:     "not authenticated",
			sessions: &fakeSessions{},
			req:      SubmitRequest{AddressID: 1},
			want:     ReasonNotAuthenticated,
		},
		{
			name:     "no address selected",
			sessions: loggedIn(),
			req:      SubmitRequest{},
			want:     ReasonNoAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{hours: models.HoursStatus{IsOpen: true}, cart: testCartLines()}
			submitter, _ := newTestSubmitter(backend, tt.sessions)

			result := submitter.Submit(context.Background(), tt.req)
			if result.State != StateFailed || result.Reason != tt.want {
				t.Fatalf("result = %s/%s, want failed/%s", result.State, result.Reason, tt.want)
			}
			if backend.orderCalls.Load() != 0 {
				t.Error("local gate failures must short-circuit before any order call")
			}
		})
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	backend := &fakeBackend{hours: models.HoursStatus{IsOpen: true}}
	submitter, _ := newTestSubmitter(backend, loggedIn())

	result := submitter.Submit(context.Background(), SubmitRequest{AddressID: 1})
	if result.State != StateFailed || result.Reason != ReasonEmptyCart {
		t.Fatalf("result = %s/%s, want failed/empty_cart", result.State, result.Reason)
	}
}

func TestSubmit_ErrorReasonMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{
			name: "network failure",
			err:  &api.TransportError{Op: "create order", Err: errors.New("refused")},
			want: ReasonTransport,
		},
		{
			name: "server refusal",
			err:  &api.TransportError{Op: "create order", StatusCode: http.StatusBadRequest},
			want: ReasonRejected,
		},
		{
			name: "malformed response",
			err:  &api.DecodeError{Op: "create order", Err: errors.New("bad json")},
			want: ReasonDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{
				hours:    models.HoursStatus{IsOpen: true},
				cart:     testCartLines(),
				orderErr: tt.err,
			}
			submitter, cart := newTestSubmitter(backend, loggedIn())

			result := submitter.Submit(context.Background(), SubmitRequest{AddressID: 1})
			if result.State != StateFailed || result.Reason != tt.want {
				t.Fatalf("result = %s/%s, want failed/%s", result.State, result.Reason, tt.want)
			}
			if len(cart.Lines()) == 0 {
				t.Error("cart must not be cleared on failure")
			}
		})
	}
}

func TestSubmit_ReentrancyGuard(t *testing.T) {
	backend := &fakeBackend{
		hours: models.HoursStatus{IsOpen: true},
		cart:    testCartLines(),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	submitter, _ := newTestSubmitter(backend, loggedIn())

	first := make(chan Result, 1)
	go func() {
		first <- submitter.Submit(context.Background(), SubmitRequest{AddressID: 1})
	}()

	// Wait until the first attempt is inside the order call, then tap
	// again. The second submit must be ignored without any I/O.
	<-backend.started
	second := submitter.Submit(context.Background(), SubmitRequest{AddressID: 1})
	if second.Reason != ReasonAlreadySubmitting {
		t.Fatalf("second submit reason = %s, want already_submitting", second.Reason)
	}
	if second.State != StateSubmitting {
		t.Errorf("second submit state = %s, want submitting", second.State)
	}

	close(backend.block)
	result := <-first
	if result.State != StateSuccess {
		t.Fatalf("first submit state = %s (%s), want success", result.State, result.Reason)
	}
	if calls := backend.orderCalls.Load(); calls != 1 {
		t.Errorf("order calls = %d, want exactly 1", calls)
	}
}

func TestReasonMessages(t *testing.T) {
	for _, r := range []Reason{
		ReasonAlreadySubmitting, ReasonNotAuthenticated, ReasonNoAddress,
		ReasonOutsideHours, ReasonEmptyCart, ReasonTransport, ReasonDecode, ReasonRejected,
	} {
		if strings.TrimSpace(r.Message()) == "" {
			t.Errorf("reason %q has no user-facing message", r)
		}
	}
	if ReasonOutsideHours.Message() == ReasonTransport.Message() {
		t.Error("business rejection must read differently from a connection problem")
	}
}
