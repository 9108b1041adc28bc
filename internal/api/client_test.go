package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/models"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(Config{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, staticToken("testtoken"), slog.New(slog.NewTextHandler(io.Discard, nil)))

	return client, srv
}

func TestClient_CartSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cart": []}`))
	}))

	if _, err := client.Cart(context.Background()); err != nil {
		t.Fatalf("Cart() unexpected error: %v", err)
	}
	if gotAuth != "Bearer testtoken" {
		t.Errorf("Authorization = %q, want Bearer testtoken", gotAuth)
	}
}

func TestClient_CartNormalizesStringOptions(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cart": [
			{"id": 1, "product_id": 7, "name": "Pizza", "base_price": "14.99", "quantity": 2,
			 "options": "[{\"option_id\":1,\"name\":\"Size\",\"values\":[{\"value_id\":2,\"value\":\"Medium\",\"price_adjustment\":\"2.50\"}]}]"}
		]}`))
	}))

	lines, err := client.Cart(context.Background())
	if err != nil {
		t.Fatalf("Cart() unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}

	line := lines[0]
	if want, _ := decimal.NewFromString("14.99"); !line.BasePrice.Equal(want) {
		t.Errorf("base price = %s, want 14.99", line.BasePrice)
	}
	if len(line.Options) != 1 || line.Options[0].Values[0].Label != "Medium" {
		t.Errorf("options not normalized: %+v", line.Options)
	}
	if want, _ := decimal.NewFromString("34.98"); !line.LineTotal().Equal(want) {
		t.Errorf("line total = %s, want 34.98", line.LineTotal())
	}
}

func TestClient_NonSuccessStatusIsTransportError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))

	_, err := client.Cart(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", transportErr.StatusCode)
	}
	if transportErr.Rejected() {
		t.Error("5xx must not count as a rejection")
	}
}

func TestClient_MalformedBodyIsDecodeError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cart": not json`))
	}))

	_, err := client.Cart(context.Background())
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestClient_NetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(Config{BaseURL: srv.URL, Timeout: time.Second},
		staticToken(""), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.CheckHours(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for network failure", transportErr.StatusCode)
	}
}

func TestClient_OpenForOrdersDefaultsOpenOnFailure(t *testing.T) {
	// The passive poll treats an unreachable check as open; only the
	// submit path fails closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(Config{BaseURL: srv.URL, Timeout: time.Second},
		staticToken(""), slog.New(slog.NewTextHandler(io.Discard, nil)))

	if !client.OpenForOrders(context.Background()) {
		t.Error("passive hours check should default to open on failure")
	}
}

func TestClient_CreateOrder(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order_id": "ord-1", "total_amount": 51.00}`))
	}))

	result, err := client.CreateOrder(context.Background(), models.OrderRequest{
		AddressID:   1,
		PaymentType: "cash",
		Note:        "Large,BBQ",
	})
	if err != nil {
		t.Fatalf("CreateOrder() unexpected error: %v", err)
	}
	if result.OrderID != "ord-1" {
		t.Errorf("order id = %q, want ord-1", result.OrderID)
	}
	if want := decimal.NewFromInt(51); !result.TotalAmount.Equal(want) {
		t.Errorf("total = %s, want 51", result.TotalAmount)
	}
}

func TestClient_ProductEnvelope(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "data": {"id": 7, "name": "Pizza", "base_price": 14.99}}`))
	}))

	product, err := client.Product(context.Background(), 7)
	if err != nil {
		t.Fatalf("Product() unexpected error: %v", err)
	}
	if product.ID != 7 || product.Name != "Pizza" {
		t.Errorf("product = %+v", product)
	}
}

func TestClient_ProductEnvelopeBadStatus(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "data": null}`))
	}))

	_, err := client.Products(context.Background())
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError for bad envelope status, got %v", err)
	}
}
