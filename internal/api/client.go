package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/models"
)

// TokenSource supplies the opaque bearer credential attached to
// authenticated calls. The client never creates or refreshes it.
type TokenSource interface {
	Token() string
}

// Config configures the outbound client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the ordering backend: catalog, cart, operating hours
// and order endpoints. All methods are safe for sequential use from a
// single flow; retries are left to the caller.
type Client struct {
	http   *resty.Client
	tokens TokenSource
	log    *slog.Logger
}

// New creates a client for the given backend.
func New(cfg Config, tokens TokenSource, log *slog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	return &Client{
		http:   rc,
		tokens: tokens,
		log:    log,
	}
}

// productEnvelope wraps catalog responses: {"status":"success","data":...}
type productEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	const op = "list products"
	body, err := c.do(ctx, http.MethodGet, "/api/products", false, nil, op)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := c.unwrapEnvelope(body, &products, op); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one product's details.
func (c *Client) Product(ctx context.Context, productID int64) (*models.Product, error) {
	op := fmt.Sprintf("get product %d", productID)
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), false, nil, op)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := c.unwrapEnvelope(body, &product, op); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductOptions fetches and normalizes a product's option groups.
func (c *Client) ProductOptions(ctx context.Context, productID int64) ([]models.OptionGroup, error) {
	op := fmt.Sprintf("get options for product %d", productID)
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/options", productID), false, nil, op)
	if err != nil {
		return nil, err
	}
	groups, err := ParseOptionGroups(body)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return groups, nil
}

type wireCartLine struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	Quantity  int             `json:"quantity"`
	Options   json.RawMessage `json:"options"`
}

// Cart fetches the server-side cart, normalizing each line's options.
func (c *Client) Cart(ctx context.Context) ([]models.CartLine, error) {
	const op = "fetch cart"
	body, err := c.do(ctx, http.MethodGet, "/api/products/cart", true, nil, op)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Cart []wireCartLine `json:"cart"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}

	lines := make([]models.CartLine, 0, len(resp.Cart))
	for _, w := range resp.Cart {
		lines = append(lines, models.CartLine{
			ID:        w.ID,
			ProductID: w.ProductID,
			Name:      w.Name,
			BasePrice: w.BasePrice,
			Quantity:  w.Quantity,
			Options:   ParseSelectedOptions(w.Options),
		})
	}
	return lines, nil
}

// AddCartLine adds one configured product to the server-side cart.
func (c *Client) AddCartLine(ctx context.Context, req models.AddCartRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/api/products/cart", true, req, "add cart line")
	return err
}

// UpdateCartLineQuantity changes one cart line's quantity.
func (c *Client) UpdateCartLineQuantity(ctx context.Context, lineID int64, quantity int) error {
	op := fmt.Sprintf("update cart line %d", lineID)
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/cart/%d", lineID), true,
		models.UpdateCartRequest{Quantity: quantity}, op)
	return err
}

// RemoveCartLine deletes one line from the server-side cart.
func (c *Client) RemoveCartLine(ctx context.Context, lineID int64) error {
	op := fmt.Sprintf("remove cart line %d", lineID)
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/cart/%d", lineID), true, nil, op)
	return err
}

// CheckHours asks whether the restaurant currently accepts orders.
// Callers decide how to treat a failure; the submit path must treat any
// error here as closed.
func (c *Client) CheckHours(ctx context.Context) (models.HoursStatus, error) {
	const op = "check operating hours"
	body, err := c.do(ctx, http.MethodGet, "/api/restaurant-hours/check", false, nil, op)
	if err != nil {
		return models.HoursStatus{}, err
	}
	var status models.HoursStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return models.HoursStatus{}, &DecodeError{Op: op, Err: err}
	}
	return status, nil
}

// OpenForOrders is the passive foreground poll: an unreachable hours
// check is reported as open so a flaky connection does not lock the
// menu. Never use this on the submit path.
func (c *Client) OpenForOrders(ctx context.Context) bool {
	status, err := c.CheckHours(ctx)
	if err != nil {
		c.log.Warn("hours check failed, assuming open", "error", err)
		return true
	}
	return status.IsOpen
}

// CreateOrder submits the finalized order.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderResult, error) {
	const op = "create order"
	body, err := c.do(ctx, http.MethodPost, "/api/orders", true, req, op)
	if err != nil {
		return models.OrderResult{}, err
	}
	var result models.OrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return models.OrderResult{}, &DecodeError{Op: op, Err: err}
	}
	return result, nil
}

// Addresses fetches the user's address book.
func (c *Client) Addresses(ctx context.Context) ([]models.Address, error) {
	const op = "list addresses"
	body, err := c.do(ctx, http.MethodGet, "/api/addresses", true, nil, op)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Addresses []models.Address `json:"addresses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return resp.Addresses, nil
}

// do executes one request and returns the raw body. Network failures
// and non-2xx responses come back as *TransportError; decoding is left
// to the caller so DecodeError stays distinguishable.
func (c *Client) do(ctx context.Context, method, path string, auth bool, body any, op string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if auth {
		req.SetAuthToken(c.tokens.Token())
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		c.log.Warn("backend returned error status",
			"op", op,
			"status", resp.StatusCode(),
		)
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}

// unwrapEnvelope decodes a {"status","data"} catalog response.
func (c *Client) unwrapEnvelope(body []byte, out any, op string) error {
	var env productEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	if env.Status != "success" {
		return &DecodeError{Op: op, Err: fmt.Errorf("unexpected status %q", env.Status)}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}
