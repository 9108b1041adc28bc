// Package devserver is an in-memory stand-in for the ordering backend,
// implementing the catalog, cart, operating-hours and order contracts.
// It backs local development and the client's integration tests.
package devserver

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrEmptyCart        = errors.New("cart is empty")
)

// Repository holds all stub server state in memory. Carts are keyed by
// bearer token, so each authenticated caller sees its own cart.
type Repository struct {
	mu         sync.RWMutex
	products   []models.Product
	options    map[int64][]models.OptionGroup
	addresses  []models.Address
	carts      map[string][]models.CartLine
	orders     map[string]models.OrderResult
	nextLineID int64
}

// NewRepository creates a repository with seed catalog data.
func NewRepository() *Repository {
	price := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	r := &Repository{
		products: []models.Product{
			{ID: 1, Name: "Margherita Pizza", BasePrice: price("14.99"), Category: "Pizza"},
			{ID: 2, Name: "Pepperoni Pizza", BasePrice: price("16.99"), Category: "Pizza"},
			{ID: 3, Name: "Classic Burger", BasePrice: price("13.99"), Category: "Burger"},
			{ID: 4, Name: "Caesar Salad", BasePrice: price("8.99"), Category: "Salad"},
			{ID: 5, Name: "Lemonade", BasePrice: price("3.50"), Category: "Drink"},
		},
		options: map[int64][]models.OptionGroup{
			1: {
				{
					ID: "1", Name: "Size", SelectionMode: models.SelectSingle, Required: true,
					Values: []models.OptionValue{
						{ID: "1", Label: "Small", PriceAdjustment: decimal.Zero},
						{ID: "2", Label: "Medium", PriceAdjustment: price("2.50")},
						{ID: "3", Label: "Large", PriceAdjustment: price("5.00")},
					},
				},
				{
					ID: "2", Name: "Extra toppings", SelectionMode: models.SelectMultiple,
					Values: []models.OptionValue{
						{ID: "4", Label: "Mushrooms", PriceAdjustment: price("1.00")},
						{ID: "5", Label: "Olives", PriceAdjustment: price("0.75")},
						{ID: "6", Label: "Extra cheese", PriceAdjustment: price("1.50")},
					},
				},
			},
			3: {
				{
					ID: "3", Name: "Doneness", SelectionMode: models.SelectSingle, Required: true,
					Values: []models.OptionValue{
						{ID: "7", Label: "Medium", PriceAdjustment: decimal.Zero},
						{ID: "8", Label: "Well done", PriceAdjustment: decimal.Zero},
					},
				},
				{
					ID: "4", Name: "Extra sauces", SelectionMode: models.SelectMultiple, Required: true,
					Values: []models.OptionValue{
						{ID: "9", Label: "Ketchup", PriceAdjustment: decimal.Zero},
						{ID: "10", Label: "BBQ", PriceAdjustment: price("0.50")},
					},
				},
			},
		},
		addresses: []models.Address{
			{ID: 1, Title: "Home", Neighborhood: "Karsiyaka", Street: "1825 Sk.", AddressDetail: "No 12 D 4"},
			{ID: 2, Title: "Work", Neighborhood: "Bornova", Street: "Kazim Dirik", AddressDetail: "Plaza K2"},
		},
		carts:  make(map[string][]models.CartLine),
		orders: make(map[string]models.OrderResult),
	}
	return r
}

// Products returns the full catalog.
func (r *Repository) Products(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product{}, r.products...), nil
}

// Product returns one product by id.
func (r *Repository) Product(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// ProductOptions returns a product's option groups; products without
// configured groups get an empty list, not an error.
func (r *Repository) ProductOptions(ctx context.Context, id int64) ([]models.OptionGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := false
	for _, p := range r.products {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrProductNotFound
	}
	return append([]models.OptionGroup{}, r.options[id]...), nil
}

// Addresses returns the seeded address book.
func (r *Repository) Addresses(ctx context.Context) ([]models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Address{}, r.addresses...), nil
}

// Cart returns the cart for the given token.
func (r *Repository) Cart(ctx context.Context, token string) ([]models.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.CartLine{}, r.carts[token]...), nil
}

// AddCartLine appends a configured product to the token's cart.
func (r *Repository) AddCartLine(ctx context.Context, token string, req models.AddCartRequest) (*models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var product *models.Product
	for i := range r.products {
		if r.products[i].ID == req.ProductID {
			product = &r.products[i]
			break
		}
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	r.nextLineID++
	line := models.CartLine{
		ID:        r.nextLineID,
		ProductID: product.ID,
		Name:      product.Name,
		BasePrice: product.BasePrice,
		Quantity:  qty,
		Options:   req.Options,
	}
	r.carts[token] = append(r.carts[token], line)
	return &line, nil
}

// UpdateCartLineQuantity changes one line's quantity, clamped to 1.
func (r *Repository) UpdateCartLineQuantity(ctx context.Context, token string, lineID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[token]
	for i := range lines {
		if lines[i].ID == lineID {
			if quantity < 1 {
				quantity = 1
			}
			lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrCartLineNotFound
}

// RemoveCartLine deletes one line from the token's cart.
func (r *Repository) RemoveCartLine(ctx context.Context, token string, lineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[token]
	for i := range lines {
		if lines[i].ID == lineID {
			r.carts[token] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrCartLineNotFound
}

// CreateOrder totals the token's cart, records the order and empties
// the cart. The order id is assigned by the caller.
func (r *Repository) CreateOrder(ctx context.Context, token, orderID string, req models.OrderRequest) (*models.OrderResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addressOK := false
	for _, a := range r.addresses {
		if a.ID == req.AddressID {
			addressOK = true
			break
		}
	}
	if !addressOK {
		return nil, ErrAddressNotFound
	}

	lines := r.carts[token]
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].LineTotal())
	}

	result := models.OrderResult{
		OrderID:     orderID,
		TotalAmount: total.Round(2),
	}
	r.orders[orderID] = result
	delete(r.carts, token)

	return &result, nil
}
