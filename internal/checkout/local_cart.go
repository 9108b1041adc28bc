package checkout

import (
	"sync"

	"github.com/orderfoodonline/checkout/internal/models"
)

// LocalCart mirrors the server-side cart for display between fetches.
// It is the representation the submitter empties after a successful
// order.
type LocalCart struct {
	mu    sync.RWMutex
	lines []models.CartLine
}

// NewLocalCart creates an empty cart view.
func NewLocalCart() *LocalCart {
	return &LocalCart{}
}

// Replace swaps in a freshly fetched set of lines.
func (c *LocalCart) Replace(lines []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append([]models.CartLine{}, lines...)
}

// Lines returns a copy of the current lines.
func (c *LocalCart) Lines() []models.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.CartLine{}, c.lines...)
}

// Clear empties the cart view.
func (c *LocalCart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}
