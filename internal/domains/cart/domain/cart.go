package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// ErrNotInCart is returned when removing a product the cart does not hold.
var ErrNotInCart = errors.New("item not found in cart")

// Cart maps product ids to quantities for one session.
// Stored quantities are always >= 1; a line that would reach zero is deleted.
type Cart struct {
	Lines     map[int64]int `json:"lines"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Lines: map[int64]int{}}
}

// Add increments the line for productID, creating it with quantity 1 when absent.
func (c *Cart) Add(productID int64) {
	if productID <= 0 {
		return
	}
	c.ensure()
	c.Lines[productID]++
}

// Increase bumps an existing line by one. It reports whether the cart changed.
func (c *Cart) Increase(productID int64) bool {
	if _, ok := c.Lines[productID]; !ok {
		return false
	}
	c.Lines[productID]++
	return true
}

// Decrease lowers an existing line by one, deleting it instead of storing zero.
// It reports whether the cart changed.
func (c *Cart) Decrease(productID int64) bool {
	quantity, ok := c.Lines[productID]
	if !ok {
		return false
	}
	if quantity > 1 {
		c.Lines[productID] = quantity - 1
	} else {
		delete(c.Lines, productID)
	}
	return true
}

// Remove deletes a line entirely.
func (c *Cart) Remove(productID int64) error {
	if _, ok := c.Lines[productID]; !ok {
		return ErrNotInCart
	}
	delete(c.Lines, productID)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = map[int64]int{}
}

// Quantity returns the quantity held for productID, zero when absent.
func (c *Cart) Quantity(productID int64) int {
	return c.Lines[productID]
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.Lines)
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	total := 0
	for _, quantity := range c.Lines {
		total += quantity
	}
	return total
}

// ProductIDs returns the line product ids in ascending order.
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.Lines))
	for id := range c.Lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Normalize drops any line holding a non-positive quantity. Used after decoding
// a cart from an untrusted session payload.
func (c *Cart) Normalize() {
	c.ensure()
	for id, quantity := range c.Lines {
		if id <= 0 || quantity <= 0 {
			delete(c.Lines, id)
		}
	}
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	clone := &Cart{Lines: make(map[int64]int, len(c.Lines)), UpdatedAt: c.UpdatedAt}
	for id, quantity := range c.Lines {
		clone.Lines[id] = quantity
	}
	return clone
}

func (c *Cart) ensure() {
	if c.Lines == nil {
		c.Lines = map[int64]int{}
	}
}

// Line is one cart line joined against the catalog.
type Line struct {
	Product  *catalogdomain.Product
	Quantity int
	Subtotal decimal.Decimal
}

// View is the priced projection of a cart.
type View struct {
	Lines []Line
	Total decimal.Decimal
}

// ErrUnresolvedLine reports a cart line whose product is not in the provided set.
var ErrUnresolvedLine = errors.New("cart line references an unknown product")

// Price joins the cart against resolved products. Every line must resolve.
func (c *Cart) Price(products map[int64]*catalogdomain.Product) (*View, error) {
	view := &View{Lines: make([]Line, 0, len(c.Lines)), Total: decimal.Zero}
	for _, id := range c.ProductIDs() {
		product, ok := products[id]
		if !ok || product == nil {
			return nil, &UnresolvedLineError{ProductID: id}
		}
		quantity := c.Lines[id]
		subtotal := product.Subtotal(quantity)
		view.Lines = append(view.Lines, Line{Product: product, Quantity: quantity, Subtotal: subtotal})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}

// UnresolvedLineError names the product id that failed to resolve.
type UnresolvedLineError struct {
	ProductID int64
}

func (e *UnresolvedLineError) Error() string {
	return ErrUnresolvedLine.Error()
}

func (e *UnresolvedLineError) Unwrap() error {
	return ErrUnresolvedLine
}
