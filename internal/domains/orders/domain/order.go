package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

var (
	ErrMissingUser        = errors.New("order requires a user")
	ErrMissingPlacementID = errors.New("order requires a placement id")
	ErrNoItems            = errors.New("order requires at least one item")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrMissingProduct     = errors.New("order item requires a product")
)

// Item is one order line. Name and unit price are captured at placement time
// and never change afterwards.
type Item struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the append-only purchase record. TotalPrice is fixed when the
// order is built and equals the sum of item subtotals.
type Order struct {
	ID          int64           `json:"id"`
	PlacementID string          `json:"placementId"`
	UserID      int64           `json:"userId"`
	CreatedAt   time.Time       `json:"createdAt"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Items       []Item          `json:"items"`
}

// Line pairs a resolved product with the quantity being ordered.
type Line struct {
	Product  *catalogdomain.Product
	Quantity int
}

// NewOrder builds an order from resolved lines, capturing prices and computing the total.
func NewOrder(placementID string, userID int64, createdAt time.Time, lines []Line) (*Order, error) {
	order := &Order{
		PlacementID: strings.TrimSpace(placementID),
		UserID:      userID,
		CreatedAt:   createdAt.UTC(),
		Items:       make([]Item, 0, len(lines)),
	}
	for _, line := range lines {
		if line.Product == nil {
			return nil, ErrMissingProduct
		}
		order.Items = append(order.Items, Item{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
		})
	}
	order.TotalPrice = order.ItemsTotal()
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces the aggregate invariants.
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return ErrMissingUser
	}
	if o.PlacementID == "" {
		return ErrMissingPlacementID
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.ProductID <= 0 {
			return ErrMissingProduct
		}
	}
	return nil
}

// ItemsTotal sums the item subtotals.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount returns the number of units across all items.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = append([]Item(nil), o.Items...)
	return &clone
}
