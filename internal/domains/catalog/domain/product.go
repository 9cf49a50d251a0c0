package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName       = errors.New("name is required")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrMissingCategory = errors.New("product must belong to a category")
)

// Category groups products on the storefront. Categories are managed out-of-band.
type Category struct {
	ID   int64
	Name string
}

// NewCategory builds a category ensuring it carries a name.
func NewCategory(id int64, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Category{ID: id, Name: name}, nil
}

// Product is a sellable catalog item.
type Product struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	CategoryID  int64
}

// NewProduct validates and constructs a product.
func NewProduct(id int64, name string, price decimal.Decimal, categoryID int64) (*Product, error) {
	product := &Product{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Price:      price,
		CategoryID: categoryID,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Describe sets the optional presentation fields.
func (p *Product) Describe(description, imageURL string) {
	p.Description = strings.TrimSpace(description)
	p.ImageURL = strings.TrimSpace(imageURL)
}

// Validate enforces product invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.CategoryID <= 0 {
		return ErrMissingCategory
	}
	return nil
}

// Subtotal is the price of quantity units at the current price.
func (p *Product) Subtotal(quantity int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

// MatchesQuery reports a case-insensitive substring match on the product name.
// A blank query never matches.
func (p *Product) MatchesQuery(query string) bool {
	query = NormalizeQuery(query)
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), query)
}

// NormalizeQuery trims and lower-cases a search query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
