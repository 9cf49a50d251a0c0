// Package errors renders storefront failures as RFC 7807 problems, either as
// application/problem+json or through an HTML error page.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is one RFC 7807 problem occurrence.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy pointing at instance.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with key set. The receiver's map is never mutated.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

const (
	TypeNotFound           = "/problems/not-found"
	TypeProductUnavailable = "/problems/product-unavailable"
	TypeBadRequest         = "/problems/bad-request"
	TypeUnauthorized       = "/problems/unauthorized"
	TypeForbidden          = "/problems/forbidden"
	TypeInternal           = "/problems/internal-error"
)

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Not Found",
		Status: http.StatusNotFound,
	}

	// ErrProductUnavailable is raised when a cart line outlives its product.
	ErrProductUnavailable = ProblemDetail{
		Type:   TypeProductUnavailable,
		Title:  "Product Unavailable",
		Status: http.StatusNotFound,
	}

	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	ErrUnauthorized = ProblemDetail{
		Type:   TypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
	}

	ErrForbidden = ProblemDetail{
		Type:   TypeForbidden,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewUnavailableProductProblem reports a cart line whose product was removed
// from the catalog. productID is zero when the caller does not know it.
func NewUnavailableProductProblem(productID int64) ProblemDetail {
	problem := ErrProductUnavailable.WithDetail("Your cart references a product that is no longer available.")
	if productID > 0 {
		problem = problem.WithExtension("productId", productID)
	}
	return problem
}
