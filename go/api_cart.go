package storefrontserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const cartPath = "/cart/"

// Notices shown after cart mutations.
const (
	msgItemAdded    = "Item added to cart."
	msgItemRemoved  = "Item removed from cart."
	msgItemNotFound = "Item not found in cart."
	msgCartEmpty    = "Your cart is empty."
)

// CartAPI serves the session cart pages.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /cart/
// Priced cart contents
func (api *CartAPI) ViewCart(c *gin.Context) {
	view, err := api.service.View(c.Request.Context(), SessionToken(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	render(c, http.StatusOK, "cart.html", gin.H{
		"CartItems": view.Lines,
		"Total":     view.Total,
	})
}

// Post /add-to-cart/:productId/
// Add one unit of a product
func (api *CartAPI) AddToCart(c *gin.Context) {
	api.mutate(c, api.service.Add, msgItemAdded)
}

// Post /remove-from-cart/:productId/
// Drop a line from the cart
func (api *CartAPI) RemoveFromCart(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	_, err := api.service.Remove(c.Request.Context(), SessionToken(c), id)
	switch {
	case err == nil:
		redirectWith(c, cartPath, LevelSuccess, msgItemRemoved)
	case errors.Is(err, cartdomain.ErrNotInCart):
		redirectWith(c, cartPath, LevelError, msgItemNotFound)
	default:
		respondServiceError(c, err)
	}
}

// Post /cart/increase/:productId/
// One more unit of a line already in the cart
func (api *CartAPI) IncreaseQuantity(c *gin.Context) {
	api.mutate(c, api.service.Increase, "")
}

// Post /cart/decrease/:productId/
// One unit less, dropping the line at zero
func (api *CartAPI) DecreaseQuantity(c *gin.Context) {
	api.mutate(c, api.service.Decrease, "")
}

type cartMutation func(ctx context.Context, token string, productID int64) (*cartdomain.Cart, error)

func (api *CartAPI) mutate(c *gin.Context, op cartMutation, notice string) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if _, err := op(c.Request.Context(), SessionToken(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	redirectWith(c, cartPath, LevelSuccess, notice)
}
