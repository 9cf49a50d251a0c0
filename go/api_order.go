package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const (
	orderHistoryPath = "/order-history/"
	msgOrderPlaced   = "Order placed successfully!"
)

// OrderAPI serves order placement and history for logged-in users.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /place-order/
// Turn the session cart into an order
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	user := CurrentUser(c)
	_, err := api.service.PlaceOrder(c.Request.Context(), ordersports.PlaceOrderInput{
		UserID:       user.ID,
		SessionToken: SessionToken(c),
	})
	switch {
	case err == nil:
		redirectWith(c, orderHistoryPath, LevelSuccess, msgOrderPlaced)
	case errors.Is(err, ordersapp.ErrCartEmpty):
		redirectWith(c, cartPath, LevelError, msgCartEmpty)
	default:
		respondServiceError(c, err)
	}
}

// Get /place-order/
// Never places an order; sends the shopper back to the cart to confirm
func (api *OrderAPI) ReviewOrder(c *gin.Context) {
	c.Redirect(http.StatusFound, cartPath)
}

// Get /order-history/
// The user's orders, newest first
func (api *OrderAPI) OrderHistory(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	render(c, http.StatusOK, "order_history.html", gin.H{"Orders": orders})
}
