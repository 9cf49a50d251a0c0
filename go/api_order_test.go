package storefrontserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderRequiresLogin(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.post("/place-order/", nil)
	require.Equal(t, http.StatusFound, resp.status)
	assert.Equal(t, "/login/?next=%2Fplace-order%2F", resp.location)

	history := b.get("/order-history/")
	require.Equal(t, http.StatusFound, history.status)
	assert.Equal(t, "/login/?next=%2Forder-history%2F", history.location)
	assert.Zero(t, app.orders.Count())
}

func TestPlaceOrderFromCartThenHistory(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	require.Equal(t, http.StatusFound, b.signup("asha", "s3cure-basket").status)
	b.post("/add-to-cart/1/", nil)
	b.post("/add-to-cart/1/", nil)
	b.post("/add-to-cart/2/", nil)

	resp := b.post("/place-order/", nil)
	require.Equal(t, http.StatusFound, resp.status)
	require.Equal(t, "/order-history/", resp.location)
	require.Equal(t, 1, app.orders.Count())

	history := b.get("/order-history/")
	require.Equal(t, http.StatusOK, history.status)
	assert.Contains(t, history.body, "Order placed successfully!")
	assert.Contains(t, history.body, "Total: &#8377;130.00")
	assert.Contains(t, history.body, "Basmati Rice &times; 2 @ &#8377;50.00")
	assert.Contains(t, history.body, "Toor Dal &times; 1 @ &#8377;30.00")

	assert.Contains(t, b.get("/cart/").body, "Your cart is empty.")
}

func TestPlaceOrderTwiceOnlyCreatesOneOrder(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)
	b.signup("ravi", "tomato-soup-42")
	b.post("/add-to-cart/3/", nil)

	require.Equal(t, "/order-history/", b.post("/place-order/", nil).location)
	b.get("/order-history/")

	second := b.post("/place-order/", nil)
	require.Equal(t, http.StatusFound, second.status)
	assert.Equal(t, "/cart/", second.location)
	assert.Contains(t, b.get("/cart/").body, "Your cart is empty.")
	assert.Equal(t, 1, app.orders.Count())
}

func TestOrderHistoryIsScopedToUser(t *testing.T) {
	app := newStorefrontApp(t)

	first := app.browser(t)
	first.signup("meera", "mango-lassi-7")
	first.post("/add-to-cart/1/", nil)
	first.post("/place-order/", nil)

	second := app.browser(t)
	second.signup("kabir", "paneer-tikka-9")
	history := second.get("/my-orders/")
	require.Equal(t, http.StatusOK, history.status)
	assert.Contains(t, history.body, "You have not placed any orders yet.")
	assert.Equal(t, 0, strings.Count(history.body, `class="order"`))
}

func TestPlaceOrderIgnoresGet(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)
	b.signup("tara", "jeera-aloo-3")
	b.post("/add-to-cart/2/", nil)

	resp := b.get("/place-order/")
	require.Equal(t, http.StatusFound, resp.status)
	assert.Equal(t, "/cart/", resp.location)
	assert.Zero(t, app.orders.Count())
	assert.Contains(t, b.get("/cart/").body, "Toor Dal")
}
