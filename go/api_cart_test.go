package storefrontserver

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

func TestAddToCartRedirectsWithNotice(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.post("/add-to-cart/1/", nil)
	require.Equal(t, http.StatusFound, resp.status)
	require.Equal(t, "/cart/", resp.location)

	cart := b.get("/cart/")
	require.Equal(t, http.StatusOK, cart.status)
	assert.Contains(t, cart.body, "Item added to cart.")
	assert.Contains(t, cart.body, "Basmati Rice")
	assert.Contains(t, cart.body, `<span id="cart-total">50.00</span>`)

	again := b.get("/cart/")
	assert.NotContains(t, again.body, "Item added to cart.", "notices are shown once")
}

func TestAddToCartAcceptsGet(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	require.Equal(t, http.StatusFound, b.get("/add-to-cart/2/").status)
	require.Equal(t, http.StatusFound, b.get("/add-to-cart/2/").status)

	snapshot, err := app.carts.Load(context.Background(), b.cookie(SessionCookieName))
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Quantity(2))
}

func TestAddUnknownProductIsNotFound(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.post("/add-to-cart/999/", nil)
	require.Equal(t, http.StatusNotFound, resp.status)
	assert.Contains(t, resp.body, "No product matches the given query.")
}

func TestNonNumericProductIDIsNotFound(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	assert.Equal(t, http.StatusNotFound, b.post("/add-to-cart/abc/", nil).status)
	assert.Equal(t, http.StatusNotFound, b.get("/product/-3/").status)
}

func TestRemoveFromCartNotices(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	missing := b.post("/remove-from-cart/1/", nil)
	require.Equal(t, http.StatusFound, missing.status)
	assert.Contains(t, b.get("/cart/").body, "Item not found in cart.")

	b.post("/add-to-cart/1/", nil)
	b.get("/cart/")
	removed := b.post("/remove-from-cart/1/", nil)
	require.Equal(t, http.StatusFound, removed.status)
	page := b.get("/cart/")
	assert.Contains(t, page.body, "Item removed from cart.")
	assert.Contains(t, page.body, "Your cart is empty.")
}

func TestIncreaseAndDecreaseQuantity(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)
	ctx := context.Background()

	b.post("/add-to-cart/3/", nil)
	b.post("/cart/increase/3/", nil)
	b.post("/cart/increase/1/", nil)

	token := b.cookie(SessionCookieName)
	snapshot, err := app.carts.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Quantity(3))
	assert.Equal(t, 0, snapshot.Quantity(1), "increase never creates a line")
	assert.Contains(t, b.get("/cart/").body, `<span id="cart-total">25.00</span>`)

	b.post("/cart/decrease/3/", nil)
	resp := b.post("/cart/decrease/3/", nil)
	require.Equal(t, http.StatusFound, resp.status)
	require.Equal(t, "/cart/", resp.location)

	snapshot, err = app.carts.Load(ctx, token)
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
}

func TestViewCartFailsWhenProductDisappears(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	b.post("/add-to-cart/1/", nil)
	_, err := app.carts.Update(context.Background(), b.cookie(SessionCookieName), func(c *cartdomain.Cart) error {
		c.Add(404)
		return nil
	})
	require.NoError(t, err)

	resp := b.get("/cart/")
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Contains(t, resp.body, "no longer available")
}

func TestViewCartProblemNamesMissingProduct(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	b.post("/add-to-cart/1/", nil)
	_, err := app.carts.Update(context.Background(), b.cookie(SessionCookieName), func(c *cartdomain.Cart) error {
		c.Add(404)
		return nil
	})
	require.NoError(t, err)

	resp := b.do(http.MethodGet, "/cart/", nil, http.Header{"Accept": {"application/json"}})
	require.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, resp.header.Get("Content-Type"))

	var problem struct {
		Type       string `json:"type"`
		Extensions struct {
			ProductID int64 `json:"productId"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.body), &problem))
	assert.Equal(t, apierrors.TypeProductUnavailable, problem.Type)
	assert.Equal(t, int64(404), problem.Extensions.ProductID)
}
