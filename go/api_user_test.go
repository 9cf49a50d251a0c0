package storefrontserver

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupEstablishesSessionAndKeepsCart(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	b.post("/add-to-cart/2/", nil)
	anonymous := b.cookie(SessionCookieName)
	require.NotEmpty(t, anonymous)

	resp := b.signup("priya", "fresh-greens-1")
	require.Equal(t, http.StatusFound, resp.status)
	assert.Equal(t, "/", resp.location)

	token := b.cookie(SessionCookieName)
	assert.NotEqual(t, anonymous, token, "login rotates the session token")

	home := b.get("/")
	assert.Contains(t, home.body, "Hello, priya")
	assert.Contains(t, b.get("/cart/").body, "Toor Dal")
}

func TestSignupValidationErrors(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.post("/signup/", url.Values{
		"username":  {"neha"},
		"password1": {"12345678"},
		"password2": {"12345679"},
	})
	require.Equal(t, http.StatusBadRequest, resp.status)
	assert.Contains(t, resp.body, "This password is entirely numeric.")
	assert.Contains(t, resp.body, "didn")

	require.Equal(t, http.StatusFound, b.signup("neha", "chai-and-toast").status)
	other := app.browser(t)
	dup := other.signup("neha", "another-secret")
	require.Equal(t, http.StatusBadRequest, dup.status)
	assert.Contains(t, dup.body, "A user with that username already exists.")
}

func TestSignupOverlongPasswordRerendersForm(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.signup("longpw", strings.Repeat("a", 80))
	require.Equal(t, http.StatusBadRequest, resp.status)
	assert.Contains(t, resp.body, "This password is too long.")
	assert.NotContains(t, resp.body, "exceeds 72 bytes")
	assert.Empty(t, resp.location)
}

func TestLoginFailureRerendersForm(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	form := b.get("/login/")
	require.Equal(t, http.StatusOK, form.status)

	resp := b.post("/login/", url.Values{"username": {"ghost"}, "password": {"whatever-pass"}})
	require.Equal(t, http.StatusBadRequest, resp.status)
	assert.Contains(t, resp.body, "Please enter a correct username and password.")
}

func TestLoginHonoursNext(t *testing.T) {
	app := newStorefrontApp(t)
	app.browser(t).signup("dev", "spinach-puffs")

	b := app.browser(t)
	b.post("/add-to-cart/1/", nil)
	redirect := b.post("/place-order/", nil)
	require.Equal(t, "/login/?next=%2Fplace-order%2F", redirect.location)

	resp := b.post("/login/", url.Values{
		"username": {"dev"},
		"password": {"spinach-puffs"},
		"next":     {"/place-order/"},
	})
	require.Equal(t, http.StatusFound, resp.status)
	assert.Equal(t, "/place-order/", resp.location)

	placed := b.post("/place-order/", nil)
	assert.Equal(t, "/order-history/", placed.location)
	assert.Equal(t, 1, app.orders.Count())
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	app := newStorefrontApp(t)
	app.browser(t).signup("zoya", "litchi-season")

	b := app.browser(t)
	resp := b.post("/login/", url.Values{
		"username": {"zoya"},
		"password": {"litchi-season"},
		"next":     {"//evil.example/steal"},
	})
	require.Equal(t, http.StatusFound, resp.status)
	assert.Equal(t, "/", resp.location)
}

func TestLogoutEndsSessionAndDropsCart(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)
	b.signup("omar", "dates-and-figs")
	b.post("/add-to-cart/1/", nil)
	loggedIn := b.cookie(SessionCookieName)

	resp := b.post("/logout/", nil)
	require.Equal(t, http.StatusFound, resp.status)
	assert.Equal(t, "/", resp.location)
	assert.NotEqual(t, loggedIn, b.cookie(SessionCookieName))

	assert.Contains(t, b.get("/cart/").body, "Your cart is empty.")
	assert.Equal(t, http.StatusFound, b.get("/order-history/").status)
}
