package storefrontserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

func TestHomeListsCategoriesAndFeaturedProducts(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.get("/")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, `<a href="/category/1/">Staples</a>`)
	assert.Contains(t, resp.body, `<a href="/category/2/">Fruits</a>`)
	assert.Contains(t, resp.body, "Basmati Rice")
	assert.NotEmpty(t, b.cookie(SessionCookieName), "every visitor gets a session token")
}

func TestCategoryProducts(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.get("/category/2/")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Banana")
	assert.NotContains(t, resp.body, "Toor Dal")

	missing := b.get("/category/42/")
	assert.Equal(t, http.StatusNotFound, missing.status)
	assert.Contains(t, missing.body, "No category matches the given query.")
}

func TestProductDetail(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.get("/product/3/")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Banana")
	assert.Contains(t, resp.body, "&#8377;12.50")
	assert.Contains(t, resp.body, `action="/add-to-cart/3/"`)

	assert.Equal(t, http.StatusNotFound, b.get("/product/77/").status)
}

func TestProductListShowsEverything(t *testing.T) {
	app := newStorefrontApp(t)
	resp := app.browser(t).get("/products/")
	require.Equal(t, http.StatusOK, resp.status)
	for _, name := range []string{"Basmati Rice", "Toor Dal", "Banana"} {
		assert.Contains(t, resp.body, name)
	}
}

func TestSearch(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	found := b.get("/search/?q=RICE")
	require.Equal(t, http.StatusOK, found.status)
	assert.Contains(t, found.body, "Basmati Rice")
	assert.NotContains(t, found.body, "Banana")

	for _, path := range []string{"/search/", "/search/?q=", "/search/?q=%20%20"} {
		empty := b.get(path)
		require.Equal(t, http.StatusOK, empty.status, path)
		assert.Contains(t, empty.body, "No products found.", path)
		assert.Zero(t, strings.Count(empty.body, `class="product-card"`), path)
	}
}

func TestNotFoundNegotiatesProblemJSON(t *testing.T) {
	app := newStorefrontApp(t)
	b := app.browser(t)

	resp := b.do(http.MethodGet, "/product/77/", nil, http.Header{"Accept": {"application/json"}})
	require.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, resp.header.Get("Content-Type"))

	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal([]byte(resp.body), &problem))
	assert.Equal(t, apierrors.TypeNotFound, problem.Type)
	assert.Equal(t, "/product/77/", problem.Instance)

	unknown := b.do(http.MethodGet, "/no/such/page", nil, http.Header{"Accept": {"application/json"}})
	assert.Equal(t, http.StatusNotFound, unknown.status)
}

func TestHealthz(t *testing.T) {
	app := newStorefrontApp(t)
	resp := app.browser(t).get("/healthz")
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"status":"ok"}`, resp.body)
}
