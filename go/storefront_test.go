package storefrontserver

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	paymentsinline "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/inline"
	paymentsqrcode "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/qrcode"
	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	usermemory "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
)

const qrInlinePath = "/payment/qr.png"

type storefrontApp struct {
	server  *httptest.Server
	catalog *catalogmemory.Repository
	orders  *ordersmemory.Repository
	carts   *cartmemory.SessionStore
}

func newStorefrontApp(t *testing.T) *storefrontApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	catalogRepo := catalogmemory.NewRepository()
	for _, name := range []string{"Staples", "Fruits"} {
		category, err := catalogdomain.NewCategory(0, name)
		require.NoError(t, err)
		_, err = catalogRepo.SaveCategory(ctx, category)
		require.NoError(t, err)
	}
	for _, p := range []struct {
		name, price string
		category    int64
	}{{"Basmati Rice", "50.00", 1}, {"Toor Dal", "30.00", 1}, {"Banana", "12.50", 2}} {
		product, err := catalogdomain.NewProduct(0, p.name, decimal.RequireFromString(p.price), p.category)
		require.NoError(t, err)
		_, err = catalogRepo.SaveProduct(ctx, product)
		require.NoError(t, err)
	}
	catalogService := catalogapp.NewService(catalogRepo)

	cartStore := cartmemory.NewSessionStore()
	cartService := cartapp.NewService(cartStore, catalogService)
	orderRepo := ordersmemory.NewRepository()
	orderService := ordersapp.NewService(orderRepo, cartService, catalogService)
	userService := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore(), userapp.WithHashCost(4))
	paymentService := paymentsapp.NewService(
		paymentsapp.Config{UPIID: "shop@upi", PayeeName: "Corner Grocer"},
		cartService,
		paymentsqrcode.NewEncoder(),
		paymentsinline.NewSink(qrInlinePath),
	)

	sessions := NewSessions(userService, cartService)
	handlers := ApiHandleFunctions{
		Sessions:   sessions,
		CatalogAPI: NewCatalogAPI(catalogService),
		CartAPI:    NewCartAPI(cartService),
		OrderAPI:   NewOrderAPI(orderService),
		UserAPI:    NewUserAPI(userService, sessions),
		PaymentAPI: NewPaymentAPI(paymentService),
		PageAPI:    NewPageAPI(),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &storefrontApp{server: server, catalog: catalogRepo, orders: orderRepo, carts: cartStore}
}

// browser keeps cookies between requests and never follows redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (a *storefrontApp) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: a.server.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type page struct {
	status   int
	location string
	body     string
	header   http.Header
}

func (b *browser) get(path string) page {
	b.t.Helper()
	return b.do(http.MethodGet, path, nil, nil)
}

func (b *browser) post(path string, form url.Values) page {
	b.t.Helper()
	return b.do(http.MethodPost, path, form, nil)
}

func (b *browser) do(method, path string, form url.Values, header http.Header) page {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, b.base+path, body)
	require.NoError(b.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		body:     string(raw),
		header:   resp.Header,
	}
}

func (b *browser) cookie(name string) string {
	b.t.Helper()
	u, err := url.Parse(b.base)
	require.NoError(b.t, err)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (b *browser) signup(username, password string) page {
	b.t.Helper()
	return b.post("/signup/", url.Values{
		"username":  {username},
		"password1": {password},
		"password2": {password},
	})
}
