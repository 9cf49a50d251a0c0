package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// LoginRequired sends anonymous visitors to the login page first.
	LoginRequired bool
}

// ApiHandleFunctions groups the storefront handlers and the session layer they share.
type ApiHandleFunctions struct {
	Sessions   *Sessions
	CatalogAPI CatalogAPI
	CartAPI    CartAPI
	OrderAPI   OrderAPI
	UserAPI    UserAPI
	PaymentAPI PaymentAPI
	PageAPI    PageAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the storefront routes, templates, and session middleware to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.SetHTMLTemplate(loadTemplates())
	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, errPageNotFound)
	})
	router.GET("/healthz", handleFunctions.PageAPI.Healthz)

	pages := router.Group("/")
	if handleFunctions.Sessions != nil {
		pages.Use(handleFunctions.Sessions.Middleware())
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.LoginRequired {
			handlers = append([]gin.HandlerFunc{RequireLogin()}, handlers...)
		}
		switch route.Method {
		case http.MethodGet:
			pages.GET(route.Pattern, handlers...)
		case http.MethodPost:
			pages.POST(route.Pattern, handlers...)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	catalog := handleFunctions.CatalogAPI
	cart := handleFunctions.CartAPI
	orders := handleFunctions.OrderAPI
	users := handleFunctions.UserAPI
	payments := handleFunctions.PaymentAPI
	pages := handleFunctions.PageAPI

	routes := []Route{
		{Name: "Home", Method: http.MethodGet, Pattern: "/", HandlerFunc: catalog.Home},
		{Name: "ProductList", Method: http.MethodGet, Pattern: "/products/", HandlerFunc: catalog.ProductList},
		{Name: "CategoryProducts", Method: http.MethodGet, Pattern: "/category/:categoryId/", HandlerFunc: catalog.CategoryProducts},
		{Name: "ProductDetail", Method: http.MethodGet, Pattern: "/product/:productId/", HandlerFunc: catalog.ProductDetail},
		{Name: "Search", Method: http.MethodGet, Pattern: "/search/", HandlerFunc: catalog.Search},

		{Name: "ViewCart", Method: http.MethodGet, Pattern: "/cart/", HandlerFunc: cart.ViewCart},
		{Name: "ViewCartLegacy", Method: http.MethodGet, Pattern: "/view-cart/", HandlerFunc: cart.ViewCart},

		{Name: "PlaceOrder", Method: http.MethodPost, Pattern: "/place-order/", HandlerFunc: orders.PlaceOrder, LoginRequired: true},
		{Name: "ReviewOrder", Method: http.MethodGet, Pattern: "/place-order/", HandlerFunc: orders.ReviewOrder},
		{Name: "OrderHistory", Method: http.MethodGet, Pattern: "/order-history/", HandlerFunc: orders.OrderHistory, LoginRequired: true},
		{Name: "MyOrders", Method: http.MethodGet, Pattern: "/my-orders/", HandlerFunc: orders.OrderHistory, LoginRequired: true},

		{Name: "Payment", Method: http.MethodGet, Pattern: "/payment/", HandlerFunc: payments.Payment, LoginRequired: true},
		{Name: "UPIPayment", Method: http.MethodGet, Pattern: "/upi-payment/", HandlerFunc: payments.Payment, LoginRequired: true},
		{Name: "PaymentQR", Method: http.MethodGet, Pattern: "/payment/qr.png", HandlerFunc: payments.QRImage, LoginRequired: true},

		{Name: "OrderSuccess", Method: http.MethodGet, Pattern: "/order-success/", HandlerFunc: pages.OrderSuccess},
		{Name: "ThankYou", Method: http.MethodGet, Pattern: "/thank-you/", HandlerFunc: pages.ThankYou},
	}

	// Cart mutations and the auth forms answer both verbs.
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		routes = append(routes,
			Route{Name: "AddToCart", Method: method, Pattern: "/add-to-cart/:productId/", HandlerFunc: cart.AddToCart},
			Route{Name: "RemoveFromCart", Method: method, Pattern: "/remove-from-cart/:productId/", HandlerFunc: cart.RemoveFromCart},
			Route{Name: "IncreaseQuantity", Method: method, Pattern: "/cart/increase/:productId/", HandlerFunc: cart.IncreaseQuantity},
			Route{Name: "DecreaseQuantity", Method: method, Pattern: "/cart/decrease/:productId/", HandlerFunc: cart.DecreaseQuantity},
			Route{Name: "Login", Method: method, Pattern: "/login/", HandlerFunc: users.Login},
			Route{Name: "Signup", Method: method, Pattern: "/signup/", HandlerFunc: users.Signup},
			Route{Name: "Logout", Method: method, Pattern: "/logout/", HandlerFunc: users.Logout},
		)
	}
	return routes
}
