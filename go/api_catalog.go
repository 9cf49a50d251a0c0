package storefrontserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var errInvalidID = errors.New("identifier must be a positive integer")

// CatalogAPI serves the browsing pages over the catalog service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /
// Categories and featured products
func (api *CatalogAPI) Home(c *gin.Context) {
	home, err := api.service.Home(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	render(c, http.StatusOK, "home.html", gin.H{
		"Categories": home.Categories,
		"Products":   home.Featured,
	})
}

// Get /products/
// Every product in id order
func (api *CatalogAPI) ProductList(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := api.service.ListAll(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	categories, err := api.service.ListCategories(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	render(c, http.StatusOK, "products.html", gin.H{
		"Categories": categories,
		"Products":   products,
	})
}

// Get /category/:categoryId/
// Products of one category
func (api *CatalogAPI) CategoryProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	listing, err := api.service.ListByCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	render(c, http.StatusOK, "category_products.html", gin.H{
		"Category": listing.Category,
		"Products": listing.Products,
	})
}

// Get /product/:productId/
// Product detail
func (api *CatalogAPI) ProductDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	render(c, http.StatusOK, "product_detail.html", gin.H{"Product": product})
}

// Get /search/?q=
// Case-insensitive product name search
func (api *CatalogAPI) Search(c *gin.Context) {
	query := c.Query("q")
	results, err := api.service.Search(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	render(c, http.StatusOK, "search_results.html", gin.H{
		"Query":   query,
		"Results": results,
	})
}

// parseIDParam reads a positive int64 path parameter, answering 404 otherwise.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusNotFound, errInvalidID)
		return 0, false
	}
	return id, true
}
