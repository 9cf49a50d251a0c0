package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageAPI serves the static post-checkout pages and the health check.
type PageAPI struct{}

func NewPageAPI() PageAPI {
	return PageAPI{}
}

// Get /order-success/
func (api *PageAPI) OrderSuccess(c *gin.Context) {
	render(c, http.StatusOK, "order_success.html", nil)
}

// Get /thank-you/
func (api *PageAPI) ThankYou(c *gin.Context) {
	render(c, http.StatusOK, "thank_you.html", nil)
}

// Get /healthz
func (api *PageAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
