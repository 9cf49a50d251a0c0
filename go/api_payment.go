package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	paymentsports "github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

// PaymentAPI serves the UPI QR payment page.
type PaymentAPI struct {
	service paymentsports.Service
}

// NewPaymentAPI creates a PaymentAPI backed by the provided service.
func NewPaymentAPI(service paymentsports.Service) PaymentAPI {
	return PaymentAPI{service: service}
}

// Get /payment/
// QR code and amount for the current cart
func (api *PaymentAPI) Payment(c *gin.Context) {
	page, ok := api.prepare(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "upi_qr.html", gin.H{
		"QRImage": page.ImagePath,
		"Amount":  page.Intent.Amount,
		"URI":     page.URI,
		"Payee":   page.Intent.PayeeName,
	})
}

// Get /payment/qr.png
// The QR code image itself
func (api *PaymentAPI) QRImage(c *gin.Context) {
	page, ok := api.prepare(c)
	if !ok {
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", page.PNG)
}

func (api *PaymentAPI) prepare(c *gin.Context) (*paymentsports.PaymentPage, bool) {
	page, err := api.service.PreparePayment(c.Request.Context(), SessionToken(c))
	switch {
	case err == nil:
		return page, true
	case errors.Is(err, paymentsapp.ErrCartEmpty):
		redirectWith(c, cartPath, LevelError, msgCartEmpty)
	default:
		respondServiceError(c, err)
	}
	return nil, false
}
