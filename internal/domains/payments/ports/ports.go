package ports

import (
	"context"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
)

// CartPricer prices the session cart.
type CartPricer interface {
	View(ctx context.Context, token string) (*cartdomain.View, error)
}

// QREncoder renders content as a PNG QR code of the given pixel size.
type QREncoder interface {
	EncodePNG(content string, size int) ([]byte, error)
}

// ImageSink stores a generated image and returns the public path it is served from.
type ImageSink interface {
	Save(ctx context.Context, name string, png []byte) (string, error)
}

// PaymentPage is everything the payment page renders.
type PaymentPage struct {
	Intent    *domain.PaymentIntent
	URI       string
	ImagePath string
	PNG       []byte
}

// Service exposes payment use cases to adapters.
type Service interface {
	PreparePayment(ctx context.Context, sessionToken string) (*PaymentPage, error)
}
