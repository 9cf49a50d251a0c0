package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

// DefaultQRSize is the rendered QR edge length in pixels.
const DefaultQRSize = 256

// Config holds the payee identity shown in every payment intent.
type Config struct {
	UPIID     string
	PayeeName string
	QRSize    int
}

// Service builds UPI payment pages from the session cart.
type Service struct {
	cfg     Config
	carts   ports.CartPricer
	encoder ports.QREncoder
	sink    ports.ImageSink
}

func NewService(cfg Config, carts ports.CartPricer, encoder ports.QREncoder, sink ports.ImageSink) *Service {
	if cfg.QRSize <= 0 {
		cfg.QRSize = DefaultQRSize
	}
	return &Service{cfg: cfg, carts: carts, encoder: encoder, sink: sink}
}

// PreparePayment prices the cart, builds the UPI intent, and renders its QR code.
// An empty cart yields ErrCartEmpty.
func (s *Service) PreparePayment(ctx context.Context, sessionToken string) (*ports.PaymentPage, error) {
	view, err := s.carts.View(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if !view.Total.IsPositive() {
		return nil, ErrCartEmpty
	}
	intent, err := domain.NewPaymentIntent(s.cfg.UPIID, s.cfg.PayeeName, view.Total)
	if err != nil {
		return nil, mapError(err)
	}
	uri := intent.URI()
	png, err := s.encoder.EncodePNG(uri, s.cfg.QRSize)
	if err != nil {
		return nil, err
	}
	page := &ports.PaymentPage{Intent: intent, URI: uri, PNG: png}
	if s.sink != nil {
		path, err := s.sink.Save(ctx, imageName(sessionToken), png)
		if err != nil {
			return nil, err
		}
		page.ImagePath = path
	}
	return page, nil
}

// imageName derives a per-session file name that does not expose the token.
func imageName(sessionToken string) string {
	sum := sha256.Sum256([]byte(sessionToken))
	return "qr-" + hex.EncodeToString(sum[:8]) + ".png"
}

var _ ports.Service = (*Service)(nil)
