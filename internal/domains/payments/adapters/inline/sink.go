package inline

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

var _ ports.ImageSink = Sink{}

// Sink keeps no images. Every Save reports the inline QR endpoint, which
// renders the image again on each request.
type Sink struct {
	path string
}

func NewSink(inlinePath string) Sink {
	return Sink{path: inlinePath}
}

func (s Sink) Save(context.Context, string, []byte) (string, error) {
	return s.path, nil
}
