package qrcode

import (
	goqrcode "github.com/skip2/go-qrcode"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

var _ ports.QREncoder = (*Encoder)(nil)

// Encoder renders QR codes with medium error correction.
type Encoder struct {
	level goqrcode.RecoveryLevel
}

func NewEncoder() *Encoder {
	return &Encoder{level: goqrcode.Medium}
}

func (e *Encoder) EncodePNG(content string, size int) ([]byte, error) {
	return goqrcode.Encode(content, e.level, size)
}
