package filesystem

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

var _ ports.ImageSink = (*Sink)(nil)

// Sink writes images below dir and reports them under urlPrefix.
type Sink struct {
	dir       string
	urlPrefix string
}

// NewSink creates dir if needed. urlPrefix is the public path dir is served under.
func NewSink(dir, urlPrefix string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Sink{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Save writes through a temp file and rename so readers never see a partial PNG.
func (s *Sink) Save(_ context.Context, name string, png []byte) (string, error) {
	name = filepath.Base(name)
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return path.Join(s.urlPrefix, name), nil
}
