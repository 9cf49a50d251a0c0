package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	paymentsqrcode "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/qrcode"
)

type fixedPricer struct {
	total decimal.Decimal
	err   error
}

func (p fixedPricer) View(context.Context, string) (*cartdomain.View, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &cartdomain.View{Total: p.total}, nil
}

type recordingSink struct {
	names []string
	pngs  [][]byte
}

func (s *recordingSink) Save(_ context.Context, name string, png []byte) (string, error) {
	s.names = append(s.names, name)
	s.pngs = append(s.pngs, png)
	return "/static/qr/" + name, nil
}

var pngSignature = []byte{0x89, 'P', 'N', 'G'}

func TestPreparePayment(t *testing.T) {
	sink := &recordingSink{}
	svc := NewService(Config{UPIID: "shop@upi", PayeeName: "Fresh Basket"}, fixedPricer{total: decimal.RequireFromString("130")}, paymentsqrcode.NewEncoder(), sink)

	page, err := svc.PreparePayment(context.Background(), "token-1")
	require.NoError(t, err)
	require.Equal(t, "upi://pay?pa=shop@upi&pn=Fresh%20Basket&am=130.00&cu=INR", page.URI)
	require.True(t, decimal.RequireFromString("130").Equal(page.Intent.Amount))
	require.Equal(t, "/static/qr/"+imageName("token-1"), page.ImagePath)
	require.True(t, strings.HasPrefix(string(page.PNG), string(pngSignature)))

	require.Equal(t, []string{imageName("token-1")}, sink.names)
	require.Equal(t, page.PNG, sink.pngs[0])
}

func TestPreparePayment_EmptyCart(t *testing.T) {
	svc := NewService(Config{UPIID: "shop@upi"}, fixedPricer{total: decimal.Zero}, paymentsqrcode.NewEncoder(), nil)

	_, err := svc.PreparePayment(context.Background(), "token-1")
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestPreparePayment_NotConfigured(t *testing.T) {
	svc := NewService(Config{}, fixedPricer{total: decimal.NewFromInt(5)}, paymentsqrcode.NewEncoder(), nil)

	_, err := svc.PreparePayment(context.Background(), "token-1")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestPreparePayment_CartErrorPropagates(t *testing.T) {
	boom := errors.New("missing product")
	svc := NewService(Config{UPIID: "shop@upi"}, fixedPricer{err: boom}, paymentsqrcode.NewEncoder(), nil)

	_, err := svc.PreparePayment(context.Background(), "token-1")
	require.ErrorIs(t, err, boom)
}

func TestImageNameIsPerSession(t *testing.T) {
	require.NotEqual(t, imageName("a"), imageName("b"))
	require.Equal(t, imageName("a"), imageName("a"))
	require.NotContains(t, imageName("secret-token"), "secret")
}
