package domain

import (
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyINR is the only currency the UPI page supports.
const CurrencyINR = "INR"

var (
	ErrMissingPayee      = errors.New("upi payee address is required")
	ErrNonPositiveAmount = errors.New("payment amount must be greater than zero")
)

// PaymentIntent describes a UPI collect request rendered as a QR code.
type PaymentIntent struct {
	PayeeVPA  string
	PayeeName string
	Amount    decimal.Decimal
	Currency  string
}

// NewPaymentIntent validates the payee and amount.
func NewPaymentIntent(vpa, payeeName string, amount decimal.Decimal) (*PaymentIntent, error) {
	intent := &PaymentIntent{
		PayeeVPA:  strings.TrimSpace(vpa),
		PayeeName: strings.TrimSpace(payeeName),
		Amount:    amount,
		Currency:  CurrencyINR,
	}
	if intent.PayeeVPA == "" {
		return nil, ErrMissingPayee
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return intent, nil
}

// URI renders the upi://pay deep link. Parameter order is pa, pn, am, cu.
func (p *PaymentIntent) URI() string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(escape(p.PayeeVPA))
	b.WriteString("&pn=")
	b.WriteString(escape(p.PayeeName))
	b.WriteString("&am=")
	b.WriteString(p.Amount.StringFixed(2))
	b.WriteString("&cu=")
	b.WriteString(p.Currency)
	return b.String()
}

// escape percent-encodes a query value, keeping '@' readable and encoding spaces as %20.
func escape(value string) string {
	escaped := url.QueryEscape(value)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return strings.ReplaceAll(escaped, "%40", "@")
}
