package model

import "strings"

// Payment methods accepted on orders and sales.
const (
	PaymentCash     = "tunai"
	PaymentEWallet  = "e-wallet"
	PaymentTransfer = "transfer"
	// PaymentOther buckets unknown or missing methods in reports.
	PaymentOther = "lainnya"
)

// NormalizePaymentMethod returns the canonical method, or "" when v is not recognized.
func NormalizePaymentMethod(v string) string {
	switch s := strings.ToLower(strings.TrimSpace(v)); s {
	case PaymentCash, PaymentEWallet, PaymentTransfer:
		return s
	}
	return ""
}
