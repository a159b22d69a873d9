package model

const (
	Yes = "yes"
	No  = "no"
	// PaidDP marks an order with a down payment.
	PaidDP = "dp"
)

type Order struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	CustomerName  string `json:"customerName"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Quantity      int64  `json:"quantity"`
	ScheduledAt   string `json:"scheduledAt"`
	Collected     string `json:"collected"`
	Paid          string `json:"paid"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	CreatedAt     string `json:"createdAt"`

	// Admin listings only
	SellerName string `json:"sellerName,omitempty"`
}

// Settled is the terminal state: fully paid and picked up.
func (o *Order) Settled() bool {
	return o.Paid == Yes && o.Collected == Yes
}

// ValidCollected reports whether v is an accepted collected value.
func ValidCollected(v string) bool {
	return v == Yes || v == No
}

// ValidPaid reports whether v is an accepted paid value.
func ValidPaid(v string) bool {
	return v == Yes || v == No || v == PaidDP
}

// NormalizeCollected coerces stored values, defaulting to "no".
func NormalizeCollected(v string) string {
	if v == Yes {
		return Yes
	}
	return No
}

// NormalizePaid coerces stored values, defaulting to "no".
func NormalizePaid(v string) string {
	if ValidPaid(v) {
		return v
	}
	return No
}

// OrderUpdate is the PATCH-able subset of an order; nil fields stay unchanged.
type OrderUpdate struct {
	Collected     *string
	Paid          *string
	PaymentMethod *string
}

// Apply merges the update into o.
func (u OrderUpdate) Apply(o *Order) {
	if u.Collected != nil {
		o.Collected = *u.Collected
	}
	if u.Paid != nil {
		o.Paid = *u.Paid
	}
	if u.PaymentMethod != nil {
		o.PaymentMethod = *u.PaymentMethod
	}
}
