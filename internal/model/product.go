package model

import "math"

// DefaultEmoji is used when a product is created without one.
const DefaultEmoji = "📦"

// MaxProductNameLen caps product names.
const MaxProductNameLen = 50

type Product struct {
	ID                string `json:"id"`
	UserID            string `json:"userId,omitempty"`
	Name              string `json:"name"`
	Emoji             string `json:"emoji"`
	Price             int64  `json:"price"`
	Stock             *int64 `json:"stock"` // nil = stock not tracked
	LowStockThreshold int64  `json:"lowStockThreshold"`

	// Admin listings only
	SellerName string `json:"sellerName,omitempty"`
}

// Tracked reports whether the seller counts stock for this product.
func (p *Product) Tracked() bool {
	return p.Stock != nil
}

// LowOnStock is true when a tracked product is at or below its threshold.
func (p *Product) LowOnStock() bool {
	return p.Stock != nil && *p.Stock <= p.LowStockThreshold
}

// DeriveLowStockThreshold is max(1, round(stock*0.2)) for tracked stock, 0 otherwise.
func DeriveLowStockThreshold(stock *int64) int64 {
	if stock == nil {
		return 0
	}
	t := int64(math.Floor(float64(*stock)*0.2 + 0.5))
	if t < 1 {
		return 1
	}
	return t
}

// ProductUpdate is a partial product update; nil fields stay unchanged.
// ClearStock switches the product to untracked.
type ProductUpdate struct {
	Name              *string
	Emoji             *string
	Price             *int64
	Stock             *int64
	ClearStock        bool
	LowStockThreshold *int64
}

// Apply merges the update into p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Emoji != nil {
		p.Emoji = *u.Emoji
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.ClearStock {
		p.Stock = nil
	} else if u.Stock != nil {
		s := *u.Stock
		p.Stock = &s
	}
	if u.LowStockThreshold != nil {
		p.LowStockThreshold = *u.LowStockThreshold
	}
}
