package model

import "strings"

type TransactionType string

const (
	TxSale    TransactionType = "sale"
	TxExpense TransactionType = "expense"
)

// NormalizeTxType defaults anything that isn't an expense to a sale.
func NormalizeTxType(raw string) TransactionType {
	if TransactionType(raw) == TxExpense {
		return TxExpense
	}
	return TxSale
}

// DescriptionSeparator joins category, sub-category and description in legacy rows.
const DescriptionSeparator = " — "

// MaxExpenseDescriptionLen caps expense descriptions.
const MaxExpenseDescriptionLen = 100

type Transaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId,omitempty"`
	Type          TransactionType `json:"type"`
	ProductID     string          `json:"productId,omitempty"`
	ProductName   string          `json:"productName,omitempty"`
	Quantity      *int64          `json:"quantity,omitempty"`
	Amount        int64           `json:"amount"`
	Category      string          `json:"category,omitempty"`
	SubCategory   string          `json:"subCategory,omitempty"`
	Description   string          `json:"description"`
	Timestamp     int64           `json:"timestamp"`
	Date          string          `json:"date"` // YYYY-MM-DD
	OrderID       string          `json:"orderId,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`

	// Admin listings only
	SellerName string `json:"sellerName,omitempty"`
}

// SplitDescription splits "category — subCategory — description" into its parts.
// Anything past the second separator stays in the description.
func SplitDescription(combined string) (category, subCategory, description string) {
	combined = strings.TrimSpace(combined)
	if combined == "" {
		return "", "", ""
	}
	parts := strings.Split(combined, DescriptionSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	category = parts[0]
	if len(parts) > 1 {
		subCategory = parts[1]
	}
	if len(parts) > 2 {
		description = strings.TrimSpace(strings.Join(parts[2:], DescriptionSeparator))
	}
	return category, subCategory, description
}

// TransactionUpdate is an admin partial update; nil fields stay unchanged.
type TransactionUpdate struct {
	Type          *TransactionType
	ProductID     *string
	ProductName   *string
	Quantity      *int64
	Amount        *int64
	Category      *string
	SubCategory   *string
	Description   *string
	Date          *string
	PaymentMethod *string
}

// Apply merges the update into t.
func (u TransactionUpdate) Apply(t *Transaction) {
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.ProductID != nil {
		t.ProductID = *u.ProductID
	}
	if u.ProductName != nil {
		t.ProductName = *u.ProductName
	}
	if u.Quantity != nil {
		q := *u.Quantity
		t.Quantity = &q
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.SubCategory != nil {
		t.SubCategory = *u.SubCategory
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.PaymentMethod != nil {
		t.PaymentMethod = *u.PaymentMethod
	}
}
