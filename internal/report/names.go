package report

import (
	"strings"

	"go-catat-jualan/internal/model"
)

// SellerNames maps user id to display name.
type SellerNames map[string]string

func NewSellerNames(users []model.User) SellerNames {
	out := make(SellerNames, len(users))
	for i := range users {
		out[users[i].ID] = users[i].DisplayName()
	}
	return out
}

// Name falls back to the id for unknown users.
func (s SellerNames) Name(userID string) string {
	if n, ok := s[userID]; ok && n != "" {
		return n
	}
	return userID
}

// ProductNames maps "userId:productId" to product name.
type ProductNames map[string]string

func productKey(userID, productID string) string {
	return userID + ":" + productID
}

func NewProductNames(products []model.Product) ProductNames {
	out := make(ProductNames, len(products))
	for i := range products {
		out[productKey(products[i].UserID, products[i].ID)] = products[i].Name
	}
	return out
}

// Lookup returns the product name for a sale, or "".
func (p ProductNames) Lookup(userID, productID string) string {
	if productID == "" {
		return ""
	}
	return p[productKey(userID, productID)]
}

// Resolve prefers the stored productName, then the catalogue, then "Lainnya".
func (p ProductNames) Resolve(tx *model.Transaction) string {
	if n := strings.TrimSpace(tx.ProductName); n != "" {
		return n
	}
	if n := p.Lookup(tx.UserID, tx.ProductID); n != "" {
		return n
	}
	return OtherProduct
}

// Fill sets ProductName on sales that lack one and can be resolved.
func (p ProductNames) Fill(txs []model.Transaction) {
	for i := range txs {
		tx := &txs[i]
		if tx.Type != model.TxSale || strings.TrimSpace(tx.ProductName) != "" {
			continue
		}
		if n := p.Lookup(tx.UserID, tx.ProductID); n != "" {
			tx.ProductName = n
		}
	}
}
