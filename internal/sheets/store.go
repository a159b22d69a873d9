// Package sheets is the row-oriented persistence layer. Every backend
// addresses rows by sheet name and zero-based data index (the header row is
// not counted), so a deleted record is a blanked row rather than a removed one.
package sheets

import (
	"context"
	"errors"
)

var ErrRowOutOfRange = errors.New("sheets: row index out of range")

// Table is a named sheet with a fixed column order.
type Table struct {
	Name    string
	Headers []string
}

// Width is the number of columns.
func (t Table) Width() int { return len(t.Headers) }

// BlankRow is the tombstone written over deleted records.
func (t Table) BlankRow() []string { return make([]string, t.Width()) }

var (
	Users = Table{Name: "Users", Headers: []string{
		"id", "username", "fullName", "email", "passwordHash", "createdAt", "role",
	}}
	Shop = Table{Name: "Shop", Headers: []string{
		"id", "userId", "name", "createdAt",
	}}
	Products = Table{Name: "Products", Headers: []string{
		"id", "userId", "name", "emoji", "price", "stock", "lowStockThreshold",
	}}
	Transactions = Table{Name: "Transactions", Headers: []string{
		"id", "userId", "type", "productId", "quantity", "amount", "category", "subCategory",
		"description", "timestamp", "date", "orderId", "paymentMethod", "productName",
	}}
	OperationalCosts = Table{Name: "OperationalCosts", Headers: []string{
		"id", "userId", "category", "amount", "period", "type", "description", "createdAt",
	}}
	Orders = Table{Name: "Orders", Headers: []string{
		"id", "userId", "customerName", "productId", "productName", "quantity",
		"scheduledAt", "collected", "paid", "createdAt", "paymentMethod",
	}}
)

// Tables lists every sheet the API uses.
var Tables = []Table{Users, Shop, Products, Transactions, OperationalCosts, Orders}

// RowStore is the spreadsheet-as-database contract.
type RowStore interface {
	// Rows returns the data rows of a sheet, header excluded. Rows may be ragged.
	Rows(ctx context.Context, t Table) ([][]string, error)
	Append(ctx context.Context, t Table, row []string) error
	// UpdateRow overwrites the data row at index.
	UpdateRow(ctx context.Context, t Table, index int, row []string) error
	// EnsureTable creates the sheet and header row when missing.
	EnsureTable(ctx context.Context, t Table) error
}

// EnsureAll runs EnsureTable over every known table.
func EnsureAll(ctx context.Context, s RowStore) error {
	for _, t := range Tables {
		if err := s.EnsureTable(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// ColumnLetter converts a 1-based column number to A1 notation (1 -> A, 27 -> AA).
func ColumnLetter(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
