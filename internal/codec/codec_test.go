package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/sheets"
)

func i64(v int64) *int64 { return &v }

func TestUserRoundTrip(t *testing.T) {
	u := &model.User{
		ID: "u1", Username: "budi", FullName: "Budi S", Email: "budi@example.com",
		PasswordHash: "$2a$10$x", CreatedAt: "2024-01-01T00:00:00Z", Role: model.RoleAdmin,
	}
	row := UserToRow(u)
	assert.Len(t, row, sheets.Users.Width())
	assert.Equal(t, u, UserFromRow(row))
}

func TestUserFromRow_NormalizesAndRejectsShort(t *testing.T) {
	u := UserFromRow([]string{"u1", " budi ", "", "BUDI@Example.com", "h", "2024"})
	require.NotNil(t, u)
	assert.Equal(t, "budi", u.Username)
	assert.Equal(t, "budi@example.com", u.Email)
	assert.Equal(t, model.RoleSeller, u.Role)

	assert.Nil(t, UserFromRow([]string{"u1", "budi"}))
	assert.Nil(t, UserFromRow(make([]string, 7)))
}

func TestShopRoundTrip(t *testing.T) {
	id, created := "s1", "2024-01-01T00:00:00Z"
	s := &model.Shop{ID: &id, UserID: "u1", Name: "Warung Budi", CreatedAt: &created}
	assert.Equal(t, s, ShopFromRow(ShopToRow(s)))
}

func TestProductRoundTrip(t *testing.T) {
	tracked := &model.Product{ID: "p1", UserID: "u1", Name: "Kopi", Emoji: "☕", Price: 15000, Stock: i64(100), LowStockThreshold: 20}
	assert.Equal(t, tracked, ProductFromRow(ProductToRow(tracked)))

	untracked := &model.Product{ID: "p2", UserID: "u1", Name: "Jasa", Emoji: model.DefaultEmoji, Price: 5000}
	row := ProductToRow(untracked)
	assert.Equal(t, "", row[5])
	assert.Equal(t, untracked, ProductFromRow(row))
}

func TestProductFromRow_TombstoneAndGarbage(t *testing.T) {
	assert.Nil(t, ProductFromRow(sheets.Products.BlankRow()))
	assert.Nil(t, ProductFromRow(nil))

	p := ProductFromRow([]string{"p1", "u1", "Teh", "🍵", "abc", "-4", ""})
	require.NotNil(t, p)
	assert.Equal(t, int64(0), p.Price)
	assert.Equal(t, int64(0), *p.Stock)
}

func TestOperationalCostRoundTrip(t *testing.T) {
	c := &model.OperationalCost{
		ID: "c1", UserID: "u1", Category: "Sewa", Amount: 1500000, Period: "2024-01",
		Type: model.CostOneTime, Description: "kios", CreatedAt: "2024-01-02T00:00:00Z",
	}
	assert.Equal(t, c, OperationalCostFromRow(OperationalCostToRow(c)))

	c.Type = "weekly"
	assert.Equal(t, model.CostRecurring, OperationalCostFromRow(OperationalCostToRow(c)).Type)
}

func TestOrderRoundTrip(t *testing.T) {
	o := &model.Order{
		ID: "o1", UserID: "u1", CustomerName: "Ani", ProductID: "p1", ProductName: "Kopi",
		Quantity: 2, ScheduledAt: "2024-01-05T10:00", Collected: model.No, Paid: model.PaidDP,
		PaymentMethod: model.PaymentTransfer, CreatedAt: "2024-01-01T00:00:00Z",
	}
	row := OrderToRow(o)
	assert.Len(t, row, sheets.Orders.Width())
	assert.Equal(t, o, OrderFromRow(row))
}

func TestOrderFromRow_TenColumnsAndBadStates(t *testing.T) {
	o := OrderFromRow([]string{"o1", "u1", "Ani", "p1", "Kopi", "1", "", "maybe", "later", "2024"})
	require.NotNil(t, o)
	assert.Equal(t, model.No, o.Collected)
	assert.Equal(t, model.No, o.Paid)
	assert.Equal(t, "", o.PaymentMethod)
}

func TestTransactionRoundTrip_Current(t *testing.T) {
	tx := &model.Transaction{
		ID: "t1", UserID: "u1", Type: model.TxSale, ProductID: "p1", ProductName: "Kopi",
		Quantity: i64(2), Amount: 30000, Description: "", Timestamp: 1704067200000,
		Date: "2024-01-01", OrderID: "o1", PaymentMethod: model.PaymentEWallet,
	}
	row := TransactionToRow(tx)
	assert.Len(t, row, sheets.Transactions.Width())
	assert.Equal(t, tx, TransactionFromRow(row))
}

func TestTransactionFromRow_Legacy(t *testing.T) {
	row := []string{"t1", "u1", "expense", "", "", "25000", "Bahan — Gula — beli 2 kg — pasar", "1704067200000", "2024-01-01"}

	tx := TransactionFromRow(row)
	require.NotNil(t, tx)
	assert.Equal(t, model.TxExpense, tx.Type)
	assert.Nil(t, tx.Quantity)
	assert.Equal(t, "Bahan", tx.Category)
	assert.Equal(t, "Gula", tx.SubCategory)
	assert.Equal(t, "beli 2 kg — pasar", tx.Description)
	assert.Equal(t, int64(1704067200000), tx.Timestamp)
	assert.Equal(t, "2024-01-01", tx.Date)
}

func TestTransactionFromRow_CurrentWithoutOptionalTail(t *testing.T) {
	row := []string{"t2", "u1", "sale", "p1", "3", "45000", "", "", "catatan", "1704067200000", "2024-01-01"}

	tx := TransactionFromRow(row)
	require.NotNil(t, tx)
	assert.Equal(t, "catatan", tx.Description)
	assert.Equal(t, int64(3), *tx.Quantity)
	assert.Empty(t, tx.OrderID)
	assert.Empty(t, tx.PaymentMethod)
}

func TestTransactionFromRow_Invalid(t *testing.T) {
	assert.Nil(t, TransactionFromRow([]string{"t1", "u1", "sale"}))
	assert.Nil(t, TransactionFromRow(sheets.Transactions.BlankRow()))
}

func TestTransactionToRow_SplitsCombinedDescription(t *testing.T) {
	tx := &model.Transaction{
		ID: "t3", UserID: "u1", Type: model.TxExpense, Amount: 10000,
		Description: "Operasional — Listrik — token", Timestamp: 1, Date: "2024-01-01",
	}
	row := TransactionToRow(tx)
	assert.Equal(t, []string{"Operasional", "Listrik", "token"}, row[6:9])

	tx.Category = "Bahan"
	row = TransactionToRow(tx)
	assert.Equal(t, "Bahan", row[6])
	assert.Equal(t, "Operasional — Listrik — token", row[8])
}
