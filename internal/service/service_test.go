package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/notify"
	"go-catat-jualan/internal/repository"
	"go-catat-jualan/internal/sheets"
	"go-catat-jualan/pkg/jwt"
)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

func (r *recorder) find(action string) (notify.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Action == action {
			return ev, true
		}
	}
	return notify.Event{}, false
}

type fixture struct {
	store     *sheets.MemoryStore
	products  repository.ProductRepository
	txs       repository.TransactionRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	events    *notify.Dispatcher
	rec       *recorder
	clock     Clock
	inventory InventoryService
	order     OrderService
	admin     AdminService
	reports   ReportService
	auth      AuthService
}

// 2024-03-10 20:00 UTC is already 2024-03-11 in Jakarta.
var fixedNow = time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := sheets.NewMemoryStore()
	rec := &recorder{}
	log := logging.Nop()
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	clock := Clock{Now: func() time.Time { return fixedNow }, Loc: loc}
	events := notify.NewDispatcher(rec, log)

	f := &fixture{
		store:    store,
		products: repository.NewProductRepo(store),
		txs:      repository.NewTransactionRepo(store),
		orders:   repository.NewOrderRepo(store),
		users:    repository.NewUserRepo(store),
		events:   events,
		rec:      rec,
		clock:    clock,
	}
	f.inventory = NewInventoryService(f.products, f.txs, events, clock, log)
	f.order = NewOrderService(f.orders, f.products, f.txs, events, clock, log)
	f.admin = NewAdminService(f.users, f.products, f.orders, f.txs, []string{"ops-1"})
	f.reports = NewReportService(f.products, f.txs, clock)
	f.auth = NewAuthService(f.users, jwt.NewIssuer("test-secret", time.Hour, time.Minute), clock, WithResetTokenInResponse(true))
	return f
}

func TestClock_TodayUsesLocalZone(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "2024-03-11", f.clock.Today())
	assert.Equal(t, "2024-03-10T20:00:00.000Z", f.clock.Stamp())
}

func TestCreateProduct_DerivesThreshold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		stock model.Number
		want  int64
	}{
		{model.Num(100), 20},
		{model.Num(1), 1},
		{model.Number{}, 0},
		{model.Number{Set: true, Blank: true}, 0},
		{model.Num(12), 2},
	}
	for _, tc := range cases {
		p, err := f.inventory.CreateProduct(ctx, "u1", &CreateProductRequest{Name: "Kopi", Stock: tc.stock})
		require.NoError(t, err)
		assert.Equal(t, tc.want, p.LowStockThreshold)
	}
}

func TestCreateProduct_NormalizesInput(t *testing.T) {
	f := newFixture(t)
	long := "Kopi susu gula aren dengan topping boba dan keju yang sangat panjang"

	p, err := f.inventory.CreateProduct(context.Background(), "u1", &CreateProductRequest{
		Name:  "  " + long + "  ",
		Price: model.Num(-500),
		Stock: model.Num(-3),
	})
	require.NoError(t, err)

	assert.Len(t, []rune(p.Name), model.MaxProductNameLen)
	assert.Equal(t, model.DefaultEmoji, p.Emoji)
	assert.Equal(t, int64(0), p.Price)
	require.NotNil(t, p.Stock)
	assert.Equal(t, int64(0), *p.Stock)
}

func TestUpdateProduct_ScopedAndClearsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.inventory.CreateProduct(ctx, "u1", &CreateProductRequest{Name: "Kopi", Stock: model.Num(10)})

	_, err := f.inventory.UpdateProduct(ctx, "u2", p.ID, &UpdateProductRequest{Price: model.Num(1)})
	assert.ErrorIs(t, err, ErrProductNotFound)

	updated, err := f.inventory.UpdateProduct(ctx, "u1", p.ID, &UpdateProductRequest{
		Stock:             model.Number{Set: true, Blank: true},
		LowStockThreshold: model.Num(0),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Stock)
	assert.Equal(t, int64(1), updated.LowStockThreshold)

	assert.ErrorIs(t, f.inventory.DeleteProduct(ctx, "u2", p.ID), ErrProductNotFound)
	require.NoError(t, f.inventory.DeleteProduct(ctx, "u1", p.ID))
	list, _ := f.inventory.ListProducts(ctx, "u1")
	assert.Empty(t, list)
}

func TestRecordTransaction_DateFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.inventory.RecordTransaction(ctx, "u1", &CreateTransactionRequest{Type: "sale", Amount: model.Num(1000), Date: "2024-02-30"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", tx.Date)

	tx, err = f.inventory.RecordTransaction(ctx, "u1", &CreateTransactionRequest{Type: "sale", Amount: model.Num(1000), Date: "2024-02-29"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", tx.Date)
	assert.Equal(t, fixedNow.UnixMilli(), tx.Timestamp)
}

func TestRecordTransaction_OrderIDIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.inventory.RecordTransaction(ctx, "u1", &CreateTransactionRequest{Type: "sale", Amount: model.Num(5000), OrderID: " o-9 "})
	require.NoError(t, err)
	second, err := f.inventory.RecordTransaction(ctx, "u1", &CreateTransactionRequest{Type: "sale", Amount: model.Num(9999), OrderID: "o-9"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5000), second.Amount)

	list, _ := f.inventory.ListTransactions(ctx, "u1")
	assert.Len(t, list, 1)
}

func TestRecordTransaction_SplitsExpenseDescription(t *testing.T) {
	f := newFixture(t)
	desc := "Bahan Baku — Gula — 2 kg"

	tx, err := f.inventory.RecordTransaction(context.Background(), "u1", &CreateTransactionRequest{Type: "expense", Amount: model.Num(30000), Description: &desc, PaymentMethod: "QRIS"})
	require.NoError(t, err)

	assert.Equal(t, model.TxExpense, tx.Type)
	assert.Equal(t, "Bahan Baku", tx.Category)
	assert.Equal(t, "Gula", tx.SubCategory)
	assert.Equal(t, "2 kg", tx.Description)
	assert.Empty(t, tx.PaymentMethod)
}

func TestDeleteProduct_EventKeepsIDAfterCallerBufferReuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.inventory.CreateProduct(ctx, "u1", &CreateProductRequest{Name: "Roti", Price: model.Num(8000)})
	require.NoError(t, err)

	// id aliases buf the way fiber route params alias the request buffer
	buf := []byte(p.ID)
	id := unsafe.String(&buf[0], len(buf))
	require.NoError(t, f.inventory.DeleteProduct(ctx, "u1", id))
	for i := range buf {
		buf[i] = 'x'
	}
	f.events.Wait()

	ev, ok := f.rec.find(notify.ActionProductDeleted)
	require.True(t, ok)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, map[string]string{"id": p.ID}, ev.Data)

	assert.ErrorIs(t, f.inventory.DeleteProduct(ctx, "u1", p.ID), ErrProductNotFound)
}

func TestRecordTransaction_ReducesStockAndWarns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.inventory.CreateProduct(ctx, "u1", &CreateProductRequest{Name: "Roti", Price: model.Num(8000), Stock: model.Num(10)})

	tx, err := f.inventory.RecordTransaction(ctx, "u1", &CreateTransactionRequest{Type: "sale", ProductID: p.ID, Quantity: model.Num(9), Amount: model.Num(72000), PaymentMethod: " Tunai "})
	require.NoError(t, err)
	f.events.Wait()

	assert.Equal(t, "Roti", tx.ProductName)
	assert.Equal(t, model.PaymentCash, tx.PaymentMethod)

	got, err := f.products.FindByID(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), *got.Stock)
	assert.Contains(t, f.rec.actions(), notify.ActionProductLowStock)

	// overselling clamps at zero
	_, err = f.inventory.RecordTransaction(ctx, "u1", &CreateTransactionRequest{Type: "sale", ProductID: p.ID, Quantity: model.Num(5)})
	require.NoError(t, err)
	got, _ = f.products.FindByID(ctx, "u1", p.ID)
	assert.Equal(t, int64(0), *got.Stock)
}

func TestOrderReconciliation_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.inventory.CreateProduct(ctx, "u1", &CreateProductRequest{Name: "Nasi Box", Price: model.Num(15000)})

	order, err := f.order.Create(ctx, "u1", &CreateOrderRequest{CustomerName: "Ani", ProductID: p.ID, ProductName: "Nasi Box", Quantity: model.Num(2)})
	require.NoError(t, err)
	assert.Equal(t, model.No, order.Paid)
	assert.Equal(t, model.No, order.Collected)

	yes, transfer := model.Yes, "transfer"
	_, err = f.order.Update(ctx, "u1", order.ID, &UpdateOrderRequest{Paid: &yes, PaymentMethod: &transfer})
	require.NoError(t, err)
	txs, _ := f.txs.FindByUser(ctx, "u1")
	assert.Empty(t, txs, "paid alone does not settle")

	settled, err := f.order.Update(ctx, "u1", order.ID, &UpdateOrderRequest{Collected: &yes})
	require.NoError(t, err)
	assert.True(t, settled.Settled())

	txs, _ = f.txs.FindByUser(ctx, "u1")
	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, model.TxSale, tx.Type)
	assert.Equal(t, int64(30000), tx.Amount)
	assert.Equal(t, "transfer", tx.PaymentMethod)
	assert.Equal(t, order.ID, tx.OrderID)
	assert.Equal(t, "2024-03-11", tx.Date)
	assert.Equal(t, int64(2), *tx.Quantity)
	assert.Equal(t, "Nasi Box", tx.ProductName)

	// re-entering the settled state never duplicates
	_, err = f.order.Update(ctx, "u1", order.ID, &UpdateOrderRequest{Collected: &yes, Paid: &yes})
	require.NoError(t, err)
	txs, _ = f.txs.FindByUser(ctx, "u1")
	assert.Len(t, txs, 1)
}

func TestOrderReconciliation_ConcurrentPatchesCreateOneSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, _ := f.order.Create(ctx, "u1", &CreateOrderRequest{ProductID: "missing", Quantity: model.Num(1)})

	yes := model.Yes
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.order.Update(ctx, "u1", order.ID, &UpdateOrderRequest{Collected: &yes, Paid: &yes})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	txs, _ := f.txs.FindByUser(ctx, "u1")
	require.Len(t, txs, 1)
	assert.Equal(t, int64(0), txs[0].Amount, "missing product prices at zero")
	assert.Equal(t, model.PaymentCash, txs[0].PaymentMethod)
}

func TestOrderUpdate_IgnoresInvalidValuesAndScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, _ := f.order.Create(ctx, "u1", &CreateOrderRequest{Quantity: model.Num(1), PaymentMethod: "cek"})
	assert.Empty(t, order.PaymentMethod)

	bogus, dp := "maybe", model.PaidDP
	updated, err := f.order.Update(ctx, "u1", order.ID, &UpdateOrderRequest{Collected: &bogus, Paid: &dp, PaymentMethod: &bogus})
	require.NoError(t, err)
	assert.Equal(t, model.No, updated.Collected)
	assert.Equal(t, model.PaidDP, updated.Paid)
	assert.Empty(t, updated.PaymentMethod)

	_, err = f.order.Update(ctx, "u2", order.ID, &UpdateOrderRequest{Paid: &dp})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderUpdateAny_ReconcilesUnderOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, _ := f.order.Create(ctx, "u1", &CreateOrderRequest{Quantity: model.Num(1)})

	yes := model.Yes
	_, err := f.order.UpdateAny(ctx, order.ID, &UpdateOrderRequest{Collected: &yes, Paid: &yes})
	require.NoError(t, err)

	txs, _ := f.txs.FindByUser(ctx, "u1")
	assert.Len(t, txs, 1)

	_, err = f.order.UpdateAny(ctx, "nope", &UpdateOrderRequest{})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAdmin_IsAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &model.User{ID: "boss", Username: "boss", Role: model.RoleAdmin, CreatedAt: "x"}))
	require.NoError(t, f.users.Create(ctx, &model.User{ID: "seller", Username: "seller", Role: model.RoleSeller, CreatedAt: "x"}))

	for id, want := range map[string]bool{"boss": true, "seller": false, "ops-1": true, "stranger": false} {
		got, err := f.admin.IsAdmin(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestAdmin_TransactionsFilterAndSellerName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &model.User{ID: "U1", Username: "budi", FullName: "Budi", CreatedAt: "x"}))
	require.NoError(t, f.users.Create(ctx, &model.User{ID: "U2", Username: "ani", CreatedAt: "x"}))
	require.NoError(t, f.products.Create(ctx, &model.Product{ID: "p1", UserID: "U1", Name: "Kopi"}))

	for _, tx := range []model.Transaction{
		{ID: "a", UserID: "U1", Type: model.TxSale, ProductID: "p1", Amount: 1, Timestamp: 1, Date: "2024-01-05"},
		{ID: "b", UserID: "U1", Type: model.TxSale, Amount: 2, Timestamp: 2, Date: "2024-02-01"},
		{ID: "c", UserID: "U2", Type: model.TxSale, Amount: 3, Timestamp: 3, Date: "2024-01-10"},
		{ID: "d", UserID: "U1", Type: model.TxExpense, Amount: 4, Timestamp: 4, Date: "2024-01-31"},
	} {
		require.NoError(t, f.txs.Create(ctx, &tx))
	}

	got, err := f.admin.Transactions(ctx, &TransactionFilter{UserID: "U1", StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	for _, tx := range got {
		assert.Equal(t, "U1", tx.UserID)
		assert.Equal(t, "Budi", tx.SellerName)
	}
	assert.Equal(t, "Kopi", got[1].ProductName)

	_, err = f.admin.Transactions(ctx, &TransactionFilter{StartDate: "2024-02-30"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAdmin_UpdateAndDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.txs.Create(ctx, &model.Transaction{ID: "t1", UserID: "U1", Type: model.TxSale, Amount: 100, Date: "2024-01-01"}))

	badDate := "2024-13-01"
	_, err := f.admin.UpdateTransaction(ctx, "t1", &AdminUpdateTransactionRequest{Date: &badDate})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	expense, date := "expense", "2024-01-02"
	tx, err := f.admin.UpdateTransaction(ctx, "t1", &AdminUpdateTransactionRequest{Type: &expense, Amount: model.Num(250), Date: &date})
	require.NoError(t, err)
	assert.Equal(t, model.TxExpense, tx.Type)
	assert.Equal(t, int64(250), tx.Amount)
	assert.Equal(t, "2024-01-02", tx.Date)

	require.NoError(t, f.admin.DeleteTransaction(ctx, "t1"))
	assert.ErrorIs(t, f.admin.DeleteTransaction(ctx, "t1"), ErrTransactionNotFound)
	_, err = f.admin.UpdateTransaction(ctx, "t1", &AdminUpdateTransactionRequest{})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestAdmin_SetRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &model.User{ID: "u1", Username: "budi", CreatedAt: "x"}))

	resp, err := f.admin.SetRole(ctx, "u1", &SetRoleRequest{Role: " ADMIN "})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.Role)

	_, err = f.admin.SetRole(ctx, "u1", &SetRoleRequest{Role: "owner"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.admin.SetRole(ctx, "ghost", &SetRoleRequest{Role: "seller"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReports_SellerDefaultsAndScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.txs.Create(ctx, &model.Transaction{ID: "a", UserID: "u1", Type: model.TxSale, Amount: 1000, Date: "2024-03-11", PaymentMethod: "tunai"}))
	require.NoError(t, f.txs.Create(ctx, &model.Transaction{ID: "b", UserID: "u2", Type: model.TxSale, Amount: 7000, Date: "2024-03-11"}))

	r, err := f.reports.Seller(ctx, "u1", &ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-11", r.Range.Start)
	assert.Equal(t, "2024-03-11", r.Range.End)
	assert.Len(t, r.Series, 30)
	assert.Equal(t, int64(1000), r.Totals.Sales)
	assert.Equal(t, int64(1000), r.PaymentMethods["tunai"])

	all, err := f.reports.Admin(ctx, &ReportQuery{Bucket: "month"})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), all.Totals.Sales)
	assert.Len(t, all.Series, 2)

	_, err = f.reports.Seller(ctx, "u1", &ReportQuery{StartDate: "2024-03-12", EndDate: "2024-03-01"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAuth_RegisterLoginAndReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &RegisterRequest{Username: "budi", Password: "123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Password must be at least 6 characters", verr.Msg)

	res, err := f.auth.Register(ctx, &RegisterRequest{Username: " Budi ", Email: "Budi@Example.com", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSeller, res.User.Role)
	assert.Equal(t, "budi@example.com", *res.User.Email)
	assert.Nil(t, res.User.FullName)

	_, err = f.auth.Register(ctx, &RegisterRequest{Username: "BUDI", Password: "rahasia"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, err = f.auth.Register(ctx, &RegisterRequest{Username: "other", Email: "budi@example.com", Password: "rahasia"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	byEmail, err := f.auth.Login(ctx, &LoginRequest{UsernameOrEmail: "BUDI@example.com", Password: "rahasia"})
	require.NoError(t, err)
	uid, err := f.auth.Authenticate(byEmail.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, uid)

	_, err = f.auth.Login(ctx, &LoginRequest{UsernameOrEmail: "budi", Password: "salah123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// forgot-password hands out a reset token that is not an access token
	forgot, err := f.auth.ForgotPassword(ctx, "budi@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, forgot.Token)
	_, err = f.auth.Authenticate(forgot.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unknown, err := f.auth.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.True(t, unknown.OK)
	assert.Empty(t, unknown.Token)

	assert.ErrorIs(t, f.auth.ResetPassword(ctx, byEmail.Token, "barubaru"), ErrInvalidResetToken)
	require.NoError(t, f.auth.ResetPassword(ctx, forgot.Token, "barubaru"))
	_, err = f.auth.Login(ctx, &LoginRequest{UsernameOrEmail: "budi", Password: "barubaru"})
	require.NoError(t, err)

	require.NoError(t, f.auth.ResetPasswordByUsername(ctx, "BUDI", "ketiga3"))
	err = f.auth.ResetPasswordByUsername(ctx, "ghost", "ketiga3")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Username tidak ditemukan", verr.Msg)
}

func TestAuth_ForgotPasswordHidesTokenByDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := NewAuthService(f.users, jwt.NewIssuer("test-secret", time.Hour, time.Minute), f.clock)
	_, err := auth.Register(ctx, &RegisterRequest{Username: "budi", Email: "budi@example.com", Password: "rahasia"})
	require.NoError(t, err)

	res, err := auth.ForgotPassword(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, res.Token)
}

func TestAuth_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.auth.Register(ctx, &RegisterRequest{Username: "a", Email: "a@example.com", Password: "rahasia"})
	_, _ = f.auth.Register(ctx, &RegisterRequest{Username: "b", Email: "b@example.com", Password: "rahasia"})

	name, taken := "  Ani Wijaya ", "B@example.com"
	_, err := f.auth.UpdateProfile(ctx, a.User.ID, &UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	empty := ""
	me, err := f.auth.UpdateProfile(ctx, a.User.ID, &UpdateProfileRequest{FullName: &name, Email: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Ani Wijaya", *me.FullName)
	assert.Nil(t, me.Email)
}

func TestKeyedMutex_ReleasesKeys(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock("a")
	unlock()
	assert.Empty(t, k.locks)
}

func TestOperationalCost_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	costs := NewOperationalCostService(repository.NewOperationalCostRepo(f.store), f.clock)

	var req CreateOperationalCostRequest
	require.NoError(t, json.Unmarshal([]byte(`{"category":"  Sewa ","amount":"abc","period":" 2024-03 ","description":" kios "}`), &req))
	rent, err := costs.Create(ctx, "u1", &req)
	require.NoError(t, err)
	assert.NotEmpty(t, rent.ID)
	assert.Equal(t, "u1", rent.UserID)
	assert.Equal(t, "Sewa", rent.Category)
	assert.Equal(t, int64(0), rent.Amount)
	assert.Equal(t, "2024-03", rent.Period)
	assert.Equal(t, "kios", rent.Description)
	assert.Equal(t, model.CostRecurring, rent.Type)
	assert.Equal(t, "2024-03-10T20:00:00.000Z", rent.CreatedAt)

	power, err := costs.Create(ctx, "u1", &CreateOperationalCostRequest{Category: "Listrik", Amount: model.Num(150000), Type: " one-time "})
	require.NoError(t, err)
	assert.Equal(t, model.CostOneTime, power.Type)
	assert.Equal(t, int64(150000), power.Amount)

	_, err = costs.Create(ctx, "u2", &CreateOperationalCostRequest{Category: "Air", Amount: model.Num(20000)})
	require.NoError(t, err)

	mine, err := costs.List(ctx, "u1")
	require.NoError(t, err)
	ids := make([]string, 0, len(mine))
	for _, c := range mine {
		assert.Equal(t, "u1", c.UserID)
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{rent.ID, power.ID}, ids)

	none, err := costs.List(ctx, "u3")
	require.NoError(t, err)
	assert.Empty(t, none)
}
