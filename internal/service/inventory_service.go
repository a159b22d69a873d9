package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/notify"
	"go-catat-jualan/internal/repository"
	"go-catat-jualan/pkg/validator"
)

// InventoryService covers a seller's products and the sales/expenses
// recorded against them.
type InventoryService interface {
	ListProducts(ctx context.Context, userID string) ([]model.Product, error)
	CreateProduct(ctx context.Context, userID string, req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, userID, id string, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, userID, id string) error
	ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	// RecordTransaction returns the existing transaction when orderId was already used.
	RecordTransaction(ctx context.Context, userID string, req *CreateTransactionRequest) (*model.Transaction, error)
}

type CreateProductRequest struct {
	Name  string       `json:"name"`
	Emoji *string      `json:"emoji"`
	Price model.Number `json:"price"`
	Stock model.Number `json:"stock"`
}

// UpdateProductRequest: absent keys are left unchanged; stock null or "" stops tracking.
type UpdateProductRequest struct {
	Name              *string      `json:"name"`
	Emoji             *string      `json:"emoji"`
	Price             model.Number `json:"price"`
	Stock             model.Number `json:"stock"`
	LowStockThreshold model.Number `json:"lowStockThreshold"`
}

type CreateTransactionRequest struct {
	Type          string       `json:"type"`
	ProductID     string       `json:"productId"`
	ProductName   string       `json:"productName"`
	Quantity      model.Number `json:"quantity"`
	Amount        model.Number `json:"amount"`
	Category      *string      `json:"category"`
	SubCategory   *string      `json:"subCategory"`
	Description   *string      `json:"description"`
	Date          string       `json:"date"`
	OrderID       string       `json:"orderId"`
	PaymentMethod string       `json:"paymentMethod"`
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	events          *notify.Dispatcher
	clock           Clock
	log             logging.Logger
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, events *notify.Dispatcher, clock Clock, log logging.Logger) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		events:          events,
		clock:           clock,
		log:             log,
	}
}

// truncate caps s at n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func (s *inventoryService) ListProducts(ctx context.Context, userID string) ([]model.Product, error) {
	return s.productRepo.FindByUser(ctx, userID)
}

func (s *inventoryService) CreateProduct(ctx context.Context, userID string, req *CreateProductRequest) (*model.Product, error) {
	// 1. Normalize
	product := &model.Product{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   truncate(strings.TrimSpace(req.Name), model.MaxProductNameLen),
		Emoji:  model.DefaultEmoji,
		Price:  req.Price.NonNegative(),
	}
	if req.Emoji != nil {
		product.Emoji = *req.Emoji
	}
	if req.Stock.Set && !req.Stock.Blank {
		stock := req.Stock.NonNegative()
		product.Stock = &stock
	}

	// 2. Threshold from opening stock
	product.LowStockThreshold = model.DeriveLowStockThreshold(product.Stock)

	// 3. Persist
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notify.Event{
		Type:    notify.TypeStockUpdate,
		Action:  notify.ActionProductCreated,
		UserID:  userID,
		Data:    product,
		Message: fmt.Sprintf("Produk '%s' ditambahkan", product.Name),
	})
	return product, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, userID, id string, req *UpdateProductRequest) (*model.Product, error) {
	var upd model.ProductUpdate
	if req.Name != nil {
		name := truncate(strings.TrimSpace(*req.Name), model.MaxProductNameLen)
		upd.Name = &name
	}
	upd.Emoji = req.Emoji
	if req.Price.Set {
		price := req.Price.NonNegative()
		upd.Price = &price
	}
	if req.Stock.Set {
		if req.Stock.Blank {
			upd.ClearStock = true
		} else {
			stock := req.Stock.NonNegative()
			upd.Stock = &stock
		}
	}
	if req.LowStockThreshold.Set {
		t := req.LowStockThreshold.Int()
		if t < 1 {
			t = 1
		}
		upd.LowStockThreshold = &t
	}

	product, err := s.productRepo.Update(ctx, userID, id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notify.Event{
		Type:   notify.TypeStockUpdate,
		Action: notify.ActionProductUpdated,
		UserID: userID,
		Data:   product,
	})
	s.warnLowStock(ctx, product)
	return product, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, userID, id string) error {
	deleted, err := s.productRepo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	// Events are sent after the request is gone, so carry the stored id.
	s.events.Publish(ctx, notify.Event{
		Type:   notify.TypeStockUpdate,
		Action: notify.ActionProductDeleted,
		UserID: deleted.UserID,
		Data:   map[string]string{"id": deleted.ID},
	})
	return nil
}

func (s *inventoryService) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	return s.transactionRepo.FindByUser(ctx, userID)
}

func (s *inventoryService) RecordTransaction(ctx context.Context, userID string, req *CreateTransactionRequest) (*model.Transaction, error) {
	orderID := strings.TrimSpace(req.OrderID)

	// 1. orderId is an idempotency key
	if orderID != "" {
		existing, err := s.transactionRepo.FindByOrderID(ctx, userID, orderID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	// 2. Normalize
	tx := &model.Transaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          model.NormalizeTxType(strings.TrimSpace(req.Type)),
		ProductID:     strings.TrimSpace(req.ProductID),
		ProductName:   strings.TrimSpace(req.ProductName),
		Amount:        req.Amount.Int(),
		Timestamp:     s.clock.Millis(),
		Date:          validator.DateOr(req.Date, s.clock.Today()),
		OrderID:       orderID,
		PaymentMethod: model.NormalizePaymentMethod(req.PaymentMethod),
	}
	if req.Quantity.Set && !req.Quantity.Blank {
		q := req.Quantity.Int()
		tx.Quantity = &q
	}
	if req.Category != nil {
		tx.Category = strings.TrimSpace(*req.Category)
	}
	if req.SubCategory != nil {
		tx.SubCategory = strings.TrimSpace(*req.SubCategory)
	}
	if req.Description != nil {
		tx.Description = strings.TrimSpace(*req.Description)
	}
	if tx.Type == model.TxExpense {
		if tx.Category == "" && tx.SubCategory == "" && strings.Contains(tx.Description, model.DescriptionSeparator) {
			tx.Category, tx.SubCategory, tx.Description = model.SplitDescription(tx.Description)
		}
		tx.Description = truncate(tx.Description, model.MaxExpenseDescriptionLen)
	}

	// 3. Sales against a tracked product draw its stock down
	var product *model.Product
	if tx.Type == model.TxSale && tx.ProductID != "" {
		p, err := s.productRepo.FindByID(ctx, userID, tx.ProductID)
		switch {
		case err == nil:
			product = p
			if tx.ProductName == "" {
				tx.ProductName = p.Name
			}
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	// 4. Persist
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if product != nil && product.Tracked() && tx.Quantity != nil && *tx.Quantity > 0 {
		if err := s.reduceStock(ctx, product, *tx.Quantity); err != nil {
			// the sale is recorded; a stale stock count is recoverable
			s.log.Error(ctx, "stock reduction failed", "user_id", userID, "product_id", product.ID, "error", err)
		}
	}

	s.events.Publish(ctx, notify.Event{
		Type:   notify.TypeStockUpdate,
		Action: notify.ActionTransactionCreated,
		UserID: userID,
		Data:   tx,
	})
	return tx, nil
}

func (s *inventoryService) reduceStock(ctx context.Context, product *model.Product, qty int64) error {
	left := *product.Stock - qty
	if left < 0 {
		left = 0
	}
	updated, err := s.productRepo.Update(ctx, product.UserID, product.ID, model.ProductUpdate{Stock: &left})
	if err != nil {
		return err
	}
	s.warnLowStock(ctx, updated)
	return nil
}

func (s *inventoryService) warnLowStock(ctx context.Context, product *model.Product) {
	if !product.LowOnStock() {
		return
	}
	s.events.Publish(ctx, notify.Event{
		Type:    notify.TypeStockUpdate,
		Action:  notify.ActionProductLowStock,
		UserID:  product.UserID,
		Data:    product,
		Message: fmt.Sprintf("Stok '%s' tinggal %d", product.Name, *product.Stock),
	})
}
