package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/notify"
	"go-catat-jualan/internal/repository"
)

type OrderService interface {
	List(ctx context.Context, userID string) ([]model.Order, error)
	Create(ctx context.Context, userID string, req *CreateOrderRequest) (*model.Order, error)
	// Update applies collected/paid/paymentMethod and records the sale once
	// the order is both paid and collected.
	Update(ctx context.Context, userID, id string, req *UpdateOrderRequest) (*model.Order, error)
	// UpdateAny is the admin variant; it reconciles under the order's owner.
	UpdateAny(ctx context.Context, id string, req *UpdateOrderRequest) (*model.Order, error)
}

type CreateOrderRequest struct {
	CustomerName  string       `json:"customerName"`
	ProductID     string       `json:"productId"`
	ProductName   string       `json:"productName"`
	Quantity      model.Number `json:"quantity"`
	ScheduledAt   string       `json:"scheduledAt"`
	PaymentMethod string       `json:"paymentMethod"`
}

// UpdateOrderRequest values outside the allowed sets are ignored, not rejected.
type UpdateOrderRequest struct {
	Collected     *string `json:"collected"`
	Paid          *string `json:"paid"`
	PaymentMethod *string `json:"paymentMethod"`
}

func (r *UpdateOrderRequest) toUpdate() model.OrderUpdate {
	var upd model.OrderUpdate
	if r.Collected != nil && model.ValidCollected(*r.Collected) {
		upd.Collected = r.Collected
	}
	if r.Paid != nil && model.ValidPaid(*r.Paid) {
		upd.Paid = r.Paid
	}
	if r.PaymentMethod != nil {
		if pm := model.NormalizePaymentMethod(*r.PaymentMethod); pm != "" {
			upd.PaymentMethod = &pm
		}
	}
	return upd
}

type orderService struct {
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	events          *notify.Dispatcher
	clock           Clock
	log             logging.Logger
	locks           *keyedMutex
}

func NewOrderService(oRepo repository.OrderRepository, pRepo repository.ProductRepository, tRepo repository.TransactionRepository, events *notify.Dispatcher, clock Clock, log logging.Logger) OrderService {
	return &orderService{
		orderRepo:       oRepo,
		productRepo:     pRepo,
		transactionRepo: tRepo,
		events:          events,
		clock:           clock,
		log:             log,
		locks:           newKeyedMutex(),
	}
}

func (s *orderService) List(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *orderService) Create(ctx context.Context, userID string, req *CreateOrderRequest) (*model.Order, error) {
	order := &model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		ProductID:     strings.TrimSpace(req.ProductID),
		ProductName:   strings.TrimSpace(req.ProductName),
		Quantity:      req.Quantity.Int(),
		ScheduledAt:   strings.TrimSpace(req.ScheduledAt),
		Collected:     model.No,
		Paid:          model.No,
		PaymentMethod: model.NormalizePaymentMethod(req.PaymentMethod),
		CreatedAt:     s.clock.Stamp(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notify.Event{
		Type:    notify.TypeOrderUpdate,
		Action:  notify.ActionOrderCreated,
		UserID:  userID,
		Data:    order,
		Message: fmt.Sprintf("Pesanan baru dari %s", order.CustomerName),
	})
	return order, nil
}

func (s *orderService) Update(ctx context.Context, userID, id string, req *UpdateOrderRequest) (*model.Order, error) {
	// Serialise update+reconcile per order so two PATCHes can't both create the sale.
	unlock := s.locks.Lock(userID + ":" + id)
	defer unlock()

	order, err := s.orderRepo.Update(ctx, userID, id, req.toUpdate())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notify.Event{
		Type:   notify.TypeOrderUpdate,
		Action: notify.ActionOrderUpdated,
		UserID: userID,
		Data:   order,
	})

	if order.Settled() {
		if err := s.reconcile(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (s *orderService) UpdateAny(ctx context.Context, id string, req *UpdateOrderRequest) (*model.Order, error) {
	order, err := s.orderRepo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, order.UserID, id, req)
}

// reconcile records the order's sale exactly once.
func (s *orderService) reconcile(ctx context.Context, order *model.Order) error {
	// 1. Already recorded?
	_, err := s.transactionRepo.FindByOrderID(ctx, order.UserID, order.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	// 2. Price from the catalogue; a deleted product yields a zero amount
	var amount int64
	product, err := s.productRepo.FindByID(ctx, order.UserID, order.ProductID)
	switch {
	case err == nil:
		amount = product.Price * order.Quantity
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	paymentMethod := order.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentCash
	}
	qty := order.Quantity

	// 3. Record the sale dated today
	tx := &model.Transaction{
		ID:            uuid.NewString(),
		UserID:        order.UserID,
		Type:          model.TxSale,
		ProductID:     order.ProductID,
		ProductName:   order.ProductName,
		Quantity:      &qty,
		Amount:        amount,
		Timestamp:     s.clock.Millis(),
		Date:          s.clock.Today(),
		OrderID:       order.ID,
		PaymentMethod: paymentMethod,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return err
	}

	s.log.Info(ctx, "order reconciled", "order_id", order.ID, "tx_id", tx.ID, "amount", amount)
	s.events.Publish(ctx, notify.Event{
		Type:   notify.TypeOrderUpdate,
		Action: notify.ActionOrderReconciled,
		UserID: order.UserID,
		Data:   tx,
	})
	return nil
}
