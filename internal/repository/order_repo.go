package repository

import (
	"context"
	"sort"

	"go-catat-jualan/internal/codec"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/sheets"
)

// OrderRepository lists are newest first by createdAt.
type OrderRepository interface {
	FindByUser(ctx context.Context, userID string) ([]model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, userID, id string) (*model.Order, error)
	// Get looks an order up by id regardless of owner (admin).
	Get(ctx context.Context, id string) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, userID, id string, upd model.OrderUpdate) (*model.Order, error)
}

type orderRepo struct {
	store sheets.RowStore
}

func NewOrderRepo(store sheets.RowStore) OrderRepository {
	return &orderRepo{store}
}

func (r *orderRepo) all(ctx context.Context) ([]located[model.Order], error) {
	return scan(ctx, r.store, sheets.Orders, codec.OrderFromRow)
}

// createdAt is ISO-8601, so string order is time order.
func newestOrdersFirst(orders []model.Order) []model.Order {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt > orders[j].CreatedAt })
	return orders
}

func (r *orderRepo) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return newestOrdersFirst(records(items, func(o *model.Order) bool { return o.UserID == userID })), nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]model.Order, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return newestOrdersFirst(records(items, nil)), nil
}

func (r *orderRepo) locate(ctx context.Context, match func(*model.Order) bool) (located[model.Order], error) {
	items, err := r.all(ctx)
	if err != nil {
		return located[model.Order]{}, err
	}
	it, ok := find(items, match)
	if !ok {
		return located[model.Order]{}, ErrNotFound
	}
	return it, nil
}

func (r *orderRepo) FindByID(ctx context.Context, userID, id string) (*model.Order, error) {
	it, err := r.locate(ctx, func(o *model.Order) bool { return o.ID == id && o.UserID == userID })
	if err != nil {
		return nil, err
	}
	return it.rec, nil
}

func (r *orderRepo) Get(ctx context.Context, id string) (*model.Order, error) {
	it, err := r.locate(ctx, func(o *model.Order) bool { return o.ID == id })
	if err != nil {
		return nil, err
	}
	return it.rec, nil
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return r.store.Append(ctx, sheets.Orders, codec.OrderToRow(order))
}

func (r *orderRepo) Update(ctx context.Context, userID, id string, upd model.OrderUpdate) (*model.Order, error) {
	it, err := r.locate(ctx, func(o *model.Order) bool { return o.ID == id && o.UserID == userID })
	if err != nil {
		return nil, err
	}
	upd.Apply(it.rec)
	if err := r.store.UpdateRow(ctx, sheets.Orders, it.index, codec.OrderToRow(it.rec)); err != nil {
		return nil, err
	}
	return it.rec, nil
}
