package repository

import (
	"context"

	"go-catat-jualan/internal/codec"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/sheets"
)

type OperationalCostRepository interface {
	FindByUser(ctx context.Context, userID string) ([]model.OperationalCost, error)
	Create(ctx context.Context, cost *model.OperationalCost) error
}

type operationalCostRepo struct {
	store sheets.RowStore
}

func NewOperationalCostRepo(store sheets.RowStore) OperationalCostRepository {
	return &operationalCostRepo{store}
}

func (r *operationalCostRepo) FindByUser(ctx context.Context, userID string) ([]model.OperationalCost, error) {
	items, err := scan(ctx, r.store, sheets.OperationalCosts, codec.OperationalCostFromRow)
	if err != nil {
		return nil, err
	}
	return records(items, func(c *model.OperationalCost) bool { return c.UserID == userID }), nil
}

func (r *operationalCostRepo) Create(ctx context.Context, cost *model.OperationalCost) error {
	return r.store.Append(ctx, sheets.OperationalCosts, codec.OperationalCostToRow(cost))
}
