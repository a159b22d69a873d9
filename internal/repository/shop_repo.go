package repository

import (
	"context"

	"go-catat-jualan/internal/codec"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/sheets"
)

type ShopRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Shop, error)
	// Upsert writes shop over the user's existing row, keeping its id and
	// createdAt, or appends it when the user has none.
	Upsert(ctx context.Context, shop *model.Shop) (*model.Shop, error)
}

type shopRepo struct {
	store sheets.RowStore
}

func NewShopRepo(store sheets.RowStore) ShopRepository {
	return &shopRepo{store}
}

func (r *shopRepo) FindByUser(ctx context.Context, userID string) (*model.Shop, error) {
	items, err := scan(ctx, r.store, sheets.Shop, codec.ShopFromRow)
	if err != nil {
		return nil, err
	}
	it, ok := find(items, func(s *model.Shop) bool { return s.UserID == userID })
	if !ok {
		return nil, ErrNotFound
	}
	return it.rec, nil
}

func (r *shopRepo) Upsert(ctx context.Context, shop *model.Shop) (*model.Shop, error) {
	items, err := scan(ctx, r.store, sheets.Shop, codec.ShopFromRow)
	if err != nil {
		return nil, err
	}

	it, ok := find(items, func(s *model.Shop) bool { return s.UserID == shop.UserID })
	if !ok {
		if err := r.store.Append(ctx, sheets.Shop, codec.ShopToRow(shop)); err != nil {
			return nil, err
		}
		return shop, nil
	}

	merged := *shop
	merged.ID = it.rec.ID
	merged.CreatedAt = it.rec.CreatedAt
	if err := r.store.UpdateRow(ctx, sheets.Shop, it.index, codec.ShopToRow(&merged)); err != nil {
		return nil, err
	}
	return &merged, nil
}
