package repository

import (
	"context"

	"go-catat-jualan/internal/codec"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/sheets"
)

type ProductRepository interface {
	FindByUser(ctx context.Context, userID string) ([]model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, userID, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, userID, id string, upd model.ProductUpdate) (*model.Product, error)
	// Delete blanks the product's row and returns what was there.
	Delete(ctx context.Context, userID, id string) (*model.Product, error)
}

type productRepo struct {
	store sheets.RowStore
}

func NewProductRepo(store sheets.RowStore) ProductRepository {
	return &productRepo{store}
}

func (r *productRepo) all(ctx context.Context) ([]located[model.Product], error) {
	return scan(ctx, r.store, sheets.Products, codec.ProductFromRow)
}

func (r *productRepo) FindByUser(ctx context.Context, userID string) ([]model.Product, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return records(items, func(p *model.Product) bool { return p.UserID == userID }), nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return records(items, nil), nil
}

func (r *productRepo) locate(ctx context.Context, userID, id string) (located[model.Product], error) {
	items, err := r.all(ctx)
	if err != nil {
		return located[model.Product]{}, err
	}
	it, ok := find(items, func(p *model.Product) bool { return p.ID == id && p.UserID == userID })
	if !ok {
		return located[model.Product]{}, ErrNotFound
	}
	return it, nil
}

func (r *productRepo) FindByID(ctx context.Context, userID, id string) (*model.Product, error) {
	it, err := r.locate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return it.rec, nil
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.store.Append(ctx, sheets.Products, codec.ProductToRow(product))
}

func (r *productRepo) Update(ctx context.Context, userID, id string, upd model.ProductUpdate) (*model.Product, error) {
	it, err := r.locate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(it.rec)
	if err := r.store.UpdateRow(ctx, sheets.Products, it.index, codec.ProductToRow(it.rec)); err != nil {
		return nil, err
	}
	return it.rec, nil
}

func (r *productRepo) Delete(ctx context.Context, userID, id string) (*model.Product, error) {
	it, err := r.locate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.UpdateRow(ctx, sheets.Products, it.index, sheets.Products.BlankRow()); err != nil {
		return nil, err
	}
	return it.rec, nil
}
