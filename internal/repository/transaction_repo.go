package repository

import (
	"context"
	"sort"

	"go-catat-jualan/internal/codec"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/sheets"
)

// TransactionRepository lists are newest first by timestamp.
type TransactionRepository interface {
	FindByUser(ctx context.Context, userID string) ([]model.Transaction, error)
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByOrderID(ctx context.Context, userID, orderID string) (*model.Transaction, error)
	Create(ctx context.Context, tx *model.Transaction) error
	// Update and Delete are admin operations and match on id alone.
	Update(ctx context.Context, id string, upd model.TransactionUpdate) (*model.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type transactionRepo struct {
	store sheets.RowStore
}

func NewTransactionRepo(store sheets.RowStore) TransactionRepository {
	return &transactionRepo{store}
}

func (r *transactionRepo) all(ctx context.Context) ([]located[model.Transaction], error) {
	return scan(ctx, r.store, sheets.Transactions, codec.TransactionFromRow)
}

func newestFirst(txs []model.Transaction) []model.Transaction {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Timestamp > txs[j].Timestamp })
	return txs
}

func (r *transactionRepo) FindByUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(records(items, func(t *model.Transaction) bool { return t.UserID == userID })), nil
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(records(items, nil)), nil
}

func (r *transactionRepo) FindByOrderID(ctx context.Context, userID, orderID string) (*model.Transaction, error) {
	if orderID == "" {
		return nil, ErrNotFound
	}
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	it, ok := find(items, func(t *model.Transaction) bool { return t.UserID == userID && t.OrderID == orderID })
	if !ok {
		return nil, ErrNotFound
	}
	return it.rec, nil
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return r.store.Append(ctx, sheets.Transactions, codec.TransactionToRow(tx))
}

func (r *transactionRepo) locate(ctx context.Context, id string) (located[model.Transaction], error) {
	items, err := r.all(ctx)
	if err != nil {
		return located[model.Transaction]{}, err
	}
	it, ok := find(items, func(t *model.Transaction) bool { return t.ID == id })
	if !ok {
		return located[model.Transaction]{}, ErrNotFound
	}
	return it, nil
}

func (r *transactionRepo) Update(ctx context.Context, id string, upd model.TransactionUpdate) (*model.Transaction, error) {
	it, err := r.locate(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(it.rec)
	if err := r.store.UpdateRow(ctx, sheets.Transactions, it.index, codec.TransactionToRow(it.rec)); err != nil {
		return nil, err
	}
	return it.rec, nil
}

func (r *transactionRepo) Delete(ctx context.Context, id string) error {
	it, err := r.locate(ctx, id)
	if err != nil {
		return err
	}
	return r.store.UpdateRow(ctx, sheets.Transactions, it.index, sheets.Transactions.BlankRow())
}
