package repository

import (
	"context"
	"errors"

	"go-catat-jualan/internal/sheets"
)

// ErrNotFound is returned when a record does not exist under the given scope.
var ErrNotFound = errors.New("not found")

// located pairs a decoded record with its data row index.
type located[T any] struct {
	index int
	rec   *T
}

// scan fetches a sheet and decodes every live row, keeping row indexes.
func scan[T any](ctx context.Context, store sheets.RowStore, t sheets.Table, decode func([]string) *T) ([]located[T], error) {
	rows, err := store.Rows(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make([]located[T], 0, len(rows))
	for i, row := range rows {
		if rec := decode(row); rec != nil {
			out = append(out, located[T]{index: i, rec: rec})
		}
	}
	return out, nil
}

func records[T any](items []located[T], keep func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it.rec) {
			out = append(out, *it.rec)
		}
	}
	return out
}

func find[T any](items []located[T], match func(*T) bool) (located[T], bool) {
	for _, it := range items {
		if match(it.rec) {
			return it, true
		}
	}
	return located[T]{}, false
}
