package repository

import (
	"context"
	"strings"

	"go-catat-jualan/internal/codec"
	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/sheets"
)

type UserRepository interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)
}

type userRepo struct {
	store sheets.RowStore
}

func NewUserRepo(store sheets.RowStore) UserRepository {
	return &userRepo{store}
}

func (r *userRepo) all(ctx context.Context) ([]located[model.User], error) {
	return scan(ctx, r.store, sheets.Users, codec.UserFromRow)
}

func (r *userRepo) FindAll(ctx context.Context) ([]model.User, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	return records(items, nil), nil
}

func (r *userRepo) findOne(ctx context.Context, match func(*model.User) bool) (*model.User, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	it, ok := find(items, match)
	if !ok {
		return nil, ErrNotFound
	}
	return it.rec, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, func(u *model.User) bool { return u.ID == id })
}

// FindByUsername matches case-insensitively.
func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, func(u *model.User) bool { return strings.EqualFold(u.Username, username) })
}

// FindByEmail matches case-insensitively.
func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.store.Append(ctx, sheets.Users, codec.UserToRow(user))
}

func (r *userRepo) Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	it, ok := find(items, func(u *model.User) bool { return u.ID == id })
	if !ok {
		return nil, ErrNotFound
	}

	u := it.rec
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Email != nil {
		u.Email = strings.ToLower(*upd.Email)
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = model.NormalizeRole(*upd.Role)
	}

	if err := r.store.UpdateRow(ctx, sheets.Users, it.index, codec.UserToRow(u)); err != nil {
		return nil, err
	}
	return u, nil
}
