package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/repository"
)

type ShopService interface {
	// Get returns a placeholder shop when the user hasn't saved one.
	Get(ctx context.Context, userID string) (*model.Shop, error)
	Save(ctx context.Context, userID, name string) (*model.Shop, error)
}

type shopService struct {
	shopRepo repository.ShopRepository
	clock    Clock
}

func NewShopService(shopRepo repository.ShopRepository, clock Clock) ShopService {
	return &shopService{shopRepo: shopRepo, clock: clock}
}

func (s *shopService) Get(ctx context.Context, userID string) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		empty := model.EmptyShop(userID)
		return &empty, nil
	}
	return shop, err
}

func (s *shopService) Save(ctx context.Context, userID, name string) (*model.Shop, error) {
	id := uuid.NewString()
	createdAt := s.clock.Stamp()
	return s.shopRepo.Upsert(ctx, &model.Shop{
		ID:        &id,
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: &createdAt,
	})
}
