package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/repository"
)

type OperationalCostService interface {
	List(ctx context.Context, userID string) ([]model.OperationalCost, error)
	Create(ctx context.Context, userID string, req *CreateOperationalCostRequest) (*model.OperationalCost, error)
}

type CreateOperationalCostRequest struct {
	Category    string       `json:"category"`
	Amount      model.Number `json:"amount"`
	Period      string       `json:"period"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
}

type operationalCostService struct {
	costRepo repository.OperationalCostRepository
	clock    Clock
}

func NewOperationalCostService(costRepo repository.OperationalCostRepository, clock Clock) OperationalCostService {
	return &operationalCostService{costRepo: costRepo, clock: clock}
}

func (s *operationalCostService) List(ctx context.Context, userID string) ([]model.OperationalCost, error) {
	return s.costRepo.FindByUser(ctx, userID)
}

func (s *operationalCostService) Create(ctx context.Context, userID string, req *CreateOperationalCostRequest) (*model.OperationalCost, error) {
	cost := &model.OperationalCost{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount.Int(),
		Period:      strings.TrimSpace(req.Period),
		Type:        model.NormalizeCostType(strings.TrimSpace(req.Type)),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.clock.Stamp(),
	}
	if err := s.costRepo.Create(ctx, cost); err != nil {
		return nil, err
	}
	return cost, nil
}
