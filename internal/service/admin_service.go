package service

import (
	"context"
	"errors"
	"strings"

	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/report"
	"go-catat-jualan/internal/repository"
)

// AdminService is the cross-seller surface. Callers must check IsAdmin first.
type AdminService interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Users(ctx context.Context) ([]model.UserResponse, error)
	SetRole(ctx context.Context, id string, req *SetRoleRequest) (*model.UserResponse, error)
	Products(ctx context.Context, userID string) ([]model.Product, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	Transactions(ctx context.Context, filter *TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req *AdminUpdateTransactionRequest) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin seller"`
}

// TransactionFilter narrows admin listings. Empty fields don't filter.
type TransactionFilter struct {
	UserID    string `query:"userId"`
	StartDate string `query:"startDate" validate:"omitempty,ymd"`
	EndDate   string `query:"endDate" validate:"omitempty,ymd"`
}

func (f *TransactionFilter) match(tx *model.Transaction) bool {
	if f.UserID != "" && tx.UserID != f.UserID {
		return false
	}
	if f.StartDate != "" && tx.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && tx.Date > f.EndDate {
		return false
	}
	return true
}

type AdminUpdateTransactionRequest struct {
	Type          *string      `json:"type" validate:"omitempty,oneof=sale expense"`
	ProductID     *string      `json:"productId"`
	ProductName   *string      `json:"productName"`
	Quantity      model.Number `json:"quantity"`
	Amount        model.Number `json:"amount"`
	Category      *string      `json:"category"`
	SubCategory   *string      `json:"subCategory"`
	Description   *string      `json:"description"`
	Date          *string      `json:"date" validate:"omitempty,ymd"`
	PaymentMethod *string      `json:"paymentMethod" validate:"omitempty,payment_method"`
}

func (r *AdminUpdateTransactionRequest) toUpdate() model.TransactionUpdate {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}

	upd := model.TransactionUpdate{
		ProductID:   trim(r.ProductID),
		ProductName: trim(r.ProductName),
		Category:    trim(r.Category),
		SubCategory: trim(r.SubCategory),
		Description: trim(r.Description),
		Date:        trim(r.Date),
	}
	if r.Type != nil {
		t := model.NormalizeTxType(*r.Type)
		upd.Type = &t
	}
	if r.Quantity.Set && !r.Quantity.Blank {
		q := r.Quantity.Int()
		upd.Quantity = &q
	}
	if r.Amount.Set {
		a := r.Amount.Int()
		upd.Amount = &a
	}
	if r.PaymentMethod != nil {
		pm := model.NormalizePaymentMethod(*r.PaymentMethod)
		upd.PaymentMethod = &pm
	}
	return upd
}

type adminService struct {
	userRepo        repository.UserRepository
	productRepo     repository.ProductRepository
	orderRepo       repository.OrderRepository
	transactionRepo repository.TransactionRepository
	adminIDs        map[string]bool
}

func NewAdminService(uRepo repository.UserRepository, pRepo repository.ProductRepository, oRepo repository.OrderRepository, tRepo repository.TransactionRepository, adminUserIDs []string) AdminService {
	ids := make(map[string]bool, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = true
		}
	}
	return &adminService{
		userRepo:        uRepo,
		productRepo:     pRepo,
		orderRepo:       oRepo,
		transactionRepo: tRepo,
		adminIDs:        ids,
	}
}

// IsAdmin: stored role admin, or listed in ADMIN_USER_IDS.
func (s *adminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	switch {
	case err == nil && user.Role == model.RoleAdmin:
		return true, nil
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return false, err
	}
	return s.adminIDs[userID], nil
}

func (s *adminService) sellerNames(ctx context.Context) (report.SellerNames, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return report.NewSellerNames(users), nil
}

func (s *adminService) Users(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

func (s *adminService) SetRole(ctx context.Context, id string, req *SetRoleRequest) (*model.UserResponse, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := validate(req); err != nil {
		return nil, err
	}
	user, err := s.userRepo.Update(ctx, id, model.UserUpdate{Role: &req.Role})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *adminService) Products(ctx context.Context, userID string) ([]model.Product, error) {
	names, err := s.sellerNames(ctx)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if userID != "" {
		products, err = s.productRepo.FindByUser(ctx, userID)
	} else {
		products, err = s.productRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].SellerName = names.Name(products[i].UserID)
	}
	return products, nil
}

func (s *adminService) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	names, err := s.sellerNames(ctx)
	if err != nil {
		return nil, err
	}

	var orders []model.Order
	if userID != "" {
		orders, err = s.orderRepo.FindByUser(ctx, userID)
	} else {
		orders, err = s.orderRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].SellerName = names.Name(orders[i].UserID)
	}
	return orders, nil
}

func (s *adminService) Transactions(ctx context.Context, filter *TransactionFilter) ([]model.Transaction, error) {
	filter.UserID = strings.TrimSpace(filter.UserID)
	filter.StartDate = strings.TrimSpace(filter.StartDate)
	filter.EndDate = strings.TrimSpace(filter.EndDate)
	if err := validate(filter); err != nil {
		return nil, err
	}

	// 1. Joins, built once per request
	names, err := s.sellerNames(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	productNames := report.NewProductNames(products)

	// 2. Filter
	all, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Transaction, 0, len(all))
	for i := range all {
		if filter.match(&all[i]) {
			out = append(out, all[i])
		}
	}

	// 3. Decorate
	productNames.Fill(out)
	for i := range out {
		out[i].SellerName = names.Name(out[i].UserID)
	}
	return out, nil
}

func (s *adminService) UpdateTransaction(ctx context.Context, id string, req *AdminUpdateTransactionRequest) (*model.Transaction, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tx, err := s.transactionRepo.Update(ctx, id, req.toUpdate())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTransactionNotFound
	}
	return tx, err
}

func (s *adminService) DeleteTransaction(ctx context.Context, id string) error {
	err := s.transactionRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTransactionNotFound
	}
	return err
}
