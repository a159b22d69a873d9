package service

import (
	"context"
	"strings"

	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/report"
	"go-catat-jualan/internal/repository"
)

const (
	// DefaultReportDays is the range used when none is given.
	DefaultReportDays = 30
	// MaxReportDays bounds zero-filled series.
	MaxReportDays = 3660
)

type ReportService interface {
	// Seller reports on the caller's own transactions.
	Seller(ctx context.Context, userID string, q *ReportQuery) (*report.Report, error)
	// Admin reports across sellers, or one seller when q.UserID is set.
	Admin(ctx context.Context, q *ReportQuery) (*report.Report, error)
}

type ReportQuery struct {
	UserID    string `query:"userId"`
	StartDate string `query:"startDate" validate:"omitempty,ymd"`
	EndDate   string `query:"endDate" validate:"omitempty,ymd"`
	Bucket    string `query:"bucket" validate:"omitempty,oneof=day week month year"`
}

type reportService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	clock           Clock
}

func NewReportService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, clock Clock) ReportService {
	return &reportService{productRepo: pRepo, transactionRepo: tRepo, clock: clock}
}

// resolve fills in the default range and validates the query.
func (s *reportService) resolve(q *ReportQuery) (report.Range, report.Bucket, error) {
	q.StartDate = strings.TrimSpace(q.StartDate)
	q.EndDate = strings.TrimSpace(q.EndDate)
	q.Bucket = strings.ToLower(strings.TrimSpace(q.Bucket))
	if err := validate(q); err != nil {
		return report.Range{}, "", err
	}

	end := q.EndDate
	if end == "" {
		end = s.clock.Today()
	}
	start := q.StartDate
	if start == "" {
		start = report.LastDays(end, DefaultReportDays).Start
	}

	rng, err := report.NewRange(start, end)
	if err != nil {
		return report.Range{}, "", invalid("startDate must not be after endDate")
	}
	if rng.Len() > MaxReportDays {
		return report.Range{}, "", invalid("date range too long")
	}
	return rng, report.ParseBucket(q.Bucket), nil
}

func (s *reportService) Seller(ctx context.Context, userID string, q *ReportQuery) (*report.Report, error) {
	rng, bucket, err := s.resolve(q)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	r := report.Build(txs, report.NewProductNames(products), rng, bucket)
	return &r, nil
}

func (s *reportService) Admin(ctx context.Context, q *ReportQuery) (*report.Report, error) {
	rng, bucket, err := s.resolve(q)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if userID := strings.TrimSpace(q.UserID); userID != "" {
		scoped := make([]model.Transaction, 0, len(txs))
		for i := range txs {
			if txs[i].UserID == userID {
				scoped = append(scoped, txs[i])
			}
		}
		txs = scoped
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	r := report.Build(txs, report.NewProductNames(products), rng, bucket)
	return &r, nil
}
