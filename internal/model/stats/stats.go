// Package stats composes storage reads into the range and category
// aggregations. Range bounds are inclusive on both ends; a reversed range
// is simply empty.
package stats

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/customerr"
)

const dateLayout = "2006-01-02"

type ledgerStorage interface {
	ListRecordsInRange(ctx context.Context, v ledger.Variant, owner string, from, to time.Time) ([]ledger.Record, error)
	SumInRange(ctx context.Context, v ledger.Variant, owner string, from, to time.Time) (float64, error)
	SumByCategory(ctx context.Context, v ledger.Variant, owner string) (map[ledger.Category]float64, error)
}

// Totals is the income/expense/net summary of one date range.
// Net may be negative.
type Totals struct {
	Income  float64
	Expense float64
	Net     float64
}

// CategoryTotals maps category to summed amount per variant, full history.
// Categories without records are absent, not zero.
type CategoryTotals struct {
	Income  map[ledger.Category]float64
	Expense map[ledger.Category]float64
}

type Service struct {
	storage ledgerStorage
}

func NewService(storage ledgerStorage) *Service {
	return &Service{storage: storage}
}

func (s *Service) ListRange(ctx context.Context, owner string, v ledger.Variant, from, to string) ([]ledger.Record, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	recs, err := s.storage.ListRecordsInRange(ctx, v, owner, fromDate, toDate)
	return recs, errors.Wrap(err, "list range")
}

// TotalsRange sums both variants over the inclusive range. The two sums are
// independent statements; they are not read in one transaction.
func (s *Service) TotalsRange(ctx context.Context, owner string, from, to string) (Totals, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return Totals{}, err
	}

	income, err := s.storage.SumInRange(ctx, ledger.Income, owner, fromDate, toDate)
	if err != nil {
		return Totals{}, errors.Wrap(err, "totals range")
	}
	expense, err := s.storage.SumInRange(ctx, ledger.Expense, owner, fromDate, toDate)
	if err != nil {
		return Totals{}, errors.Wrap(err, "totals range")
	}

	return Totals{
		Income:  income,
		Expense: expense,
		Net:     income - expense,
	}, nil
}

func (s *Service) TotalsByCategory(ctx context.Context, owner string) (CategoryTotals, error) {
	income, err := s.storage.SumByCategory(ctx, ledger.Income, owner)
	if err != nil {
		return CategoryTotals{}, errors.Wrap(err, "totals by category")
	}
	expense, err := s.storage.SumByCategory(ctx, ledger.Expense, owner)
	if err != nil {
		return CategoryTotals{}, errors.Wrap(err, "totals by category")
	}
	return CategoryTotals{Income: income, Expense: expense}, nil
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, &customerr.ValidationError{Err: "date must look like 2006-01-02"}
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, &customerr.ValidationError{Err: "date must look like 2006-01-02"}
	}
	return fromDate, toDate, nil
}
