// Package records implements the scoped CRUD contract over ledger rows.
// Every operation takes the acting owner explicitly; nothing here reads
// ambient session state.
package records

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"

	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/customerr"
)

const dateLayout = "2006-01-02"

type recordStorage interface {
	SaveRecord(ctx context.Context, v ledger.Variant, rec ledger.Record) (int64, error)
	ListRecords(ctx context.Context, v ledger.Variant, owner string) ([]ledger.Record, error)
	GetRecord(ctx context.Context, v ledger.Variant, owner string, id int64) (ledger.Record, error)
	UpdateRecord(ctx context.Context, v ledger.Variant, rec ledger.Record) error
	DeleteRecord(ctx context.Context, v ledger.Variant, owner string, id int64) error
}

// Input carries raw operator input for create and update. Empty fields mean
// "default" on create and "keep the previous value" on update.
type Input struct {
	Amount         string
	CategoryChoice string
	Date           string
	Note           string
}

type Service struct {
	storage recordStorage
}

func NewService(storage recordStorage) *Service {
	return &Service{storage: storage}
}

func (s *Service) Add(ctx context.Context, owner string, v ledger.Variant, in Input) (int64, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return 0, err
	}

	date := now.BeginningOfDay()
	if in.Date != "" {
		date, err = parseDate(in.Date)
		if err != nil {
			return 0, err
		}
	}

	id, err := s.storage.SaveRecord(ctx, v, ledger.Record{
		Owner:    owner,
		Amount:   amount,
		Category: ledger.CategoryFromChoice(in.CategoryChoice),
		Date:     date,
		Note:     in.Note,
	})
	return id, errors.Wrap(err, "add record")
}

func (s *Service) List(ctx context.Context, owner string, v ledger.Variant) ([]ledger.Record, error) {
	recs, err := s.storage.ListRecords(ctx, v, owner)
	return recs, errors.Wrap(err, "list records")
}

func (s *Service) Get(ctx context.Context, owner string, v ledger.Variant, id int64) (ledger.Record, error) {
	return s.storage.GetRecord(ctx, v, owner, id)
}

// Update merges the provided fields over the stored row: an empty input
// field keeps the previous value. A provided category choice goes through
// the same Other-fallback mapping as Add.
func (s *Service) Update(ctx context.Context, owner string, v ledger.Variant, id int64, in Input) error {
	rec, err := s.storage.GetRecord(ctx, v, owner, id)
	if err != nil {
		return err
	}

	if in.Amount != "" {
		rec.Amount, err = parseAmount(in.Amount)
		if err != nil {
			return err
		}
	}
	if in.CategoryChoice != "" {
		rec.Category = ledger.CategoryFromChoice(in.CategoryChoice)
	}
	if in.Date != "" {
		rec.Date, err = parseDate(in.Date)
		if err != nil {
			return err
		}
	}
	if in.Note != "" {
		rec.Note = in.Note
	}

	return errors.Wrap(s.storage.UpdateRecord(ctx, v, rec), "update record")
}

func (s *Service) Delete(ctx context.Context, owner string, v ledger.Variant, id int64) error {
	if _, err := s.storage.GetRecord(ctx, v, owner, id); err != nil {
		return err
	}
	return errors.Wrap(s.storage.DeleteRecord(ctx, v, owner, id), "delete record")
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount < 0 {
		return 0, &customerr.ValidationError{Err: "amount must be a non-negative number"}
	}
	return math.Round(amount*100) / 100, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, &customerr.ValidationError{Err: "date must look like 2006-01-02"}
	}
	return date, nil
}
