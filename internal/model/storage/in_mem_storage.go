package storage

import (
	"context"
	"sort"
	"time"

	"max.ks1230/accounting/internal/entity/account"
	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/customerr"
)

const dateKeyLayout = "2006-01-02"

// InMemStorage mirrors PostgresStorage for tests: same scoping, ordering
// and aggregation semantics, no durability.
type InMemStorage struct {
	accounts map[string]account.Record
	records  map[ledger.Variant][]ledger.Record
	nextID   map[ledger.Variant]int64
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		accounts: make(map[string]account.Record),
		records:  make(map[ledger.Variant][]ledger.Record),
		nextID: map[ledger.Variant]int64{
			ledger.Income:  1,
			ledger.Expense: 1,
		},
	}
}

func (s *InMemStorage) CreateAccount(_ context.Context, rec account.Record) error {
	if _, ok := s.accounts[rec.Name]; ok {
		return &customerr.DuplicateError{Err: "account name is taken"}
	}
	rec.CreatedAt = time.Now()
	s.accounts[rec.Name] = rec
	return nil
}

func (s *InMemStorage) GetAccount(_ context.Context, name string) (account.Record, error) {
	rec, ok := s.accounts[name]
	if !ok {
		return account.Record{}, &customerr.NotFoundError{Err: "no such account"}
	}
	return rec, nil
}

func (s *InMemStorage) SaveRecord(_ context.Context, v ledger.Variant, rec ledger.Record) (int64, error) {
	rec.ID = s.nextID[v]
	s.nextID[v]++
	rec.CreatedAt = time.Now()
	s.records[v] = append(s.records[v], rec)
	return rec.ID, nil
}

func (s *InMemStorage) ListRecords(_ context.Context, v ledger.Variant, owner string) ([]ledger.Record, error) {
	recs := s.filter(v, func(r ledger.Record) bool {
		return r.Owner == owner
	})
	sort.Slice(recs, func(i, j int) bool {
		di, dj := dateKey(recs[i].Date), dateKey(recs[j].Date)
		if di != dj {
			return di > dj
		}
		return recs[i].ID > recs[j].ID
	})
	return recs, nil
}

func (s *InMemStorage) GetRecord(_ context.Context, v ledger.Variant, owner string, id int64) (ledger.Record, error) {
	for _, r := range s.records[v] {
		if r.ID == id && r.Owner == owner {
			return r, nil
		}
	}
	return ledger.Record{}, &customerr.NotFoundError{Err: "record does not exist or is not yours"}
}

func (s *InMemStorage) UpdateRecord(_ context.Context, v ledger.Variant, rec ledger.Record) error {
	for i, r := range s.records[v] {
		if r.ID == rec.ID && r.Owner == rec.Owner {
			rec.CreatedAt = r.CreatedAt
			s.records[v][i] = rec
			return nil
		}
	}
	return nil
}

func (s *InMemStorage) DeleteRecord(_ context.Context, v ledger.Variant, owner string, id int64) error {
	recs := s.records[v]
	for i, r := range recs {
		if r.ID == id && r.Owner == owner {
			s.records[v] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *InMemStorage) ListRecordsInRange(_ context.Context, v ledger.Variant, owner string, from, to time.Time) ([]ledger.Record, error) {
	fromKey, toKey := dateKey(from), dateKey(to)
	recs := s.filter(v, func(r ledger.Record) bool {
		key := dateKey(r.Date)
		return r.Owner == owner && fromKey <= key && key <= toKey
	})
	sort.Slice(recs, func(i, j int) bool {
		di, dj := dateKey(recs[i].Date), dateKey(recs[j].Date)
		if di != dj {
			return di < dj
		}
		return recs[i].ID < recs[j].ID
	})
	return recs, nil
}

func (s *InMemStorage) SumInRange(ctx context.Context, v ledger.Variant, owner string, from, to time.Time) (float64, error) {
	recs, _ := s.ListRecordsInRange(ctx, v, owner, from, to)
	var sum float64
	for _, r := range recs {
		sum += r.Amount
	}
	return sum, nil
}

func (s *InMemStorage) SumByCategory(_ context.Context, v ledger.Variant, owner string) (map[ledger.Category]float64, error) {
	sums := make(map[ledger.Category]float64)
	for _, r := range s.records[v] {
		if r.Owner == owner {
			sums[r.Category] += r.Amount
		}
	}
	return sums, nil
}

func (s *InMemStorage) filter(v ledger.Variant, keep func(ledger.Record) bool) []ledger.Record {
	res := make([]ledger.Record, 0)
	for _, r := range s.records[v] {
		if keep(r) {
			res = append(res, r)
		}
	}
	return res
}

// dateKey compares calendar days only, ignoring the time component and
// location a date was constructed with.
func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}
