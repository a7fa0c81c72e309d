package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"max.ks1230/accounting/internal/entity/account"
	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/customerr"
)

const dsnTemplate = "user=%s password=%s host=%s port=%d dbname=%s sslmode=disable"

const uniqueViolationCode = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type config interface {
	Host() string
	Port() int
	Username() string
	Password() string
	Database() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Port(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStorage{db}, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		name VARCHAR(50) PRIMARY KEY,
		secret VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS income_records (
		id BIGSERIAL PRIMARY KEY,
		owner VARCHAR(50) NOT NULL REFERENCES accounts (name),
		amount DECIMAL(10,2) NOT NULL,
		category VARCHAR(16) NOT NULL,
		record_date DATE NOT NULL,
		note TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expense_records (
		id BIGSERIAL PRIMARY KEY,
		owner VARCHAR(50) NOT NULL REFERENCES accounts (name),
		amount DECIMAL(10,2) NOT NULL,
		category VARCHAR(16) NOT NULL,
		record_date DATE NOT NULL,
		note TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the three relations if they do not exist yet.
// It is the only DDL the service ever runs.
func (s *PostgresStorage) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "ensure schema")
		}
	}
	return nil
}

func tableFor(v ledger.Variant) string {
	if v == ledger.Income {
		return "income_records"
	}
	return "expense_records"
}

func (s *PostgresStorage) CreateAccount(ctx context.Context, rec account.Record) error {
	query := psql.Insert("accounts").
		Columns("name", "secret", "created_at").
		Values(rec.Name, rec.Secret, time.Now())

	_, err := query.RunWith(s.db).ExecContext(ctx)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return &customerr.DuplicateError{Err: "account name is taken"}
	}
	return errors.Wrap(err, "create account")
}

func (s *PostgresStorage) GetAccount(ctx context.Context, name string) (account.Record, error) {
	query := psql.Select("name", "secret", "created_at").
		From("accounts").
		Where(sq.Eq{"name": name})

	var res account.Record
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&res.Name, &res.Secret, &res.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return account.Record{}, &customerr.NotFoundError{Err: "no such account"}
	}
	if err != nil {
		return account.Record{}, errors.Wrap(err, "get account")
	}
	return res, nil
}

func (s *PostgresStorage) SaveRecord(ctx context.Context, v ledger.Variant, rec ledger.Record) (int64, error) {
	query := psql.Insert(tableFor(v)).
		Columns("owner", "amount", "category", "record_date", "note", "created_at").
		Values(rec.Owner, rec.Amount, string(rec.Category), rec.Date, rec.Note, time.Now()).
		Suffix("RETURNING id")

	var id int64
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "save record")
	}
	return id, nil
}

func (s *PostgresStorage) ListRecords(ctx context.Context, v ledger.Variant, owner string) ([]ledger.Record, error) {
	query := psql.Select("id", "owner", "amount", "category", "record_date", "note", "created_at").
		From(tableFor(v)).
		Where(sq.Eq{"owner": owner}).
		OrderBy("record_date DESC", "id DESC")

	return s.queryRecords(ctx, query, "list records")
}

func (s *PostgresStorage) GetRecord(ctx context.Context, v ledger.Variant, owner string, id int64) (ledger.Record, error) {
	query := psql.Select("id", "owner", "amount", "category", "record_date", "note", "created_at").
		From(tableFor(v)).
		Where(sq.Eq{"id": id, "owner": owner})

	rec, err := scanRecord(query.RunWith(s.db).QueryRowContext(ctx))
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Record{}, &customerr.NotFoundError{Err: "record does not exist or is not yours"}
	}
	if err != nil {
		return ledger.Record{}, errors.Wrap(err, "get record")
	}
	return rec, nil
}

func (s *PostgresStorage) UpdateRecord(ctx context.Context, v ledger.Variant, rec ledger.Record) error {
	query := psql.Update(tableFor(v)).
		Set("amount", rec.Amount).
		Set("category", string(rec.Category)).
		Set("record_date", rec.Date).
		Set("note", rec.Note).
		Where(sq.Eq{"id": rec.ID, "owner": rec.Owner})

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "update record")
}

func (s *PostgresStorage) DeleteRecord(ctx context.Context, v ledger.Variant, owner string, id int64) error {
	query := psql.Delete(tableFor(v)).
		Where(sq.Eq{"id": id, "owner": owner})

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "delete record")
}

func (s *PostgresStorage) ListRecordsInRange(ctx context.Context, v ledger.Variant, owner string, from, to time.Time) ([]ledger.Record, error) {
	query := psql.Select("id", "owner", "amount", "category", "record_date", "note", "created_at").
		From(tableFor(v)).
		Where(sq.Eq{"owner": owner}).
		Where(sq.GtOrEq{"record_date": from}).
		Where(sq.LtOrEq{"record_date": to}).
		OrderBy("record_date", "id")

	return s.queryRecords(ctx, query, "list records in range")
}

func (s *PostgresStorage) SumInRange(ctx context.Context, v ledger.Variant, owner string, from, to time.Time) (float64, error) {
	query := psql.Select("COALESCE(SUM(amount), 0)").
		From(tableFor(v)).
		Where(sq.Eq{"owner": owner}).
		Where(sq.GtOrEq{"record_date": from}).
		Where(sq.LtOrEq{"record_date": to})

	var sum float64
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&sum)
	if err != nil {
		return 0, errors.Wrap(err, "sum in range")
	}
	return sum, nil
}

func (s *PostgresStorage) SumByCategory(ctx context.Context, v ledger.Variant, owner string) (map[ledger.Category]float64, error) {
	query := psql.Select("category", "COALESCE(SUM(amount), 0)").
		From(tableFor(v)).
		Where(sq.Eq{"owner": owner}).
		GroupBy("category")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "sum by category")
	}
	defer closeRows(rows)

	sums := make(map[ledger.Category]float64)
	for rows.Next() {
		var cat string
		var sum float64
		if err = rows.Scan(&cat, &sum); err != nil {
			return nil, errors.Wrap(err, "sum by category")
		}
		sums[ledger.Category(cat)] = sum
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "sum by category")
	}
	return sums, nil
}

func (s *PostgresStorage) queryRecords(ctx context.Context, query sq.SelectBuilder, op string) ([]ledger.Record, error) {
	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer closeRows(rows)

	recs := make([]ledger.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}
	return recs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (ledger.Record, error) {
	var rec ledger.Record
	var cat string
	var note sql.NullString
	err := row.Scan(&rec.ID, &rec.Owner, &rec.Amount, &cat, &rec.Date, &note, &rec.CreatedAt)
	if err != nil {
		return ledger.Record{}, err
	}
	rec.Category = ledger.Category(cat)
	rec.Note = note.String
	return rec, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Println("error closing rows", err)
	}
}
