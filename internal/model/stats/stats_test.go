package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/customerr"
	"max.ks1230/accounting/internal/model/records"
	"max.ks1230/accounting/internal/model/storage"
)

func newFixture(t *testing.T) (*Service, *records.Service) {
	t.Helper()
	mem := storage.NewInMemStorage()
	return NewService(mem), records.NewService(mem)
}

func add(t *testing.T, recs *records.Service, owner string, v ledger.Variant, amount, choice, date string) {
	t.Helper()
	_, err := recs.Add(context.Background(), owner, v, records.Input{
		Amount:         amount,
		CategoryChoice: choice,
		Date:           date,
	})
	require.NoError(t, err)
}

func Test_OnEmptyDay_ShouldTotalToZeroes(t *testing.T) {
	svc, _ := newFixture(t)

	totals, err := svc.TotalsRange(context.Background(), "alice", "2024-06-01", "2024-06-01")

	require.NoError(t, err)
	assert.Equal(t, Totals{Income: 0, Expense: 0, Net: 0}, totals)
}

func Test_OnReversedRange_ShouldListNothing(t *testing.T) {
	svc, recs := newFixture(t)
	add(t, recs, "alice", ledger.Income, "10", "1", "2024-06-15")

	listed, err := svc.ListRange(context.Background(), "alice", ledger.Income, "2024-06-30", "2024-06-01")

	require.NoError(t, err)
	assert.Empty(t, listed)
}

func Test_OnInclusiveRange_ShouldListAscendingByDate(t *testing.T) {
	svc, recs := newFixture(t)
	add(t, recs, "alice", ledger.Expense, "1", "1", "2024-06-30")
	add(t, recs, "alice", ledger.Expense, "2", "1", "2024-06-01")
	add(t, recs, "alice", ledger.Expense, "3", "1", "2024-05-31") // before range
	add(t, recs, "alice", ledger.Expense, "4", "1", "2024-07-01") // after range
	add(t, recs, "bob", ledger.Expense, "5", "1", "2024-06-15")   // other owner

	listed, err := svc.ListRange(context.Background(), "alice", ledger.Expense, "2024-06-01", "2024-06-30")

	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 2.0, listed[0].Amount)
	assert.Equal(t, 1.0, listed[1].Amount)
}

func Test_OnTotalsRange_ShouldSumVariantsIndependently(t *testing.T) {
	svc, recs := newFixture(t)
	add(t, recs, "alice", ledger.Income, "100.00", "2", "2024-06-10")
	add(t, recs, "alice", ledger.Income, "50.00", "2", "2024-06-11")
	add(t, recs, "alice", ledger.Expense, "200.00", "3", "2024-06-10")

	totals, err := svc.TotalsRange(context.Background(), "alice", "2024-06-10", "2024-06-11")

	require.NoError(t, err)
	assert.Equal(t, 150.0, totals.Income)
	assert.Equal(t, 200.0, totals.Expense)
	assert.Equal(t, -50.0, totals.Net)
}

func Test_OnBadRangeBound_ShouldFailValidation(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.TotalsRange(context.Background(), "alice", "June 1st", "2024-06-30")

	var validation *customerr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func Test_OnTotalsByCategory_ShouldSkipEmptyCategories(t *testing.T) {
	svc, recs := newFixture(t)
	add(t, recs, "alice", ledger.Income, "100", "2", "2024-06-10")
	add(t, recs, "alice", ledger.Expense, "30", "3", "2024-06-10")
	add(t, recs, "alice", ledger.Expense, "10", "3", "2024-06-12")

	totals, err := svc.TotalsByCategory(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, map[ledger.Category]float64{ledger.Food: 100}, totals.Income)
	assert.Equal(t, map[ledger.Category]float64{ledger.Transport: 40}, totals.Expense)
	assert.NotContains(t, totals.Income, ledger.Medical)
}
