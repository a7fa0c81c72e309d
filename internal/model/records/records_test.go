package records

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/customerr"
	"max.ks1230/accounting/internal/model/storage"
)

func newService() *Service {
	return NewService(storage.NewInMemStorage())
}

func Test_OnAdd_ShouldRoundTripNormalizedInput(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.Add(ctx, "alice", ledger.Income, Input{
		Amount:         "100.005",
		CategoryChoice: "2",
		Date:           "2024-03-10",
		Note:           "salary",
	})
	require.NoError(t, err)

	rec, err := svc.Get(ctx, "alice", ledger.Income, id)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.Amount)
	assert.Equal(t, ledger.Food, rec.Category)
	assert.Equal(t, "2024-03-10", rec.Date.Format("2006-01-02"))
	assert.Equal(t, "salary", rec.Note)
}

func Test_OnAddWithoutDate_ShouldDefaultToToday(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.Add(ctx, "alice", ledger.Expense, Input{Amount: "5", CategoryChoice: "1"})
	require.NoError(t, err)

	rec, err := svc.Get(ctx, "alice", ledger.Expense, id)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), rec.Date.Format("2006-01-02"))
	assert.Equal(t, "", rec.Note)
}

func Test_OnAddWithBadAmount_ShouldFailValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	for _, amount := range []string{"", "abc", "-1", "10,5"} {
		_, err := svc.Add(ctx, "alice", ledger.Income, Input{Amount: amount, CategoryChoice: "1"})

		var validation *customerr.ValidationError
		assert.ErrorAs(t, err, &validation, "amount %q", amount)
	}
}

func Test_OnAddWithBadDate_ShouldFailValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Add(ctx, "alice", ledger.Income, Input{Amount: "1", Date: "10.03.2024"})

	var validation *customerr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func Test_OnList_ShouldOrderByDateDescending(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Add(ctx, "alice", ledger.Income, Input{Amount: "1", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "alice", ledger.Income, Input{Amount: "2", Date: "2024-03-01"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "alice", ledger.Income, Input{Amount: "3", Date: "2024-02-01"})
	require.NoError(t, err)

	recs, err := svc.List(ctx, "alice", ledger.Income)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 2.0, recs[0].Amount)
	assert.Equal(t, 3.0, recs[1].Amount)
	assert.Equal(t, 1.0, recs[2].Amount)
}

func Test_OnBlankUpdate_ShouldKeepRecordIntact(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.Add(ctx, "alice", ledger.Expense, Input{
		Amount:         "42.50",
		CategoryChoice: "4",
		Date:           "2024-05-05",
		Note:           "shoes",
	})
	require.NoError(t, err)

	before, err := svc.Get(ctx, "alice", ledger.Expense, id)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, "alice", ledger.Expense, id, Input{}))

	after, err := svc.Get(ctx, "alice", ledger.Expense, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func Test_OnPartialUpdate_ShouldMergeProvidedFieldsOnly(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.Add(ctx, "alice", ledger.Expense, Input{
		Amount:         "42.50",
		CategoryChoice: "4",
		Date:           "2024-05-05",
		Note:           "shoes",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, "alice", ledger.Expense, id, Input{Amount: "10"}))

	rec, err := svc.Get(ctx, "alice", ledger.Expense, id)
	require.NoError(t, err)
	assert.Equal(t, 10.0, rec.Amount)
	assert.Equal(t, ledger.Shopping, rec.Category)
	assert.Equal(t, "2024-05-05", rec.Date.Format("2006-01-02"))
	assert.Equal(t, "shoes", rec.Note)
}

func Test_OnUpdateWithInvalidChoice_ShouldFallBackToOther(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.Add(ctx, "alice", ledger.Expense, Input{Amount: "1", CategoryChoice: "4"})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, "alice", ledger.Expense, id, Input{CategoryChoice: "9"}))

	rec, err := svc.Get(ctx, "alice", ledger.Expense, id)
	require.NoError(t, err)
	assert.Equal(t, ledger.Other, rec.Category)
}

func Test_OnForeignRecord_ShouldLookMissingToOtherAccounts(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.Add(ctx, "alice", ledger.Income, Input{Amount: "100", CategoryChoice: "2"})
	require.NoError(t, err)

	var notFound *customerr.NotFoundError

	_, err = svc.Get(ctx, "bob", ledger.Income, id)
	assert.ErrorAs(t, err, &notFound)

	err = svc.Update(ctx, "bob", ledger.Income, id, Input{Amount: "1"})
	assert.ErrorAs(t, err, &notFound)

	err = svc.Delete(ctx, "bob", ledger.Income, id)
	assert.ErrorAs(t, err, &notFound)

	// still intact for the owner
	rec, err := svc.Get(ctx, "alice", ledger.Income, id)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.Amount)
}

func Test_OnDelete_ShouldRemoveOwnRecord(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.Add(ctx, "alice", ledger.Income, Input{Amount: "1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", ledger.Income, id))

	var notFound *customerr.NotFoundError
	_, err = svc.Get(ctx, "alice", ledger.Income, id)
	assert.ErrorAs(t, err, &notFound)
}
