package accounting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gojuno/minimock/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/accounting/internal/clients/cache"
	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/accounting/mock"
	"max.ks1230/accounting/internal/model/records"
	"max.ks1230/accounting/internal/model/session"
	"max.ks1230/accounting/internal/model/stats"
	"max.ks1230/accounting/internal/model/storage"
)

func newService(c reportCache) *Service {
	mem := storage.NewInMemStorage()
	return NewService(
		session.NewService(mem),
		records.NewService(mem),
		stats.NewService(mem),
		c,
	)
}

func signUp(t *testing.T, svc *Service, name, secret string) {
	t.Helper()
	ctx := context.Background()

	msg, err := svc.Register(ctx, name, secret)
	require.NoError(t, err)
	require.Equal(t, registeredMessage, msg)

	msg, err = svc.Login(ctx, name, secret)
	require.NoError(t, err)
	require.Equal(t, welcomeMessage+strings.ToUpper(name), msg)
}

func Test_OnAliceDay_ShouldAggregateBothVariants(t *testing.T) {
	ctx := context.Background()
	svc := newService(cache.NewNop())
	signUp(t, svc, "alice", "secret")

	msg, err := svc.AddRecord(ctx, ledger.Income, records.Input{Amount: "100.00", CategoryChoice: "2"})
	require.NoError(t, err)
	assert.Equal(t, savedMessage, msg)

	msg, err = svc.AddRecord(ctx, ledger.Expense, records.Input{Amount: "30.00", CategoryChoice: "3"})
	require.NoError(t, err)
	assert.Equal(t, savedMessage, msg)

	today := time.Now().Format("2006-01-02")
	report, err := svc.TotalsByRange(ctx, today, today)
	require.NoError(t, err)
	assert.Contains(t, report, "Total income: 100.00")
	assert.Contains(t, report, "Total expense: 30.00")
	assert.Contains(t, report, "Net: 70.00")

	report, err = svc.TotalsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Income by category:\nFood\t100.00\n\nExpense by category:\nTransport\t30.00", report)
}

func Test_OnScopedOpsWhileLoggedOut_ShouldRefuse(t *testing.T) {
	ctx := context.Background()
	svc := newService(cache.NewNop())

	msg, err := svc.AddRecord(ctx, ledger.Income, records.Input{Amount: "1"})
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
	assert.Equal(t, notLoggedInMessage, msg)

	msg, err = svc.TotalsByCategory(ctx)
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
	assert.Equal(t, notLoggedInMessage, msg)
}

func Test_OnAnyBadLogin_ShouldShareOneMessage(t *testing.T) {
	ctx := context.Background()
	svc := newService(cache.NewNop())

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	wrongSecret, err := svc.Login(ctx, "alice", "nope")
	assert.ErrorIs(t, err, session.ErrLoginFailed)

	unknownName, err := svc.Login(ctx, "mallory", "secret")
	assert.ErrorIs(t, err, session.ErrLoginFailed)

	assert.Equal(t, loginFailedMessage, wrongSecret)
	assert.Equal(t, wrongSecret, unknownName)
}

func Test_OnBadRecordID_ShouldAnswerBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newService(cache.NewNop())
	signUp(t, svc, "alice", "secret")

	msg, err := svc.UpdateRecord(ctx, ledger.Income, "abc", records.Input{})
	assert.Error(t, err)
	assert.Equal(t, badInputMessage, msg)
}

func Test_OnListAll_ShouldRenderBothSections(t *testing.T) {
	ctx := context.Background()
	svc := newService(cache.NewNop())
	signUp(t, svc, "alice", "secret")

	_, err := svc.AddRecord(ctx, ledger.Income, records.Input{
		Amount:         "100.00",
		CategoryChoice: "2",
		Date:           "2024-06-10",
		Note:           "salary",
	})
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, ledger.Expense, records.Input{
		Amount:         "30.00",
		CategoryChoice: "3",
		Date:           "2024-06-10",
	})
	require.NoError(t, err)

	listing, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t,
		"Income records:\n"+recordsHeader+"\n1\t100.00\tFood\t2024-06-10\tsalary\n\n"+
			"Expense records:\n"+recordsHeader+"\n1\t30.00\tTransport\t2024-06-10\t",
		listing)
}

func Test_OnMutation_ShouldInvalidateCachedReport(t *testing.T) {
	ctx := context.Background()
	mc := minimock.NewController(t)
	defer mc.Finish()

	reportCacheMock := mock.NewReportCacheMock(mc)
	reportCacheMock.InvalidateReportsMock.
		Expect("alice", []string{categoryTotalsOption}).
		Return(nil)

	svc := newService(reportCacheMock)
	signUp(t, svc, "alice", "secret")

	_, err := svc.AddRecord(ctx, ledger.Expense, records.Input{Amount: "30", CategoryChoice: "3"})
	require.NoError(t, err)
}

func Test_OnCachedReport_ShouldSkipRecomputation(t *testing.T) {
	ctx := context.Background()
	mc := minimock.NewController(t)
	defer mc.Finish()

	reportCacheMock := mock.NewReportCacheMock(mc)
	reportCacheMock.GetReportMock.
		Expect("alice", categoryTotalsOption).
		Return("cached report", nil)

	svc := newService(reportCacheMock)
	signUp(t, svc, "alice", "secret")

	report, err := svc.TotalsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cached report", report)
}

func Test_OnReportMiss_ShouldComputeAndCache(t *testing.T) {
	ctx := context.Background()
	mc := minimock.NewController(t)
	defer mc.Finish()

	emptyReport := "Income by category:\n\nExpense by category:"

	reportCacheMock := mock.NewReportCacheMock(mc)
	reportCacheMock.GetReportMock.
		Expect("alice", categoryTotalsOption).
		Return("", errors.New("cache miss"))
	reportCacheMock.CacheReportMock.
		Expect("alice", categoryTotalsOption, emptyReport).
		Return(nil)

	svc := newService(reportCacheMock)
	signUp(t, svc, "alice", "secret")

	report, err := svc.TotalsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, emptyReport, report)
}
