package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/accounting/internal/model/customerr"
	"max.ks1230/accounting/internal/model/storage"
)

func Test_OnRegisterWithEmptyFields_ShouldFailValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage())

	var validation *customerr.ValidationError
	assert.ErrorAs(t, svc.Register(ctx, "", "secret"), &validation)
	assert.ErrorAs(t, svc.Register(ctx, "alice", ""), &validation)
}

func Test_OnRegisterTakenName_ShouldFailAsDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage())

	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	var duplicate *customerr.DuplicateError
	assert.ErrorAs(t, svc.Register(ctx, "alice", "another"), &duplicate)
}

func Test_OnRegister_ShouldStayLoggedOut(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage())

	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	assert.False(t, svc.LoggedIn())
	_, err := svc.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func Test_OnAnyBadLogin_ShouldFailTheSameWay(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage())
	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	wrongSecret := svc.Login(ctx, "alice", "nope")
	unknownName := svc.Login(ctx, "mallory", "secret")

	assert.ErrorIs(t, wrongSecret, ErrLoginFailed)
	assert.ErrorIs(t, unknownName, ErrLoginFailed)
	assert.Equal(t, wrongSecret.Error(), unknownName.Error())
	assert.False(t, svc.LoggedIn())
}

func Test_OnLoginLogout_ShouldTrackCurrentAccount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewInMemStorage())
	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	require.NoError(t, svc.Login(ctx, "alice", "secret"))
	name, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	svc.Logout()
	assert.False(t, svc.LoggedIn())
	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
