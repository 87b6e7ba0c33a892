package repo_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"accountd/internal/model"
	appErr "accountd/internal/pkg/errors"
	"accountd/internal/pkg/timeutil"
	"accountd/internal/repo"
	"accountd/test/testutil"
)

func newTestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func newTestAccount() *model.Account {
	now := timeutil.NowUnix()
	id := newTestID()
	return &model.Account{
		ID:           id,
		Name:         "Ann Lee",
		Email:        id + "@example.com",
		PasswordHash: "$2a$04$fakefakefakefakefakefake",
		DateOfBirth:  "1990-01-01",
		Verified:     false,
		Ctime:        now,
		Mtime:        now,
	}
}

func TestAccountRepoLifecycle(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	accounts := repo.NewAccountRepo(db)
	account := newTestAccount()
	require.NoError(t, accounts.Create(context.Background(), account))

	fetched, err := accounts.GetByEmail(context.Background(), account.Email)
	require.NoError(t, err)
	require.Equal(t, account.ID, fetched.ID)
	require.False(t, fetched.Verified)

	require.NoError(t, accounts.MarkVerified(context.Background(), account.ID, timeutil.NowUnix()))
	fetched, err = accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.True(t, fetched.Verified)

	require.NoError(t, accounts.Delete(context.Background(), account.ID))
	_, err = accounts.GetByID(context.Background(), account.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestAccountRepoUniqueEmail(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	accounts := repo.NewAccountRepo(db)
	first := newTestAccount()
	require.NoError(t, accounts.Create(context.Background(), first))
	defer func() { _ = accounts.Delete(context.Background(), first.ID) }()

	second := newTestAccount()
	second.Email = first.Email
	err := accounts.Create(context.Background(), second)
	require.ErrorIs(t, err, appErr.ErrConflict, "unique index must reject the duplicate email")
}

func TestAccountRepoMarkVerifiedUnknownID(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	accounts := repo.NewAccountRepo(db)
	err := accounts.MarkVerified(context.Background(), newTestID(), timeutil.NowUnix())
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
