package unitofwork

import (
	"context"
	"errors"
	"testing"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/repository/schema"
	"markit-notes-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T) RepositoryFactory {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	require.NoError(t, schema.Init(context.Background(), db))
	return NewRepositoryFactory(db)
}

func countUsers(t *testing.T, f RepositoryFactory) int64 {
	t.Helper()
	ctx := context.Background()
	n, err := f.NewUnitOfWork(ctx).UserRepository().Count(ctx)
	require.NoError(t, err)
	return n
}

func createUser(ctx context.Context, uow UnitOfWork, name string) error {
	return uow.UserRepository().Create(ctx, &entity.User{Username: name, PasswordHash: "h"})
}

func TestUnitOfWork_NestedCommitOnlyAtOutermost(t *testing.T) {
	f := newFactory(t)
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Begin(ctx))
	assert.Equal(t, 2, uow.Depth())
	require.NoError(t, createUser(ctx, uow, "nested"))

	require.NoError(t, uow.Commit())
	assert.True(t, uow.InTransaction())
	assert.Equal(t, 1, uow.Depth())

	require.NoError(t, uow.Commit())
	assert.False(t, uow.InTransaction())
	assert.EqualValues(t, 2, countUsers(t, f))
}

func TestUnitOfWork_NestedRollbackAbortsOuterCommit(t *testing.T) {
	f := newFactory(t)
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, createUser(ctx, uow, "outer"))
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, createUser(ctx, uow, "inner"))
	require.NoError(t, uow.Rollback())

	err := uow.Commit()
	assert.ErrorIs(t, err, ErrTransactionAborted)
	assert.False(t, uow.InTransaction())
	assert.EqualValues(t, 1, countUsers(t, f))
}

func TestUnitOfWork_CommitWithoutBegin(t *testing.T) {
	f := newFactory(t)
	uow := f.NewUnitOfWork(context.Background())

	assert.ErrorIs(t, uow.Commit(), ErrNoTransaction)
	assert.ErrorIs(t, uow.Rollback(), ErrNoTransaction)
}

func TestUnitOfWork_DoCommitsOnSuccess(t *testing.T) {
	f := newFactory(t)
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)

	err := uow.Do(ctx, func(tx UnitOfWork) error {
		return createUser(ctx, tx, "done")
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, countUsers(t, f))
}

func TestUnitOfWork_DoRollsBackOnError(t *testing.T) {
	f := newFactory(t)
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)
	boom := errors.New("boom")

	err := uow.Do(ctx, func(tx UnitOfWork) error {
		if err := createUser(ctx, tx, "discarded"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, uow.InTransaction())
	assert.EqualValues(t, 1, countUsers(t, f))
}

func TestUnitOfWork_DoRollsBackOnPanic(t *testing.T) {
	f := newFactory(t)
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)

	assert.Panics(t, func() {
		_ = uow.Do(ctx, func(tx UnitOfWork) error {
			_ = createUser(ctx, tx, "panicky")
			panic("kaboom")
		})
	})
	assert.False(t, uow.InTransaction())
	assert.EqualValues(t, 1, countUsers(t, f))

	// The writer lock was released: another handle can start a transaction.
	other := f.NewUnitOfWork(ctx)
	require.NoError(t, other.Begin(ctx))
	require.NoError(t, other.Rollback())
}

func TestUnitOfWork_NestedDoJoinsOuter(t *testing.T) {
	f := newFactory(t)
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)
	inner := errors.New("inner failed")

	err := uow.Do(ctx, func(tx UnitOfWork) error {
		if err := createUser(ctx, tx, "first"); err != nil {
			return err
		}
		// The nested failure is swallowed, but the outer commit must still abort.
		_ = tx.Do(ctx, func(tx UnitOfWork) error {
			_ = createUser(ctx, tx, "second")
			return inner
		})
		return nil
	})
	assert.ErrorIs(t, err, ErrTransactionAborted)
	assert.EqualValues(t, 1, countUsers(t, f))
}
