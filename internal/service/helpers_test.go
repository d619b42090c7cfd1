package service

import (
	"context"
	"testing"
	"time"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/memory"
	"markit-notes-be/internal/repository/schema"
	"markit-notes-be/internal/repository/unitofwork"
	"markit-notes-be/pkg/database"

	"github.com/stretchr/testify/require"
)

// stepClock advances one second per reading so ordering by time is deterministic.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type testEnv struct {
	factory   unitofwork.RepositoryFactory
	clock     *stepClock
	pathCache *memory.PathCacheRepository
	folders   *folderService
	notes     *noteService
	search    *searchService
	transfer  *transferService
	users     *userService
	logs      *systemLogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	require.NoError(t, schema.Init(context.Background(), db))

	factory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	clock := &stepClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	cache := memory.NewPathCacheRepository(time.Minute)

	folders := NewFolderService(factory, cache, log).(*folderService)
	folders.now = clock.Now
	notes := NewNoteService(factory, log).(*noteService)
	notes.now = clock.Now
	transfer := NewTransferService(factory, folders, log).(*transferService)
	transfer.now = clock.Now
	users := NewUserService(factory, log, "test-secret", time.Hour).(*userService)
	logs := NewSystemLogService(factory, log).(*systemLogService)
	logs.now = clock.Now

	return &testEnv{
		factory:   factory,
		clock:     clock,
		pathCache: cache,
		folders:   folders,
		notes:     notes,
		search:    NewSearchService(factory, log).(*searchService),
		transfer:  transfer,
		users:     users,
		logs:      logs,
	}
}

// newUser inserts a user directly, skipping bcrypt.
func (e *testEnv) newUser(t *testing.T, name string) uint {
	t.Helper()
	ctx := context.Background()
	user := entity.User{Username: name, PasswordHash: "x"}
	require.NoError(t, e.factory.NewUnitOfWork(ctx).UserRepository().Create(ctx, &user))
	return user.Id
}

func (e *testEnv) mustFolder(t *testing.T, userId uint, name string, parent *uint) uint {
	t.Helper()
	id, err := e.folders.CreateFolder(context.Background(), userId, name, parent, nil, nil)
	require.NoError(t, err)
	return id
}

func (e *testEnv) mustNote(t *testing.T, userId uint, title, content string, folder *uint) uint {
	t.Helper()
	id, err := e.notes.CreateNote(context.Background(), userId, title, content, folder, nil, nil)
	require.NoError(t, err)
	return id
}

func ptr(v uint) *uint {
	return &v
}
