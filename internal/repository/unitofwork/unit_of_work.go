package unitofwork

import (
	"context"
	"errors"

	"markit-notes-be/internal/repository/contract"
)

var (
	ErrNoTransaction      = errors.New("no transaction in progress")
	ErrTransactionAborted = errors.New("transaction aborted: a nested scope rolled back")
)

// UnitOfWork is a per-request transaction handle. Begin/Commit/Rollback nest:
// only the outermost pair touches the database. Repositories obtained from it
// run inside the open transaction, or directly on the pool when none is open.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	// Do runs fn inside a (possibly nested) transaction, committing on success
	// and rolling back on error or panic.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	InTransaction() bool
	Depth() int

	UserRepository() contract.UserRepository
	FolderRepository() contract.FolderRepository
	NoteRepository() contract.NoteRepository
	TagRepository() contract.TagRepository
	RecentModificationRepository() contract.RecentModificationRepository
	SystemLogRepository() contract.SystemLogRepository
}
