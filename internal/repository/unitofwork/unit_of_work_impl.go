package unitofwork

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"markit-notes-be/internal/repository/contract"
	"markit-notes-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db      *gorm.DB
	writeMu *sync.Mutex

	tx           *gorm.DB
	depth        int
	rollbackOnly bool
}

func NewUnitOfWork(db *gorm.DB, writeMu *sync.Mutex) UnitOfWork {
	if writeMu == nil {
		writeMu = &sync.Mutex{}
	}
	return &UnitOfWorkImpl{
		db:      db,
		writeMu: writeMu,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.depth > 0 {
		u.depth++
		return nil
	}

	u.writeMu.Lock()
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.writeMu.Unlock()
		return tx.Error
	}
	u.tx = tx
	u.depth = 1
	u.rollbackOnly = false
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.depth == 0 {
		return fmt.Errorf("commit: %w", ErrNoTransaction)
	}
	if u.depth > 1 {
		u.depth--
		return nil
	}

	defer u.release()
	if u.rollbackOnly {
		if err := u.tx.Rollback().Error; err != nil {
			return errors.Join(ErrTransactionAborted, err)
		}
		return ErrTransactionAborted
	}
	return u.tx.Commit().Error
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.depth == 0 {
		return fmt.Errorf("rollback: %w", ErrNoTransaction)
	}
	if u.depth > 1 {
		u.depth--
		u.rollbackOnly = true
		return nil
	}

	defer u.release()
	return u.tx.Rollback().Error
}

func (u *UnitOfWorkImpl) release() {
	u.tx = nil
	u.depth = 0
	u.rollbackOnly = false
	u.writeMu.Unlock()
}

func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(uow UnitOfWork) error) (err error) {
	if err := u.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback()
			panic(p)
		}
	}()

	if err := fn(u); err != nil {
		if rbErr := u.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return u.Commit()
}

func (u *UnitOfWorkImpl) InTransaction() bool {
	return u.depth > 0
}

func (u *UnitOfWorkImpl) Depth() int {
	return u.depth
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FolderRepository() contract.FolderRepository {
	return implementation.NewFolderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NoteRepository() contract.NoteRepository {
	return implementation.NewNoteRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TagRepository() contract.TagRepository {
	return implementation.NewTagRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RecentModificationRepository() contract.RecentModificationRepository {
	return implementation.NewRecentModificationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SystemLogRepository() contract.SystemLogRepository {
	return implementation.NewSystemLogRepository(u.getDB())
}
