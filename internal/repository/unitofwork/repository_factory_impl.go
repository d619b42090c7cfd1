package unitofwork

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db      *gorm.DB
	writeMu *sync.Mutex
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:      db,
		writeMu: &sync.Mutex{},
	}
}

// NewUnitOfWork hands out an independent handle. All handles of one factory
// share the writer lock, so transactions from different requests serialise.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db, f.writeMu)
}
