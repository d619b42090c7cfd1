package implementation

import (
	"context"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/mapper"
	"markit-notes-be/internal/model"
	"markit-notes-be/internal/repository/contract"
	"markit-notes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SystemLogMapper
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewSystemLogMapper(),
	}
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, log *entity.SystemLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.Id = m.LogID
	return nil
}

func (r *SystemLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemLog, error) {
	var models []*model.SystemLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
