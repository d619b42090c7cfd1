package contract

import (
	"context"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type SystemLogRepository interface {
	Create(ctx context.Context, log *entity.SystemLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemLog, error)
}
