package service

import (
	"context"
	"time"

	"markit-notes-be/internal/dto"
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/specification"
	"markit-notes-be/internal/repository/unitofwork"
)

const maxLogPage = 500

type ISystemLogService interface {
	Record(ctx context.Context, entry *entity.SystemLog) error
	Recent(ctx context.Context, limit int) ([]*dto.SystemLogResponse, error)
}

type systemLogService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewSystemLogService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ISystemLogService {
	return &systemLogService{
		uowFactory: uowFactory,
		logger:     logger,
		now:        utcNow,
	}
}

func (s *systemLogService) Record(ctx context.Context, entry *entity.SystemLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		return tx.SystemLogRepository().Create(ctx, entry)
	})
	if err != nil {
		s.logger.Warn("SYSTEM_LOG", "failed to record request", map[string]interface{}{"message": entry.Message, "error": err})
		return apperror.Storage("record system log", err)
	}
	return nil
}

func (s *systemLogService) Recent(ctx context.Context, limit int) ([]*dto.SystemLogResponse, error) {
	if limit <= 0 || limit > maxLogPage {
		limit = 50
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.SystemLogRepository().FindAll(ctx,
		specification.OrderBy{Field: "system_logs.timestamp", Desc: true},
		specification.OrderBy{Field: "system_logs.logid", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, apperror.Storage("list system logs", err)
	}

	res := make([]*dto.SystemLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, &dto.SystemLogResponse{
			Id:            l.Id,
			Timestamp:     l.Timestamp.UTC().Format(time.RFC3339),
			Message:       l.Message,
			SessionId:     l.SessionId,
			RequestMethod: l.RequestMethod,
			RequestURI:    l.RequestURI,
			UserId:        l.UserId,
		})
	}
	return res, nil
}
