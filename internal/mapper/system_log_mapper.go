package mapper

import (
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/model"
)

type SystemLogMapper struct{}

func NewSystemLogMapper() *SystemLogMapper {
	return &SystemLogMapper{}
}

func (m *SystemLogMapper) ToEntity(l *model.SystemLog) *entity.SystemLog {
	if l == nil {
		return nil
	}
	return &entity.SystemLog{
		Id:            l.LogID,
		Timestamp:     l.Timestamp,
		Message:       l.Message,
		SessionId:     l.SessionID,
		RequestMethod: l.RequestMethod,
		RequestURI:    l.RequestURI,
		RequestData:   l.RequestData,
		UserId:        l.UserID,
	}
}

func (m *SystemLogMapper) ToModel(l *entity.SystemLog) *model.SystemLog {
	if l == nil {
		return nil
	}
	return &model.SystemLog{
		LogID:         l.Id,
		Timestamp:     l.Timestamp,
		Message:       l.Message,
		SessionID:     l.SessionId,
		RequestMethod: l.RequestMethod,
		RequestURI:    l.RequestURI,
		RequestData:   l.RequestData,
		UserID:        l.UserId,
	}
}

func (m *SystemLogMapper) ToEntities(logs []*model.SystemLog) []*entity.SystemLog {
	entities := make([]*entity.SystemLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
