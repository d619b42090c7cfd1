package mapper

import (
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/model"
)

type FolderMapper struct{}

func NewFolderMapper() *FolderMapper {
	return &FolderMapper{}
}

func (m *FolderMapper) ToEntity(f *model.Folder) *entity.Folder {
	if f == nil {
		return nil
	}
	return &entity.Folder{
		Id:        f.FolderID,
		UserId:    f.UserID,
		ParentId:  f.ParentFolderID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *FolderMapper) ToModel(f *entity.Folder) *model.Folder {
	if f == nil {
		return nil
	}
	return &model.Folder{
		FolderID:       f.Id,
		UserID:         f.UserId,
		ParentFolderID: f.ParentId,
		Name:           f.Name,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func (m *FolderMapper) ToEntities(folders []*model.Folder) []*entity.Folder {
	entities := make([]*entity.Folder, len(folders))
	for i, f := range folders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
