package mapper

import (
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:        n.NoteID,
		UserId:    n.UserID,
		FolderId:  n.FolderID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		NoteID:    n.Id,
		UserID:    n.UserId,
		FolderID:  n.FolderId,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) TagToEntity(t *model.Tag) *entity.Tag {
	if t == nil {
		return nil
	}
	return &entity.Tag{Id: t.TagID, NoteId: t.NoteID, Tag: t.Tag}
}

func (m *NoteMapper) TagsToEntities(tags []*model.Tag) []*entity.Tag {
	entities := make([]*entity.Tag, len(tags))
	for i, t := range tags {
		entities[i] = m.TagToEntity(t)
	}
	return entities
}
