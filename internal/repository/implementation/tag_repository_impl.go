package implementation

import (
	"context"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/mapper"
	"markit-notes-be/internal/model"
	"markit-notes-be/internal/repository/contract"

	"gorm.io/gorm"
)

type TagRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewTagRepository(db *gorm.DB) contract.TagRepository {
	return &TagRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *entity.Tag) error {
	m := &model.Tag{NoteID: tag.NoteId, Tag: tag.Tag}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tag.Id = m.TagID
	return nil
}

func (r *TagRepositoryImpl) Exists(ctx context.Context, noteId uint, tag string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("noteid = ? AND tag = ?", noteId, tag).
		Count(&count).Error
	return count > 0, err
}

func (r *TagRepositoryImpl) DeleteByNote(ctx context.Context, noteId uint) error {
	return r.db.WithContext(ctx).Where("noteid = ?", noteId).Delete(&model.Tag{}).Error
}

func (r *TagRepositoryImpl) DeleteAllByUser(ctx context.Context, userId uint) error {
	return r.db.WithContext(ctx).
		Where("noteid IN (SELECT noteid FROM notes WHERE userid = ?)", userId).
		Delete(&model.Tag{}).Error
}

func (r *TagRepositoryImpl) DistinctByNote(ctx context.Context, noteId uint) ([]string, error) {
	tags := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Distinct().
		Where("noteid = ?", noteId).
		Order("tag ASC").
		Pluck("tag", &tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepositoryImpl) DistinctByNotes(ctx context.Context, noteIds []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(noteIds))
	if len(noteIds) == 0 {
		return result, nil
	}

	var rows []struct {
		NoteID uint   `gorm:"column:noteid"`
		Tag    string `gorm:"column:tag"`
	}
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Select("DISTINCT noteid, tag").
		Where("noteid IN ?", noteIds).
		Order("tag ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.NoteID] = append(result[row.NoteID], row.Tag)
	}
	return result, nil
}

func (r *TagRepositoryImpl) FindAllByUser(ctx context.Context, userId uint) ([]*entity.Tag, error) {
	var models []*model.Tag
	err := r.db.WithContext(ctx).
		Select("tags.*").
		Joins("JOIN notes ON notes.noteid = tags.noteid").
		Where("notes.userid = ?", userId).
		Order("tags.tagid ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.TagsToEntities(models), nil
}
