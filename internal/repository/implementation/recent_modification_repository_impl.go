package implementation

import (
	"context"
	"time"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/model"
	"markit-notes-be/internal/repository/contract"
	"markit-notes-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecentModificationRepositoryImpl struct {
	db *gorm.DB
}

func NewRecentModificationRepository(db *gorm.DB) contract.RecentModificationRepository {
	return &RecentModificationRepositoryImpl{db: db}
}

// Touch inserts the (user, note) row or moves its timestamp forward.
func (r *RecentModificationRepositoryImpl) Touch(ctx context.Context, rm *entity.RecentModification) error {
	m := &model.RecentModification{
		UserID:     rm.UserId,
		NoteID:     rm.NoteId,
		ModifiedAt: rm.ModifiedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "userid"}, {Name: "noteid"}},
		DoUpdates: clause.AssignmentColumns([]string{"modified_at"}),
	}).Create(m).Error
}

func (r *RecentModificationRepositoryImpl) FindRecentByUser(ctx context.Context, userId uint, limit int) ([]*entity.RecentNote, error) {
	var rows []struct {
		NoteID     uint      `gorm:"column:noteid"`
		Title      string    `gorm:"column:title"`
		Content    string    `gorm:"column:content"`
		ModifiedAt time.Time `gorm:"column:modified_at"`
	}
	err := r.db.WithContext(ctx).
		Table("recent_modifications AS rm").
		Select("n.noteid, n.title, n.content, rm.modified_at").
		Joins("JOIN notes n ON rm.noteid = n.noteid").
		Where("rm.userid = ?", userId).
		Order("rm.modified_at DESC").
		Order("rm.noteid DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*entity.RecentNote, 0, len(rows))
	for _, row := range rows {
		result = append(result, &entity.RecentNote{
			NoteId:     row.NoteID,
			Title:      row.Title,
			Content:    row.Content,
			ModifiedAt: row.ModifiedAt,
		})
	}
	return result, nil
}

func (r *RecentModificationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.RecentModification{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
