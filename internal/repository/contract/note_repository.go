package contract

import (
	"context"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUser(ctx context.Context, userId uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	Exists(ctx context.Context, noteId uint, tag string) (bool, error)
	DeleteByNote(ctx context.Context, noteId uint) error
	DeleteAllByUser(ctx context.Context, userId uint) error
	// DistinctByNote returns the note's tag values in ascending order.
	DistinctByNote(ctx context.Context, noteId uint) ([]string, error)
	// DistinctByNotes groups distinct tag values by note id.
	DistinctByNotes(ctx context.Context, noteIds []uint) (map[uint][]string, error)
	FindAllByUser(ctx context.Context, userId uint) ([]*entity.Tag, error)
}

type RecentModificationRepository interface {
	Touch(ctx context.Context, rm *entity.RecentModification) error
	FindRecentByUser(ctx context.Context, userId uint, limit int) ([]*entity.RecentNote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
