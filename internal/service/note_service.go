package service

import (
	"context"
	"strings"
	"time"

	"markit-notes-be/internal/dto"
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/specification"
	"markit-notes-be/internal/repository/unitofwork"
	"markit-notes-be/pkg/frontmatter"
	"markit-notes-be/pkg/preview"
)

const DefaultRecentLimit = 10

type INoteService interface {
	CreateNote(ctx context.Context, userId uint, title, content string, folderId *uint, createdAt, updatedAt *time.Time) (uint, error)
	UpdateNote(ctx context.Context, noteId uint, title, content string) (bool, error)
	UpdateNoteForUser(ctx context.Context, userId, noteId uint, title, content string) (bool, error)
	RenameNote(ctx context.Context, userId, noteId uint, newTitle string) (bool, error)
	MoveNote(ctx context.Context, userId, noteId uint, folderId *uint) (bool, error)
	DeleteNote(ctx context.Context, userId, noteId uint) (bool, error)
	GetNote(ctx context.Context, userId, noteId uint) (*entity.Note, error)
	GetNotesByUser(ctx context.Context, userId uint) ([]*entity.Note, error)
	GetNotesByFolder(ctx context.Context, userId uint, folderId *uint) ([]*entity.Note, error)
	GetNoteTags(ctx context.Context, noteId uint) ([]string, error)
	AddTag(ctx context.Context, noteId uint, tag string) (bool, error)
	SearchByTag(ctx context.Context, userId uint, tag string) ([]*entity.Note, error)
	GetRecentModifiedFiles(ctx context.Context, userId uint, limit int) ([]dto.RecentFile, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		logger:     logger,
		now:        utcNow,
	}
}

func (s *noteService) CreateNote(ctx context.Context, userId uint, title, content string, folderId *uint, createdAt, updatedAt *time.Time) (uint, error) {
	note := entity.Note{
		UserId:   userId,
		FolderId: entity.NormalizeFolderID(folderId),
		Title:    title,
		Content:  content,
	}
	note.CreatedAt, note.UpdatedAt = resolveTimestamps(s.now(), createdAt, updatedAt)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		if err := requireOwnedFolder(ctx, tx, userId, note.FolderId); err != nil {
			return err
		}
		if err := tx.NoteRepository().Create(ctx, &note); err != nil {
			return apperror.Storage("create note", err)
		}
		if err := syncTags(ctx, tx, note.Id, note.Content); err != nil {
			return err
		}
		return touchRecent(ctx, tx, userId, note.Id, s.now())
	})
	if err != nil {
		s.logFailure("create note failed", err, map[string]interface{}{"user_id": userId})
		return 0, err
	}
	return note.Id, nil
}

// UpdateNote rewrites a note found by id alone and refreshes the owner's recents.
func (s *noteService) UpdateNote(ctx context.Context, noteId uint, title, content string) (bool, error) {
	return s.update(ctx, []specification.Specification{specification.ByNoteID{ID: noteId}}, title, content)
}

func (s *noteService) UpdateNoteForUser(ctx context.Context, userId, noteId uint, title, content string) (bool, error) {
	return s.update(ctx, []specification.Specification{
		specification.ByNoteID{ID: noteId},
		specification.NoteOwnedByUser{UserID: userId},
	}, title, content)
}

func (s *noteService) update(ctx context.Context, specs []specification.Specification, title, content string) (bool, error) {
	updated := false
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		note, err := tx.NoteRepository().FindOne(ctx, specs...)
		if err != nil {
			return apperror.Storage("find note", err)
		}
		if note == nil {
			return nil
		}

		now := s.now()
		note.Title = title
		note.Content = content
		note.UpdatedAt = now
		if err := tx.NoteRepository().Update(ctx, note); err != nil {
			return apperror.Storage("update note", err)
		}
		if err := syncTags(ctx, tx, note.Id, note.Content); err != nil {
			return err
		}
		if err := touchRecent(ctx, tx, note.UserId, note.Id, now); err != nil {
			return err
		}
		updated = true
		return nil
	})
	if err != nil {
		s.logFailure("update note failed", err, map[string]interface{}{})
		return false, err
	}
	return updated, nil
}

func (s *noteService) RenameNote(ctx context.Context, userId, noteId uint, newTitle string) (bool, error) {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return false, apperror.Validation("New name cannot be empty")
	}

	renamed := false
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		note, err := tx.NoteRepository().FindOne(ctx,
			specification.ByNoteID{ID: noteId},
			specification.NoteOwnedByUser{UserID: userId},
		)
		if err != nil {
			return apperror.Storage("find note", err)
		}
		if note == nil {
			return nil
		}
		now := s.now()
		note.Title = newTitle
		note.UpdatedAt = now
		if err := tx.NoteRepository().Update(ctx, note); err != nil {
			return apperror.Storage("rename note", err)
		}
		if err := touchRecent(ctx, tx, userId, note.Id, now); err != nil {
			return err
		}
		renamed = true
		return nil
	})
	if err != nil {
		s.logFailure("rename note failed", err, map[string]interface{}{"user_id": userId, "note_id": noteId})
		return false, err
	}
	return renamed, nil
}

// MoveNote only changes the folder assignment; timestamps are left alone.
func (s *noteService) MoveNote(ctx context.Context, userId, noteId uint, folderId *uint) (bool, error) {
	target := entity.NormalizeFolderID(folderId)
	moved := false

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		note, err := tx.NoteRepository().FindOne(ctx,
			specification.ByNoteID{ID: noteId},
			specification.NoteOwnedByUser{UserID: userId},
		)
		if err != nil {
			return apperror.Storage("find note", err)
		}
		if note == nil {
			return nil
		}
		if err := requireOwnedFolder(ctx, tx, userId, target); err != nil {
			return err
		}
		note.FolderId = target
		if err := tx.NoteRepository().Update(ctx, note); err != nil {
			return apperror.Storage("move note", err)
		}
		moved = true
		return nil
	})
	if err != nil {
		s.logFailure("move note failed", err, map[string]interface{}{"user_id": userId, "note_id": noteId})
		return false, err
	}
	return moved, nil
}

// DeleteNote removes the note; tags and recents go with it through the foreign keys.
func (s *noteService) DeleteNote(ctx context.Context, userId, noteId uint) (bool, error) {
	var affected int64
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		n, err := tx.NoteRepository().Delete(ctx,
			specification.ByNoteID{ID: noteId},
			specification.NoteOwnedByUser{UserID: userId},
		)
		if err != nil {
			return apperror.Storage("delete note", err)
		}
		affected = n
		return nil
	})
	if err != nil {
		s.logFailure("delete note failed", err, map[string]interface{}{"user_id": userId, "note_id": noteId})
		return false, err
	}
	return affected > 0, nil
}

func (s *noteService) GetNote(ctx context.Context, userId, noteId uint) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByNoteID{ID: noteId},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Storage("find note", err)
	}
	return note, nil
}

func (s *noteService) GetNotesByUser(ctx context.Context, userId uint) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "notes.updated_at", Desc: true},
		specification.OrderBy{Field: "notes.noteid", Desc: true},
	)
	if err != nil {
		return nil, apperror.Storage("list notes", err)
	}
	return notes, nil
}

func (s *noteService) GetNotesByFolder(ctx context.Context, userId uint, folderId *uint) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.ByFolder{FolderID: entity.NormalizeFolderID(folderId)},
		specification.OrderBy{Field: "notes.title"},
	)
	if err != nil {
		return nil, apperror.Storage("list notes", err)
	}
	return notes, nil
}

func (s *noteService) GetNoteTags(ctx context.Context, noteId uint) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tags, err := uow.TagRepository().DistinctByNote(ctx, noteId)
	if err != nil {
		return nil, apperror.Storage("list tags", err)
	}
	return tags, nil
}

func (s *noteService) AddTag(ctx context.Context, noteId uint, tag string) (bool, error) {
	added := false
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		ok, err := addTag(ctx, tx, noteId, tag)
		added = ok
		return err
	})
	if err != nil {
		s.logFailure("add tag failed", err, map[string]interface{}{"note_id": noteId, "tag": tag})
		return false, err
	}
	return added, nil
}

func (s *noteService) SearchByTag(ctx context.Context, userId uint, tag string) ([]*entity.Note, error) {
	tag = frontmatter.SanitizeTag(tag)
	if !frontmatter.ValidTag(tag) {
		return []*entity.Note{}, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.HasTag{Tag: tag},
		specification.OrderBy{Field: "notes.updated_at", Desc: true},
		specification.OrderBy{Field: "notes.noteid", Desc: true},
	)
	if err != nil {
		return nil, apperror.Storage("search by tag", err)
	}
	return notes, nil
}

func (s *noteService) GetRecentModifiedFiles(ctx context.Context, userId uint, limit int) ([]dto.RecentFile, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.RecentModificationRepository().FindRecentByUser(ctx, userId, limit)
	if err != nil {
		return nil, apperror.Storage("list recent files", err)
	}

	files := make([]dto.RecentFile, 0, len(rows))
	for _, row := range rows {
		files = append(files, dto.RecentFile{
			NoteId:     row.NoteId,
			Title:      row.Title,
			ModifiedAt: row.ModifiedAt,
			Preview:    preview.Clean(row.Content),
		})
	}
	return files, nil
}

func (s *noteService) logFailure(message string, err error, details map[string]interface{}) {
	if apperror.KindOf(err) != apperror.KindStorage {
		return
	}
	details["error"] = err
	s.logger.Error("NOTE", message, details)
}

// syncTags replaces the note's tag rows with the tags declared in its front matter.
func syncTags(ctx context.Context, uow unitofwork.UnitOfWork, noteId uint, content string) error {
	if err := uow.TagRepository().DeleteByNote(ctx, noteId); err != nil {
		return apperror.Storage("clear tags", err)
	}
	for _, tag := range frontmatter.ExtractTags(content) {
		if err := uow.TagRepository().Create(ctx, &entity.Tag{NoteId: noteId, Tag: tag}); err != nil {
			return apperror.Storage("insert tag", err)
		}
	}
	return nil
}

func touchRecent(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uint, at time.Time) error {
	err := uow.RecentModificationRepository().Touch(ctx, &entity.RecentModification{
		UserId:     userId,
		NoteId:     noteId,
		ModifiedAt: at,
	})
	return apperror.Storage("touch recent", err)
}

// addTag stores a sanitised tag once per note. Invalid tags are rejected with false.
func addTag(ctx context.Context, uow unitofwork.UnitOfWork, noteId uint, tag string) (bool, error) {
	tag = frontmatter.SanitizeTag(tag)
	if !frontmatter.ValidTag(tag) {
		return false, nil
	}
	exists, err := uow.TagRepository().Exists(ctx, noteId, tag)
	if err != nil {
		return false, apperror.Storage("find tag", err)
	}
	if exists {
		return true, nil
	}
	if err := uow.TagRepository().Create(ctx, &entity.Tag{NoteId: noteId, Tag: tag}); err != nil {
		return false, apperror.Storage("insert tag", err)
	}
	return true, nil
}
