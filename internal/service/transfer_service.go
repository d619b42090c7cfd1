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

// ResetFolderName is the folder ResetApp leaves behind.
const ResetFolderName = "Root"

type ITransferService interface {
	Export(ctx context.Context, userId uint) (*dto.ExportDocument, error)
	Import(ctx context.Context, userId uint, doc *dto.ExportDocument) error
	ResetApp(ctx context.Context, userId uint) (uint, error)
	DeleteUserData(ctx context.Context, userId uint) error
}

type transferService struct {
	uowFactory    unitofwork.RepositoryFactory
	folderService IFolderService
	logger        logger.ILogger
	now           func() time.Time
}

func NewTransferService(
	uowFactory unitofwork.RepositoryFactory,
	folderService IFolderService,
	logger logger.ILogger,
) ITransferService {
	return &transferService{
		uowFactory:    uowFactory,
		folderService: folderService,
		logger:        logger,
		now:           utcNow,
	}
}

func (s *transferService) Export(ctx context.Context, userId uint) (*dto.ExportDocument, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.FolderOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "folders.folderid"},
	)
	if err != nil {
		return nil, apperror.Storage("export folders", err)
	}
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "notes.noteid"},
	)
	if err != nil {
		return nil, apperror.Storage("export notes", err)
	}
	tags, err := uow.TagRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return nil, apperror.Storage("export tags", err)
	}

	doc := &dto.ExportDocument{
		UserId:     userId,
		Folders:    make([]dto.ExportFolder, 0, len(folders)),
		Notes:      make([]dto.ExportNote, 0, len(notes)),
		Tags:       make([]dto.ExportTag, 0, len(tags)),
		ExportDate: s.now().Format(dto.TimestampLayout),
		Version:    dto.ExportVersion,
	}
	for _, f := range folders {
		doc.Folders = append(doc.Folders, dto.ExportFolder{
			FolderId:       f.Id,
			UserId:         f.UserId,
			ParentFolderId: f.ParentId,
			Name:           f.Name,
			CreatedAt:      dto.NewTimestamp(f.CreatedAt),
			UpdatedAt:      dto.NewTimestamp(f.UpdatedAt),
		})
	}
	for _, n := range notes {
		doc.Notes = append(doc.Notes, dto.ExportNote{
			NoteId:    n.Id,
			UserId:    n.UserId,
			FolderId:  n.FolderId,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: dto.NewTimestamp(n.CreatedAt),
			UpdatedAt: dto.NewTimestamp(n.UpdatedAt),
		})
	}
	for _, t := range tags {
		doc.Tags = append(doc.Tags, dto.ExportTag{TagId: t.Id, NoteId: t.NoteId, Tag: t.Tag})
	}
	return doc, nil
}

// Import replaces all of the user's data with the document's content in one
// transaction. On any failure the previous data is left untouched.
func (s *transferService) Import(ctx context.Context, userId uint, doc *dto.ExportDocument) error {
	if doc == nil || doc.Folders == nil || doc.Notes == nil || doc.Tags == nil || doc.Version == "" {
		return apperror.Validation("Invalid JSON structure: missing required fields")
	}
	if doc.Version != dto.ExportVersion {
		return apperror.Validation("Unsupported JSON version")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		if err := deleteUserData(ctx, tx, userId); err != nil {
			return err
		}
		folderMap, err := s.importFolders(ctx, tx, userId, doc.Folders)
		if err != nil {
			return err
		}
		noteMap, err := s.importNotes(ctx, tx, userId, doc.Notes, folderMap)
		if err != nil {
			return err
		}
		for _, t := range doc.Tags {
			newId, ok := noteMap[t.NoteId]
			if !ok {
				continue
			}
			if _, err := addTag(ctx, tx, newId, t.Tag); err != nil {
				return err
			}
		}
		return nil
	})
	s.folderService.InvalidatePaths(userId)
	if err != nil {
		s.logger.Error("TRANSFER", "import failed", map[string]interface{}{"user_id": userId, "error": err})
		return err
	}
	s.logger.Info("TRANSFER", "import completed", map[string]interface{}{
		"user_id": userId,
		"folders": len(doc.Folders),
		"notes":   len(doc.Notes),
		"tags":    len(doc.Tags),
	})
	return nil
}

// importFolders inserts parents before children, whatever order the document
// lists them in, and returns the old-to-new id map.
func (s *transferService) importFolders(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, folders []dto.ExportFolder) (map[uint]uint, error) {
	inDocument := make(map[uint]struct{}, len(folders))
	for _, f := range folders {
		inDocument[f.FolderId] = struct{}{}
	}

	idMap := make(map[uint]uint, len(folders))
	pending := folders
	for len(pending) > 0 {
		var deferred []dto.ExportFolder
		for _, f := range pending {
			var parent *uint
			if oldParent := entity.NormalizeFolderID(f.ParentFolderId); oldParent != nil {
				if _, known := inDocument[*oldParent]; known {
					newParent, placed := idMap[*oldParent]
					if !placed {
						deferred = append(deferred, f)
						continue
					}
					parent = &newParent
				}
			}

			created, updated := resolveTimestamps(s.now(), f.CreatedAt.Ptr(), f.UpdatedAt.Ptr())
			folder := entity.Folder{
				UserId:    userId,
				ParentId:  parent,
				Name:      f.Name,
				CreatedAt: created,
				UpdatedAt: updated,
			}
			if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
				return nil, apperror.Storage("import folder", err)
			}
			idMap[f.FolderId] = folder.Id
		}
		if len(deferred) == len(pending) {
			return nil, apperror.Validation("folder hierarchy contains a cycle")
		}
		pending = deferred
	}
	return idMap, nil
}

func (s *transferService) importNotes(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, notes []dto.ExportNote, folderMap map[uint]uint) (map[uint]uint, error) {
	idMap := make(map[uint]uint, len(notes))
	for _, n := range notes {
		var folderId *uint
		if old := entity.NormalizeFolderID(n.FolderId); old != nil {
			if mapped, ok := folderMap[*old]; ok {
				folderId = &mapped
			}
		}

		created, updated := resolveTimestamps(s.now(), n.CreatedAt.Ptr(), n.UpdatedAt.Ptr())
		note := entity.Note{
			UserId:    userId,
			FolderId:  folderId,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: created,
			UpdatedAt: updated,
		}
		if err := uow.NoteRepository().Create(ctx, &note); err != nil {
			return nil, apperror.Storage("import note", err)
		}
		idMap[n.NoteId] = note.Id
	}
	return idMap, nil
}

// ResetApp wipes the user's data and leaves a single top-level folder behind.
func (s *transferService) ResetApp(ctx context.Context, userId uint) (uint, error) {
	now := s.now()
	folder := entity.Folder{
		UserId:    userId,
		Name:      ResetFolderName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		if err := deleteUserData(ctx, tx, userId); err != nil {
			return err
		}
		if err := tx.FolderRepository().Create(ctx, &folder); err != nil {
			return apperror.Storage("create root folder", err)
		}
		return nil
	})
	s.folderService.InvalidatePaths(userId)
	if err != nil {
		s.logger.Error("TRANSFER", "reset failed", map[string]interface{}{"user_id": userId, "error": err})
		return 0, err
	}
	return folder.Id, nil
}

func (s *transferService) DeleteUserData(ctx context.Context, userId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		return deleteUserData(ctx, tx, userId)
	})
	s.folderService.InvalidatePaths(userId)
	return err
}

// deleteUserData purges tags, notes and folders in dependency order. Recents
// follow their notes through the foreign key.
func deleteUserData(ctx context.Context, uow unitofwork.UnitOfWork, userId uint) error {
	if err := uow.TagRepository().DeleteAllByUser(ctx, userId); err != nil {
		return apperror.Storage("purge tags", err)
	}
	if err := uow.NoteRepository().DeleteAllByUser(ctx, userId); err != nil {
		return apperror.Storage("purge notes", err)
	}
	if err := uow.FolderRepository().DeleteAllByUser(ctx, userId); err != nil {
		return apperror.Storage("purge folders", err)
	}
	return nil
}
