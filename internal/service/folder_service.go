package service

import (
	"context"
	"strings"
	"time"

	"markit-notes-be/internal/dto"
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/memory"
	"markit-notes-be/internal/repository/specification"
	"markit-notes-be/internal/repository/unitofwork"
)

// MaxTreeDepth bounds every ancestor walk so a corrupted parent chain cannot loop forever.
const MaxTreeDepth = 1024

type IFolderService interface {
	CreateFolder(ctx context.Context, userId uint, name string, parentId *uint, createdAt, updatedAt *time.Time) (uint, error)
	MoveFolder(ctx context.Context, userId, folderId uint, newParentId *uint) (bool, error)
	RenameFolder(ctx context.Context, userId, folderId uint, newName string) (bool, error)
	DeleteFolder(ctx context.Context, userId, folderId uint) (bool, error)
	GetFolderPath(ctx context.Context, userId, folderId uint) (string, error)
	GetStatusFolderPath(ctx context.Context, userId, folderId uint) ([]dto.BreadcrumbItem, error)
	GetFolderContents(ctx context.Context, userId uint, folderId *uint) ([]dto.FolderContentItem, error)
	GetFoldersByParent(ctx context.Context, userId uint, parentId *uint) ([]*entity.Folder, error)
	GetFoldersByUser(ctx context.Context, userId uint) ([]*entity.Folder, error)
	GetFolder(ctx context.Context, userId, folderId uint) (*entity.Folder, error)
	InvalidatePaths(userId uint)
}

type folderService struct {
	uowFactory unitofwork.RepositoryFactory
	pathCache  *memory.PathCacheRepository
	logger     logger.ILogger
	now        func() time.Time
}

func NewFolderService(
	uowFactory unitofwork.RepositoryFactory,
	pathCache *memory.PathCacheRepository,
	logger logger.ILogger,
) IFolderService {
	return &folderService{
		uowFactory: uowFactory,
		pathCache:  pathCache,
		logger:     logger,
		now:        utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (s *folderService) CreateFolder(ctx context.Context, userId uint, name string, parentId *uint, createdAt, updatedAt *time.Time) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperror.Validation("Folder name cannot be empty")
	}

	folder := entity.Folder{
		UserId:   userId,
		ParentId: entity.NormalizeFolderID(parentId),
		Name:     name,
	}
	folder.CreatedAt, folder.UpdatedAt = resolveTimestamps(s.now(), createdAt, updatedAt)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		if err := requireOwnedFolder(ctx, tx, userId, folder.ParentId); err != nil {
			return err
		}
		if err := tx.FolderRepository().Create(ctx, &folder); err != nil {
			return apperror.Storage("create folder", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("create folder failed", err, map[string]interface{}{"user_id": userId, "name": name})
		return 0, err
	}
	return folder.Id, nil
}

func (s *folderService) MoveFolder(ctx context.Context, userId, folderId uint, newParentId *uint) (bool, error) {
	target := entity.NormalizeFolderID(newParentId)
	moved := false

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		folder, err := tx.FolderRepository().FindOne(ctx,
			specification.ByFolderID{ID: folderId},
			specification.FolderOwnedByUser{UserID: userId},
		)
		if err != nil {
			return apperror.Storage("find folder", err)
		}
		if folder == nil {
			return nil
		}

		if target != nil {
			if *target == folderId {
				return apperror.Integrity("Cannot move a folder into itself")
			}
			if err := requireOwnedFolder(ctx, tx, userId, target); err != nil {
				return err
			}
			cycle, err := isDescendant(ctx, tx, userId, folderId, *target)
			if err != nil {
				return err
			}
			if cycle {
				return apperror.Integrity("Cannot move a folder into its own subfolder")
			}
		}

		folder.ParentId = target
		folder.UpdatedAt = s.now()
		if err := tx.FolderRepository().Update(ctx, folder); err != nil {
			return apperror.Storage("move folder", err)
		}
		moved = true
		return nil
	})
	if err != nil {
		s.logFailure("move folder failed", err, map[string]interface{}{"user_id": userId, "folder_id": folderId})
		return false, err
	}
	if moved {
		s.InvalidatePaths(userId)
	}
	return moved, nil
}

func (s *folderService) RenameFolder(ctx context.Context, userId, folderId uint, newName string) (bool, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false, apperror.Validation("New name cannot be empty")
	}

	renamed := false
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		folder, err := tx.FolderRepository().FindOne(ctx,
			specification.ByFolderID{ID: folderId},
			specification.FolderOwnedByUser{UserID: userId},
		)
		if err != nil {
			return apperror.Storage("find folder", err)
		}
		if folder == nil {
			return nil
		}
		folder.Name = newName
		folder.UpdatedAt = s.now()
		if err := tx.FolderRepository().Update(ctx, folder); err != nil {
			return apperror.Storage("rename folder", err)
		}
		renamed = true
		return nil
	})
	if err != nil {
		s.logFailure("rename folder failed", err, map[string]interface{}{"user_id": userId, "folder_id": folderId})
		return false, err
	}
	if renamed {
		s.InvalidatePaths(userId)
	}
	return renamed, nil
}

// DeleteFolder removes the folder; the store cascades to subfolders, notes, tags and recents.
func (s *folderService) DeleteFolder(ctx context.Context, userId, folderId uint) (bool, error) {
	var affected int64
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		n, err := tx.FolderRepository().Delete(ctx,
			specification.ByFolderID{ID: folderId},
			specification.FolderOwnedByUser{UserID: userId},
		)
		if err != nil {
			return apperror.Storage("delete folder", err)
		}
		affected = n
		return nil
	})
	if err != nil {
		s.logFailure("delete folder failed", err, map[string]interface{}{"user_id": userId, "folder_id": folderId})
		return false, err
	}
	if affected > 0 {
		s.InvalidatePaths(userId)
	}
	return affected > 0, nil
}

func (s *folderService) GetFolderPath(ctx context.Context, userId, folderId uint) (string, error) {
	crumbs, err := s.GetStatusFolderPath(ctx, userId, folderId)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		names = append(names, c.Name)
	}
	return strings.Join(names, "/"), nil
}

func (s *folderService) GetStatusFolderPath(ctx context.Context, userId, folderId uint) ([]dto.BreadcrumbItem, error) {
	if cached, ok := s.pathCache.Get(userId, folderId); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	crumbs, err := buildBreadcrumb(ctx, uow, userId, folderId)
	if err != nil {
		s.logFailure("resolve folder path failed", err, map[string]interface{}{"user_id": userId, "folder_id": folderId})
		return nil, err
	}
	s.pathCache.Save(userId, folderId, crumbs)
	return crumbs, nil
}

func (s *folderService) GetFolderContents(ctx context.Context, userId uint, folderId *uint) ([]dto.FolderContentItem, error) {
	parent := entity.NormalizeFolderID(folderId)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.FolderOwnedByUser{UserID: userId},
		specification.ByParentID{ParentID: parent},
		specification.OrderBy{Field: "folders.name"},
	)
	if err != nil {
		return nil, apperror.Storage("list folders", err)
	}
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.ByFolder{FolderID: parent},
		specification.OrderBy{Field: "notes.title"},
	)
	if err != nil {
		return nil, apperror.Storage("list notes", err)
	}

	items := make([]dto.FolderContentItem, 0, len(folders)+len(notes))
	for _, f := range folders {
		items = append(items, dto.FolderContentItem{
			Id:        f.Id,
			Name:      f.Name,
			Type:      dto.ContentTypeFolder,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.UpdatedAt,
		})
	}
	for _, n := range notes {
		items = append(items, dto.FolderContentItem{
			Id:        n.Id,
			Name:      n.Title,
			Type:      dto.ContentTypeNote,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return items, nil
}

func (s *folderService) GetFoldersByParent(ctx context.Context, userId uint, parentId *uint) ([]*entity.Folder, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.FolderOwnedByUser{UserID: userId},
		specification.ByParentID{ParentID: entity.NormalizeFolderID(parentId)},
		specification.OrderBy{Field: "folders.name"},
	)
	if err != nil {
		return nil, apperror.Storage("list folders", err)
	}
	return folders, nil
}

func (s *folderService) GetFoldersByUser(ctx context.Context, userId uint) ([]*entity.Folder, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.FolderOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "folders.parent_folderid"},
		specification.OrderBy{Field: "folders.name"},
	)
	if err != nil {
		return nil, apperror.Storage("list folders", err)
	}
	return folders, nil
}

func (s *folderService) GetFolder(ctx context.Context, userId, folderId uint) (*entity.Folder, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByFolderID{ID: folderId},
		specification.FolderOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Storage("find folder", err)
	}
	return folder, nil
}

func (s *folderService) InvalidatePaths(userId uint) {
	s.pathCache.DeleteUser(userId)
}

func (s *folderService) logFailure(message string, err error, details map[string]interface{}) {
	if apperror.KindOf(err) != apperror.KindStorage {
		return
	}
	details["error"] = err
	s.logger.Error("FOLDER", message, details)
}

// requireOwnedFolder accepts nil (top level) or a folder the user owns.
func requireOwnedFolder(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, folderId *uint) error {
	if folderId == nil {
		return nil
	}
	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByFolderID{ID: *folderId},
		specification.FolderOwnedByUser{UserID: userId},
	)
	if err != nil {
		return apperror.Storage("find folder", err)
	}
	if folder == nil {
		return apperror.Integrity("Folder not found")
	}
	return nil
}

// isDescendant reports whether candidate sits below folderId. A chain that loops
// or runs deeper than MaxTreeDepth is reported as a descendant.
func isDescendant(ctx context.Context, uow unitofwork.UnitOfWork, userId, folderId, candidate uint) (bool, error) {
	visited := make(map[uint]struct{})
	current := &candidate
	for depth := 0; current != nil; depth++ {
		if *current == folderId {
			return true, nil
		}
		if _, seen := visited[*current]; seen || depth >= MaxTreeDepth {
			return true, nil
		}
		visited[*current] = struct{}{}

		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByFolderID{ID: *current},
			specification.FolderOwnedByUser{UserID: userId},
		)
		if err != nil {
			return false, apperror.Storage("walk folder tree", err)
		}
		if folder == nil {
			return false, nil
		}
		current = entity.NormalizeFolderID(folder.ParentId)
	}
	return false, nil
}

// buildBreadcrumb walks the parent chain upwards and prepends each folder,
// stopping at the top level, a missing link, a loop or MaxTreeDepth.
func buildBreadcrumb(ctx context.Context, uow unitofwork.UnitOfWork, userId, folderId uint) ([]dto.BreadcrumbItem, error) {
	crumbs := make([]dto.BreadcrumbItem, 0)
	visited := make(map[uint]struct{})
	current := entity.NormalizeFolderID(&folderId)

	for depth := 0; current != nil && depth < MaxTreeDepth; depth++ {
		if _, seen := visited[*current]; seen {
			break
		}
		visited[*current] = struct{}{}

		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByFolderID{ID: *current},
			specification.FolderOwnedByUser{UserID: userId},
		)
		if err != nil {
			return nil, apperror.Storage("walk folder tree", err)
		}
		if folder == nil {
			break
		}
		crumbs = append([]dto.BreadcrumbItem{{Id: folder.Id, Name: folder.Name}}, crumbs...)
		current = entity.NormalizeFolderID(folder.ParentId)
	}
	return crumbs, nil
}

// resolveTimestamps defaults createdAt to now and updatedAt to createdAt.
func resolveTimestamps(now time.Time, createdAt, updatedAt *time.Time) (time.Time, time.Time) {
	created := now
	if createdAt != nil && !createdAt.IsZero() {
		created = createdAt.UTC()
	}
	updated := created
	if updatedAt != nil && !updatedAt.IsZero() {
		updated = updatedAt.UTC()
	}
	return created, updated
}
