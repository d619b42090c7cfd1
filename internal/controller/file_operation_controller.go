package controller

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"markit-notes-be/internal/dto"
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/pkg/serverutils"
	"markit-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxLoggedRequestRunes = 2000

type actionHandler func(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error)

type IFileOperationController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Handle(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type fileOperationController struct {
	folderService    service.IFolderService
	noteService      service.INoteService
	searchService    service.ISearchService
	transferService  service.ITransferService
	systemLogService service.ISystemLogService
	logger           logger.ILogger
	recentLimit      int
	actions          map[string]actionHandler
}

func NewFileOperationController(
	folderService service.IFolderService,
	noteService service.INoteService,
	searchService service.ISearchService,
	transferService service.ITransferService,
	systemLogService service.ISystemLogService,
	logger logger.ILogger,
	recentLimit int,
) IFileOperationController {
	c := &fileOperationController{
		folderService:    folderService,
		noteService:      noteService,
		searchService:    searchService,
		transferService:  transferService,
		systemLogService: systemLogService,
		logger:           logger,
		recentLimit:      recentLimit,
	}
	c.actions = map[string]actionHandler{
		"load":                c.load,
		"save":                c.save,
		"list":                c.list,
		"delete":              c.deleteNote,
		"deleteFolder":        c.deleteFolder,
		"createFolder":        c.createFolder,
		"moveNote":            c.moveNote,
		"moveFolder":          c.moveFolder,
		"get_recent_modified": c.recentModified,
		"search":              c.search,
		"exportNotes":         c.exportNotes,
		"importNotes":         c.importNotes,
		"rename":              c.rename,
		"resetApp":            c.resetApp,
	}
	return c
}

func (c *fileOperationController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/v1")
	h.Use(auth)
	h.Post("/file-operations", c.Handle)
	h.Get("/logs", c.Logs)
}

// Handle dispatches one action. Failures answer {"error": ...}: 400 for caller
// mistakes, 500 with a generic message for storage faults.
func (c *fileOperationController) Handle(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ActionError("Not authenticated"))
	}

	var req dto.FileOperationRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return c.fail(ctx, apperror.Validation("Invalid request body"))
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return c.fail(ctx, apperror.Validation("No action specified"))
	}

	c.record(ctx, userId, req.Action)

	handler, found := c.actions[req.Action]
	if !found {
		return c.fail(ctx, apperror.Validationf("Invalid action: %s", req.Action))
	}
	payload, err := handler(ctx.UserContext(), userId, &req)
	if err != nil {
		return c.fail(ctx, err)
	}
	return ctx.JSON(serverutils.ActionResponse(payload))
}

func (c *fileOperationController) Logs(ctx *fiber.Ctx) error {
	logs, err := c.systemLogService.Recent(ctx.UserContext(), ctx.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get system logs", logs))
}

func (c *fileOperationController) fail(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	if apperror.KindOf(err) == apperror.KindStorage || apperror.KindOf(err) == 0 {
		status = fiber.StatusInternalServerError
		c.logger.Error("FILE_OPERATIONS", "action failed", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err,
		})
	}
	return ctx.Status(status).JSON(serverutils.ActionError(apperror.PublicMessage(err)))
}

func (c *fileOperationController) record(ctx *fiber.Ctx, userId uint, action string) {
	method := ctx.Method()
	uri := ctx.OriginalURL()
	body := string(ctx.Body())
	if utf8.RuneCountInString(body) > maxLoggedRequestRunes {
		body = string([]rune(body)[:maxLoggedRequestRunes])
	}
	entry := &entity.SystemLog{
		Message:       action,
		RequestMethod: &method,
		RequestURI:    &uri,
		RequestData:   &body,
		UserId:        &userId,
	}
	if rid, ok := ctx.Locals("requestid").(string); ok && rid != "" {
		entry.SessionId = &rid
	}
	// best effort: Record logs its own failure and the action still runs
	_ = c.systemLogService.Record(ctx.UserContext(), entry)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(dto.TimestampLayout)
}

func (c *fileOperationController) load(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	noteId := req.NoteId.Ptr()
	if noteId == nil {
		return nil, apperror.Validation("No note ID provided")
	}
	note, err := c.noteService.GetNote(ctx, userId, *noteId)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}
	tags, err := c.noteService.GetNoteTags(ctx, note.Id)
	if err != nil {
		return nil, err
	}
	breadcrumb := []dto.BreadcrumbItem{}
	if note.FolderId != nil {
		if breadcrumb, err = c.folderService.GetStatusFolderPath(ctx, userId, *note.FolderId); err != nil {
			return nil, err
		}
	}
	return fiber.Map{
		"content":    note.Content,
		"title":      note.Title,
		"tags":       tags,
		"breadcrumb": breadcrumb,
	}, nil
}

func (c *fileOperationController) save(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	if req.Content == nil || req.Title == nil {
		return nil, apperror.Validation("Missing content or title")
	}

	if noteId := req.NoteId.Ptr(); noteId != nil {
		ok, err := c.noteService.UpdateNoteForUser(ctx, userId, *noteId, *req.Title, *req.Content)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Validation("Failed to update note")
		}
		return fiber.Map{"success": true, "noteid": *noteId}, nil
	}

	noteId, err := c.noteService.CreateNote(ctx, userId, *req.Title, *req.Content, req.FolderId.Ptr(), nil, nil)
	if err != nil {
		return nil, err
	}
	return fiber.Map{"success": true, "noteid": noteId}, nil
}

func (c *fileOperationController) list(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	folderId := entity.NormalizeFolderID(req.FolderId.Ptr())

	var current *dto.CurrentFolder
	if folderId != nil {
		folder, err := c.folderService.GetFolder(ctx, userId, *folderId)
		if err != nil {
			return nil, err
		}
		if folder != nil {
			current = &dto.CurrentFolder{
				FolderId:       folder.Id,
				Name:           folder.Name,
				ParentFolderId: folder.ParentId,
				CreatedAt:      formatTime(folder.CreatedAt),
			}
		}
	}

	contents, err := c.folderService.GetFolderContents(ctx, userId, folderId)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ListItem, 0, len(contents))
	for _, it := range contents {
		item := dto.ListItem{Name: it.Name}
		if it.Type == dto.ContentTypeFolder {
			item.Id = fmt.Sprintf("folder_%d", it.Id)
			item.Type = "directory"
			item.LastModified = formatTime(it.CreatedAt)
		} else {
			item.Id = fmt.Sprintf("note_%d", it.Id)
			item.Type = "file"
			item.LastModified = formatTime(it.UpdatedAt)
		}
		items = append(items, item)
	}
	return fiber.Map{"items": items, "currentFolder": current}, nil
}

func (c *fileOperationController) deleteNote(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	noteId := req.NoteId.Ptr()
	if noteId == nil {
		return nil, apperror.Validation("No note ID provided for deletion")
	}
	ok, err := c.noteService.DeleteNote(ctx, userId, *noteId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("Failed to delete note")
	}
	return fiber.Map{"success": true}, nil
}

func (c *fileOperationController) deleteFolder(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	folderId := req.FolderId.Ptr()
	if folderId == nil {
		return nil, apperror.Validation("No folder ID provided for deletion")
	}
	ok, err := c.folderService.DeleteFolder(ctx, userId, *folderId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("Failed to delete folder")
	}
	return fiber.Map{"success": true}, nil
}

func (c *fileOperationController) createFolder(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	if req.Path == nil {
		return nil, apperror.Validation("Missing path for folder creation")
	}
	folderId, err := c.folderService.CreateFolder(ctx, userId, *req.Path, req.ParentId.Ptr(), nil, nil)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"success":  true,
		"folderid": folderId,
		"message":  "Folder created successfully",
	}, nil
}

func (c *fileOperationController) moveNote(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	noteId := req.NoteId.Ptr()
	if noteId == nil {
		return nil, apperror.Validation("No note ID provided")
	}
	ok, err := c.noteService.MoveNote(ctx, userId, *noteId, req.FolderId.Ptr())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("Failed to move note")
	}
	return fiber.Map{"success": true}, nil
}

func (c *fileOperationController) moveFolder(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	folderId := req.FolderId.Ptr()
	if folderId == nil {
		return nil, apperror.Validation("No folder ID provided")
	}
	ok, err := c.folderService.MoveFolder(ctx, userId, *folderId, req.ParentId.Ptr())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("Failed to move folder")
	}
	return fiber.Map{"success": true}, nil
}

func (c *fileOperationController) recentModified(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	limit := c.recentLimit
	if l := req.Limit.Ptr(); l != nil {
		limit = int(*l)
	}
	files, err := c.noteService.GetRecentModifiedFiles(ctx, userId, limit)
	if err != nil {
		return nil, err
	}
	out := make([]fiber.Map, 0, len(files))
	for _, f := range files {
		out = append(out, fiber.Map{
			"noteid":      f.NoteId,
			"title":       f.Title,
			"modified_at": formatTime(f.ModifiedAt),
			"preview":     f.Preview,
		})
	}
	return fiber.Map{"success": true, "files": out}, nil
}

func (c *fileOperationController) search(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	if strings.TrimSpace(req.Query) == "" {
		return fiber.Map{"error": "Search query is required"}, nil
	}
	searchType := dto.SearchTypeAll
	if req.Type != nil {
		searchType = *req.Type
	}
	results, err := c.searchService.SearchNotes(ctx, userId, req.Query, searchType)
	if err != nil {
		return nil, err
	}
	out := make([]fiber.Map, 0, len(results))
	for _, r := range results {
		out = append(out, fiber.Map{
			"noteid":     r.NoteId,
			"title":      r.Title,
			"content":    r.Content,
			"updated_at": formatTime(r.UpdatedAt),
			"tags":       r.Tags,
			"preview":    r.Preview,
		})
	}
	return fiber.Map{"success": true, "results": out}, nil
}

func (c *fileOperationController) exportNotes(ctx context.Context, userId uint, _ *dto.FileOperationRequest) (fiber.Map, error) {
	doc, err := c.transferService.Export(ctx, userId)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"userid":     doc.UserId,
		"folders":    doc.Folders,
		"notes":      doc.Notes,
		"tags":       doc.Tags,
		"exportDate": doc.ExportDate,
		"version":    doc.Version,
	}, nil
}

func (c *fileOperationController) importNotes(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	if req.JsonData == nil || req.JsonData.Document == nil {
		return nil, apperror.Validation("No JSON data provided for import")
	}
	doc := req.JsonData.Document
	if doc.Folders == nil || doc.Notes == nil || doc.Tags == nil || doc.Version == "" {
		return nil, apperror.Validation("Invalid JSON structure: missing required fields")
	}
	if doc.Version != dto.ExportVersion {
		return nil, apperror.Validation("Unsupported JSON version")
	}

	if err := c.transferService.Import(ctx, userId, doc); err != nil {
		if apperror.KindOf(err) == apperror.KindStorage {
			return nil, err
		}
		return nil, apperror.Validation("Import failed: " + apperror.PublicMessage(err))
	}
	return fiber.Map{"success": true, "message": "Import completed successfully"}, nil
}

func (c *fileOperationController) rename(ctx context.Context, userId uint, req *dto.FileOperationRequest) (fiber.Map, error) {
	if req.Id == nil || req.NewName == nil || req.Type == nil {
		return nil, apperror.Validation("Missing required fields for rename operation")
	}
	newName := strings.TrimSpace(*req.NewName)
	if newName == "" {
		return nil, apperror.Validation("New name cannot be empty")
	}
	newName = html.EscapeString(newName)
	id := uint(*req.Id)

	var ok bool
	var err error
	switch *req.Type {
	case dto.ContentTypeFolder:
		ok, err = c.folderService.RenameFolder(ctx, userId, id, newName)
	case dto.ContentTypeNote:
		ok, err = c.noteService.RenameNote(ctx, userId, id, newName)
	default:
		return nil, apperror.Validation("Invalid type for rename operation")
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validationf("Failed to rename %s", *req.Type)
	}
	label := strings.ToUpper((*req.Type)[:1]) + (*req.Type)[1:]
	return fiber.Map{"success": true, "message": label + " renamed successfully"}, nil
}

func (c *fileOperationController) resetApp(ctx context.Context, userId uint, _ *dto.FileOperationRequest) (fiber.Map, error) {
	if _, err := c.transferService.ResetApp(ctx, userId); err != nil {
		return nil, err
	}
	return fiber.Map{"success": true}, nil
}
