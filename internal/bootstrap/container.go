package bootstrap

import (
	"markit-notes-be/internal/config"
	"markit-notes-be/internal/controller"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/memory"
	"markit-notes-be/internal/repository/unitofwork"
	"markit-notes-be/internal/service"

	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Services
	FolderService    service.IFolderService
	NoteService      service.INoteService
	SearchService    service.ISearchService
	TransferService  service.ITransferService
	UserService      service.IUserService
	SystemLogService service.ISystemLogService

	// Controllers
	FileOperationController controller.IFileOperationController
}

func NewContainer(db *gorm.DB, cfg *config.Config, log logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	pathCache := memory.NewPathCacheRepository(cfg.Notes.PathCacheTTL)

	// 2. Services
	folderService := service.NewFolderService(uowFactory, pathCache, log)
	noteService := service.NewNoteService(uowFactory, log)
	searchService := service.NewSearchService(uowFactory, log)
	transferService := service.NewTransferService(uowFactory, folderService, log)
	userService := service.NewUserService(uowFactory, log, cfg.Auth.JwtSecret, cfg.Auth.TokenLifetime)
	systemLogService := service.NewSystemLogService(uowFactory, log)

	// 3. Controllers
	fileOperationController := controller.NewFileOperationController(
		folderService,
		noteService,
		searchService,
		transferService,
		systemLogService,
		log,
		cfg.Notes.RecentFilesLimit,
	)

	return &Container{
		Logger:                  log,
		FolderService:           folderService,
		NoteService:             noteService,
		SearchService:           searchService,
		TransferService:         transferService,
		UserService:             userService,
		SystemLogService:        systemLogService,
		FileOperationController: fileOperationController,
	}
}
