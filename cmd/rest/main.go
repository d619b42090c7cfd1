package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"markit-notes-be/internal/bootstrap"
	"markit-notes-be/internal/config"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/schema"
	"markit-notes-be/internal/server"
	"markit-notes-be/internal/tracer"
	"markit-notes-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer log.Sync()

	// 2. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing, log)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDB(database.GormConfig{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.Connection,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Silent:       cfg.IsProduction(),
	})
	if err != nil {
		log.Error("MAIN", "unable to open database", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	if err := schema.Init(context.Background(), gormDB); err != nil {
		log.Error("MAIN", "schema init failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, log)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("MAIN", "shutting down", nil)
		_ = srv.Shutdown()
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Error("MAIN", "server stopped", map[string]interface{}{"error": err})
	}
}
