package main

import (
	"context"
	"os"

	"markit-notes-be/internal/config"
	"markit-notes-be/internal/repository/schema"
	"markit-notes-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	color.Cyan("Opening %s database at %s", cfg.Database.Driver, cfg.Database.Connection)
	db, err := database.NewGormDB(database.GormConfig{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.Connection,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		color.Red("Error: failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Running schema init (additive migrations, tables, indexes, reserved rows)...")
	if err := schema.Init(context.Background(), db); err != nil {
		color.Red("Error: migration failed: %v", err)
		os.Exit(1)
	}

	color.Green("Success: schema is up to date")
}
