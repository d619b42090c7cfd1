// Package schema creates and upgrades the persisted tables.
package schema

import (
	"context"
	"fmt"
	"strings"
	"time"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reservedPasswordHash never matches a bcrypt comparison.
const reservedPasswordHash = "!"

const (
	reservedUsername   = ".system"
	reservedFolderName = ".root"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Folder{},
		&model.Note{},
		&model.Tag{},
		&model.RecentModification{},
		&model.SystemLog{},
	}
}

// Init is idempotent: legacy upgrades, table creation, then the reserved rows.
func Init(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := migrateLegacyColumns(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return seedReserved(db)
}

// migrateLegacyColumns upgrades tables created before folders tracked updated_at.
func migrateLegacyColumns(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&model.Folder{}) || m.HasColumn(&model.Folder{}, "UpdatedAt") {
		return nil
	}

	if err := m.AddColumn(&model.Folder{}, "UpdatedAt"); err != nil && !isDuplicateColumn(err) {
		return fmt.Errorf("add folders.updated_at: %w", err)
	}
	if err := db.Exec("UPDATE folders SET updated_at = created_at WHERE updated_at IS NULL").Error; err != nil {
		return fmt.Errorf("backfill folders.updated_at: %w", err)
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}

func seedReserved(db *gorm.DB) error {
	now := time.Now().UTC()

	err := db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{
			UserID:       entity.SystemUserID,
			Username:     reservedUsername,
			PasswordHash: reservedPasswordHash,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error; err != nil {
			return fmt.Errorf("seed system user: %w", err)
		}

		root := &model.Folder{
			FolderID:  entity.RootFolderID,
			UserID:    entity.SystemUserID,
			Name:      reservedFolderName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(root).Error; err != nil {
			return fmt.Errorf("seed root folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return syncPostgresSequences(db)
	}
	return nil
}

// syncPostgresSequences moves serial sequences past explicitly inserted ids.
func syncPostgresSequences(db *gorm.DB) error {
	for _, t := range []struct{ table, column string }{
		{"users", "userid"},
		{"folders", "folderid"},
	} {
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', '%s'), GREATEST((SELECT COALESCE(MAX(%s), 1) FROM %s), 1))",
			t.table, t.column, t.column, t.table)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("sync %s sequence: %w", t.table, err)
		}
	}
	return nil
}
