package specification

import (
	"gorm.io/gorm"
)

type ByFolderID struct {
	ID uint
}

func (s ByFolderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folders.folderid = ?", s.ID)
}

// ByParentID matches top-level folders when ParentID is nil.
type ByParentID struct {
	ParentID *uint
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	return NullableEquals{Field: "folders.parent_folderid", Value: s.ParentID}.Apply(db)
}

type FolderOwnedByUser struct {
	UserID uint
}

func (s FolderOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folders.userid = ?", s.UserID)
}
