package entity

import "time"

// RootFolderID is the reserved placeholder folder. Callers may pass it where
// "top level" is meant; it is never stored as a parent and never listed.
const RootFolderID uint = 1

// SystemUserID owns the reserved placeholder folder.
const SystemUserID uint = 1

type Folder struct {
	Id        uint
	UserId    uint
	ParentId  *uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeFolderID maps the reserved root and nil to "no folder".
func NormalizeFolderID(id *uint) *uint {
	if id == nil || *id == RootFolderID || *id == 0 {
		return nil
	}
	v := *id
	return &v
}
