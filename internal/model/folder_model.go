package model

import "time"

type Folder struct {
	FolderID       uint      `gorm:"column:folderid;primaryKey;autoIncrement"`
	UserID         uint      `gorm:"column:userid;not null;index:idx_folders_userid"`
	ParentFolderID *uint     `gorm:"column:parent_folderid;index:idx_folders_parent"`
	Name           string    `gorm:"column:name;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime:false"`

	Children []Folder `gorm:"foreignKey:ParentFolderID;constraint:OnDelete:CASCADE"`
	Notes    []Note   `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
}

func (Folder) TableName() string {
	return "folders"
}
