package model

import "time"

type Note struct {
	NoteID    uint      `gorm:"column:noteid;primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:userid;not null;index:idx_notes_userid"`
	FolderID  *uint     `gorm:"column:folderid;index:idx_notes_folderid"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`

	Tags    []Tag                `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
	Recents []RecentModification `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

func (Note) TableName() string {
	return "notes"
}
