package model

import "time"

// RecentModification holds one row per (user, note), refreshed on every write to the note.
type RecentModification struct {
	UserID     uint      `gorm:"column:userid;primaryKey;autoIncrement:false;index:idx_recent_mods_userid,priority:1"`
	NoteID     uint      `gorm:"column:noteid;primaryKey;autoIncrement:false"`
	ModifiedAt time.Time `gorm:"column:modified_at;not null;index:idx_recent_mods_userid,priority:2"`
}

func (RecentModification) TableName() string {
	return "recent_modifications"
}
