package model

type Tag struct {
	TagID  uint   `gorm:"column:tagid;primaryKey;autoIncrement"`
	NoteID uint   `gorm:"column:noteid;not null"`
	Tag    string `gorm:"column:tag;not null;index:idx_tags_tag"`
}

func (Tag) TableName() string {
	return "tags"
}
