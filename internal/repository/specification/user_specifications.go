package specification

import (
	"gorm.io/gorm"
)

type ByUserID struct {
	ID uint
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("users.userid = ?", s.ID)
}

type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("users.username = ?", s.Username)
}
