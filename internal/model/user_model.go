package model

type User struct {
	UserID        uint    `gorm:"column:userid;primaryKey;autoIncrement"`
	Username      string  `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash  string  `gorm:"column:password_hash;not null"`
	RememberToken *string `gorm:"column:remember_token"`

	Folders    []Folder             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Notes      []Note               `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recents    []RecentModification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SystemLogs []SystemLog          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
