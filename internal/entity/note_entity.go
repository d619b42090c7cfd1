package entity

import "time"

type Note struct {
	Id        uint
	UserId    uint
	FolderId  *uint
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Tag struct {
	Id     uint
	NoteId uint
	Tag    string
}

type RecentModification struct {
	UserId     uint
	NoteId     uint
	ModifiedAt time.Time
}

// RecentNote is a recency row joined with its note.
type RecentNote struct {
	NoteId     uint
	Title      string
	Content    string
	ModifiedAt time.Time
}
