package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByNoteID struct {
	ID uint
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.noteid = ?", s.ID)
}

// ByFolder matches notes without a folder when FolderID is nil.
type ByFolder struct {
	FolderID *uint
}

func (s ByFolder) Apply(db *gorm.DB) *gorm.DB {
	return NullableEquals{Field: "notes.folderid", Value: s.FolderID}.Apply(db)
}

type NoteOwnedByUser struct {
	UserID uint
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.userid = ?", s.UserID)
}

// HasTag matches notes carrying an exact tag value.
type HasTag struct {
	Tag string
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("EXISTS (SELECT 1 FROM tags t WHERE t.noteid = notes.noteid AND t.tag = ?)", s.Tag)
}

// NoteSearchQuery is a case-insensitive substring match. Fields selects any of
// "title", "content" and "tags"; the clauses are ORed together.
// % and _ in Query are not escaped and keep their LIKE meaning.
type NoteSearchQuery struct {
	Query  string
	Fields []string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	var clauses []string
	var args []interface{}
	for _, field := range s.Fields {
		switch field {
		case "title":
			clauses = append(clauses, "LOWER(notes.title) LIKE LOWER(?)")
			args = append(args, pattern)
		case "content":
			clauses = append(clauses, "LOWER(notes.content) LIKE LOWER(?)")
			args = append(args, pattern)
		case "tags":
			clauses = append(clauses, "EXISTS (SELECT 1 FROM tags t WHERE t.noteid = notes.noteid AND LOWER(t.tag) LIKE LOWER(?))")
			args = append(args, pattern)
		}
	}
	if len(clauses) == 0 {
		return db
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
