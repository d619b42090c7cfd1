package dto

import "time"

// BreadcrumbItem is one folder on the path from the top level down to a folder.
type BreadcrumbItem struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}

const (
	ContentTypeFolder = "folder"
	ContentTypeNote   = "note"
)

// FolderContentItem is one direct child of a folder: a subfolder or a note.
type FolderContentItem struct {
	Id        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RecentFile struct {
	NoteId     uint      `json:"noteid"`
	Title      string    `json:"title"`
	ModifiedAt time.Time `json:"modified_at"`
	Preview    string    `json:"preview"`
}

const (
	SearchTypeAll     = "all"
	SearchTypeTitle   = "title"
	SearchTypeContent = "content"
	SearchTypeTags    = "tags"
)

type SearchResult struct {
	NoteId    uint      `json:"noteid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
	Preview   string    `json:"preview"`
}
