package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	ExportVersion   = "1.0"
	TimestampLayout = "2006-01-02 15:04:05"
)

var timestampLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02",
}

// Timestamp serialises as "2006-01-02 15:04:05" in UTC and accepts RFC3339 on input.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// Ptr returns nil for the zero timestamp.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

type ExportFolder struct {
	FolderId       uint      `json:"folderid"`
	UserId         uint      `json:"userid"`
	ParentFolderId *uint     `json:"parent_folderid"`
	Name           string    `json:"name"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

type ExportNote struct {
	NoteId    uint      `json:"noteid"`
	UserId    uint      `json:"userid"`
	FolderId  *uint     `json:"folderid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

type ExportTag struct {
	TagId  uint   `json:"tagid"`
	NoteId uint   `json:"noteid"`
	Tag    string `json:"tag"`
}

// ExportDocument is the version 1.0 backup format. A nil slice on import
// means the key was missing.
type ExportDocument struct {
	UserId     uint           `json:"userid"`
	Folders    []ExportFolder `json:"folders"`
	Notes      []ExportNote   `json:"notes"`
	Tags       []ExportTag    `json:"tags"`
	ExportDate string         `json:"exportDate"`
	Version    string         `json:"version"`
}
