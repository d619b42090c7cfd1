package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID accepts 12, "12", "folder_12" and "note_12". JSON null leaves the pointer nil.
type FlexID uint

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if i := strings.LastIndexByte(s, '_'); i >= 0 {
			s = s[i+1:]
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", s)
		}
		*f = FlexID(v)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	if n < 0 || n != float64(uint64(n)) {
		return fmt.Errorf("invalid id %s", data)
	}
	*f = FlexID(uint64(n))
	return nil
}

// Ptr returns nil for an absent or zero id.
func (f *FlexID) Ptr() *uint {
	if f == nil || *f == 0 {
		return nil
	}
	v := uint(*f)
	return &v
}

// ImportPayload carries the document either as a JSON object or as a string holding one.
type ImportPayload struct {
	Document *ExportDocument
}

func (p *ImportPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.Document = &doc
	return nil
}

type FileOperationRequest struct {
	Action   string         `json:"action" validate:"required"`
	NoteId   *FlexID        `json:"noteid"`
	FolderId *FlexID        `json:"folderid"`
	ParentId *FlexID        `json:"parent_id"`
	Id       *FlexID        `json:"id"`
	Title    *string        `json:"title"`
	Content  *string        `json:"content"`
	Path     *string        `json:"path"`
	Query    string         `json:"query"`
	Type     *string        `json:"type"`
	NewName  *string        `json:"newName"`
	Limit    *FlexID        `json:"limit"`
	JsonData *ImportPayload `json:"jsonData"`
}

type ListItem struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	LastModified string `json:"lastModified"`
}

type CurrentFolder struct {
	FolderId       uint   `json:"folderid"`
	Name           string `json:"name"`
	ParentFolderId *uint  `json:"parent_folderid"`
	CreatedAt      string `json:"created_at"`
}
