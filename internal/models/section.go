package models

import (
	"github.com/google/uuid"
)

type Section struct {
	ID           uuid.UUID     `json:"section_id"`
	Title        string        `json:"section_title"`
	IsExpanded   bool          `json:"is_expanded"`
	OrderIndex   int           `json:"order_index"`
	ContentItems []ContentItem `json:"content_items"`
}

// MoveDescriptor is the neutral drag-end coordinate report. A nil Dest
// means the drag was cancelled (dropped outside any drop zone).
type MoveDescriptor struct {
	SourceSectionID uuid.UUID   `json:"source_section_id"`
	SourceIndex     int         `json:"source_index"`
	Dest            *DropTarget `json:"dest,omitempty"`
}

type DropTarget struct {
	SectionID uuid.UUID `json:"section_id"`
	Index     int       `json:"index"`
}

const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyError   = "error"
)
