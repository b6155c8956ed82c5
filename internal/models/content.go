package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypeVideo      = "video"
	ContentTypePDF        = "pdf"
	ContentTypeQuiz       = "quiz"
	ContentTypeAssignment = "assignment"
	ContentTypeArticle    = "article"
	ContentTypeLive       = "live"
	ContentTypeSlides     = "slides"
	ContentTypeScorm      = "scorm"

	StatusPublished = "Published"
	StatusDraft     = "Draft"
)

const (
	AttributeFree      = "is_free"
	AttributePublished = "is_published"
)

// TimeBasedTypes are the content types for which a duration is meaningful.
var TimeBasedTypes = map[string]bool{
	ContentTypeVideo: true,
	ContentTypeLive:  true,
	ContentTypeScorm: true,
}

type ContentItem struct {
	ID          uuid.UUID `json:"content_id"`
	Title       string    `json:"content_title"`
	Type        string    `json:"content_type"`
	URL         string    `json:"content_url"`
	Duration    *int      `json:"duration,omitempty"`
	IsFree      bool      `json:"is_free"`
	IsPublished bool      `json:"is_published"`
	AddedDate   time.Time `json:"added_date"`
	OrderIndex  int       `json:"order_index"`
}

// Status is derived from IsPublished and is never stored on its own.
func (c ContentItem) Status() string {
	if c.IsPublished {
		return StatusPublished
	}
	return StatusDraft
}

func (c ContentItem) MarshalJSON() ([]byte, error) {
	type alias ContentItem
	return json.Marshal(struct {
		alias
		Status string `json:"status"`
	}{alias(c), c.Status()})
}

// ContentDraft is what a caller supplies when adding a new item; id,
// added_date and order_index are assigned by the engine.
type ContentDraft struct {
	Title    string `json:"content_title" binding:"required"`
	Type     string `json:"content_type" binding:"required"`
	URL      string `json:"content_url"`
	Duration *int   `json:"duration,omitempty"`
	IsFree   bool   `json:"is_free"`
}
