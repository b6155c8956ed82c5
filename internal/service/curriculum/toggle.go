package curriculum

import (
	"sync"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"

	"github.com/google/uuid"
)

// ToggleResult is the resolution of one optimistic toggle: whether the
// backend accepted it and the attribute value the snapshot ended up with.
type ToggleResult struct {
	Committed  bool `json:"committed"`
	FinalValue bool `json:"final_value"`
}

type toggleKey struct {
	contentID uuid.UUID
	attribute string
}

// ToggleController guards the optimistic flip of a single item attribute.
// While a commit for a (content id, attribute) pair is in flight the pair
// is held pending and a second flip of the same pair is rejected; other
// items and the other attribute of the same item proceed independently.
type ToggleController struct {
	mu      sync.Mutex
	pending map[toggleKey]bool
	locked  map[string]bool
}

// NewToggleController takes the content types whose publish state is
// frozen (live formats cannot be drafted once scheduled).
func NewToggleController(publishLockedTypes []string) *ToggleController {
	locked := make(map[string]bool, len(publishLockedTypes))
	for _, t := range publishLockedTypes {
		locked[t] = true
	}
	return &ToggleController{
		pending: make(map[toggleKey]bool),
		locked:  locked,
	}
}

// Begin validates the flip and reserves the pair. It returns the value the
// optimistic snapshot should carry. Every successful Begin must be paired
// with an End once the commit resolves.
func (tc *ToggleController) Begin(item models.ContentItem, attribute string) (bool, error) {
	var current bool
	switch attribute {
	case models.AttributeFree:
		current = item.IsFree
	case models.AttributePublished:
		if tc.locked[item.Type] {
			return false, app_errors.ErrPublishLocked
		}
		current = item.IsPublished
	default:
		return false, app_errors.ErrUnknownAttribute
	}

	key := toggleKey{contentID: item.ID, attribute: attribute}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.pending[key] {
		return false, app_errors.ErrToggleInProgress
	}
	tc.pending[key] = true
	return !current, nil
}

// End releases the pair after the commit resolved either way.
func (tc *ToggleController) End(contentID uuid.UUID, attribute string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	delete(tc.pending, toggleKey{contentID: contentID, attribute: attribute})
}

// InFlight reports whether the pair is currently pending.
func (tc *ToggleController) InFlight(contentID uuid.UUID, attribute string) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.pending[toggleKey{contentID: contentID, attribute: attribute}]
}

// applyAttribute returns item with just the named attribute set to value.
func applyAttribute(item models.ContentItem, attribute string, value bool) models.ContentItem {
	switch attribute {
	case models.AttributeFree:
		item.IsFree = value
	case models.AttributePublished:
		item.IsPublished = value
	}
	return item
}
