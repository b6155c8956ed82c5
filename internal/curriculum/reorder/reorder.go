package reorder

import (
	"CourseForge/internal/app_errors"
	"CourseForge/internal/curriculum/tree"
	"CourseForge/internal/models"
)

// Apply computes the tree resulting from one drag-end event. The returned
// bool reports whether the move changed anything; callers fold it into
// their unsaved-order flag. On any error the input tree is returned
// untouched, never a partially reindexed one.
func Apply(t tree.Tree, move models.MoveDescriptor) (tree.Tree, bool, error) {
	if move.Dest == nil {
		// Drag cancelled outside any drop zone.
		return t, false, nil
	}

	srcSection, si, err := t.FindSection(move.SourceSectionID)
	if err != nil {
		return t, false, app_errors.ErrInvalidMove
	}
	dstSection, di, err := t.FindSection(move.Dest.SectionID)
	if err != nil {
		return t, false, app_errors.ErrInvalidMove
	}
	if move.SourceIndex < 0 || move.SourceIndex >= len(srcSection.ContentItems) {
		return t, false, app_errors.ErrInvalidMove
	}

	if si == di {
		to := clamp(move.Dest.Index, len(srcSection.ContentItems)-1)
		if to == move.SourceIndex {
			return t, false, nil
		}
		next, err := t.MoveItemWithin(si, move.SourceIndex, to)
		if err != nil {
			return t, false, app_errors.ErrInvalidMove
		}
		return next, true, nil
	}

	// Cross-section: membership changes even if the numeric index happens
	// to coincide, so the move is always dirtying.
	to := clamp(move.Dest.Index, len(dstSection.ContentItems))
	next, err := t.MoveItemAcross(si, move.SourceIndex, di, to)
	if err != nil {
		return t, false, app_errors.ErrInvalidMove
	}
	return next, true, nil
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
