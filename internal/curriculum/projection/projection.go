package projection

import (
	"strings"

	"CourseForge/internal/models"
)

// Project derives the display view for a search term: items whose title
// contains term (case-insensitive), sections that still hold at least one
// match. An empty term returns every section, including empty ones, so a
// fresh section stays visible for its first item. Canonical order_index
// values pass through untouched; the view is never renumbered. Projecting
// an already projected view with the same term is a fixed point.
func Project(sections []models.Section, term string) []models.Section {
	out := make([]models.Section, 0, len(sections))
	if term == "" {
		for _, s := range sections {
			out = append(out, cloneSection(s))
		}
		return out
	}
	needle := strings.ToLower(term)
	for _, s := range sections {
		matched := make([]models.ContentItem, 0, len(s.ContentItems))
		for _, it := range s.ContentItems {
			if strings.Contains(strings.ToLower(it.Title), needle) {
				matched = append(matched, it)
			}
		}
		if len(matched) == 0 {
			continue
		}
		s.ContentItems = matched
		out = append(out, s)
	}
	return out
}

func cloneSection(s models.Section) models.Section {
	items := make([]models.ContentItem, len(s.ContentItems))
	copy(items, s.ContentItems)
	s.ContentItems = items
	return s
}
