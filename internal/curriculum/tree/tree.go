package tree

import (
	"fmt"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/curriculum/ordered"
	"CourseForge/internal/models"

	"github.com/google/uuid"
)

// Location addresses one content item inside a tree.
type Location struct {
	SectionIndex int
	ItemIndex    int
}

// Tree is an immutable snapshot of a course structure: an ordered sequence
// of sections, each owning an ordered sequence of content items. A side
// index maps content ids to their location so item lookups stay O(1).
// Every mutating operation returns a new Tree.
type Tree struct {
	sections []models.Section
	locate   map[uuid.UUID]Location
}

func sectionID(s models.Section) uuid.UUID { return s.ID }

func renumberSection(s models.Section, i int) models.Section {
	s.OrderIndex = i
	return s
}

func itemID(c models.ContentItem) uuid.UUID { return c.ID }

func renumberItem(c models.ContentItem, i int) models.ContentItem {
	c.OrderIndex = i
	return c
}

// New normalizes all order indices and builds the location index. It
// rejects input with a content id appearing in more than one place.
func New(sections ...models.Section) (Tree, error) {
	col := ordered.New(sectionID, renumberSection, sections...)
	normalized := col.Items()
	for si := range normalized {
		items := ordered.New(itemID, renumberItem, normalized[si].ContentItems...)
		normalized[si].ContentItems = items.Items()
	}
	t := Tree{sections: normalized}
	if err := t.reindex(); err != nil {
		return Tree{}, err
	}
	return t, nil
}

// MustNew is New for fixtures where the input is known to be well formed.
func MustNew(sections ...models.Section) Tree {
	t, err := New(sections...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tree) SectionCount() int {
	return len(t.sections)
}

func (t Tree) ItemCount() int {
	return len(t.locate)
}

// Sections returns a deep copy of the section sequence.
func (t Tree) Sections() []models.Section {
	return cloneSections(t.sections)
}

func (t Tree) FindSection(id uuid.UUID) (models.Section, int, error) {
	for i, s := range t.sections {
		if s.ID == id {
			return cloneSection(s), i, nil
		}
	}
	return models.Section{}, 0, app_errors.ErrSectionNotFound
}

func (t Tree) FindItem(contentID uuid.UUID) (models.ContentItem, Location, error) {
	loc, ok := t.locate[contentID]
	if !ok {
		return models.ContentItem{}, Location{}, app_errors.ErrContentNotFound
	}
	return t.sections[loc.SectionIndex].ContentItems[loc.ItemIndex], loc, nil
}

// AddSection appends a section at the end of the course.
func (t Tree) AddSection(section models.Section) (Tree, error) {
	section.ContentItems = nil
	col := ordered.New(sectionID, renumberSection, t.sections...)
	next := Tree{sections: col.Append(section).Items()}
	if err := next.reindex(); err != nil {
		return t, err
	}
	return next, nil
}

// AddItem appends item to the target section.
func (t Tree) AddItem(sectionID uuid.UUID, item models.ContentItem) (Tree, error) {
	_, si, err := t.FindSection(sectionID)
	if err != nil {
		return t, err
	}
	if _, exists := t.locate[item.ID]; exists {
		return t, app_errors.ErrDuplicateContent
	}
	return t.withItems(si, t.itemsOf(si).Append(item))
}

// RemoveItem deletes the item wherever it lives and renumbers the owning
// section. The removed item is returned for callers that clean up after it.
func (t Tree) RemoveItem(contentID uuid.UUID) (Tree, models.ContentItem, error) {
	loc, ok := t.locate[contentID]
	if !ok {
		return t, models.ContentItem{}, app_errors.ErrContentNotFound
	}
	col, removed, err := t.itemsOf(loc.SectionIndex).RemoveByID(contentID)
	if err != nil {
		return t, models.ContentItem{}, app_errors.ErrContentNotFound
	}
	next, err := t.withItems(loc.SectionIndex, col)
	if err != nil {
		return t, models.ContentItem{}, err
	}
	return next, removed, nil
}

// ReplaceItem swaps the stored value of one item in place, keeping its
// position. The replacement must carry the same id.
func (t Tree) ReplaceItem(item models.ContentItem) (Tree, error) {
	loc, ok := t.locate[item.ID]
	if !ok {
		return t, app_errors.ErrContentNotFound
	}
	sections := cloneSections(t.sections)
	item.OrderIndex = loc.ItemIndex
	sections[loc.SectionIndex].ContentItems[loc.ItemIndex] = item
	next := Tree{sections: sections}
	if err := next.reindex(); err != nil {
		return t, err
	}
	return next, nil
}

// MoveItemWithin reorders one section's items.
func (t Tree) MoveItemWithin(sectionIndex, from, to int) (Tree, error) {
	if sectionIndex < 0 || sectionIndex >= len(t.sections) {
		return t, app_errors.ErrSectionNotFound
	}
	col, err := t.itemsOf(sectionIndex).MoveWithin(from, to)
	if err != nil {
		return t, err
	}
	return t.withItems(sectionIndex, col)
}

// MoveItemAcross extracts the item at (fromSection, fromIndex) and inserts
// it into toSection at toIndex, renumbering both sections.
func (t Tree) MoveItemAcross(fromSection, fromIndex, toSection, toIndex int) (Tree, error) {
	if fromSection < 0 || fromSection >= len(t.sections) ||
		toSection < 0 || toSection >= len(t.sections) {
		return t, app_errors.ErrSectionNotFound
	}
	if fromSection == toSection {
		return t.MoveItemWithin(fromSection, fromIndex, toIndex)
	}
	src := t.itemsOf(fromSection)
	moved, err := src.At(fromIndex)
	if err != nil {
		return t, err
	}
	src, _, err = src.RemoveByID(moved.ID)
	if err != nil {
		return t, err
	}
	dst, err := t.itemsOf(toSection).InsertAt(moved, toIndex)
	if err != nil {
		return t, err
	}
	next, err := t.withItems(fromSection, src)
	if err != nil {
		return t, err
	}
	return next.withItems(toSection, dst)
}

// Validate re-checks the structural invariants: contiguous zero-based
// indices at both levels and tree-wide unique content ids.
func (t Tree) Validate() error {
	seen := make(map[uuid.UUID]bool, len(t.locate))
	for si, s := range t.sections {
		if s.OrderIndex != si {
			return fmt.Errorf("section %s has order_index %d at position %d", s.ID, s.OrderIndex, si)
		}
		for ii, it := range s.ContentItems {
			if it.OrderIndex != ii {
				return fmt.Errorf("item %s has order_index %d at position %d", it.ID, it.OrderIndex, ii)
			}
			if seen[it.ID] {
				return fmt.Errorf("content id %s appears more than once", it.ID)
			}
			seen[it.ID] = true
		}
	}
	return nil
}

func (t Tree) itemsOf(sectionIndex int) ordered.Collection[models.ContentItem, uuid.UUID] {
	return ordered.New(itemID, renumberItem, t.sections[sectionIndex].ContentItems...)
}

func (t Tree) withItems(sectionIndex int, col ordered.Collection[models.ContentItem, uuid.UUID]) (Tree, error) {
	sections := cloneSections(t.sections)
	sections[sectionIndex].ContentItems = col.Items()
	next := Tree{sections: sections}
	if err := next.reindex(); err != nil {
		return t, err
	}
	return next, nil
}

func (t *Tree) reindex() error {
	locate := make(map[uuid.UUID]Location)
	for si, s := range t.sections {
		for ii, it := range s.ContentItems {
			if _, dup := locate[it.ID]; dup {
				return app_errors.ErrDuplicateContent
			}
			locate[it.ID] = Location{SectionIndex: si, ItemIndex: ii}
		}
	}
	t.locate = locate
	return nil
}

func cloneSection(s models.Section) models.Section {
	items := make([]models.ContentItem, len(s.ContentItems))
	copy(items, s.ContentItems)
	s.ContentItems = items
	return s
}

func cloneSections(sections []models.Section) []models.Section {
	out := make([]models.Section, len(sections))
	for i, s := range sections {
		out[i] = cloneSection(s)
	}
	return out
}
