package curriculum

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/curriculum/projection"
	"CourseForge/internal/curriculum/reorder"
	"CourseForge/internal/curriculum/tree"
	"CourseForge/internal/models"
	"CourseForge/internal/service/gate"
	"CourseForge/pkg/logger"

	"github.com/google/uuid"
)

type Repository interface {
	CourseStructure(ctx context.Context, courseID uuid.UUID) ([]models.Section, error)
	CreateSection(ctx context.Context, courseID uuid.UUID, section models.Section) error
	CreateContentItem(ctx context.Context, sectionID uuid.UUID, item models.ContentItem) error
	DeleteContentItem(ctx context.Context, sectionID, contentID uuid.UUID, orderIndex int) error
	SaveOrder(ctx context.Context, courseID uuid.UUID, sections []models.Section) error
	SetItemFlag(ctx context.Context, contentID uuid.UUID, attribute string, value bool) error
}

type MediaStorage interface {
	DeleteObject(ctx context.Context, objectKey string) error
}

type Notifier interface {
	Notify(ctx context.Context, courseID uuid.UUID, message, kind string)
}

// mediaBackedTypes reference an uploaded object through content_url.
var mediaBackedTypes = map[string]bool{
	models.ContentTypeVideo:  true,
	models.ContentTypePDF:    true,
	models.ContentTypeSlides: true,
	models.ContentTypeScorm:  true,
}

// EditorService owns the single current structure snapshot per course and
// serializes every intent against it. Mutations replace the snapshot
// wholesale; nothing hands out a reference into the live tree.
type EditorService struct {
	log      logger.Log
	repo     Repository
	media    MediaStorage
	notifier Notifier
	gate     *gate.Gate
	toggles  *ToggleController

	mu      sync.Mutex
	courses map[uuid.UUID]*courseState
}

type courseState struct {
	tree  tree.Tree
	dirty bool
}

func NewEditorService(log logger.Log, repo Repository, media MediaStorage, n Notifier, toggles *ToggleController) *EditorService {
	return &EditorService{
		log:      log,
		repo:     repo,
		media:    media,
		notifier: n,
		gate:     gate.New(),
		toggles:  toggles,
		courses:  make(map[uuid.UUID]*courseState),
	}
}

// state returns the cached course state, loading it from the repository on
// first access. Caller must hold s.mu.
func (s *EditorService) state(ctx context.Context, courseID uuid.UUID) (*courseState, error) {
	if st, ok := s.courses[courseID]; ok {
		return st, nil
	}
	sections, err := s.repo.CourseStructure(ctx, courseID)
	if err != nil {
		return nil, err
	}
	t, err := tree.New(sections...)
	if err != nil {
		return nil, fmt.Errorf("course %s structure is corrupt: %w", courseID, err)
	}
	st := &courseState{tree: t}
	s.courses[courseID] = st
	return st, nil
}

func (s *EditorService) Structure(ctx context.Context, courseID uuid.UUID) ([]models.Section, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	return st.tree.Sections(), st.dirty, nil
}

// Search projects the current snapshot through the title filter. Read-only.
func (s *EditorService) Search(ctx context.Context, courseID uuid.UUID, term string) ([]models.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return projection.Project(st.tree.Sections(), term), nil
}

// Reorder applies one drag-end event. The returned dirty flag is the
// course's accumulated unsaved-order state, not just this move's effect.
func (s *EditorService) Reorder(ctx context.Context, courseID uuid.UUID, move models.MoveDescriptor) ([]models.Section, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	next, changed, err := reorder.Apply(st.tree, move)
	if err != nil {
		return nil, st.dirty, err
	}
	if err := next.Validate(); err != nil {
		// A violated invariant here means the engine itself is broken.
		s.log.ErrorErr("reorder produced an invalid tree", err, "course_id", courseID)
		return nil, st.dirty, fmt.Errorf("reorder produced an invalid tree: %w", err)
	}
	st.tree = next
	if changed {
		st.dirty = true
	}
	return st.tree.Sections(), st.dirty, nil
}

// AddSection appends a new section and persists it immediately. Appends do
// not disturb existing positions, so the unsaved-order flag is untouched.
func (s *EditorService) AddSection(ctx context.Context, courseID uuid.UUID, title string) (models.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, courseID)
	if err != nil {
		return models.Section{}, err
	}
	section := models.Section{
		ID:         uuid.New(),
		Title:      title,
		IsExpanded: true,
		OrderIndex: st.tree.SectionCount(),
	}
	if err := s.repo.CreateSection(ctx, courseID, section); err != nil {
		return models.Section{}, err
	}
	next, err := st.tree.AddSection(section)
	if err != nil {
		return models.Section{}, err
	}
	st.tree = next
	return section, nil
}

// AddItem appends a new content item to the target section.
func (s *EditorService) AddItem(ctx context.Context, courseID, sectionID uuid.UUID, draft models.ContentDraft) (models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, courseID)
	if err != nil {
		return models.ContentItem{}, err
	}
	section, _, err := st.tree.FindSection(sectionID)
	if err != nil {
		return models.ContentItem{}, err
	}
	duration := draft.Duration
	if !models.TimeBasedTypes[draft.Type] {
		duration = nil
	}
	item := models.ContentItem{
		ID:         uuid.New(),
		Title:      draft.Title,
		Type:       draft.Type,
		URL:        draft.URL,
		Duration:   duration,
		IsFree:     draft.IsFree,
		AddedDate:  time.Now().UTC(),
		OrderIndex: len(section.ContentItems),
	}
	if err := s.repo.CreateContentItem(ctx, sectionID, item); err != nil {
		return models.ContentItem{}, err
	}
	next, err := st.tree.AddItem(sectionID, item)
	if err != nil {
		return models.ContentItem{}, err
	}
	st.tree = next
	return item, nil
}

// Toggle optimistically flips one attribute of one item and kicks off the
// backend commit. The snapshot shows the new value immediately; if the
// commit fails the exact pre-toggle value is restored and an error
// notification goes out. The returned channel resolves with the final
// outcome.
func (s *EditorService) Toggle(ctx context.Context, courseID, contentID uuid.UUID, attribute string) (models.ContentItem, <-chan ToggleResult, error) {
	s.mu.Lock()
	st, err := s.state(ctx, courseID)
	if err != nil {
		s.mu.Unlock()
		return models.ContentItem{}, nil, err
	}
	before, _, err := st.tree.FindItem(contentID)
	if err != nil {
		s.mu.Unlock()
		return models.ContentItem{}, nil, err
	}
	newValue, err := s.toggles.Begin(before, attribute)
	if err != nil {
		s.mu.Unlock()
		return models.ContentItem{}, nil, err
	}
	oldValue := !newValue

	optimistic := applyAttribute(before, attribute, newValue)
	next, err := st.tree.ReplaceItem(optimistic)
	if err != nil {
		s.toggles.End(contentID, attribute)
		s.mu.Unlock()
		return models.ContentItem{}, nil, err
	}
	st.tree = next
	s.mu.Unlock()

	done := make(chan ToggleResult, 1)
	go s.commitToggle(courseID, contentID, attribute, oldValue, newValue, done)
	return optimistic, done, nil
}

func (s *EditorService) commitToggle(courseID, contentID uuid.UUID, attribute string, oldValue, newValue bool, done chan<- ToggleResult) {
	ctx := context.Background()

	if err := s.repo.SetItemFlag(ctx, contentID, attribute, newValue); err != nil {
		s.log.ErrorErr("toggle commit failed, rolling back", err,
			"content_id", contentID, "attribute", attribute)
		s.rollbackToggle(courseID, contentID, attribute, oldValue)
		s.notifier.Notify(ctx, courseID, toggleFailureMessage(attribute), models.NotifyError)
		// release the pair before the result resolves so a retry issued in
		// reaction to it is not rejected
		s.toggles.End(contentID, attribute)
		done <- ToggleResult{Committed: false, FinalValue: oldValue}
		return
	}
	s.toggles.End(contentID, attribute)
	done <- ToggleResult{Committed: true, FinalValue: newValue}
}

// rollbackToggle restores only the toggled attribute. The item may have
// moved or had its other attribute flipped in the meantime; those changes
// survive.
func (s *EditorService) rollbackToggle(courseID, contentID uuid.UUID, attribute string, oldValue bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.courses[courseID]
	if !ok {
		return
	}
	current, _, err := st.tree.FindItem(contentID)
	if err != nil {
		// Deleted while the commit was in flight; nothing to restore.
		return
	}
	next, err := st.tree.ReplaceItem(applyAttribute(current, attribute, oldValue))
	if err != nil {
		s.log.ErrorErr("toggle rollback failed", err, "content_id", contentID)
		return
	}
	st.tree = next
}

func toggleFailureMessage(attribute string) string {
	if attribute == models.AttributePublished {
		return "Could not update publish state, change reverted"
	}
	return "Could not update free access, change reverted"
}

// RequestDelete issues a confirmation token for removing one item. Nothing
// is touched until the token is confirmed.
func (s *EditorService) RequestDelete(ctx context.Context, courseID, contentID uuid.UUID) (uuid.UUID, string, error) {
	s.mu.Lock()
	st, err := s.state(ctx, courseID)
	if err != nil {
		s.mu.Unlock()
		return uuid.Nil, "", err
	}
	item, loc, err := st.tree.FindItem(contentID)
	if err != nil {
		s.mu.Unlock()
		return uuid.Nil, "", err
	}
	sections := st.tree.Sections()
	sectionTitle := sections[loc.SectionIndex].Title
	s.mu.Unlock()

	description := fmt.Sprintf("Delete %q from %q? The item and its uploaded media are removed permanently.",
		item.Title, sectionTitle)
	token := s.gate.Request(gate.KindDelete, description, func(ctx context.Context) error {
		return s.executeDelete(ctx, courseID, contentID)
	})
	return token, description, nil
}

func (s *EditorService) executeDelete(ctx context.Context, courseID, contentID uuid.UUID) error {
	s.mu.Lock()
	st, ok := s.courses[courseID]
	if !ok {
		s.mu.Unlock()
		return app_errors.ErrCourseNotFound
	}
	item, loc, err := st.tree.FindItem(contentID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	sections := st.tree.Sections()
	sectionID := sections[loc.SectionIndex].ID

	if err := s.repo.DeleteContentItem(ctx, sectionID, contentID, item.OrderIndex); err != nil {
		s.mu.Unlock()
		s.notifier.Notify(ctx, courseID, "Could not delete "+item.Title, models.NotifyError)
		return err
	}
	next, removed, err := st.tree.RemoveItem(contentID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	st.tree = next
	s.mu.Unlock()

	if mediaBackedTypes[removed.Type] && removed.URL != "" {
		if err := s.media.DeleteObject(ctx, removed.URL); err != nil {
			s.log.ErrorErr("failed to delete media object", err, "content_id", contentID)
		}
	}
	s.notifier.Notify(ctx, courseID, removed.Title+" deleted", models.NotifySuccess)
	return nil
}

// RequestSaveOrder issues a confirmation token for persisting the current
// ordering and clearing the unsaved flag.
func (s *EditorService) RequestSaveOrder(ctx context.Context, courseID uuid.UUID) (uuid.UUID, string, error) {
	s.mu.Lock()
	_, err := s.state(ctx, courseID)
	s.mu.Unlock()
	if err != nil {
		return uuid.Nil, "", err
	}
	description := "Save the new content order? The course layout changes for every learner."
	token := s.gate.Request(gate.KindSaveOrder, description, func(ctx context.Context) error {
		return s.executeSaveOrder(ctx, courseID)
	})
	return token, description, nil
}

func (s *EditorService) executeSaveOrder(ctx context.Context, courseID uuid.UUID) error {
	s.mu.Lock()
	st, ok := s.courses[courseID]
	if !ok {
		s.mu.Unlock()
		return app_errors.ErrCourseNotFound
	}
	sections := st.tree.Sections()
	s.mu.Unlock()

	if err := s.repo.SaveOrder(ctx, courseID, sections); err != nil {
		// dirty stays set so the affordance survives for a retry.
		s.notifier.Notify(ctx, courseID, "Could not save the new order", models.NotifyError)
		return err
	}

	s.mu.Lock()
	st.dirty = false
	s.mu.Unlock()
	s.notifier.Notify(ctx, courseID, "Content order saved", models.NotifySuccess)
	return nil
}

// Confirm resolves a previously issued confirmation token.
func (s *EditorService) Confirm(ctx context.Context, token uuid.UUID) error {
	return s.gate.Confirm(ctx, token)
}

// Cancel discards a previously issued confirmation token.
func (s *EditorService) Cancel(token uuid.UUID) error {
	return s.gate.Cancel(token)
}

// Dirty reports whether the course has unsaved ordering changes.
func (s *EditorService) Dirty(courseID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.courses[courseID]
	return ok && st.dirty
}
