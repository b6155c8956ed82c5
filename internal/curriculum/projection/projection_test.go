package projection

import (
	"reflect"
	"testing"

	"CourseForge/internal/models"

	"github.com/google/uuid"
)

func item(title string, orderIndex int) models.ContentItem {
	return models.ContentItem{ID: uuid.New(), Title: title, Type: models.ContentTypeArticle, OrderIndex: orderIndex}
}

func fixture() []models.Section {
	return []models.Section{
		{
			ID:    uuid.New(),
			Title: "Getting Started",
			ContentItems: []models.ContentItem{
				item("Welcome Video", 0),
				item("Course Handbook", 1),
			},
		},
		{
			ID:    uuid.New(),
			Title: "Deep Dive",
			ContentItems: []models.ContentItem{
				item("Advanced Video Editing", 0),
			},
		},
		{
			ID:           uuid.New(),
			Title:        "Empty Section",
			ContentItems: []models.ContentItem{},
		},
	}
}

func TestProjectEmptyTermReturnsEverything(t *testing.T) {
	sections := fixture()
	got := Project(sections, "")
	if !reflect.DeepEqual(got, sections) {
		t.Fatal("empty term must return the tree as-is, empty sections included")
	}
}

func TestProjectFiltersCaseInsensitively(t *testing.T) {
	got := Project(fixture(), "vIdEo")
	if len(got) != 2 {
		t.Fatalf("got %d sections, want 2", len(got))
	}
	if len(got[0].ContentItems) != 1 || got[0].ContentItems[0].Title != "Welcome Video" {
		t.Fatalf("unexpected first section items: %+v", got[0].ContentItems)
	}
	if len(got[1].ContentItems) != 1 || got[1].ContentItems[0].Title != "Advanced Video Editing" {
		t.Fatalf("unexpected second section items: %+v", got[1].ContentItems)
	}
}

func TestProjectDropsEmptiedSections(t *testing.T) {
	got := Project(fixture(), "handbook")
	if len(got) != 1 {
		t.Fatalf("got %d sections, want 1", len(got))
	}
	if got[0].Title != "Getting Started" {
		t.Fatalf("got section %q", got[0].Title)
	}
}

func TestProjectNeverRenumbers(t *testing.T) {
	got := Project(fixture(), "handbook")
	// Course Handbook sits at canonical index 1; projection keeps it there.
	if got[0].ContentItems[0].OrderIndex != 1 {
		t.Fatalf("projection renumbered: order_index = %d", got[0].ContentItems[0].OrderIndex)
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	once := Project(fixture(), "video")
	twice := Project(once, "video")
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("repeated projection with the same term must be a fixed point")
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	sections := fixture()
	snapshot := Project(sections, "")
	_ = Project(sections, "video")
	if !reflect.DeepEqual(sections, snapshot) {
		t.Fatal("projection mutated the canonical sections")
	}
}

func TestProjectNoMatches(t *testing.T) {
	if got := Project(fixture(), "does-not-exist"); len(got) != 0 {
		t.Fatalf("got %d sections, want 0", len(got))
	}
}
