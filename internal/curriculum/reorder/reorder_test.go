package reorder

import (
	"errors"
	"testing"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/curriculum/tree"
	"CourseForge/internal/models"

	"github.com/google/uuid"
)

func item(title string) models.ContentItem {
	return models.ContentItem{ID: uuid.New(), Title: title, Type: models.ContentTypePDF}
}

func section(title string, items ...models.ContentItem) models.Section {
	return models.Section{ID: uuid.New(), Title: title, ContentItems: items}
}

func titles(s models.Section) []string {
	out := make([]string, 0, len(s.ContentItems))
	for _, it := range s.ContentItems {
		out = append(out, it.Title)
	}
	return out
}

func assertSection(t *testing.T, s models.Section, want ...string) {
	t.Helper()
	got := titles(s)
	if len(got) != len(want) {
		t.Fatalf("section %q holds %v, want %v", s.Title, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("section %q holds %v, want %v", s.Title, got, want)
		}
	}
	for i, it := range s.ContentItems {
		if it.OrderIndex != i {
			t.Fatalf("section %q item %q carries order_index %d at position %d", s.Title, it.Title, it.OrderIndex, i)
		}
	}
}

func TestApplyCancelledDrag(t *testing.T) {
	s1 := section("S1", item("A"), item("B"))
	tr := tree.MustNew(s1)

	next, dirty, err := Apply(tr, models.MoveDescriptor{
		SourceSectionID: s1.ID,
		SourceIndex:     0,
		Dest:            nil,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dirty {
		t.Fatal("cancelled drag must not dirty the order")
	}
	assertSection(t, next.Sections()[0], "A", "B")
}

func TestApplySameSectionMove(t *testing.T) {
	tests := []struct {
		name      string
		from      int
		to        int
		want      []string
		wantDirty bool
	}{
		{name: "forward", from: 0, to: 2, want: []string{"B", "C", "A"}, wantDirty: true},
		{name: "backward", from: 2, to: 0, want: []string{"C", "A", "B"}, wantDirty: true},
		{name: "same index is a no-op", from: 1, to: 1, want: []string{"A", "B", "C"}, wantDirty: false},
		{name: "dest past end clamps to last", from: 0, to: 99, want: []string{"B", "C", "A"}, wantDirty: true},
		{name: "negative dest clamps to front", from: 2, to: -4, want: []string{"C", "A", "B"}, wantDirty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s1 := section("S1", item("A"), item("B"), item("C"))
			tr := tree.MustNew(s1)

			next, dirty, err := Apply(tr, models.MoveDescriptor{
				SourceSectionID: s1.ID,
				SourceIndex:     tt.from,
				Dest:            &models.DropTarget{SectionID: s1.ID, Index: tt.to},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dirty != tt.wantDirty {
				t.Fatalf("dirty = %v, want %v", dirty, tt.wantDirty)
			}
			assertSection(t, next.Sections()[0], tt.want...)
			if err := next.Validate(); err != nil {
				t.Fatalf("invariant violated: %v", err)
			}
		})
	}
}

// The worked example: S1 [A(0), B(1)], S2 [C(0)]; moving B to S2 index 0
// gives S1 [A(0)] and S2 [B(0), C(1)] with the order dirty.
func TestApplyCrossSectionMove(t *testing.T) {
	a, b, c := item("A"), item("B"), item("C")
	s1 := section("S1", a, b)
	s2 := section("S2", c)
	tr := tree.MustNew(s1, s2)

	next, dirty, err := Apply(tr, models.MoveDescriptor{
		SourceSectionID: s1.ID,
		SourceIndex:     1,
		Dest:            &models.DropTarget{SectionID: s2.ID, Index: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dirty {
		t.Fatal("cross-section move must dirty the order")
	}
	sections := next.Sections()
	assertSection(t, sections[0], "A")
	assertSection(t, sections[1], "B", "C")
	if sections[1].ContentItems[0].ID != b.ID {
		t.Fatal("moved item lost its identity")
	}
	// the input tree is untouched
	assertSection(t, tr.Sections()[0], "A", "B")
	assertSection(t, tr.Sections()[1], "C")
}

func TestApplyCrossSectionConservation(t *testing.T) {
	s1 := section("S1", item("A"), item("B"), item("C"))
	s2 := section("S2", item("D"), item("E"))
	tr := tree.MustNew(s1, s2)

	next, _, err := Apply(tr, models.MoveDescriptor{
		SourceSectionID: s1.ID,
		SourceIndex:     0,
		Dest:            &models.DropTarget{SectionID: s2.ID, Index: 99},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sections := next.Sections()
	if len(sections[0].ContentItems) != 2 || len(sections[1].ContentItems) != 3 {
		t.Fatalf("got %d and %d items, want 2 and 3",
			len(sections[0].ContentItems), len(sections[1].ContentItems))
	}
	// clamped to append at the destination's end
	assertSection(t, sections[1], "D", "E", "A")
	if next.ItemCount() != tr.ItemCount() {
		t.Fatal("move must conserve the item count")
	}
}

func TestApplyCrossSectionSameIndexStillDirty(t *testing.T) {
	s1 := section("S1", item("A"))
	s2 := section("S2", item("B"))
	tr := tree.MustNew(s1, s2)

	_, dirty, err := Apply(tr, models.MoveDescriptor{
		SourceSectionID: s1.ID,
		SourceIndex:     0,
		Dest:            &models.DropTarget{SectionID: s2.ID, Index: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dirty {
		t.Fatal("membership changed, the order is dirty even at a coinciding index")
	}
}

func TestApplyInvalidMoveLeavesTreeUntouched(t *testing.T) {
	s1 := section("S1", item("A"), item("B"))
	s2 := section("S2", item("C"))
	tr := tree.MustNew(s1, s2)

	tests := []struct {
		name string
		move models.MoveDescriptor
	}{
		{
			name: "unknown source section",
			move: models.MoveDescriptor{
				SourceSectionID: uuid.New(),
				SourceIndex:     0,
				Dest:            &models.DropTarget{SectionID: s2.ID, Index: 0},
			},
		},
		{
			name: "unknown destination section",
			move: models.MoveDescriptor{
				SourceSectionID: s1.ID,
				SourceIndex:     0,
				Dest:            &models.DropTarget{SectionID: uuid.New(), Index: 0},
			},
		},
		{
			name: "source index past end",
			move: models.MoveDescriptor{
				SourceSectionID: s1.ID,
				SourceIndex:     5,
				Dest:            &models.DropTarget{SectionID: s2.ID, Index: 0},
			},
		},
		{
			name: "negative source index",
			move: models.MoveDescriptor{
				SourceSectionID: s1.ID,
				SourceIndex:     -1,
				Dest:            &models.DropTarget{SectionID: s1.ID, Index: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, dirty, err := Apply(tr, tt.move)
			if !errors.Is(err, app_errors.ErrInvalidMove) {
				t.Fatalf("got err %v, want ErrInvalidMove", err)
			}
			if dirty {
				t.Fatal("failed move must not dirty the order")
			}
			assertSection(t, next.Sections()[0], "A", "B")
			assertSection(t, next.Sections()[1], "C")
		})
	}
}
