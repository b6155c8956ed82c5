package gate

import (
	"context"
	"errors"
	"testing"

	"CourseForge/internal/app_errors"

	"github.com/google/uuid"
)

func TestConfirmExecutesOnce(t *testing.T) {
	g := New()
	calls := 0
	token := g.Request(KindDelete, "Delete it?", func(ctx context.Context) error {
		calls++
		return nil
	})

	if err := g.Confirm(context.Background(), token); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if err := g.Confirm(context.Background(), token); err != nil {
		t.Fatalf("second confirm must be a safe no-op, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("action ran %d times, want 1", calls)
	}
}

func TestConfirmReplaysFailureWithoutRerunning(t *testing.T) {
	g := New()
	boom := errors.New("backend down")
	calls := 0
	token := g.Request(KindSaveOrder, "Save order?", func(ctx context.Context) error {
		calls++
		return boom
	})

	if err := g.Confirm(context.Background(), token); !errors.Is(err, boom) {
		t.Fatalf("got %v, want the action error", err)
	}
	if err := g.Confirm(context.Background(), token); !errors.Is(err, boom) {
		t.Fatalf("repeat confirm must replay the outcome, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("action ran %d times, want 1", calls)
	}
}

func TestCancelDiscardsToken(t *testing.T) {
	g := New()
	calls := 0
	token := g.Request(KindDelete, "Delete it?", func(ctx context.Context) error {
		calls++
		return nil
	})

	if err := g.Cancel(token); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := g.Confirm(context.Background(), token); !errors.Is(err, app_errors.ErrConfirmationNotFound) {
		t.Fatalf("confirming a cancelled token: got %v", err)
	}
	if calls != 0 {
		t.Fatal("cancelled action must never run")
	}
}

func TestCancelAfterConfirmIsRejected(t *testing.T) {
	g := New()
	token := g.Request(KindDelete, "Delete it?", func(ctx context.Context) error { return nil })

	if err := g.Confirm(context.Background(), token); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := g.Cancel(token); !errors.Is(err, app_errors.ErrConfirmationNotFound) {
		t.Fatalf("cancel after confirm: got %v", err)
	}
}

func TestUnknownToken(t *testing.T) {
	g := New()
	if err := g.Confirm(context.Background(), uuid.New()); !errors.Is(err, app_errors.ErrConfirmationNotFound) {
		t.Fatalf("confirm unknown: got %v", err)
	}
	if err := g.Cancel(uuid.New()); !errors.Is(err, app_errors.ErrConfirmationNotFound) {
		t.Fatalf("cancel unknown: got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	g := New()
	token := g.Request(KindSaveOrder, "Save the new order?", func(ctx context.Context) error { return nil })

	kind, description, err := g.Describe(token)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if kind != KindSaveOrder || description != "Save the new order?" {
		t.Fatalf("got %q %q", kind, description)
	}
	if _, _, err := g.Describe(uuid.New()); !errors.Is(err, app_errors.ErrConfirmationNotFound) {
		t.Fatalf("describe unknown: got %v", err)
	}
}
