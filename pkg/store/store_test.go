package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/boardwalk-eda/boardwalk/pkg/errors"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	run := &Run{
		ID:         "run-1",
		BoardName:  "demo",
		BoardHash:  "abc",
		CreatedAt:  time.Now(),
		Iterations: 420,
		Converged:  true,
		WireLength: 12.5,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.BoardName != "demo" || got.Iterations != 420 || !got.Converged {
		t.Errorf("GetRun = %+v", got)
	}

	// The stored record is a copy, not an alias.
	run.BoardName = "mutated"
	again, _ := s.GetRun(ctx, "run-1")
	if again.BoardName != "demo" {
		t.Error("store aliases the caller's run")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetRun(ctx, "nope")
	if err == nil {
		t.Fatal("expected error for missing run")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeRunNotFound {
		t.Errorf("code = %v, want %v", got, errors.ErrCodeRunNotFound)
	}
}

func TestMemoryStoreSaveEmptyID(t *testing.T) {
	if err := NewMemoryStore().SaveRun(context.Background(), &Run{}); err == nil {
		t.Error("empty ID should fail")
	}
}

func TestMemoryStoreListRuns(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now()
	for i := 0; i < 5; i++ {
		err := s.SaveRun(ctx, &Run{
			ID:        fmt.Sprintf("run-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	// Newest first
	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("got %d runs, want 5", len(runs))
	}
	if runs[0].ID != "run-4" || runs[4].ID != "run-0" {
		t.Errorf("order wrong: first %s, last %s", runs[0].ID, runs[4].ID)
	}

	// Limit applies
	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].ID != "run-4" {
		t.Errorf("limited = %v", limited)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.SaveRun(ctx, &Run{ID: "run-1", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(ctx, "run-1"); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if _, err := s.GetRun(ctx, "run-1"); err == nil {
		t.Error("run still present after delete")
	}

	// Deleting a missing run is fine
	if err := s.DeleteRun(ctx, "never"); err != nil {
		t.Errorf("DeleteRun of missing run: %v", err)
	}
}
