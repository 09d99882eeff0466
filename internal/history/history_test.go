package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cuesync/internal/services"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBeginFinishGet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	run, err := store.Begin(ctx, Run{TranscriptPath: "/in/t.json", ReferencePath: "/in/ref.txt", OutputPath: "/out/a.vtt"})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if run.ID == "" || run.Status != services.RunRunning {
		t.Fatalf("unexpected run %+v", run)
	}

	err = store.Finish(ctx, run.ID, Outcome{
		Status:             services.RunReview,
		Language:           "en",
		Tokenizer:          "whitespace",
		LinesEmitted:       10,
		LinesSkipped:       2,
		DocumentSimilarity: 0.75,
	})
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != services.RunReview || got.LinesEmitted != 10 || got.LinesSkipped != 2 {
		t.Fatalf("unexpected stored run %+v", got)
	}
	if got.Language != "en" || got.Tokenizer != "whitespace" || got.OutputPath != "/out/a.vtt" {
		t.Fatalf("unexpected stored metadata %+v", got)
	}
	if got.FinishedAt == nil || got.FinishedAt.Before(got.StartedAt) {
		t.Fatalf("unexpected timestamps %+v", got)
	}
}

func TestFinishRecordsError(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	run, err := store.Begin(ctx, Run{TranscriptPath: "t", ReferencePath: "r"})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Finish(ctx, run.ID, Outcome{Status: services.RunFailed, Err: errors.New("boom")}); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ErrorMessage != "boom" || got.Status != services.RunFailed {
		t.Fatalf("unexpected run %+v", got)
	}
}

func TestUnknownRun(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("Get: expected ErrRunNotFound, got %v", err)
	}
	if err := store.Finish(ctx, "missing", Outcome{Status: services.RunCompleted}); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("Finish: expected ErrRunNotFound, got %v", err)
	}
}

func TestListOrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	var ids []string
	for i, status := range []services.RunStatus{services.RunCompleted, services.RunFailed, services.RunCompleted} {
		run, err := store.Begin(ctx, Run{TranscriptPath: "t", ReferencePath: "r", Job: string(rune('a' + i))})
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		if err := store.Finish(ctx, run.ID, Outcome{Status: status}); err != nil {
			t.Fatalf("Finish: %v", err)
		}
		ids = append(ids, run.ID)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != ids[2] {
		t.Fatalf("expected newest first, got %d runs starting with %v", len(all), all[0].Job)
	}

	limited, err := store.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("List limit: %v %d", err, len(limited))
	}

	failed, err := store.List(ctx, 0, services.RunFailed)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(failed) != 1 || failed[0].ID != ids[1] {
		t.Fatalf("unexpected failed runs %+v", failed)
	}
}

func TestReopenChecksSchemaVersion(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, "UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(ctx, path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
