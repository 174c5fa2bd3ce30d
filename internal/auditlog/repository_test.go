package auditlog

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenAt(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndList(t *testing.T) {
	repo := openTestRepo(t)

	entry := &Entry{
		Operation:  "start",
		FloatingIP: "198.51.100.7",
		ServerID:   "42",
		Provider:   "hetzner",
		Outcome:    0,
		DurationMs: 120,
	}
	if err := repo.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected Save to assign an ID")
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected Save to assign a timestamp")
	}

	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Operation != "start" || entries[0].FloatingIP != "198.51.100.7" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestListByOperation(t *testing.T) {
	repo := openTestRepo(t)

	for _, op := range []string{"start", "monitor", "monitor", "stop"} {
		if err := repo.Save(&Entry{Operation: op}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	entries, err := repo.ListByOperation("monitor", 10)
	if err != nil {
		t.Fatalf("ListByOperation: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 monitor entries, got %d", len(entries))
	}
}

func TestPrune(t *testing.T) {
	repo := openTestRepo(t)

	old := &Entry{Operation: "monitor", Timestamp: time.Now().UTC().Add(-48 * time.Hour)}
	recent := &Entry{Operation: "monitor"}
	if err := repo.Save(old); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(recent); err != nil {
		t.Fatalf("Save: %v", err)
	}

	removed, err := repo.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 pruned entry, got %d", removed)
	}

	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 remaining entry, got %d", len(entries))
	}
}

func TestRedact(t *testing.T) {
	got := Redact("failed with token abc123 on retry", "abc123")
	want := "failed with token <redacted> on retry"
	if got != want {
		t.Errorf("Redact = %q, want %q", got, want)
	}

	if got := Redact("nothing secret", ""); got != "nothing secret" {
		t.Errorf("empty secret must be ignored, got %q", got)
	}
}
