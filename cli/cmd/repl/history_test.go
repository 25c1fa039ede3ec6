package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func tempHistory(t *testing.T) *History {
	t.Helper()

	return NewHistory(filepath.Join(t.TempDir(), baseHistory))
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := tempHistory(t)

	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestHistory_WriteAndReload(t *testing.T) {
	h := tempHistory(t)

	for _, entry := range []string{"1 + 1", "x * 2", "vars"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) failed: %v", entry, err)
		}
	}

	// A fresh History over the same file sees the persisted entries.
	reloaded := NewHistory(h.path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"1 + 1", "x * 2", "vars"}
	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}
}

func TestHistory_SkipsBlankEntries(t *testing.T) {
	h := tempHistory(t)

	if n, err := h.Write("   "); err != nil || n != 0 {
		t.Errorf("Write(blank) = (%d, %v), want (0, nil)", n, err)
	}

	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestHistory_SkipsConsecutiveDuplicate(t *testing.T) {
	h := tempHistory(t)

	h.Write("a + b")
	h.Write("a + b")

	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestHistory_DuplicateMovesToRecent(t *testing.T) {
	h := tempHistory(t)

	h.Write("first")
	h.Write("second")
	h.Write("third")
	h.Write("first")

	want := []string{"second", "third", "first"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}

	// The rewrite must also be reflected on disk.
	reloaded := NewHistory(h.path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries = %v, want %v", got, want)
	}
}

func TestHistory_GetLine(t *testing.T) {
	h := tempHistory(t)

	h.Write("oldest")
	h.Write("newest")

	got, err := h.GetLine(0)
	if err != nil || got != "oldest" {
		t.Errorf("GetLine(0) = (%q, %v), want (oldest, nil)", got, err)
	}

	got, err = h.GetLine(1)
	if err != nil || got != "newest" {
		t.Errorf("GetLine(1) = (%q, %v), want (newest, nil)", got, err)
	}

	for _, i := range []int{-1, 2} {
		if _, err := h.GetLine(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetLine(%d) err = %v, want ErrOutOfBounds", i, err)
		}
	}
}

func TestHistory_LoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	if err := os.WriteFile(path, []byte("a\n\n  \nb\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"a", "b"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}
}
