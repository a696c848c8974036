package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mypad/internal/domain"
	"mypad/internal/envelope"
	"mypad/internal/store"
)

func TestNote_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var notes domain.NoteStore = store.NewNoteFileStore(home)

	codec, err := envelope.New(envelope.WithIterations(envelope.MinIterations))
	if err != nil {
		t.Fatalf("envelope.New: %v", err)
	}
	blob, err := codec.Encrypt("shopping list", "pass")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if err := notes.SaveSealed("groceries", blob); err != nil {
		t.Fatalf("save note: %v", err)
	}
	got, err := notes.LoadSealed("groceries")
	if err != nil {
		t.Fatalf("load note: %v", err)
	}
	if got != blob {
		t.Fatalf("blob changed on disk")
	}
	text, err := codec.Decrypt(got, "pass")
	if err != nil || text != "shopping list" {
		t.Fatalf("decrypt stored note: %q, %v", text, err)
	}

	info, err := os.Stat(filepath.Join(home, "groceries.note"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode %o, want 600", perm)
	}
}

func TestNote_Missing(t *testing.T) {
	notes := store.NewNoteFileStore(t.TempDir())
	if _, err := notes.LoadSealed("nope"); !errors.Is(err, store.ErrNoteNotFound) {
		t.Fatalf("got %v, want ErrNoteNotFound", err)
	}
}

func TestNote_NamesConfinedToDir(t *testing.T) {
	home := t.TempDir()
	notes := store.NewNoteFileStore(filepath.Join(home, "notes"))

	if err := notes.SaveSealed("../../escape", "blob"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "notes", "escape.note")); err != nil {
		t.Fatalf("note not written inside dir: %v", err)
	}
	for _, bad := range []string{"", "..", "/"} {
		if err := notes.SaveSealed(bad, "x"); !errors.Is(err, store.ErrBadNoteName) {
			t.Fatalf("name %q: got %v, want ErrBadNoteName", bad, err)
		}
	}
}

func TestNote_OverwriteAndList(t *testing.T) {
	notes := store.NewNoteFileStore(t.TempDir())
	if err := notes.SaveSealed("a", "one"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := notes.SaveSealed("a", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := notes.SaveSealed("b.note", "three"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := notes.LoadSealed("a")
	if err != nil || got != "two" {
		t.Fatalf("load after overwrite: %q, %v", got, err)
	}
	names, err := notes.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("List = %v", names)
	}
}

func TestNote_FailedSaveLeavesNoStagedFile(t *testing.T) {
	home := t.TempDir()
	notes := store.NewNoteFileStore(home)

	// A directory squatting on the note path makes the final rename fail.
	if err := os.Mkdir(filepath.Join(home, "busy.note"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := notes.SaveSealed("busy", "blob"); err == nil {
		t.Fatal("expected save over a directory to fail")
	}
	if err := notes.SaveSealed("fine", "blob"); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(home)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "busy.note" && e.Name() != "fine.note" {
			t.Fatalf("stray file %q left behind", e.Name())
		}
	}
}
