package chats

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := openTestStore(t)

	created, err := store.Create("debug the scheduler", "session-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created chat has no id")
	}

	chat, ok, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("created chat not found")
	}
	if chat.Title != "debug the scheduler" {
		t.Errorf("title = %q", chat.Title)
	}
	if len(chat.SessionIDs) != 1 || chat.SessionIDs[0] != "session-1" {
		t.Errorf("session ids = %v", chat.SessionIDs)
	}
	if chat.Bookmarked {
		t.Error("new chat should not be bookmarked")
	}
	if chat.CreatedAt.IsZero() {
		t.Error("created_at not persisted")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard", "nested", "chats.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	chat, err := store.Create("first run", "s1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok, err := store.Get(chat.ID); err != nil || !ok {
		t.Fatalf("Get = %v/%v", ok, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("no-such-chat")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("missing chat reported as found")
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)

	// created_at has second granularity, so force distinct values.
	first, err := store.Create("older", "s1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.db.Exec(
		`UPDATE chats SET created_at = '2026-01-01T00:00:00Z' WHERE id = ?`, first.ID); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if _, err := store.Create("newer", "s2"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list = %d chats, want 2", len(list))
	}
	if list[0].Title != "newer" || list[1].Title != "older" {
		t.Errorf("order = %q, %q", list[0].Title, list[1].Title)
	}
}

func TestRename(t *testing.T) {
	store := openTestStore(t)

	chat, err := store.Create("draft", "s1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Rename(chat.ID, "final"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	got, _, err := store.Get(chat.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "final" {
		t.Errorf("title = %q, want final", got.Title)
	}
}

func TestSetBookmark(t *testing.T) {
	store := openTestStore(t)

	chat, err := store.Create("pinned", "s1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.SetBookmark(chat.ID, true); err != nil {
		t.Fatalf("SetBookmark: %v", err)
	}
	got, _, _ := store.Get(chat.ID)
	if !got.Bookmarked {
		t.Error("bookmark not set")
	}

	if err := store.SetBookmark(chat.ID, false); err != nil {
		t.Fatalf("SetBookmark: %v", err)
	}
	got, _, _ = store.Get(chat.ID)
	if got.Bookmarked {
		t.Error("bookmark not cleared")
	}
}

func TestAddSession(t *testing.T) {
	store := openTestStore(t)

	chat, err := store.Create("resumed", "s1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.AddSession(chat.ID, "s2"); err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	// Duplicate appends are no-ops.
	if err := store.AddSession(chat.ID, "s1"); err != nil {
		t.Fatalf("AddSession duplicate: %v", err)
	}

	got, _, err := store.Get(chat.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.SessionIDs) != 2 || got.SessionIDs[0] != "s1" || got.SessionIDs[1] != "s2" {
		t.Errorf("session ids = %v, want [s1 s2]", got.SessionIDs)
	}
}

func TestAddSessionMissingChat(t *testing.T) {
	store := openTestStore(t)

	if err := store.AddSession("no-such-chat", "s1"); err == nil {
		t.Error("expected an error for a missing chat")
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)

	chat, err := store.Create("doomed", "s1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(chat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, ok, err := store.Get(chat.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("deleted chat still found")
	}
}
