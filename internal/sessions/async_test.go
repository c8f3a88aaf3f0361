package sessions

import (
	"context"
	"testing"
	"time"
)

func TestListSessionsAsync(t *testing.T) {
	root := t.TempDir()
	seedCorpus(t, root, 3)
	store := newTestStore(root)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	descriptors, total, err := store.ListSessionsAsync(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListSessionsAsync: %v", err)
	}
	if total != 3 || len(descriptors) != 2 {
		t.Errorf("page = %d/%d, want 2/3", len(descriptors), total)
	}
}

func TestListSessionsAsyncCancellation(t *testing.T) {
	store := newTestStore(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		_, _, _ = store.ListSessionsAsync(ctx, 5, 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Error("ListSessionsAsync did not return after cancellation")
	}
}

func TestConversationTimelineAsync(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-home-user-alpha", "s1", []string{
		userLine("2026-03-01T10:00:00Z", "hello"),
	}, time.Now())
	store := newTestStore(root)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messages, err := store.ConversationTimelineAsync(ctx, []string{"s1"})
	if err != nil {
		t.Fatalf("ConversationTimelineAsync: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hello" {
		t.Errorf("messages = %+v", messages)
	}
}

func TestPreviewAsync(t *testing.T) {
	root := t.TempDir()
	path := writeSession(t, root, "-home-user-alpha", "s1", []string{
		userLine("2026-03-01T10:00:00Z", "hello"),
	}, time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	preview, ok, err := PreviewAsync(ctx, path, 100)
	if err != nil {
		t.Fatalf("PreviewAsync: %v", err)
	}
	if !ok || preview != "hello" {
		t.Errorf("preview = %q/%v", preview, ok)
	}
}
