package sessions

import (
	"testing"
	"time"
)

func messageIndex(t *testing.T, contents []string, want string) int {
	t.Helper()
	for i, content := range contents {
		if content == want {
			return i
		}
	}
	t.Fatalf("message %q not found in %v", want, contents)
	return -1
}

func TestConversationTimelineMergesSubagents(t *testing.T) {
	root := t.TempDir()

	taskLine := `{"type":"assistant","timestamp":"2026-03-01T10:00:30Z","message":{"role":"assistant","content":[` +
		`{"type":"tool_use","name":"Task","id":"abc","input":{"description":"Research"}}]}}`
	spawnLine := `{"type":"user","timestamp":"2026-03-01T10:00:40Z","toolUseResult":{"agentId":"agent-1"},` +
		`"message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"abc","content":"spawned"}]}}`

	writeSession(t, root, "-home-user-alpha", "parent", []string{
		userLine("2026-03-01T10:00:00Z", "T1"),
		taskLine,
		spawnLine,
		userLine("2026-03-01T10:03:00Z", "T3"),
	}, time.Date(2026, 3, 1, 10, 3, 0, 0, time.UTC))

	writeSubagent(t, root, "-home-user-alpha", "parent", "agent-1", []string{
		userLine("2026-03-01T10:01:00Z", "T2"),
	})

	store := newTestStore(root)
	timeline := store.ConversationTimeline([]string{"parent"})
	if len(timeline) == 0 {
		t.Fatal("timeline is empty")
	}

	contents := make([]string, len(timeline))
	for i, msg := range timeline {
		contents[i] = msg.Content
	}

	i1 := messageIndex(t, contents, "T1")
	i2 := messageIndex(t, contents, "T2")
	i3 := messageIndex(t, contents, "T3")
	if !(i1 < i2 && i2 < i3) {
		t.Errorf("order = T1@%d T2@%d T3@%d, want chronological", i1, i2, i3)
	}

	for _, msg := range timeline {
		if msg.Content == "T2" && msg.Team != "Research" {
			t.Errorf("subagent message team = %q, want Research", msg.Team)
		}
		if msg.Content == "T1" && msg.Team != "" {
			t.Errorf("parent message carries team %q", msg.Team)
		}
	}
}

func TestConversationTimelinePreservesParentOrderWithoutSubagents(t *testing.T) {
	root := t.TempDir()
	// Deliberately non-chronological file order: without subagent
	// messages no sort may happen.
	writeSession(t, root, "-home-user-alpha", "solo", []string{
		userLine("2026-03-01T12:00:00Z", "later"),
		userLine("2026-03-01T10:00:00Z", "earlier"),
	}, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	store := newTestStore(root)
	timeline := store.ConversationTimeline([]string{"solo"})
	if len(timeline) != 2 {
		t.Fatalf("timeline = %d messages, want 2", len(timeline))
	}
	if timeline[0].Content != "later" || timeline[1].Content != "earlier" {
		t.Errorf("parent order not preserved: %q, %q", timeline[0].Content, timeline[1].Content)
	}
}

func TestConversationTimelineSpansMultipleSessions(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-home-user-alpha", "first", []string{
		userLine("2026-03-01T10:00:00Z", "from first"),
	}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	writeSession(t, root, "-home-user-alpha", "second", []string{
		userLine("2026-03-01T11:00:00Z", "from second"),
	}, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC))

	store := newTestStore(root)
	timeline := store.ConversationTimeline([]string{"first", "second"})
	if len(timeline) != 2 {
		t.Fatalf("timeline = %d messages, want 2", len(timeline))
	}
	if timeline[0].Content != "from first" || timeline[1].Content != "from second" {
		t.Errorf("session-id iteration order not respected: %+v", timeline)
	}
}

func TestConversationTimelineMissingSessions(t *testing.T) {
	store := newTestStore(t.TempDir())
	if timeline := store.ConversationTimeline([]string{"ghost"}); len(timeline) != 0 {
		t.Errorf("missing session produced %d messages", len(timeline))
	}
}

func TestSubagentLabelPreferences(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-home-user-alpha", "parent", []string{
		userLine("2026-03-01T10:00:00Z", "hi"),
	}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	// No Task description in the parent; the label embedded in the
	// subagent log wins over the generic fallback.
	writeSubagent(t, root, "-home-user-alpha", "parent", "agent-7", []string{
		`{"type":"user","timestamp":"2026-03-01T10:01:00Z","slug":"explorer","message":{"role":"user","content":"dig"}}`,
	})
	writeSubagent(t, root, "-home-user-alpha", "parent", "agent-8", []string{
		userLine("2026-03-01T10:02:00Z", "plain"),
	})

	store := newTestStore(root)
	timeline := store.ConversationTimeline([]string{"parent"})

	teams := make(map[string]string)
	for _, msg := range timeline {
		teams[msg.Content] = msg.Team
	}
	if teams["dig"] != "explorer" {
		t.Errorf(`team for "dig" = %q, want "explorer"`, teams["dig"])
	}
	if teams["plain"] != "Agent agent-8" {
		t.Errorf(`team for "plain" = %q, want "Agent agent-8"`, teams["plain"])
	}
}

func TestMessagesWithoutTimestampsSurviveMerge(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-home-user-alpha", "parent", []string{
		`{"type":"user","message":{"role":"user","content":"no timestamp"}}`,
		userLine("2026-03-01T10:00:00Z", "stamped"),
	}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	writeSubagent(t, root, "-home-user-alpha", "parent", "agent-1", []string{
		userLine("2026-03-01T10:01:00Z", "sub"),
	})

	store := newTestStore(root)
	timeline := store.ConversationTimeline([]string{"parent"})
	if len(timeline) != 3 {
		t.Fatalf("timeline = %d messages, want 3 (none dropped)", len(timeline))
	}
}
