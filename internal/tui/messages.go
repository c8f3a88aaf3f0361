package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/sessions"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// Message types for async operations
type (
	// SessionsLoadedMsg contains one loaded page of sessions
	SessionsLoadedMsg struct {
		Descriptors []models.SessionDescriptor
		Total       int
		Offset      int
		Error       error
	}

	// PreviewLoadedMsg contains the preview text for a session
	PreviewLoadedMsg struct {
		LogPath string
		Preview string
		Found   bool
		Error   error
	}

	// TimelineLoadedMsg contains a full conversation timeline
	TimelineLoadedMsg struct {
		SessionID string
		Messages  []models.NormalizedMessage
		Error     error
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// loadSessionsCmd loads one page of sessions asynchronously
func loadSessionsCmd(ctx context.Context, store *sessions.Store, limit, offset int) tea.Cmd {
	return func() tea.Msg {
		descriptors, total, err := store.ListSessionsAsync(ctx, limit, offset)
		return SessionsLoadedMsg{
			Descriptors: descriptors,
			Total:       total,
			Offset:      offset,
			Error:       err,
		}
	}
}

// loadPreviewCmd loads a session preview asynchronously
func loadPreviewCmd(ctx context.Context, logPath string, maxChars int) tea.Cmd {
	return func() tea.Msg {
		preview, found, err := sessions.PreviewAsync(ctx, logPath, maxChars)
		return PreviewLoadedMsg{
			LogPath: logPath,
			Preview: preview,
			Found:   found,
			Error:   err,
		}
	}
}

// loadTimelineCmd loads the merged conversation timeline asynchronously
func loadTimelineCmd(ctx context.Context, store *sessions.Store, sessionID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := store.ConversationTimelineAsync(ctx, []string{sessionID})
		return TimelineLoadedMsg{
			SessionID: sessionID,
			Messages:  messages,
			Error:     err,
		}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
