package sessions

import (
	"context"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// Async wrappers used by the TUI so a slow corpus scan never blocks the
// event loop. Each runs the synchronous operation in a goroutine and
// honors context cancellation while waiting.

type listResult struct {
	descriptors []models.SessionDescriptor
	total       int
}

// ListSessionsAsync runs ListSessions, abandoning the wait when ctx is
// cancelled.
func (s *Store) ListSessionsAsync(ctx context.Context, limit, offset int) ([]models.SessionDescriptor, int, error) {
	resultChan := make(chan listResult, 1)

	go func() {
		descriptors, total := s.ListSessions(limit, offset)
		resultChan <- listResult{descriptors: descriptors, total: total}
	}()

	select {
	case result := <-resultChan:
		return result.descriptors, result.total, nil
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
}

// ConversationTimelineAsync runs ConversationTimeline under ctx.
func (s *Store) ConversationTimelineAsync(ctx context.Context, sessionIDs []string) ([]models.NormalizedMessage, error) {
	resultChan := make(chan []models.NormalizedMessage, 1)

	go func() {
		resultChan <- s.ConversationTimeline(sessionIDs)
	}()

	select {
	case messages := <-resultChan:
		return messages, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type previewResult struct {
	text string
	ok   bool
}

// PreviewAsync runs Preview under ctx.
func PreviewAsync(ctx context.Context, logPath string, maxChars int) (string, bool, error) {
	resultChan := make(chan previewResult, 1)

	go func() {
		text, ok := Preview(logPath, maxChars)
		resultChan <- previewResult{text: text, ok: ok}
	}()

	select {
	case result := <-resultChan:
		return result.text, result.ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}
