package sessions

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logging"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logs"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// ConversationTimeline reconstructs one logical conversation from the
// given session ids (in the order the chat record lists them), folding
// in every subagent conversation those sessions spawned. The result is
// chronological when subagent messages exist; otherwise the parent's
// own order is preserved untouched.
func (s *Store) ConversationTimeline(sessionIDs []string) []models.NormalizedMessage {
	var parentRecords []logs.Record
	for _, sessionID := range sessionIDs {
		path, ok := s.FindLogFile(sessionID)
		if !ok {
			logging.Debugf("no log file for session %s", sessionID)
			continue
		}
		records, err := logs.ReadLogFile(path)
		if err != nil && !os.IsNotExist(err) {
			logging.Warnf("reading session %s: %v", sessionID, err)
		}
		parentRecords = append(parentRecords, records...)
	}

	timeline := logs.Normalize(parentRecords, "")
	labels := logs.SubagentLabels(parentRecords)

	var subagentMessages []models.NormalizedMessage
	for _, sessionID := range sessionIDs {
		for _, sub := range s.FindSubagentLogs(sessionID) {
			records, err := logs.ReadLogFile(sub.Path)
			if err != nil && !os.IsNotExist(err) {
				logging.Warnf("reading subagent log %s: %v", sub.Path, err)
			}
			if len(records) == 0 {
				continue
			}
			label := subagentLabel(sub.AgentID, labels, records)
			subagentMessages = append(subagentMessages, logs.Normalize(records, label)...)
		}
	}

	if len(subagentMessages) == 0 {
		return timeline
	}

	combined := append(timeline, subagentMessages...)
	sortByTimestamp(combined)
	return combined
}

// subagentLabel picks the display label for a subagent conversation:
// the Task description recorded in the parent log, then a label the
// subagent log carries itself, then a generic fallback.
func subagentLabel(agentID string, labels map[string]string, records []logs.Record) string {
	generic := fmt.Sprintf("Agent %s", agentID)
	if label, ok := labels[agentID]; ok && label != generic {
		return label
	}
	for _, rec := range records {
		if rec.Slug != "" {
			return rec.Slug
		}
	}
	return generic
}

// sortByTimestamp stable-sorts messages chronologically. Messages
// without a parseable timestamp compare equal to everything, so the
// stable sort leaves them where they are instead of dropping them.
func sortByTimestamp(messages []models.NormalizedMessage) {
	keys := make([]time.Time, len(messages))
	known := make([]bool, len(messages))
	for i, msg := range messages {
		if msg.Timestamp == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, msg.Timestamp); err == nil {
			keys[i], known[i] = t, true
		}
	}

	indices := make([]int, len(messages))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		i, j := indices[a], indices[b]
		if !known[i] || !known[j] {
			return false
		}
		return keys[i].Before(keys[j])
	})

	sorted := make([]models.NormalizedMessage, len(messages))
	for pos, idx := range indices {
		sorted[pos] = messages[idx]
	}
	copy(messages, sorted)
}
