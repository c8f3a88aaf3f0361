package sessions

import (
	"strings"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logs"
)

// Preview returns the first user-authored text in a session log,
// whitespace-collapsed and truncated to maxChars. The second return is
// false when the file is missing or holds no user text.
func Preview(logPath string, maxChars int) (string, bool) {
	records, err := logs.ReadLogFile(logPath)
	if err != nil && len(records) == 0 {
		return "", false
	}

	for _, rec := range records {
		if rec.Kind != logs.RecordUser {
			continue
		}
		if text := userText(rec); text != "" {
			return truncateString(text, maxChars), true
		}
	}
	return "", false
}

// userText extracts human-typed text from a user record, ignoring tool
// results and injected reminder blocks.
func userText(rec logs.Record) string {
	if rec.ContentText != "" && !strings.Contains(rec.ContentText, "system-reminder") {
		return rec.ContentText
	}
	for _, block := range rec.Blocks {
		if block.Type != logs.BlockText || block.Text == "" {
			continue
		}
		if strings.Contains(block.Text, "system-reminder") {
			continue
		}
		return block.Text
	}
	return ""
}

// truncateString collapses whitespace and truncates to maxChars runes,
// never splitting a multi-byte character.
func truncateString(s string, maxChars int) string {
	s = strings.Join(strings.Fields(s), " ")
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + "..."
}
