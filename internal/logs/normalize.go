package logs

import (
	"encoding/json"
	"strings"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// Normalize flattens decoded records into UI-ready messages, preserving
// file line order. team, when non-empty, is stamped onto every output
// message (used for subagent conversations).
func Normalize(records []Record, team string) []models.NormalizedMessage {
	var messages []models.NormalizedMessage
	for _, rec := range records {
		messages = append(messages, normalizeRecord(rec, team)...)
	}
	return messages
}

func normalizeRecord(rec Record, team string) []models.NormalizedMessage {
	switch rec.Kind {
	case RecordSummary, RecordQueueOperation, RecordUnknown:
		return nil
	case RecordSystem:
		if rec.Subtype != SubtypeCompactBoundary {
			return nil
		}
		content := rec.ContentText
		if content == "" {
			content = "Conversation compacted"
		}
		return []models.NormalizedMessage{{
			Role:      "system",
			Type:      models.MessageTypeSystem,
			Content:   content,
			Timestamp: rec.Timestamp,
			Team:      team,
			Meta:      recordMeta(rec),
		}}
	}

	meta := recordMeta(rec)

	if rec.ContentText != "" {
		return []models.NormalizedMessage{{
			Role:      rec.Role,
			Type:      models.MessageTypeText,
			Content:   rec.ContentText,
			Timestamp: rec.Timestamp,
			Team:      team,
			Meta:      meta,
		}}
	}

	var messages []models.NormalizedMessage
	for _, block := range rec.Blocks {
		var msg models.NormalizedMessage
		switch block.Type {
		case BlockText:
			if block.Text == "" {
				continue
			}
			msg = models.NormalizedMessage{
				Role:    rec.Role,
				Type:    models.MessageTypeText,
				Content: block.Text,
			}
		case BlockThinking:
			if block.Text == "" {
				continue
			}
			msg = models.NormalizedMessage{
				Role:    "assistant",
				Type:    models.MessageTypeThinking,
				Content: block.Text,
			}
		case BlockToolUse:
			content := string(block.ToolInput)
			if content == "" {
				continue
			}
			msg = models.NormalizedMessage{
				Role:     "assistant",
				Type:     models.MessageTypeToolUse,
				Content:  content,
				ToolName: block.ToolName,
				ToolID:   block.ToolID,
			}
		case BlockToolResult:
			content := flattenResult(block.Result)
			if content == "" {
				continue
			}
			msg = models.NormalizedMessage{
				Role:    "assistant",
				Type:    models.MessageTypeToolResult,
				Content: content,
				// The answered invocation id doubles as the display name.
				ToolName: block.ToolID,
				ToolID:   block.ToolID,
			}
		default:
			continue
		}

		msg.Timestamp = rec.Timestamp
		msg.Team = team
		msg.Meta = meta
		messages = append(messages, msg)
	}
	return messages
}

func recordMeta(rec Record) models.MessageMeta {
	return models.MessageMeta{
		Model:       rec.Model,
		GitBranch:   rec.GitBranch,
		Usage:       rec.Usage,
		ServiceTier: rec.ServiceTier,
	}
}

// flattenResult turns a tool_result content payload into a single
// string. The payload is either a string or a list of sub-blocks; text
// sub-blocks contribute their text, anything else its serialized form.
func flattenResult(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return string(raw)
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		var block struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(item, &block); err == nil && block.Type == "text" {
			parts = append(parts, block.Text)
		} else {
			parts = append(parts, string(item))
		}
	}
	return strings.Join(parts, "\n")
}
