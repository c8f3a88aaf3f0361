package logs

import (
	"bytes"
	"encoding/json"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// RecordKind identifies the type of one decoded log line.
type RecordKind string

const (
	RecordUser           RecordKind = "user"
	RecordAssistant      RecordKind = "assistant"
	RecordSystem         RecordKind = "system"
	RecordSummary        RecordKind = "summary"
	RecordQueueOperation RecordKind = "queue-operation"
	RecordUnknown        RecordKind = "unknown"
)

// SubtypeCompactBoundary marks the system record emitted when the
// session runner compacts the conversation.
const SubtypeCompactBoundary = "compact_boundary"

// BlockType identifies one content block variant inside a message.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockThinking   BlockType = "thinking"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
	BlockOther      BlockType = "other"
)

// ContentBlock is one portion of a message's content list.
type ContentBlock struct {
	Type      BlockType
	Text      string          // text, thinking
	ToolName  string          // tool_use
	ToolID    string          // tool_use id, or the id a tool_result answers
	ToolInput json.RawMessage // tool_use input payload
	Result    json.RawMessage // tool_result content (string or sub-block list)
}

// Record is one decoded log line. ContentText is set when the message
// content was a plain string; Blocks when it was a block list.
type Record struct {
	Kind        RecordKind
	Role        string
	ContentText string
	Blocks      []ContentBlock
	Timestamp   string
	GitBranch   string
	Subtype     string // system records
	Slug        string // agent label hint present in subagent logs
	SubagentID  string // toolUseResult.agentId when the record spawned a subagent
	Model       string
	Usage       *models.TokenUsage
	ServiceTier string
}

type rawRecord struct {
	Type          string          `json:"type"`
	Subtype       string          `json:"subtype"`
	Timestamp     string          `json:"timestamp"`
	GitBranch     string          `json:"gitBranch"`
	Slug          string          `json:"slug"`
	Content       string          `json:"content"`
	Message       *rawMessage     `json:"message"`
	ToolUseResult json.RawMessage `json:"toolUseResult"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"`
	Usage   *rawUsage       `json:"usage"`
}

type rawUsage struct {
	InputTokens              int    `json:"input_tokens"`
	OutputTokens             int    `json:"output_tokens"`
	CacheCreationInputTokens int    `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int    `json:"cache_read_input_tokens"`
	ServiceTier              string `json:"service_tier"`
}

type rawBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	Name      string          `json:"name"`
	ID        string          `json:"id"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
}

// toolUseResult is usually an object but some tools record a plain
// string; only the agentId field matters here.
type rawToolUseResult struct {
	AgentID string `json:"agentId"`
}

// DecodeRecord decodes one log line into a Record. The second return
// value is false when the line is blank or not valid JSON; such lines
// are skipped, never treated as an error.
func DecodeRecord(line []byte) (Record, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Record{}, false
	}

	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return Record{}, false
	}

	rec := Record{
		Kind:      recordKind(raw.Type),
		Timestamp: raw.Timestamp,
		GitBranch: raw.GitBranch,
		Subtype:   raw.Subtype,
		Slug:      raw.Slug,
	}

	if len(raw.ToolUseResult) > 0 {
		var result rawToolUseResult
		if err := json.Unmarshal(raw.ToolUseResult, &result); err == nil {
			rec.SubagentID = result.AgentID
		}
	}

	if raw.Message != nil {
		rec.Role = raw.Message.Role
		rec.Model = raw.Message.Model
		if raw.Message.Usage != nil {
			rec.Usage = &models.TokenUsage{
				InputTokens:              raw.Message.Usage.InputTokens,
				OutputTokens:             raw.Message.Usage.OutputTokens,
				CacheCreationInputTokens: raw.Message.Usage.CacheCreationInputTokens,
				CacheReadInputTokens:     raw.Message.Usage.CacheReadInputTokens,
			}
			rec.ServiceTier = raw.Message.Usage.ServiceTier
		}
		rec.ContentText, rec.Blocks = decodeContent(raw.Message.Content)
	} else if raw.Content != "" {
		// System markers carry their content at the top level.
		rec.ContentText = raw.Content
	}

	return rec, true
}

func recordKind(t string) RecordKind {
	switch t {
	case "user":
		return RecordUser
	case "assistant":
		return RecordAssistant
	case "system":
		return RecordSystem
	case "summary":
		return RecordSummary
	case "queue-operation":
		return RecordQueueOperation
	default:
		return RecordUnknown
	}
}

// decodeContent splits the message content field into either a plain
// string or a block list. Unrecognized block types are kept as
// BlockOther so the normalizer stays exhaustive.
func decodeContent(raw json.RawMessage) (string, []ContentBlock) {
	if len(raw) == 0 {
		return "", nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}

	var array []rawBlock
	if err := json.Unmarshal(raw, &array); err != nil {
		return "", nil
	}

	blocks := make([]ContentBlock, 0, len(array))
	for _, item := range array {
		switch item.Type {
		case "text":
			blocks = append(blocks, ContentBlock{Type: BlockText, Text: item.Text})
		case "thinking":
			blocks = append(blocks, ContentBlock{Type: BlockThinking, Text: item.Thinking})
		case "tool_use":
			blocks = append(blocks, ContentBlock{
				Type:      BlockToolUse,
				ToolName:  item.Name,
				ToolID:    item.ID,
				ToolInput: item.Input,
			})
		case "tool_result":
			blocks = append(blocks, ContentBlock{
				Type:   BlockToolResult,
				ToolID: item.ToolUseID,
				Result: item.Content,
			})
		default:
			blocks = append(blocks, ContentBlock{Type: BlockOther})
		}
	}
	return "", blocks
}
