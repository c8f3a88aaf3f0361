package models

import "time"

// SessionDescriptor is the lightweight listing unit for one session log
// file. It is recomputed on every listing call and never persisted.
type SessionDescriptor struct {
	SessionID        string
	Directory        string // working directory as recorded on disk (may be a worktree)
	DisplayDirectory string // worktrees resolved to the main checkout
	LogPath          string
	CreatedAt        time.Time
	ModifiedAt       time.Time
}

// MessageType classifies a normalized message for display.
type MessageType string

const (
	MessageTypeText       MessageType = "text"
	MessageTypeThinking   MessageType = "thinking"
	MessageTypeToolUse    MessageType = "tool_use"
	MessageTypeToolResult MessageType = "tool_result"
	MessageTypeSystem     MessageType = "system"
)

// TokenUsage is the per-response token breakdown reported by the model API.
type TokenUsage struct {
	InputTokens              int
	OutputTokens             int
	CacheCreationInputTokens int
	CacheReadInputTokens     int
}

// MessageMeta carries per-record metadata stamped onto every message
// emitted from that record.
type MessageMeta struct {
	Model       string
	GitBranch   string
	Usage       *TokenUsage
	ServiceTier string
}

// NormalizedMessage is the flattened, UI-ready unit of conversation
// content. Team is set for messages that originate from a subagent log.
type NormalizedMessage struct {
	Role      string
	Type      MessageType
	Content   string
	Timestamp string
	ToolName  string
	ToolID    string
	Team      string
	Meta      MessageMeta
}

// RepoStatus is the cached repository snapshot for a working directory.
type RepoStatus struct {
	IsRepo bool
	Branch string
}

// Chat is one logical conversation: a mutable bookmark record that
// unions one or more session ids, so a conversation resumed under a new
// session id stays a single chat.
type Chat struct {
	ID         string
	Title      string
	Bookmarked bool
	SessionIDs []string
	CreatedAt  time.Time
}
