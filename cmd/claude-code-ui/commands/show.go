package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/chats"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/sessions"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

var showChatID string

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show [session-id...]",
		Short: "Print the merged timeline of a conversation",
		Long: `Print the full timeline of a conversation, merging every listed
session log and all subagent conversations they spawned. With --chat,
the session ids are taken from the chat record instead.`,
		RunE: runShow,
	}

	showCmd.Flags().StringVar(&showChatID, "chat", "", "Load session ids from this chat record")

	return showCmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sessionIDs := args
	if showChatID != "" {
		store, err := chats.Open(cfg.ChatDB)
		if err != nil {
			return err
		}
		defer store.Close()

		chat, ok, err := store.Get(showChatID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("chat %s not found", showChatID)
		}
		sessionIDs = chat.SessionIDs
	}
	if len(sessionIDs) == 0 {
		return fmt.Errorf("no session ids given (pass them as arguments or use --chat)")
	}

	store := sessions.NewStore(cfg.LogRoot)
	timeline := store.ConversationTimeline(sessionIDs)
	if len(timeline) == 0 {
		fmt.Println("No messages found")
		return nil
	}

	for _, msg := range timeline {
		fmt.Println(formatMessage(msg))
	}
	return nil
}

// formatMessage renders one timeline entry for terminal output.
func formatMessage(msg models.NormalizedMessage) string {
	var tag string
	switch msg.Type {
	case models.MessageTypeToolUse:
		tag = fmt.Sprintf("[%s → %s]", msg.Role, msg.ToolName)
	case models.MessageTypeToolResult:
		tag = fmt.Sprintf("[%s ↩ %s]", msg.Role, msg.ToolName)
	case models.MessageTypeThinking:
		tag = fmt.Sprintf("[%s thinking]", msg.Role)
	case models.MessageTypeSystem:
		tag = "[system]"
	default:
		tag = fmt.Sprintf("[%s]", msg.Role)
	}
	if msg.Team != "" {
		tag += fmt.Sprintf(" (%s)", msg.Team)
	}
	if msg.Timestamp != "" {
		tag += " " + msg.Timestamp
	}

	content := msg.Content
	if strings.Count(content, "\n") > 0 {
		content = "\n  " + strings.ReplaceAll(content, "\n", "\n  ")
	}
	return fmt.Sprintf("%s %s", tag, content)
}
