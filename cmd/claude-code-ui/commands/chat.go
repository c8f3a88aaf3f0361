package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/chats"
)

// NewChatCommand creates the chat command group
func NewChatCommand() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Manage chat records (titles, bookmarks, session sets)",
	}

	chatCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List chat records",
			RunE:  runChatList,
		},
		&cobra.Command{
			Use:   "create <title> <session-id>",
			Short: "Create a chat record for a session",
			Args:  cobra.ExactArgs(2),
			RunE:  runChatCreate,
		},
		&cobra.Command{
			Use:   "add <chat-id> <session-id>",
			Short: "Attach a resumed session to a chat",
			Args:  cobra.ExactArgs(2),
			RunE:  runChatAdd,
		},
		&cobra.Command{
			Use:   "bookmark <chat-id>",
			Short: "Toggle a chat's bookmark flag",
			Args:  cobra.ExactArgs(1),
			RunE:  runChatBookmark,
		},
		&cobra.Command{
			Use:   "rm <chat-id>",
			Short: "Delete a chat record",
			Args:  cobra.ExactArgs(1),
			RunE:  runChatDelete,
		},
	)

	return chatCmd
}

func openChatStore() (*chats.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return chats.Open(cfg.ChatDB)
}

func runChatList(cmd *cobra.Command, args []string) error {
	store, err := openChatStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No chats")
		return nil
	}

	for _, chat := range list {
		marker := " "
		if chat.Bookmarked {
			marker = "*"
		}
		title := chat.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s %s  %s\n", marker, chat.ID, title)
		fmt.Printf("    sessions: %s\n", strings.Join(chat.SessionIDs, ", "))
	}
	return nil
}

func runChatCreate(cmd *cobra.Command, args []string) error {
	store, err := openChatStore()
	if err != nil {
		return err
	}
	defer store.Close()

	chat, err := store.Create(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(chat.ID)
	return nil
}

func runChatAdd(cmd *cobra.Command, args []string) error {
	store, err := openChatStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.AddSession(args[0], args[1])
}

func runChatBookmark(cmd *cobra.Command, args []string) error {
	store, err := openChatStore()
	if err != nil {
		return err
	}
	defer store.Close()

	chat, ok, err := store.Get(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("chat %s not found", args[0])
	}
	return store.SetBookmark(chat.ID, !chat.Bookmarked)
}

func runChatDelete(cmd *cobra.Command, args []string) error {
	store, err := openChatStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Delete(args[0])
}
