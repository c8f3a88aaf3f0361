package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/sessions"
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <session-id>",
		Short: "Print the first user message of a session",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := sessions.NewStore(cfg.LogRoot)
	path, ok := store.FindLogFile(args[0])
	if !ok {
		return fmt.Errorf("session %s not found", args[0])
	}

	preview, ok := sessions.Preview(path, cfg.PreviewMaxChars)
	if !ok {
		fmt.Println("(no user messages)")
		return nil
	}
	fmt.Println(preview)
	return nil
}
