package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/gitinfo"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/sessions"
)

var (
	listLimit    int
	listOffset   int
	listFullScan bool
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recently active first",
		RunE:  runList,
	}

	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Page size (default from config)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Page offset")
	listCmd.Flags().BoolVar(&listFullScan, "full-scan", false, "Skip the bulk scan and walk the filesystem")

	return listCmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit := listLimit
	if limit <= 0 {
		limit = cfg.PageSize
	}

	store := sessions.NewStore(cfg.LogRoot)
	if listFullScan {
		store.DisableFastScan()
	}
	descriptors, total := store.ListSessions(limit, listOffset)
	repoCache := gitinfo.NewCache()

	fmt.Printf("Sessions %d-%d of %d\n\n", listOffset+1, listOffset+len(descriptors), total)
	for _, desc := range descriptors {
		branch := ""
		if status := repoCache.Status(desc.DisplayDirectory); status.IsRepo {
			branch = fmt.Sprintf(" [%s]", status.Branch)
		}
		fmt.Printf("%s  %s%s\n", desc.ModifiedAt.Format("2006-01-02 15:04"), desc.DisplayDirectory, branch)
		fmt.Printf("  session: %s\n", desc.SessionID)
		fmt.Printf("  created: %s\n", desc.CreatedAt.Format("2006-01-02 15:04"))
		if preview, ok := sessions.Preview(desc.LogPath, cfg.PreviewMaxChars); ok {
			fmt.Printf("  %s\n", preview)
		}
		fmt.Println()
	}
	return nil
}
