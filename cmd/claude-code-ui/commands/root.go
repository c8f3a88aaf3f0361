package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/config"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logging"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/sessions"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/tui"
)

var (
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claude-code-ui",
		Short: "Browse agent conversations recorded as session logs",
		Long: `claude-code-ui is a dashboard for agent sessions persisted as
append-only JSONL logs. The root command opens an interactive browser;
subcommands expose the same data non-interactively.`,
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.claude/dashboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewChatCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration for every subcommand.
func loadConfig() (config.Config, error) {
	logging.SetVerbose(verbose)

	path := configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = defaultPath
	}
	return config.Load(path)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := sessions.NewStore(cfg.LogRoot)
	return tui.Show(context.Background(), tui.Options{
		Store:           store,
		PageSize:        cfg.PageSize,
		PreviewMaxChars: cfg.PreviewMaxChars,
	})
}
