// Package commands provides CLI commands for nexichat.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/nexichat/internal/config"
	"github.com/diogo/nexichat/internal/logging"
	"github.com/diogo/nexichat/internal/render"
	"github.com/diogo/nexichat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	endpoint string
	logFile  string
	logLevel string
	theme    string
}

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "nexichat",
		Short: "Terminal client for the Nexi AI chat assistant",
		Long: `nexichat is a minimal terminal chat client. It posts each message to a
chat endpoint and shows the reply in a scrollable conversation.

Examples:
  nexichat                                  Start interactive chat
  nexichat --endpoint http://host:3000/api/chat
  nexichat ask "What is Go?"                Send a single message
  nexichat ask -f prompt.md                 Read the message from a file
  cat prompt.md | nexichat ask              Read the message from stdin
  nexichat config init                      Write a default config file`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				return nil
			}
			return setup(cmd, flags, deps)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if deps.Logger != nil {
				_ = deps.Logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "nexichat %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(deps)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "Chat endpoint URL (default "+config.DefaultConfig().Endpoint+")")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write diagnostic logs to this file (empty disables logging)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "TUI theme ("+strings.Join(render.TUIThemeNames(), ", ")+")")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// setup resolves configuration in order: defaults, config file, .env and
// environment, then flags. It also applies the theme and opens the log.
func setup(cmd *cobra.Command, flags *globalFlags, deps *Dependencies) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	pf := cmd.Flags()
	if pf.Changed("endpoint") {
		cfg.Endpoint = flags.endpoint
	}
	if pf.Changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if pf.Changed("theme") {
		cfg.TUITheme = flags.theme
	}

	if err := config.ValidateEndpoint(cfg.Endpoint); err != nil {
		return err
	}

	if cfg.TUITheme == "" {
		cfg.TUITheme = render.DefaultTUIThemeName
	}
	if !render.SetTUITheme(cfg.TUITheme) {
		return fmt.Errorf("unknown theme %q (available: %s)", cfg.TUITheme, strings.Join(render.TUIThemeNames(), ", "))
	}
	tui.UpdateTheme()

	logger, err := logging.New(cfg.LogFile, logging.Level(flags.logLevel))
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}

	deps.Config = cfg
	deps.Logger = logger
	return nil
}

var rootCmd = NewRootCmd(nil)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}
