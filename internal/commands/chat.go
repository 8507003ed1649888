package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/nexichat/internal/logging"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the Nexi AI assistant.

Each message is sent on its own; the conversation is kept only for this
session. Press Esc or Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps)
		},
	}
}

func runChat(deps *Dependencies) error {
	logger := logging.OrNop(deps.Logger)

	client, err := deps.NewClient(deps.Config, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	logger.Info("chat session started", zap.String("endpoint", client.Endpoint()))
	defer logger.Info("chat session ended")

	return deps.TUI.RunChat(client, deps.Config, logger)
}
