package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/diogo/nexichat/internal/api"
	"github.com/diogo/nexichat/internal/config"
	"github.com/diogo/nexichat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.ChatClientInterface, cfg config.Config, logger *zap.Logger) error
}

// ClientFactory builds the chat client for the resolved configuration.
type ClientFactory func(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient creates the chat client.
	NewClient ClientFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	// CopyToClipboard writes text to the system clipboard.
	CopyToClipboard func(string) error

	// Stdin returns piped standard input, or false when stdin is a terminal.
	Stdin func() (io.Reader, bool)

	// Resolved by the root command before any subcommand runs
	Config config.Config
	Logger *zap.Logger
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.ChatClientInterface, cfg config.Config, logger *zap.Logger) error {
	return tui.RunChat(client, cfg, logger)
}

// defaultClientFactory builds the production HTTP client
func defaultClientFactory(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error) {
	client, err := api.NewClient(
		api.WithEndpoint(cfg.Endpoint),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// pipedStdin reports whether stdin is a pipe or file rather than a terminal
func pipedStdin() (io.Reader, bool) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, false
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, false
	}
	return os.Stdin, true
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:       defaultClientFactory,
		TUI:             &DefaultTUI{},
		CopyToClipboard: clipboard.WriteAll,
		Stdin:           pipedStdin,
		Config:          config.DefaultConfig(),
		Logger:          zap.NewNop(),
	}
}
