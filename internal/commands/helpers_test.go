package commands

import (
	"bytes"
	"io"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/nexichat/internal/api"
	"github.com/diogo/nexichat/internal/config"
	"github.com/diogo/nexichat/internal/render"
	"github.com/diogo/nexichat/internal/tui"
)

// fakeTUI records the chat launch instead of taking over the terminal
type fakeTUI struct {
	called bool
	client api.ChatClientInterface
	cfg    config.Config
	err    error
}

func (f *fakeTUI) RunChat(client api.ChatClientInterface, cfg config.Config, logger *zap.Logger) error {
	f.called = true
	f.client = client
	f.cfg = cfg
	return f.err
}

// isolateConfig points the config directory at a temp dir and disables logging
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvTheme, "")
	t.Setenv(config.EnvLogFile, "")
	t.Cleanup(func() {
		render.SetTUITheme(render.DefaultTUIThemeName)
		tui.UpdateTheme()
	})
	return dir
}

func newTestDeps(client *api.MockChatClient) (*Dependencies, *fakeTUI) {
	ui := &fakeTUI{}
	deps := &Dependencies{
		NewClient: func(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error) {
			return client, nil
		},
		TUI:             ui,
		CopyToClipboard: func(string) error { return nil },
		Stdin:           func() (io.Reader, bool) { return nil, false },
	}
	return deps, ui
}

// execute runs the root command with args and captures its output
func execute(t *testing.T, deps *Dependencies, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd(deps)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
