package commands

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/nexichat/internal/api"
	"github.com/diogo/nexichat/internal/config"
	apierrors "github.com/diogo/nexichat/internal/errors"
	"github.com/diogo/nexichat/internal/models"
)

const fallbackLine = "Sorry, there was an error processing your request.\n"

// forceTTY makes the ask command believe stdout is a terminal
func forceTTY(t *testing.T) {
	t.Helper()
	oldOut, oldErr := stdoutIsTerminal, stderrIsTerminal
	stdoutIsTerminal = func() bool { return true }
	stderrIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		stdoutIsTerminal, stderrIsTerminal = oldOut, oldErr
	})
}

// forcePipe makes the ask command believe stdout is redirected
func forcePipe(t *testing.T) {
	t.Helper()
	oldOut := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = oldOut })
}

func TestNewAskCmd(t *testing.T) {
	cmd := NewAskCmd(NewDependencies())

	if cmd.Use != "ask [message]" {
		t.Errorf("Expected use 'ask [message]', got %s", cmd.Use)
	}
	for _, name := range []string{"file", "output", "raw"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %s not found", name)
		}
	}
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("expected error for two arguments")
	}
}

func TestAsk_Raw(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		client     *api.MockChatClient
		wantStdout string
		wantSent   []string
	}{
		{
			name:       "reply",
			args:       []string{"ask", "Hello"},
			client:     &api.MockChatClient{Reply: "Hi there"},
			wantStdout: "Hi there\n",
			wantSent:   []string{"Hello"},
		},
		{
			name:       "trimmed message",
			args:       []string{"ask", "  Hello  "},
			client:     &api.MockChatClient{Reply: "Hi"},
			wantStdout: "Hi\n",
			wantSent:   []string{"Hello"},
		},
		{
			name:       "status failure prints fallback",
			args:       []string{"ask", "Hello"},
			client:     &api.MockChatClient{Err: apierrors.NewStatusError(500, models.DefaultEndpoint)},
			wantStdout: fallbackLine,
			wantSent:   []string{"Hello"},
		},
		{
			name:       "transport failure prints fallback",
			args:       []string{"ask", "--raw", "Hello"},
			client:     &api.MockChatClient{Err: apierrors.NewTransportError(models.DefaultEndpoint, errors.New("refused"))},
			wantStdout: fallbackLine,
			wantSent:   []string{"Hello"},
		},
		{
			name:       "multi-line reply kept verbatim",
			args:       []string{"ask", "-r", "Hello"},
			client:     &api.MockChatClient{Reply: "a\n  b"},
			wantStdout: "a\n  b\n",
			wantSent:   []string{"Hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			forcePipe(t)
			deps, _ := newTestDeps(tt.client)

			stdout, _, err := execute(t, deps, tt.args...)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if got := tt.client.Messages(); strings.Join(got, "|") != strings.Join(tt.wantSent, "|") {
				t.Errorf("sent %v, want %v", got, tt.wantSent)
			}
			if !tt.client.CloseCalled {
				t.Error("client should be closed")
			}
		})
	}
}

func TestAsk_EmptyMessage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"blank argument", []string{"ask", "   "}},
		{"no input", []string{"ask"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			mock := &api.MockChatClient{}
			deps, _ := newTestDeps(mock)

			_, _, err := execute(t, deps, tt.args...)
			if !errors.Is(err, apierrors.ErrEmptyMessage) {
				t.Fatalf("expected ErrEmptyMessage, got %v", err)
			}
			if mock.Calls() != 0 {
				t.Error("nothing should be sent")
			}
		})
	}
}

func TestAsk_Sources(t *testing.T) {
	isolateConfig(t)
	forcePipe(t)

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.md")
		if err := os.WriteFile(path, []byte("from file\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		mock := &api.MockChatClient{Reply: "ok"}
		deps, _ := newTestDeps(mock)

		if _, _, err := execute(t, deps, "ask", "-f", path); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if got := mock.Messages(); len(got) != 1 || got[0] != "from file" {
			t.Errorf("sent %v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		deps, _ := newTestDeps(&api.MockChatClient{})
		_, _, err := execute(t, deps, "ask", "-f", filepath.Join(t.TempDir(), "missing.md"))
		if err == nil || !strings.Contains(err.Error(), "failed to read file") {
			t.Fatalf("expected read error, got %v", err)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		mock := &api.MockChatClient{Reply: "ok"}
		deps, _ := newTestDeps(mock)
		deps.Stdin = func() (io.Reader, bool) { return strings.NewReader("from stdin"), true }

		if _, _, err := execute(t, deps, "ask"); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if got := mock.Messages(); len(got) != 1 || got[0] != "from stdin" {
			t.Errorf("sent %v", got)
		}
	})
}

func TestReadPrompt(t *testing.T) {
	piped := func() (io.Reader, bool) { return strings.NewReader("piped"), true }
	tty := func() (io.Reader, bool) { return nil, false }

	tests := []struct {
		name    string
		args    []string
		stdin   func() (io.Reader, bool)
		want    string
		wantErr error
	}{
		{"argument wins over stdin", []string{"arg"}, piped, "arg", nil},
		{"stdin when no argument", nil, piped, "piped", nil},
		{"terminal stdin is ignored", nil, tty, "", apierrors.ErrEmptyMessage},
		{"nil stdin", nil, nil, "", apierrors.ErrEmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPrompt(tt.args, "", tt.stdin)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsk_OutputFile(t *testing.T) {
	for _, tty := range []bool{false, true} {
		name := "raw"
		if tty {
			name = "decorated"
		}
		t.Run(name, func(t *testing.T) {
			isolateConfig(t)
			if tty {
				forceTTY(t)
			} else {
				forcePipe(t)
			}
			path := filepath.Join(t.TempDir(), "reply.md")
			deps, _ := newTestDeps(&api.MockChatClient{Reply: "saved reply"})

			stdout, stderr, err := execute(t, deps, "ask", "Hello", "-o", path)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if string(data) != "saved reply" {
				t.Errorf("file = %q", data)
			}
			if stdout != "" {
				t.Errorf("stdout should be empty, got %q", stdout)
			}
			if tty && !strings.Contains(stderr, "Reply saved to") {
				t.Errorf("expected save notice, got %q", stderr)
			}
		})
	}
}

func TestAsk_Decorated(t *testing.T) {
	isolateConfig(t)
	forceTTY(t)
	deps, _ := newTestDeps(&api.MockChatClient{Reply: "Hi there"})

	stdout, _, err := execute(t, deps, "ask", "Hello")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(stdout, models.AssistantLabel) {
		t.Errorf("expected assistant label, got %q", stdout)
	}
	if !strings.Contains(stdout, "Hi there") {
		t.Errorf("expected reply, got %q", stdout)
	}
}

func TestAsk_SpinnerOutcome(t *testing.T) {
	tests := []struct {
		name     string
		client   *api.MockChatClient
		want     string
		dontWant string
	}{
		{
			name:     "reply matching the apology text",
			client:   &api.MockChatClient{Reply: models.FallbackText},
			want:     "Done",
			dontWant: "Request failed",
		},
		{
			name:     "request failure",
			client:   &api.MockChatClient{Err: apierrors.NewStatusError(500, models.DefaultEndpoint)},
			want:     "Request failed",
			dontWant: "Done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			forceTTY(t)
			stderrIsTerminal = func() bool { return true }

			deps, _ := newTestDeps(tt.client)
			stdout, stderr, err := execute(t, deps, "ask", "Hello")
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected %q on stderr, got %q", tt.want, stderr)
			}
			if strings.Contains(stderr, tt.dontWant) {
				t.Errorf("did not expect %q on stderr, got %q", tt.dontWant, stderr)
			}
			if !strings.Contains(stdout, models.FallbackText) {
				t.Errorf("expected apology text on stdout, got %q", stdout)
			}
		})
	}
}

func TestAsk_Clipboard(t *testing.T) {
	tests := []struct {
		name       string
		copyErr    error
		wantNotice string
	}{
		{"copied", nil, "Copied to clipboard"},
		{"copy fails", errors.New("no display"), "Failed to copy to clipboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			forceTTY(t)
			cfg := config.DefaultConfig()
			cfg.CopyToClipboard = true
			if err := config.SaveConfig(cfg); err != nil {
				t.Fatal(err)
			}

			var copied string
			deps, _ := newTestDeps(&api.MockChatClient{Reply: "Hi there"})
			deps.CopyToClipboard = func(s string) error {
				copied = s
				return tt.copyErr
			}

			_, stderr, err := execute(t, deps, "ask", "Hello")
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if copied != "Hi there" {
				t.Errorf("copied %q", copied)
			}
			if !strings.Contains(stderr, tt.wantNotice) {
				t.Errorf("expected %q in stderr, got %q", tt.wantNotice, stderr)
			}
		})
	}
}
