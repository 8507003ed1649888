package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/nexichat/internal/conversation"
	apierrors "github.com/diogo/nexichat/internal/errors"
	"github.com/diogo/nexichat/internal/logging"
	"github.com/diogo/nexichat/internal/models"
	"github.com/diogo/nexichat/internal/tui"
)

// Terminal checks, replaceable in tests
var (
	stdoutIsTerminal = isStdoutTTY
	stderrIsTerminal = isStderrTTY
)

// askOptions holds the flags of the ask command
type askOptions struct {
	file   string
	output string
	raw    bool
}

// NewAskCmd creates the ask command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a single message and print the reply",
		Long: `Send one message to the chat endpoint and print the reply.

The message is taken from the argument, from --file, or from stdin.
When the request fails the standard apology is printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, deps, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the message from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to file")
	cmd.Flags().BoolVarP(&opts.raw, "raw", "r", false, "Print only the reply text")

	return cmd
}

// readPrompt picks the message from --file, the argument, or piped stdin
func readPrompt(args []string, file string, stdin func() (io.Reader, bool)) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return args[0], nil
	}

	if stdin != nil {
		if r, ok := stdin(); ok {
			data, err := io.ReadAll(r)
			if err != nil {
				return "", fmt.Errorf("failed to read stdin: %w", err)
			}
			return string(data), nil
		}
	}

	return "", apierrors.ErrEmptyMessage
}

func runAsk(cmd *cobra.Command, deps *Dependencies, opts *askOptions, args []string) error {
	prompt, err := readPrompt(args, opts.file, deps.Stdin)
	if err != nil {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return apierrors.ErrEmptyMessage
	}

	logger := logging.OrNop(deps.Logger)

	client, err := deps.NewClient(deps.Config, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	raw := opts.raw || !stdoutIsTerminal()
	errOut := cmd.ErrOrStderr()

	var spin *spinner
	if !raw && stderrIsTerminal() {
		spin = newSpinner(errOut, models.AssistantLabel+" is thinking")
		spin.start()
	}

	conv := conversation.New(conversation.WithLogger(logger))
	startTime := time.Now()
	res, _ := conv.Exchange(ctx, client, prompt)
	logger.Debug("exchange finished",
		zap.Duration("took", time.Since(startTime)),
		zap.String("endpoint", client.Endpoint()),
		zap.Bool("failed", res.Failed()),
	)

	if spin != nil {
		if res.Failed() {
			spin.stopWithWarning("Request failed")
		} else {
			spin.stopWithSuccess("Done")
		}
	}

	return writeReply(cmd, deps, opts, raw, res.Message)
}

// writeReply prints or saves the reply according to the output flags
func writeReply(cmd *cobra.Command, deps *Dependencies, opts *askOptions, raw bool, reply models.Message) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	text := reply.Text

	// Raw output mode: output only the reply text
	if raw {
		if opts.output != "" {
			if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Fprintln(out, text)
		return nil
	}

	if deps.Config.CopyToClipboard && deps.CopyToClipboard != nil {
		if err := deps.CopyToClipboard(text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(colorWarning).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(errOut, warnMsg)
		} else {
			clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(errOut, clipMsg)
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Reply saved to %s", opts.output),
		)
		fmt.Fprintln(errOut, successMsg)
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	renderer := tui.NewMessageRenderer(deps.Config.Markdown)
	fmt.Fprintln(out, renderer.Render(reply, bubbleWidth))
	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isStderrTTY returns true if stderr is connected to a terminal
func isStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
