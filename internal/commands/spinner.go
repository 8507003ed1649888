package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ec4899"), // Pink
	lipgloss.Color("#f472b6"),
	lipgloss.Color("#a78bfa"), // Violet
	lipgloss.Color("#60a5fa"), // Blue
	lipgloss.Color("#38bdf8"),
	lipgloss.Color("#22d3ee"), // Cyan
	lipgloss.Color("#34d399"), // Green
	lipgloss.Color("#f9a8d4"),
}

var (
	colorText     = lipgloss.Color("#e5e7eb")
	colorTextDim  = lipgloss.Color("#9ca3af")
	colorTextMute = lipgloss.Color("#4b5563")
	colorSuccess  = lipgloss.Color("#22c55e")
	colorWarning  = lipgloss.Color("#facc15")
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame: a spinner and three bouncing dots
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	raised := (s.frame / 3) % 3
	var dots strings.Builder
	for i := 0; i < 3; i++ {
		if i == raised {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("•"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithWarning stops the spinner and shows a warning
func (s *spinner) stopWithWarning(message string) {
	s.stopOnce()
	<-s.done

	mark := lipgloss.NewStyle().Foreground(colorWarning).Bold(true).Render("⚠")
	msg := lipgloss.NewStyle().Foreground(colorWarning).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", mark, msg)
}
