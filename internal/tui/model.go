package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/nexichat/internal/api"
	"github.com/diogo/nexichat/internal/config"
	"github.com/diogo/nexichat/internal/conversation"
	"github.com/diogo/nexichat/internal/logging"
	"github.com/diogo/nexichat/internal/models"
)

// animationTickMsg advances the loading dots of request seq
type animationTickMsg struct {
	seq int
}

// minContentWidth keeps widgets drawable in very narrow terminals
const minContentWidth = 10

// responseMsg carries the outcome of one chat request back to Update
type responseMsg struct {
	reply string
	err   error
}

// Model represents the TUI state
type Model struct {
	client   api.ChatClientInterface
	conv     *conversation.Conversation
	renderer *MessageRenderer
	logger   *zap.Logger
	copyFn   func(string) error

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// State
	ready          bool
	notice         string
	animationFrame int
	requestSeq     int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client api.ChatClientInterface, cfg config.Config, logger *zap.Logger) Model {
	logger = logging.OrNop(logger)

	ti := textinput.New()
	ti.Placeholder = models.InputPlaceholder
	ti.CharLimit = 4000
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		client:   client,
		conv:     conversation.New(conversation.WithLogger(logger)),
		renderer: NewMessageRenderer(cfg.Markdown),
		logger:   logger,
		copyFn:   clipboard.WriteAll,
		input:    ti,
		spinner:  s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends an animation tick for request seq
func animationTick(seq int) tea.Cmd {
	return tea.Tick(time.Millisecond*120, func(time.Time) tea.Msg {
		return animationTickMsg{seq: seq}
	})
}

// scrollKeys are forwarded to the viewport instead of the input
var scrollKeys = map[string]bool{
	"up":     true,
	"down":   true,
	"pgup":   true,
	"pgdown": true,
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 5  // Input panel with border and label
		statusHeight := 2 // Status bar with margin
		padding := 4      // Messages panel border and padding

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.contentWidth()

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.input.Width = max(contentWidth-16, 1)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// A pending request cannot be cancelled
			if m.conv.Pending() {
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+y":
			m.notice = m.copyLastReply()
			return m, nil

		case "enter":
			return m.submit()
		}

		if scrollKeys[key] {
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		// Keys are not forwarded to the input while a request is outstanding
		if !m.conv.Pending() {
			m.notice = ""
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case responseMsg:
		m.conv.Resolve(msg.reply, msg.err)
		m.updateViewport()
		m.viewport.GotoBottom()
		cmd = m.input.Focus()
		return m, cmd

	case spinner.TickMsg:
		// Stale ticks are dropped by the spinner's own tag check
		if m.conv.Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.conv.Pending() && msg.seq == m.requestSeq {
			m.animationFrame++
			cmds = append(cmds, animationTick(m.requestSeq))
		}

	default:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit sends the composing field if the send control is enabled
func (m Model) submit() (tea.Model, tea.Cmd) {
	prompt, ok := m.conv.Submit(m.input.Value())
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.notice = ""
	m.animationFrame = 0
	m.requestSeq++
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.sendMessage(prompt),
		m.spinner.Tick,
		animationTick(m.requestSeq),
	)
}

// sendMessage creates a command to send a message to the chat endpoint
func (m Model) sendMessage(prompt string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reply, err := conversation.Send(context.Background(), client, prompt)
		return responseMsg{reply: reply, err: err}
	}
}

// copyLastReply copies the newest assistant message and returns a status notice
func (m Model) copyLastReply() string {
	last, ok := m.conv.LastAssistant()
	if !ok {
		return "Nothing to copy yet"
	}
	if err := m.copyFn(last.Text); err != nil {
		m.logger.Debug("clipboard copy failed", zap.Error(err))
		return "Could not copy to clipboard"
	}
	return "Copied last reply to clipboard"
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.contentWidth()

	// Header
	headerParts := []string{
		titleStyle.Render(assistantIcon + " " + models.AppTitle),
	}
	if m.client != nil {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.client.Endpoint()),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages area
	var messagesContent string
	if m.conv.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	if m.conv.Pending() {
		inputContent = m.renderLoadingAnimation()
	} else {
		send := sendIdleStyle.Render("↵ Send")
		if m.sendEnabled() {
			send = sendActiveStyle.Render("↵ Send")
		}
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render(models.UserLabel),
			lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", send),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// contentWidth is the panel width inside the outer margin
func (m Model) contentWidth() int {
	return max(m.width-4, minContentWidth)
}

// sendEnabled reports whether Enter would submit the composing field
func (m Model) sendEnabled() bool {
	return m.conv.CanSend(m.input.Value())
}

// renderWelcome renders the empty state when no messages exist
func (m Model) renderWelcome() string {
	width := max(m.viewport.Width-4, 1)
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render(assistantIcon)
	title := welcomeTitleStyle.Width(width).Render(models.EmptyTitle)
	subtitle := welcomeStyle.Width(width).Render(models.EmptySubtitle)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		icon,
		"",
		title,
		subtitle,
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the spinner and three bouncing dots
func (m Model) renderLoadingAnimation() string {
	frame := m.animationFrame

	// One dot is raised at a time, moving left to right
	raised := frame % 3
	var dots strings.Builder
	for i := 0; i < 3; i++ {
		color := gradientColors[(frame+i)%len(gradientColors)]
		style := lipgloss.NewStyle().Foreground(color)
		if i == raised {
			dots.WriteString(style.Bold(true).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("•"))
		}
		if i < 2 {
			dots.WriteString(" ")
		}
	}

	label := assistantLabelStyle.Render(assistantIcon + " " + models.AssistantLabel)
	text := lipgloss.NewStyle().Foreground(colorTextDim).Render(" is thinking ")

	return fmt.Sprintf("%s %s%s %s", m.spinner.View(), label, text, dots.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	if m.notice != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(noticeStyle.Render(m.notice))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Ctrl+Y", "Copy reply"},
		{"↑↓", "Scroll"},
		{"Esc", "Quit"},
	}

	items := []string{statusDescStyle.Render(models.InputHelp)}
	for _, s := range shortcuts {
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		))
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	bubbleWidth := m.viewport.Width - 6
	m.viewport.SetContent(m.renderer.renderLog(m.conv.Messages(), bubbleWidth))
}

// RunChat starts the chat TUI
func RunChat(client api.ChatClientInterface, cfg config.Config, logger *zap.Logger) error {
	m := NewChatModel(client, cfg, logger)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
