package tui

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/diogo/nexichat/internal/config"
	"github.com/diogo/nexichat/internal/models"
	"github.com/diogo/nexichat/internal/render"
)

const (
	assistantIcon = "✦"
	userIcon      = "●"

	// minBubbleWidth keeps very narrow terminals from collapsing bubbles
	minBubbleWidth = 20
	// bubbleFrame is the horizontal space taken by a bubble's border and padding
	bubbleFrame = 4

	defaultRenderCacheSize = 512
)

// renderKey holds every input that can change a rendered message
type renderKey struct {
	role     models.Role
	text     string
	width    int
	markdown bool
	theme    string
}

// MessageRenderer turns message records into styled bubbles. Output
// depends only on the message, the width, the markdown settings and the
// active theme, so results are memoised.
type MessageRenderer struct {
	markdown config.MarkdownConfig
	cache    *lru.Cache[renderKey, string]
}

// NewMessageRenderer creates a renderer. Assistant text is rendered as
// markdown only when md.Enabled is set.
func NewMessageRenderer(md config.MarkdownConfig) *MessageRenderer {
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[renderKey, string](defaultRenderCacheSize)
	return &MessageRenderer{
		markdown: md,
		cache:    cache,
	}
}

var plainRenderer = NewMessageRenderer(config.MarkdownConfig{})

// RenderMessage renders msg as plain text at the given width
func RenderMessage(msg models.Message, width int) string {
	return plainRenderer.Render(msg, width)
}

// Render returns the label line and bubble for msg
func (r *MessageRenderer) Render(msg models.Message, width int) string {
	if width < minBubbleWidth {
		width = minBubbleWidth
	}

	key := renderKey{
		role:     msg.Role,
		text:     msg.Text,
		width:    width,
		markdown: r.markdown.Enabled,
		theme:    activeThemeName,
	}
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	out := r.render(msg, width)
	r.cache.Add(key, out)
	return out
}

// CacheLen reports how many rendered messages are memoised
func (r *MessageRenderer) CacheLen() int {
	return r.cache.Len()
}

// Purge drops all memoised output
func (r *MessageRenderer) Purge() {
	r.cache.Purge()
}

func (r *MessageRenderer) render(msg models.Message, width int) string {
	if msg.IsUser() {
		label := userLabelStyle.Render(userIcon + " " + models.UserLabel)
		bubble := userBubbleStyle.Width(width).Render(msg.Text)
		return label + "\n" + bubble
	}

	// Anything that is not a user message is shown as the assistant
	body := msg.Text
	if r.markdown.Enabled {
		opts := render.OptionsFromConfigWithWidth(r.markdown, width-bubbleFrame)
		body = render.MarkdownOrPlain(msg.Text, opts)
	}

	label := assistantLabelStyle.Render(assistantIcon + " " + models.AssistantLabel)
	bubble := assistantBubbleStyle.Width(width).Render(body)
	return label + "\n" + bubble
}

// renderLog renders every message of a log separated by blank lines
func (r *MessageRenderer) renderLog(msgs []models.Message, width int) string {
	var content strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(r.Render(msg, width))
		content.WriteString("\n")
	}
	return content.String()
}
