package render

import (
	"os"

	"github.com/diogo/nexichat/internal/config"
)

// OptionsFromConfig builds render options from the markdown section of the
// user configuration. The style comes from GLAMOUR_STYLE, then the config,
// then the active TUI theme.
func OptionsFromConfig(md config.MarkdownConfig) Options {
	opts := DefaultOptions()

	opts.Style = md.Style
	if opts.Style == "" {
		opts.Style = GetTUITheme().MarkdownStyle
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}

// OptionsFromConfigWithWidth builds options from config with a specific width.
func OptionsFromConfigWithWidth(md config.MarkdownConfig, width int) Options {
	return OptionsFromConfig(md).WithWidth(width)
}
