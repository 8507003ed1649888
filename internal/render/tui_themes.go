package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is a colour palette for the chat view. MarkdownStyle is the
// glamour style used for replies when the markdown config names none.
type TUITheme struct {
	Name          string
	Description   string
	MarkdownStyle string

	Surface   lipgloss.Color
	Border    lipgloss.Color
	Primary   lipgloss.Color // user bubble, title
	Secondary lipgloss.Color // success notices
	Accent    lipgloss.Color // assistant bubble
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	TextMute  lipgloss.Color
}

// DefaultTUIThemeName is used when no theme is configured
const DefaultTUIThemeName = "nexi"

var (
	// NexiTheme is the pink and blue palette of the Nexi chat page on a dark terminal
	NexiTheme = TUITheme{
		Name:          "nexi",
		Description:   "Pink and blue on dark",
		MarkdownStyle: StyleDark,
		Surface:       lipgloss.Color("#1f2937"),
		Border:        lipgloss.Color("#374151"),
		Primary:       lipgloss.Color("#ec4899"),
		Secondary:     lipgloss.Color("#22c55e"),
		Accent:        lipgloss.Color("#60a5fa"),
		Warning:       lipgloss.Color("#facc15"),
		Error:         lipgloss.Color("#f87171"),
		Text:          lipgloss.Color("#e5e7eb"),
		TextDim:       lipgloss.Color("#9ca3af"),
		TextMute:      lipgloss.Color("#4b5563"),
	}

	// NexiLightTheme keeps the Nexi accents for light terminal backgrounds
	NexiLightTheme = TUITheme{
		Name:          "nexi-light",
		Description:   "Pink and blue on light",
		MarkdownStyle: StyleLight,
		Surface:       lipgloss.Color("#f3f4f6"),
		Border:        lipgloss.Color("#d1d5db"),
		Primary:       lipgloss.Color("#db2777"),
		Secondary:     lipgloss.Color("#16a34a"),
		Accent:        lipgloss.Color("#2563eb"),
		Warning:       lipgloss.Color("#ca8a04"),
		Error:         lipgloss.Color("#dc2626"),
		Text:          lipgloss.Color("#111827"),
		TextDim:       lipgloss.Color("#4b5563"),
		TextMute:      lipgloss.Color("#9ca3af"),
	}

	// MonoTheme is greyscale for terminals with few colours
	MonoTheme = TUITheme{
		Name:          "mono",
		Description:   "Greyscale",
		MarkdownStyle: StyleNoTTY,
		Surface:       lipgloss.Color("#262626"),
		Border:        lipgloss.Color("#585858"),
		Primary:       lipgloss.Color("#ffffff"),
		Secondary:     lipgloss.Color("#d0d0d0"),
		Accent:        lipgloss.Color("#bcbcbc"),
		Warning:       lipgloss.Color("#e4e4e4"),
		Error:         lipgloss.Color("#ffffff"),
		Text:          lipgloss.Color("#eeeeee"),
		TextDim:       lipgloss.Color("#a8a8a8"),
		TextMute:      lipgloss.Color("#6c6c6c"),
	}
)

// tuiThemes is the registry in display order
var tuiThemes = []TUITheme{NexiTheme, NexiLightTheme, MonoTheme}

var (
	currentTUITheme = NexiTheme
	themeMu         sync.RWMutex
)

// GetTUITheme returns the active theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme activates the named theme. Unknown names leave it unchanged.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName looks a theme up, ignoring case and surrounding spaces
func GetTUIThemeByName(name string) (TUITheme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range tuiThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns every registered theme
func AvailableTUIThemes() []TUITheme {
	out := make([]TUITheme, len(tuiThemes))
	copy(out, tuiThemes)
	return out
}

// TUIThemeNames returns the registered theme names
func TUIThemeNames() []string {
	names := make([]string, len(tuiThemes))
	for i, t := range tuiThemes {
		names[i] = t.Name
	}
	return names
}
