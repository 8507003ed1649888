package render

import (
	"regexp"
	"testing"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestTUIThemes_Palettes(t *testing.T) {
	for _, theme := range AvailableTUIThemes() {
		t.Run(theme.Name, func(t *testing.T) {
			colors := map[string]string{
				"Surface":   string(theme.Surface),
				"Border":    string(theme.Border),
				"Primary":   string(theme.Primary),
				"Secondary": string(theme.Secondary),
				"Accent":    string(theme.Accent),
				"Warning":   string(theme.Warning),
				"Error":     string(theme.Error),
				"Text":      string(theme.Text),
				"TextDim":   string(theme.TextDim),
				"TextMute":  string(theme.TextMute),
			}
			for field, c := range colors {
				if !hexColor.MatchString(c) {
					t.Errorf("%s = %q, want #RRGGBB", field, c)
				}
			}

			if theme.Description == "" {
				t.Error("description should not be empty")
			}

			// Every theme must pick a glamour style that renders
			if _, err := Markdown("**hi**", DefaultOptions().WithStyle(theme.MarkdownStyle)); err != nil {
				t.Errorf("markdown style %q: %v", theme.MarkdownStyle, err)
			}
		})
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme(DefaultTUIThemeName)

	if GetTUITheme().Name != DefaultTUIThemeName {
		t.Fatalf("default theme = %q, want %q", GetTUITheme().Name, DefaultTUIThemeName)
	}

	if !SetTUITheme("  NEXI-Light ") {
		t.Fatal("expected lookup to ignore case and spaces")
	}
	if GetTUITheme().Name != "nexi-light" {
		t.Errorf("active theme = %q, want nexi-light", GetTUITheme().Name)
	}

	if SetTUITheme("solarized") {
		t.Error("unknown theme should be rejected")
	}
	if GetTUITheme().Name != "nexi-light" {
		t.Errorf("rejected name changed the theme to %q", GetTUITheme().Name)
	}
}

func TestGetTUIThemeByName(t *testing.T) {
	testCases := []struct {
		name string
		want string
		ok   bool
	}{
		{"nexi", "nexi", true},
		{"nexi-light", "nexi-light", true},
		{"Mono", "mono", true},
		{"dracula", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			theme, ok := GetTUIThemeByName(tc.name)
			if ok != tc.ok || theme.Name != tc.want {
				t.Errorf("GetTUIThemeByName(%q) = %q, %v; want %q, %v", tc.name, theme.Name, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestTUIThemeNames(t *testing.T) {
	names := TUIThemeNames()
	want := []string{"nexi", "nexi-light", "mono"}

	if len(names) != len(want) {
		t.Fatalf("TUIThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	// Callers get a copy of the registry
	themes := AvailableTUIThemes()
	themes[0].Name = "changed"
	if TUIThemeNames()[0] != "nexi" {
		t.Error("AvailableTUIThemes should not expose the registry")
	}
}
