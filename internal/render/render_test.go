package render

import (
	"strings"
	"testing"
)

func TestOptions(t *testing.T) {
	def := DefaultOptions()
	if def.Width != 80 || def.Style != StyleDark || !def.EnableEmoji || !def.PreserveNewLines || !def.TableWrap || def.InlineTableLinks {
		t.Fatalf("unexpected defaults: %+v", def)
	}

	opts := def.WithWidth(100).WithStyle(StyleLight).WithEmoji(false).WithPreserveNewLines(false)
	if opts.Width != 100 || opts.Style != StyleLight || opts.EnableEmoji || opts.PreserveNewLines {
		t.Errorf("builders not applied: %+v", opts)
	}
	if !opts.TableWrap {
		t.Error("untouched fields should keep their defaults")
	}
	if def.Width != 80 {
		t.Error("builders must not modify the receiver")
	}

	if got := def.WithWidth(-5).Width; got != 1 {
		t.Errorf("WithWidth(-5) = %d, want 1", got)
	}
}

func TestMarkdown_ReplyElements(t *testing.T) {
	testCases := []struct {
		name     string
		reply    string
		contains []string
		absent   string
	}{
		{"heading", "# Getting started", []string{"Getting", "started"}, ""},
		{"emphasis", "That is **important**.", []string{"important"}, "**"},
		{"code block", "```go\nfmt.Println(\"hi\")\n```", []string{"Println"}, "```"},
		{"list", "- install\n- run", []string{"install", "run"}, ""},
		{"table", "| Cmd | Does |\n|---|---|\n| ask | single |", []string{"Cmd", "single"}, ""},
		{"link", "See [the docs](https://example.com).", []string{"the docs"}, "]("},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Markdown(tc.reply, DefaultOptions())
			if err != nil {
				t.Fatalf("Markdown() error: %v", err)
			}
			for _, want := range tc.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q: %q", want, out)
				}
			}
			if tc.absent != "" && strings.Contains(out, tc.absent) {
				t.Errorf("markup %q should be consumed: %q", tc.absent, out)
			}
		})
	}
}

func TestMarkdown_Emoji(t *testing.T) {
	on, err := Markdown("Done :tada:", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(on, ":tada:") {
		t.Errorf("shortcode should be converted: %q", on)
	}

	off, err := Markdown("Done :tada:", DefaultOptions().WithEmoji(false))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(off, ":tada:") {
		t.Errorf("shortcode should stay literal: %q", off)
	}
}

func TestMarkdown_InvalidStyle(t *testing.T) {
	if _, err := Markdown("# Reply", DefaultOptions().WithStyle("no/such/style.json")); err == nil {
		t.Error("expected error for a missing style file")
	}
}

func TestMarkdownOrPlain(t *testing.T) {
	out := MarkdownOrPlain("**bold** reply", DefaultOptions())
	if !strings.Contains(out, "bold") || strings.Contains(out, "**") {
		t.Errorf("expected rendered emphasis, got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("trailing newlines should be trimmed")
	}

	raw := "raw *text*"
	if got := MarkdownOrPlain(raw, DefaultOptions().WithStyle("no/such/style.json")); got != raw {
		t.Errorf("fallback = %q, want %q", got, raw)
	}
}
