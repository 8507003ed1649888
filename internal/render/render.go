package render

import "strings"

// Markdown renders content with a renderer borrowed from the pool for opts
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownOrPlain renders an assistant reply, returning the text unchanged
// when the style cannot be loaded. Trailing newlines are trimmed so the
// result sits flush inside a bubble.
func MarkdownOrPlain(content string, opts Options) string {
	rendered, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
