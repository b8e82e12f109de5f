package sentiment

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
)

// RenderExplanationHTML converts an explanation, which models often write in
// markdown, to HTML. Raw HTML in the input is not passed through.
func RenderExplanationHTML(explanation string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(explanation), &buf); err != nil {
		return "", fmt.Errorf("failed to render explanation: %w", err)
	}
	return buf.String(), nil
}
