package preview

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
)

// MarkdownPreviewer handles Markdown payloads using goldmark, keeping the
// source as display text and rendering an HTML form alongside it.
type MarkdownPreviewer struct{}

func (p *MarkdownPreviewer) Preview(r io.Reader, name string) (*Preview, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := goldmark.New().Convert(src, &html); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return &Preview{
		Title:    titleFor(name),
		Text:     string(src),
		HTML:     html.String(),
		Language: "markdown",
	}, nil
}
