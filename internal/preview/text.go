package preview

import (
	"bufio"
	"io"
	"strings"
)

// TextPreviewer handles plain text payloads.
type TextPreviewer struct{}

func (p *TextPreviewer) Preview(r io.Reader, name string) (*Preview, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Preview{
		Title:    titleFor(name),
		Text:     sb.String(),
		Language: "text",
	}, nil
}
