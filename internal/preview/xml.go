package preview

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// XMLPreviewer handles XML payloads, re-indenting them through the stdlib
// tokenizer so nested documents stay readable.
type XMLPreviewer struct{}

func (p *XMLPreviewer) Preview(r io.Reader, name string) (*Preview, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	pretty, err := indentXML(src)
	if err != nil {
		// Keep the raw text when re-indenting fails; the content already
		// classified as XML-ish and is still displayable.
		pretty = string(src)
	}

	return &Preview{
		Title:    titleFor(name),
		Text:     pretty,
		Language: "xml",
	}, nil
}

func indentXML(src []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	var out bytes.Buffer
	enc := xml.NewEncoder(&out)
	enc.Indent("", "  ")

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("tokenize xml: %w", err)
		}
		if err := enc.EncodeToken(tok); err != nil {
			return "", fmt.Errorf("re-encode xml: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return out.String(), nil
}
