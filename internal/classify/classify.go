// Package classify decides whether a byte stream is safe to display as text.
package classify

import (
	"bytes"
	"io"
	"unicode/utf8"
)

// Class is the outcome of content sniffing.
type Class int

const (
	Binary Class = iota
	Text
	XML
)

func (c Class) String() string {
	switch c {
	case Binary:
		return "binary"
	case Text:
		return "text"
	case XML:
		return "xml"
	}
	return "invalid"
}

// Config holds the sniffing tunables. Callers get them from the service
// configuration; tests inject their own.
type Config struct {
	// PrefixSize is the maximum number of bytes read from the stream.
	PrefixSize int
	// PrintableThreshold is the minimum percentage (0-100) of printable
	// bytes in the prefix for content to count as text.
	PrintableThreshold int
}

// DefaultConfig mirrors the service defaults: 4 KiB prefix, 85% printable.
func DefaultConfig() Config {
	return Config{PrefixSize: 4096, PrintableThreshold: 85}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Sniff reads a bounded prefix from r and classifies it. It never reads more
// than cfg.PrefixSize bytes, so cost is independent of stream size. The same
// prefix always yields the same class. Unreadable streams classify as Binary.
func Sniff(r io.Reader, cfg Config) Class {
	if cfg.PrefixSize <= 0 {
		cfg.PrefixSize = DefaultConfig().PrefixSize
	}
	if cfg.PrintableThreshold <= 0 {
		cfg.PrintableThreshold = DefaultConfig().PrintableThreshold
	}

	prefix := make([]byte, cfg.PrefixSize)
	n, err := io.ReadFull(r, prefix)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Binary
	}
	prefix = prefix[:n]
	return Classify(prefix, cfg)
}

// Classify is the pure classification function over an already-read prefix.
func Classify(prefix []byte, cfg Config) Class {
	if len(prefix) == 0 {
		// An empty stream renders as an empty document.
		return Text
	}

	textual := false
	switch {
	case bytes.HasPrefix(prefix, bomUTF8):
		textual = true
		prefix = prefix[len(bomUTF8):]
	case bytes.HasPrefix(prefix, bomUTF16LE), bytes.HasPrefix(prefix, bomUTF16BE):
		// UTF-16 content is full of NUL bytes in the ASCII range, so the
		// ratio check below would misfire. The BOM alone decides.
		return Text
	}

	if !textual {
		if bytes.IndexByte(prefix, 0) >= 0 {
			return Binary
		}
		if printableRatio(prefix) < cfg.PrintableThreshold {
			return Binary
		}
	}

	if looksLikeXML(prefix) {
		return XML
	}
	return Text
}

// printableRatio returns the percentage of bytes that are printable ASCII,
// common whitespace, or part of a valid UTF-8 multibyte sequence.
func printableRatio(p []byte) int {
	printable := 0
	for i := 0; i < len(p); {
		b := p[i]
		if b >= 0x20 && b < 0x7F || b == '\t' || b == '\n' || b == '\r' {
			printable++
			i++
			continue
		}
		if b >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(p[i:])
			if r != utf8.RuneError || size > 1 {
				printable += size
				i += size
				continue
			}
			// A rune truncated by the prefix boundary still counts.
			if len(p)-i < utf8.UTFMax {
				printable += len(p) - i
				break
			}
		}
		i++
	}
	return printable * 100 / len(p)
}

// looksLikeXML reports whether the first significant token is an XML
// declaration or an opening tag.
func looksLikeXML(p []byte) bool {
	p = bytes.TrimLeft(p, " \t\r\n")
	if bytes.HasPrefix(p, []byte("<?xml")) {
		return true
	}
	if len(p) >= 2 && p[0] == '<' {
		c := p[1]
		return c == '!' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
	}
	return false
}
