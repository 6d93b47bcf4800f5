package classify

import (
	"bytes"
	"strings"
	"testing"
)

func TestClassify_Table(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		input []byte
		want  Class
	}{
		{"plain ascii", []byte("hello, world\nsecond line\n"), Text},
		{"empty", nil, Text},
		{"null byte", []byte("abc\x00def"), Binary},
		{"png header", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0}, Binary},
		{"mostly control bytes", []byte{1, 2, 3, 4, 5, 'a', 'b'}, Binary},
		{"xml declaration", []byte(`<?xml version="1.0"?><root/>`), XML},
		{"xml opening tag", []byte("  <settings>\n</settings>"), XML},
		{"doctype", []byte("<!DOCTYPE html>"), XML},
		{"lone angle bracket", []byte("< not xml at all"), Text},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "text"...), Text},
		{"utf16le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, Text},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, Text},
		{"utf8 multibyte", []byte("grüße aus münchen — ۱۲۳"), Text},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input, cfg); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassify_PrintableAsciiWithXMLPrefixIsXML(t *testing.T) {
	// Any buffer of printable ASCII behind an XML declaration must be XML.
	body := strings.Repeat("value ", 512)
	buf := []byte(`<?xml version="1.0" encoding="utf-8"?>` + body)
	if got := Classify(buf, DefaultConfig()); got != XML {
		t.Fatalf("expected XML, got %v", got)
	}
}

func TestClassify_NullInPrefixIsBinary(t *testing.T) {
	// A null byte anywhere in the sampled prefix forces Binary, even when
	// everything else is printable.
	buf := append([]byte(strings.Repeat("a", 1000)), 0)
	buf = append(buf, []byte(strings.Repeat("b", 1000))...)
	if got := Classify(buf, DefaultConfig()); got != Binary {
		t.Fatalf("expected Binary, got %v", got)
	}
}

func TestSniff_BoundedPrefix(t *testing.T) {
	// Bytes past the configured prefix must not influence the result.
	cfg := Config{PrefixSize: 64, PrintableThreshold: 85}
	buf := append([]byte(strings.Repeat("x", 64)), 0, 0, 0, 0)
	if got := Sniff(bytes.NewReader(buf), cfg); got != Text {
		t.Fatalf("expected Text (nulls outside prefix), got %v", got)
	}
}

func TestSniff_Determinism(t *testing.T) {
	cfg := DefaultConfig()
	buf := []byte("deterministic input")
	first := Sniff(bytes.NewReader(buf), cfg)
	for range 5 {
		if got := Sniff(bytes.NewReader(buf), cfg); got != first {
			t.Fatalf("classification changed between runs: %v then %v", first, got)
		}
	}
}
