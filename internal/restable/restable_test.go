package restable

import (
	"bytes"
	"testing"
)

func TestDecode_SkipsScalarEntries(t *testing.T) {
	var w Writer
	w.AddBlob("A", []byte{1, 2, 3}).
		AddString("B", "ignored-string").
		AddBlob("C", []byte{4, 5})

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write table: %v", err)
	}

	entries := Decode(&buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 blob entries, got %d", len(entries))
	}
	if entries[0].Key != "A" || entries[1].Key != "C" {
		t.Errorf("expected keys [A C], got [%s %s]", entries[0].Key, entries[1].Key)
	}
	if !bytes.Equal(entries[0].Data, []byte{1, 2, 3}) {
		t.Errorf("entry A data mismatch: %v", entries[0].Data)
	}
	if !bytes.Equal(entries[1].Data, []byte{4, 5}) {
		t.Errorf("entry C data mismatch: %v", entries[1].Data)
	}
}

func TestDecode_AllScalarKinds(t *testing.T) {
	var w Writer
	w.AddString("s", "hello").
		AddBool("b", true).
		AddInt32("i32", -7).
		AddInt64("i64", 1<<40).
		AddFloat64("f", 3.25).
		AddBlob("blob", []byte("payload"))

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write table: %v", err)
	}

	entries := Decode(&buf)
	if len(entries) != 1 {
		t.Fatalf("expected only the blob entry, got %d entries", len(entries))
	}
	if entries[0].Key != "blob" || string(entries[0].Data) != "payload" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestDecode_CorruptTablesYieldEmpty(t *testing.T) {
	var w Writer
	w.AddBlob("A", bytes.Repeat([]byte{0xAA}, 64)).AddBlob("B", []byte("tail"))
	var full bytes.Buffer
	if err := w.WriteTo(&full); err != nil {
		t.Fatalf("write table: %v", err)
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty stream", nil},
		{"garbage", []byte("not a table at all")},
		{"bad magic", []byte{0xDE, 0xAD, 0xBE, 0xEF, 1, 0, 0, 0, 0, 0, 0, 0}},
		{"truncated header", full.Bytes()[:6]},
		{"truncated mid entry", full.Bytes()[:full.Len()-10]},
		{"count overstates entries", append(append([]byte{}, full.Bytes()[:8]...), 0xFF, 0xFF, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(bytes.NewReader(tt.input)); len(got) != 0 {
				t.Errorf("expected no entries, got %d", len(got))
			}
		})
	}
}

func TestDecode_UnknownTypeTagAbortsCleanly(t *testing.T) {
	var w Writer
	w.AddBlob("ok", []byte{1})
	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write table: %v", err)
	}
	raw := buf.Bytes()
	// Bump the declared count and append an entry with an unassigned tag.
	raw[8] = 2
	raw = append(raw, 1, 'x', 0x7F)

	if got := Decode(bytes.NewReader(raw)); len(got) != 0 {
		t.Errorf("expected empty result for unknown tag, got %d entries", len(got))
	}
}

func TestDecode_EmptyTable(t *testing.T) {
	var w Writer
	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write table: %v", err)
	}
	if got := Decode(&buf); len(got) != 0 {
		t.Errorf("expected no entries for empty table, got %d", len(got))
	}
}
