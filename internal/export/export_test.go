package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDirStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := &DirStore{Dir: filepath.Join(dir, "exports")}

	w, err := store.Create(context.Background(), "icon.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	payload := []byte{0x89, 0x50, 0x4E, 0x47, 0x00}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "exports", "icon.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("round trip mismatch: %v != %v", got, payload)
	}
}

func TestDirStore_FlattensPathSeparators(t *testing.T) {
	dir := t.TempDir()
	store := &DirStore{Dir: dir}

	w, err := store.Create(context.Background(), "../escape/../../App.g.resources")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one export, got %d", len(entries))
	}
	name := entries[0].Name()
	if filepath.Dir(filepath.Join(dir, name)) != filepath.Clean(dir) {
		t.Errorf("export escaped the target dir: %q", name)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain.txt", "plain.txt"},
		{"a/b/c.bin", "a_b_c.bin"},
		{`win\path.dll`, "win_path.dll"},
		{"..", ""},
		{" dotted. ", "dotted"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrompter_FailureIsCancellation(t *testing.T) {
	p := &Prompter{Store: failingStore{}}
	if _, ok := p.CreateTarget("anything"); ok {
		t.Fatal("expected cancellation when the store fails")
	}
}

func TestPrompter_Success(t *testing.T) {
	p := &Prompter{Store: &DirStore{Dir: t.TempDir()}}
	w, ok := p.CreateTarget("out.bin")
	if !ok {
		t.Fatal("expected a target")
	}
	w.Close()
}

type failingStore struct{}

func (failingStore) Create(context.Context, string) (io.WriteCloser, error) {
	return nil, os.ErrPermission
}
