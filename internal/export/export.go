// Package export persists raw resource bytes to a destination: a local
// directory or an S3-compatible object store. It also adapts a Store into
// the tree's save prompt.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/resbrowse/resbrowse/internal/tree"
)

// Store creates writable destinations for exported resources.
type Store interface {
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// DirStore writes exports into a directory on the local filesystem.
type DirStore struct {
	Dir string
}

func (s *DirStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	name = sanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("empty export name")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	return f, nil
}

// sanitizeName flattens path separators so exports never escape the target.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(name, "/", "_")
	return strings.Trim(name, ". ")
}

// Prompter adapts a Store to the tree's file-persistence prompt. Creation
// failures surface as cancellation: the save reports false instead of
// aborting anything else.
type Prompter struct {
	Store Store
	Ctx   context.Context
	Log   *slog.Logger
}

func (p *Prompter) CreateTarget(suggested string) (io.WriteCloser, bool) {
	ctx := p.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := p.Store.Create(ctx, suggested)
	if err != nil {
		if p.Log != nil {
			p.Log.Warn("export target unavailable", "name", suggested, "error", err)
		}
		return nil, false
	}
	return w, true
}

var _ tree.Prompter = (*Prompter)(nil)
