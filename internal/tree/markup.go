package tree

import (
	"errors"
	"io"
)

// ErrMarkupNotSupported is reported for binary-compiled markup documents.
var ErrMarkupNotSupported = errors.New("binary-compiled markup documents are not supported")

// decodeMarkupDocument is the fallback renderer for entries that are not
// raster images. Decoding the binary-compiled markup format is deliberately
// unimplemented; the branch exists because the fallback order (image, then
// markup) is part of the render contract.
func decodeMarkupDocument(io.Reader) (string, error) {
	return "", ErrMarkupNotSupported
}
