package tree

import "io"

// LineWriter adapts an io.Writer into a plain, capability-less Output.
type LineWriter struct {
	W io.Writer
}

func (lw *LineWriter) WriteLine(s string) {
	io.WriteString(lw.W, s)
	io.WriteString(lw.W, "\n")
}
