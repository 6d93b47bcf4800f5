package assembly

import (
	"bufio"
	"bytes"
	"io"
)

// boundaryPart separates the host binary, the TOC and the resource payloads
// inside a bundle. It is repeated boundaryPartCount times so the full
// pattern is unlikely to occur inside the host by accident.
var boundaryPart = []byte{'%', 0x16, 0x07, 0x13, 0x02, '%'}

const boundaryPartCount = 4

var boundary = bytes.Repeat(boundaryPart, boundaryPartCount)

// boundarySize is the length of the complete boundary pattern.
var boundarySize = len(boundary)

func isBoundary(data []byte) bool {
	return bytes.Equal(boundary, data)
}

func writeBoundary(w io.Writer) error {
	_, err := w.Write(boundary)
	return err
}

// seekBoundary reads from in until the end of the next boundary pattern and
// returns the number of bytes consumed, including the pattern itself.
// Returns -1 if no boundary was found.
func seekBoundary(in io.ReadSeeker) int64 {
	return seekPattern(in, boundary)
}

// seekPattern scans in for pattern, leaving the seek position on the first
// byte after the pattern. Returns the number of bytes consumed, or -1 if the
// pattern is absent.
func seekPattern(in io.ReadSeeker, pattern []byte) int64 {
	start, _ := in.Seek(0, io.SeekCurrent)

	var offset int64
	r := bufio.NewReader(in)

	matched := 0
	for matched < len(pattern) {
		b, err := r.ReadByte()
		if err != nil {
			return -1
		}
		if pattern[matched] == b {
			matched++
		} else if pattern[0] == b {
			matched = 1
		} else {
			matched = 0
		}
		offset++
	}

	// Reading went through the buffer, so reposition the underlying seeker.
	_, _ = in.Seek(start+offset, io.SeekStart)
	return offset
}
