// Package restable reads the serialized key/value tables stored inside
// embedded resources. A table maps string keys to typed values; the only
// value kind that matters to the resource tree is the raw byte blob, so
// Decode drops everything else after consuming it.
package restable

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Magic identifies a serialized resource table.
const Magic uint32 = 0xBEEFCACE

// Version is the only table version this decoder understands.
const Version uint32 = 1

// TypeCode tags the value kind of a table entry on the wire.
type TypeCode byte

const (
	TypeString TypeCode = iota
	TypeBool
	TypeInt32
	TypeInt64
	TypeFloat64
	TypeBlob
)

// Length guards against corrupt tables asking for absurd allocations.
const (
	maxKeyLen   = 1 << 16
	maxValueLen = 1 << 28
)

// Entry is a single blob-valued table entry.
type Entry struct {
	Key  string
	Data []byte
}

// Decode parses a resource table from r, which must be positioned at the
// start of the table. Only blob-valued entries are returned, in table order;
// scalar entries are consumed and dropped. A malformed or truncated table
// yields nil — enumeration of sibling resources must never be derailed by
// one corrupt table, so no error crosses this boundary.
func Decode(r io.Reader) []Entry {
	entries, err := decode(r)
	if err != nil {
		return nil
	}
	return entries
}

func decode(r io.Reader) ([]Entry, error) {
	src := bufio.NewReader(r)

	var magic, version, count uint32
	if err := binary.Read(src, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, fmt.Errorf("bad table magic %#x", magic)
	}
	if err := binary.Read(src, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("unsupported table version %d", version)
	}
	if err := binary.Read(src, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	var entries []Entry
	for range count {
		key, err := readBytes(src, maxKeyLen)
		if err != nil {
			return nil, err
		}

		tag, err := src.ReadByte()
		if err != nil {
			return nil, err
		}

		switch TypeCode(tag) {
		case TypeString:
			if _, err := readBytes(src, maxValueLen); err != nil {
				return nil, err
			}
		case TypeBool:
			if _, err := src.ReadByte(); err != nil {
				return nil, err
			}
		case TypeInt32:
			if err := skip(src, 4); err != nil {
				return nil, err
			}
		case TypeInt64, TypeFloat64:
			if err := skip(src, 8); err != nil {
				return nil, err
			}
		case TypeBlob:
			data, err := readBytes(src, maxValueLen)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: string(key), Data: data})
		default:
			return nil, fmt.Errorf("unknown value type %d", tag)
		}
	}

	return entries, nil
}

func readBytes(src *bufio.Reader, max uint64) ([]byte, error) {
	n, err := binary.ReadUvarint(src)
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, fmt.Errorf("length %d exceeds limit %d", n, max)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func skip(src *bufio.Reader, n int) error {
	_, err := src.Discard(n)
	return err
}
