package restable

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer assembles a resource table for serialization. It is the wire-level
// counterpart of Decode, used by the bundler and by test fixtures; it does
// not compile source resource formats.
type Writer struct {
	entries []wireEntry
}

type wireEntry struct {
	key     string
	tag     TypeCode
	payload []byte
}

func (w *Writer) add(key string, tag TypeCode, payload []byte) *Writer {
	w.entries = append(w.entries, wireEntry{key: key, tag: tag, payload: payload})
	return w
}

func (w *Writer) AddString(key, value string) *Writer {
	return w.add(key, TypeString, lengthPrefixed([]byte(value)))
}

func (w *Writer) AddBool(key string, value bool) *Writer {
	b := byte(0)
	if value {
		b = 1
	}
	return w.add(key, TypeBool, []byte{b})
}

func (w *Writer) AddInt32(key string, value int32) *Writer {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(value))
	return w.add(key, TypeInt32, buf[:])
}

func (w *Writer) AddInt64(key string, value int64) *Writer {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(value))
	return w.add(key, TypeInt64, buf[:])
}

func (w *Writer) AddFloat64(key string, value float64) *Writer {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(value))
	return w.add(key, TypeFloat64, buf[:])
}

func (w *Writer) AddBlob(key string, value []byte) *Writer {
	return w.add(key, TypeBlob, lengthPrefixed(value))
}

// WriteTo serializes the table in insertion order.
func (w *Writer) WriteTo(out io.Writer) error {
	for _, v := range []uint32{Magic, Version, uint32(len(w.entries))} {
		if err := binary.Write(out, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, e := range w.entries {
		if _, err := out.Write(lengthPrefixed([]byte(e.key))); err != nil {
			return err
		}
		if _, err := out.Write([]byte{byte(e.tag)}); err != nil {
			return err
		}
		if _, err := out.Write(e.payload); err != nil {
			return err
		}
	}
	return nil
}

func lengthPrefixed(b []byte) []byte {
	var prefix [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(prefix[:], uint64(len(b)))
	return append(prefix[:n:n], b...)
}
