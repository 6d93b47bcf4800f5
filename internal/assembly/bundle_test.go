package assembly

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestBundle(t *testing.T, dir string, items []Item) string {
	t.Helper()
	host := bytes.NewReader([]byte("HOST-BINARY-CONTENT"))
	path := filepath.Join(dir, "module.bin")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteBundle(out, host, items, nil))
	require.NoError(t, out.Close())
	return path
}

func TestBundleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	payloadA := []byte("first payload")
	payloadB := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}

	linkedData := []byte("linked file content")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strings.bin"), linkedData, 0o644))

	path := writeTestBundle(t, dir, []Item{
		{Name: "App.g.resources", Kind: Embedded, Visibility: Public, Payload: bytes.NewReader(payloadA)},
		{Name: "icon.png", Kind: Embedded, Visibility: Private, Payload: bytes.NewReader(payloadB)},
		{Name: "strings", Kind: Linked, Visibility: Public, Target: "strings.bin"},
		{Name: "satellite", Kind: AssemblyLinked, Visibility: Public},
	})

	mod, err := OpenBundle(path)
	require.NoError(t, err)
	defer mod.Close()

	resources := mod.Resources()
	require.Len(t, resources, 4)

	// Declared order is preserved.
	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"App.g.resources", "icon.png", "strings", "satellite"}, names)

	assert.Equal(t, Embedded, resources[0].Kind)
	assert.Equal(t, Private, resources[1].Visibility)

	t.Run("embedded payloads", func(t *testing.T) {
		r, err := resources[0].Open()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, payloadA, data)

		r, err = resources[1].Open()
		require.NoError(t, err)
		data, err = io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, payloadB, data)
	})

	t.Run("open returns independent views at offset zero", func(t *testing.T) {
		first, err := resources[0].Open()
		require.NoError(t, err)
		_, err = first.Seek(5, io.SeekStart)
		require.NoError(t, err)

		second, err := resources[0].Open()
		require.NoError(t, err)
		data, err := io.ReadAll(second)
		require.NoError(t, err)
		assert.Equal(t, payloadA, data, "second view must start at offset 0")
		assert.Equal(t, int64(len(payloadA)), second.Size())
	})

	t.Run("linked resource", func(t *testing.T) {
		r, err := resources[2].Open()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, linkedData, data)
	})

	t.Run("assembly-linked has no payload", func(t *testing.T) {
		_, err := resources[3].Open()
		assert.Error(t, err)
	})
}

func TestOpenBundle_PlainHostHasNoResources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.bin")
	require.NoError(t, os.WriteFile(path, []byte("just a binary, no resources"), 0o644))

	mod, err := OpenBundle(path)
	require.NoError(t, err)
	defer mod.Close()
	assert.Empty(t, mod.Resources())
}

func TestOpenBundle_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := writeTestBundle(t, dir, []Item{
		{Name: "res", Kind: Embedded, Visibility: Public, Payload: bytes.NewReader([]byte("payload-bytes"))},
	})
	full, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mangle func([]byte) []byte
	}{
		{"truncated toc", func(b []byte) []byte {
			return b[:len("HOST-BINARY-CONTENT")+boundarySize+4]
		}},
		{"truncated payload", func(b []byte) []byte {
			return b[:len(b)-boundarySize-4]
		}},
		{"missing trailer", func(b []byte) []byte {
			return b[:len(b)-boundarySize]
		}},
		{"garbled toc json", func(b []byte) []byte {
			idx := bytes.Index(b, []byte(`"name"`))
			require.GreaterOrEqual(t, idx, 0)
			out := append([]byte{}, b...)
			out[idx+1] = '?'
			return out
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, "corrupt.bin")
			require.NoError(t, os.WriteFile(p, tt.mangle(full), 0o644))
			_, err := OpenBundle(p)
			assert.Error(t, err)
			var corrupt CorruptBundleError
			assert.ErrorAs(t, err, &corrupt)
		})
	}
}

func TestWriteBundle_RejectsDoubleEmbedding(t *testing.T) {
	dir := t.TempDir()
	path := writeTestBundle(t, dir, []Item{
		{Name: "res", Kind: Embedded, Visibility: Public, Payload: bytes.NewReader([]byte("x"))},
	})
	bundled, err := os.ReadFile(path)
	require.NoError(t, err)

	var out bytes.Buffer
	err = WriteBundle(&out, bytes.NewReader(bundled), []Item{
		{Name: "again", Kind: Embedded, Visibility: Public, Payload: bytes.NewReader([]byte("y"))},
	}, nil)
	assert.ErrorContains(t, err, "already contains")
}
