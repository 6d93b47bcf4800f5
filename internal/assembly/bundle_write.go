package assembly

import (
	"encoding/json"
	"fmt"
	"io"
)

// Item describes one resource to put into a bundle.
type Item struct {
	Name       string
	Kind       Kind
	Visibility Visibility
	// Payload carries the content of embedded resources. It is rewound
	// before use; its entire readable content ends up in the bundle.
	Payload io.ReadSeeker
	// Target names the payload file of linked resources, relative to the
	// bundle location.
	Target string
}

// LogFunc reports bundling progress. A nil LogFunc discards all output.
type LogFunc func(format string, args ...any)

// WriteBundle writes host followed by a resource section for items to out.
// The host must not already contain a resource section. Item order is
// preserved: it becomes the module's declared resource order.
func WriteBundle(out io.Writer, host io.ReadSeeker, items []Item, logf LogFunc) error {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if err := verifyHost(host); err != nil {
		return fmt.Errorf("verify host: %w", err)
	}

	toc, err := buildTOC(items)
	if err != nil {
		return fmt.Errorf("build TOC: %w", err)
	}
	rawTOC, err := json.Marshal(toc)
	if err != nil {
		return fmt.Errorf("marshal TOC: %w", err)
	}

	logf("Writing host binary")
	if _, err := io.Copy(out, host); err != nil {
		return fmt.Errorf("copy host: %w", err)
	}
	if err := writeBoundary(out); err != nil {
		return err
	}

	logf("Adding TOC (%d bytes, %d resources)", len(rawTOC), len(toc))
	if _, err := out.Write(rawTOC); err != nil {
		return fmt.Errorf("write TOC: %w", err)
	}
	if err := writeBoundary(out); err != nil {
		return err
	}

	for i, e := range toc {
		if e.Kind != Embedded {
			logf("Recording %q (%s)", e.Name, e.Kind)
			continue
		}
		logf("Adding %q (%d bytes)", e.Name, e.Size)
		if _, err := io.Copy(out, items[i].Payload); err != nil {
			return fmt.Errorf("write resource %q: %w", e.Name, err)
		}
	}
	return writeBoundary(out)
}

// verifyHost ensures the host has no resource section yet and rewinds it.
func verifyHost(host io.ReadSeeker) error {
	if _, err := host.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if seekBoundary(host) != -1 {
		return fmt.Errorf("host already contains a resource section")
	}
	_, err := host.Seek(0, io.SeekStart)
	return err
}

// buildTOC sizes every embedded payload and rewinds it for copying.
func buildTOC(items []Item) ([]tocEntry, error) {
	toc := make([]tocEntry, 0, len(items))
	for _, it := range items {
		if it.Name == "" {
			return nil, fmt.Errorf("resource without a name")
		}
		e := tocEntry{
			Name:       it.Name,
			Kind:       it.Kind,
			Visibility: it.Visibility,
			Target:     it.Target,
		}
		switch it.Kind {
		case Embedded:
			if it.Payload == nil {
				return nil, fmt.Errorf("embedded resource %q has no payload", it.Name)
			}
			size, err := payloadSize(it.Payload)
			if err != nil {
				return nil, fmt.Errorf("resource %q: %w", it.Name, err)
			}
			e.Size = size
		case Linked:
			if it.Target == "" {
				return nil, fmt.Errorf("linked resource %q has no target", it.Name)
			}
		}
		toc = append(toc, e)
	}
	return toc, nil
}

// payloadSize returns the full readable size and seeks back to the start.
func payloadSize(r io.ReadSeeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}
