package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/resbrowse/resbrowse/internal/assembly"
	"github.com/resbrowse/resbrowse/internal/restable"
)

// manifestResource describes one resource of the manifest file. Embedded
// resources carry either a payload path or a table; linked resources carry
// the target file name; assembly-linked resources carry neither.
type manifestResource struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Visibility string `json:"visibility"`

	// Path to the payload file of an embedded resource.
	Path string `json:"path,omitempty"`

	// Table maps entry keys to payload files. The resource is written as a
	// serialized key/value table with one byte-stream entry per key.
	Table map[string]string `json:"table,omitempty"`

	// Target file of a linked resource, relative to the bundle.
	Target string `json:"target,omitempty"`
}

func loadManifest(path string) []manifestResource {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to open manifest %q: %s", path, err)
	}
	var resources []manifestResource
	if err := json.Unmarshal(raw, &resources); err != nil {
		log.Fatalf("Failed to read manifest: %s", err)
	}
	return resources
}

func buildItems(resources []manifestResource) []assembly.Item {
	items := make([]assembly.Item, 0, len(resources))
	for _, res := range resources {
		if res.Name == "" {
			log.Fatalf("Manifest resource without a name")
		}

		var kind assembly.Kind
		if err := kind.UnmarshalText([]byte(res.Kind)); err != nil {
			log.Fatalf("Resource %q: %s", res.Name, err)
		}
		visibility := assembly.Public
		if res.Visibility != "" {
			if err := visibility.UnmarshalText([]byte(res.Visibility)); err != nil {
				log.Fatalf("Resource %q: %s", res.Name, err)
			}
		}

		item := assembly.Item{
			Name:       res.Name,
			Kind:       kind,
			Visibility: visibility,
			Target:     res.Target,
		}
		if kind == assembly.Embedded {
			item.Payload = embeddedPayload(res)
		}
		items = append(items, item)
	}
	return items
}

func embeddedPayload(res manifestResource) *bytes.Reader {
	if res.Path != "" && res.Table != nil {
		log.Fatalf("Resource %q has both a path and a table", res.Name)
	}
	if res.Path != "" {
		data, err := os.ReadFile(res.Path)
		if err != nil {
			log.Fatalf("Failed to read payload of %q: %s", res.Name, err)
		}
		return bytes.NewReader(data)
	}
	if res.Table != nil {
		return tablePayload(res)
	}
	log.Fatalf("Embedded resource %q has neither a path nor a table", res.Name)
	return nil
}

// tablePayload serializes the table entries in key order, so repeated runs
// of the bundler produce identical bytes.
func tablePayload(res manifestResource) *bytes.Reader {
	keys := make([]string, 0, len(res.Table))
	for key := range res.Table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var w restable.Writer
	for _, key := range keys {
		data, err := os.ReadFile(res.Table[key])
		if err != nil {
			log.Fatalf("Failed to read table entry %q of %q: %s", key, res.Name, err)
		}
		w.AddBlob(key, data)
	}

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		log.Fatalf("Failed to serialize table of %q: %s", res.Name, err)
	}
	return bytes.NewReader(buf.Bytes())
}

func main() {
	var (
		hostPath     string
		manifestPath string
		outPath      string
	)
	flag.StringVar(&hostPath, "host", "", "Host binary the resources are appended to")
	flag.StringVar(&manifestPath, "manifest", "manifest.json", "Path to the JSON resource manifest")
	flag.StringVar(&outPath, "out", "", "Path for the resulting bundle")
	flag.Parse()
	if hostPath == "" || manifestPath == "" || outPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	items := buildItems(loadManifest(manifestPath))

	host, err := os.Open(hostPath)
	if err != nil {
		log.Fatalf("Failed to open host %q: %s", hostPath, err)
	}
	defer host.Close()

	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0755)
	if err != nil {
		log.Fatalf("Failed to open output file %q: %s", outPath, err)
	}
	defer out.Close()

	fmt.Printf("Bundling %q --> %q\n", hostPath, outPath)
	logf := func(format string, args ...any) {
		fmt.Printf("\t"+format+"\n", args...)
	}
	if err := assembly.WriteBundle(out, host, items, logf); err != nil {
		_ = os.Remove(outPath)
		log.Fatalf("Bundling failed: %s", err)
	}
}
