package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/coursegraph/coursegraph/pkg/catalog"
)

// MarshalCatalog converts a graph to JSON bytes.
// Courses are sorted by ID for deterministic output.
func MarshalCatalog(g *catalog.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCatalogTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalCatalog deserializes JSON bytes to a Catalog.
func UnmarshalCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// WriteCatalogFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteCatalogFile(g *catalog.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeCatalogTo(g, f)
}

// WriteCatalog writes a graph as JSON to an io.Writer.
// Use MarshalCatalog for in-memory serialization or WriteCatalogFile for files.
func WriteCatalog(g *catalog.Graph, w io.Writer) error {
	return writeCatalogTo(g, w)
}

// ReadCatalogFile reads a JSON file and returns the decoded graph.
// Returns validation errors for malformed wire data or graph violations.
func ReadCatalogFile(path string) (*catalog.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readCatalogFrom(f)
}

// ReadCatalog decodes a JSON catalog from an io.Reader into a graph.
func ReadCatalog(r io.Reader) (*catalog.Graph, error) {
	return readCatalogFrom(r)
}

func writeCatalogTo(g *catalog.Graph, w io.Writer) error {
	out := FromGraph(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readCatalogFrom(r io.Reader) (*catalog.Graph, error) {
	var data Catalog
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(data)
}
