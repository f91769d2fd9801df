// Package records decodes record dumps into horizon records.
//
// A dump is either a list of record objects or an object mapping keys to
// record objects (the "key-by id" layout). Both JSON and YAML are accepted.
// Every record object must carry its own id; map keys are ignored. Input
// order is preserved in both layouts.
package records

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/horizon/internal/horizon"
	"gopkg.in/yaml.v3"
)

// Format identifies a dump encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes the dump at path. "-" reads stdin.
func LoadFile[K comparable](path string) ([]horizon.Record[K], error) {
	if path == "-" {
		return Decode[K](os.Stdin, FormatJSON)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := Decode[K](f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Decode reads a dump in the given format.
func Decode[K comparable](r io.Reader, format Format) ([]horizon.Record[K], error) {
	switch format {
	case FormatJSON:
		return decodeJSON[K](r)
	case FormatYAML:
		return decodeYAML[K](r)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func decodeJSON[K comparable](r io.Reader) ([]horizon.Record[K], error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, fmt.Errorf("dump must be a list or an object of records, got %v", tok)
	}

	out := []horizon.Record[K]{}
	for i := 0; dec.More(); i++ {
		if delim == '{' {
			// Skip the map key.
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}
		var rec horizon.Record[K]
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return out, nil
}

func decodeYAML[K comparable](r io.Reader) ([]horizon.Record[K], error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []horizon.Record[K]{}, nil
		}
		return nil, fmt.Errorf("read dump: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("dump must be a list or a mapping of records")
	}

	root := doc.Content[0]
	var items []*yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		items = root.Content
	case yaml.MappingNode:
		for i := 1; i < len(root.Content); i += 2 {
			items = append(items, root.Content[i])
		}
	default:
		return nil, fmt.Errorf("dump must be a list or a mapping of records")
	}

	out := make([]horizon.Record[K], 0, len(items))
	for i, item := range items {
		rec, err := yamlRecord[K](item)
		if err != nil {
			return nil, fmt.Errorf("record %d (line %d): %w", i, item.Line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// yamlRecord routes a YAML mapping through the JSON codec so both formats
// share one set of field rules.
func yamlRecord[K comparable](node *yaml.Node) (horizon.Record[K], error) {
	var rec horizon.Record[K]
	var obj map[string]any
	if err := node.Decode(&obj); err != nil {
		return rec, err
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(data, &rec)
	return rec, err
}
