// Package catalog loads flag catalogs from JSON or YAML documents and from
// SQLite catalog databases.
//
// A document has exactly three required top-level keys, easy, medium and
// hard, each a list of {country, description} records. Empty lists are
// accepted here; selecting from an empty tier fails later, at play time.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/playperu/flagquiz/internal/flagquiz"
)

// Format is the encoding of a catalog source.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// FormatOf infers the source format from the file extension. Unknown
// extensions are treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Load reads the catalog at path. Every failure is a *Error.
func Load(ctx context.Context, path string) (flagquiz.Catalog, error) {
	format := FormatOf(path)
	if format == FormatSQLite {
		return loadSQLite(ctx, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	return Decode(path, format, data)
}

// Decode parses and validates an in-memory catalog document. name is only
// used in error messages.
func Decode(name string, format Format, data []byte) (flagquiz.Catalog, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(name, data)
	case FormatYAML:
		return decodeYAML(name, data)
	default:
		return nil, parseError(name, fmt.Errorf("unsupported document format %q", format))
	}
}

func decodeJSON(name string, data []byte) (flagquiz.Catalog, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, parseError(name, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, validationError(name, "top level must be an object")
	}

	cat := make(flagquiz.Catalog, len(flagquiz.Tiers))
	for _, t := range flagquiz.Tiers {
		raw, ok := doc[t.Key()]
		if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			return nil, validationError(name, "missing or invalid %q list", t.Key())
		}
		var entries []flagquiz.Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, validationError(name, "%q entries: %v", t.Key(), err)
		}
		cat[t] = entries
	}
	if err := validateEntries(name, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func decodeYAML(name string, data []byte) (flagquiz.Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError(name, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, validationError(name, "top level must be a mapping")
	}

	values := make(map[string]*yaml.Node, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		values[root.Content[i].Value] = root.Content[i+1]
	}

	cat := make(flagquiz.Catalog, len(flagquiz.Tiers))
	for _, t := range flagquiz.Tiers {
		node, ok := values[t.Key()]
		if ok && node.Kind == yaml.AliasNode {
			node = node.Alias
		}
		if !ok || node == nil || node.Kind != yaml.SequenceNode {
			return nil, validationError(name, "missing or invalid %q list", t.Key())
		}
		var entries []flagquiz.Entry
		if err := node.Decode(&entries); err != nil {
			return nil, validationError(name, "%q entries: %v", t.Key(), err)
		}
		cat[t] = entries
	}
	if err := validateEntries(name, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// validateEntries requires a country and a description on every record. A
// blank country would otherwise be matched by a blank guess.
func validateEntries(name string, cat flagquiz.Catalog) error {
	for _, t := range flagquiz.Tiers {
		for i, e := range cat[t] {
			if strings.TrimSpace(e.Country) == "" {
				return validationError(name, "%q entry %d: country is required", t.Key(), i)
			}
			if strings.TrimSpace(e.Description) == "" {
				return validationError(name, "%q entry %d: description is required", t.Key(), i)
			}
		}
	}
	return nil
}
