package load

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/forcegen/schema"
)

// Snapshot formats, chosen by file extension.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// FormatOf returns the snapshot format of path.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported snapshot extension %q (use .json, .yaml or .msgpack)", filepath.Ext(path))
	}
}

// Marshal encodes the catalog in the given format.
func (c *Catalog) Marshal(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(c, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		return msgpack.Marshal(c)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
}

// UnmarshalCatalog decodes a catalog in the given format.
func UnmarshalCatalog(data []byte, format string) (*Catalog, error) {
	c := &Catalog{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, c)
	case FormatYAML:
		err = yaml.Unmarshal(data, c)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, c)
	default:
		err = fmt.Errorf("unsupported snapshot format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ReadCatalog reads a snapshot file.
func ReadCatalog(path string) (*Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	c, err := UnmarshalCatalog(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return c, nil
}

// WriteCatalog writes a snapshot file, creating parent directories.
func WriteCatalog(path string, c *Catalog) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(format)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// CatalogSource serves a described catalog. Every Describe call returns
// fresh copies so that filters may mutate them.
type CatalogSource struct {
	catalog *Catalog
	index   map[string]*schema.Object
}

// NewCatalogSource returns a source serving c.
func NewCatalogSource(c *Catalog) *CatalogSource {
	index := make(map[string]*schema.Object, len(c.Objects))
	for _, o := range c.Objects {
		index[o.Name] = o
	}
	return &CatalogSource{catalog: c, index: index}
}

// OpenFile returns a source serving the snapshot at path.
func OpenFile(path string) (*CatalogSource, error) {
	c, err := ReadCatalog(path)
	if err != nil {
		return nil, err
	}
	return NewCatalogSource(c), nil
}

// ObjectNames implements Source.
func (s *CatalogSource) ObjectNames(context.Context) ([]string, error) {
	names := make([]string, len(s.catalog.Objects))
	for i, o := range s.catalog.Objects {
		names[i] = o.Name
	}
	return names, nil
}

// Describe implements Source.
func (s *CatalogSource) Describe(_ context.Context, names []string) ([]*schema.Object, error) {
	objects := make([]*schema.Object, 0, len(names))
	for _, name := range names {
		o, ok := s.index[name]
		if !ok {
			return nil, fmt.Errorf("object %q not in catalog", name)
		}
		objects = append(objects, o.Clone())
	}
	return objects, nil
}

// Caller implements Source. A snapshot without caller yields an empty one.
func (s *CatalogSource) Caller(context.Context) (*Caller, error) {
	if s.catalog.Caller == nil {
		return &Caller{}, nil
	}
	c := *s.catalog.Caller
	return &c, nil
}
