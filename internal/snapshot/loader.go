// Package snapshot reads entity snapshots from YAML, JSON or TOML documents.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Format is a supported document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// Document is the on-disk shape of a snapshot.
type Document struct {
	Entities []model.EntityRecord `json:"entities" yaml:"entities" toml:"entities"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "file %q", path)
}

// Decode parses a snapshot document. An empty document yields no entities.
func Decode(data []byte, format Format) ([]model.EntityRecord, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.EntityRecord{}, nil
	}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s snapshot", format)
	}

	if doc.Entities == nil {
		doc.Entities = []model.EntityRecord{}
	}
	return doc.Entities, nil
}

// Load reads and decodes the snapshot file at path.
func Load(path string) ([]model.EntityRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot file '%s'", path)
	}
	entities, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot file '%s'", path)
	}
	return entities, nil
}

// FileSource serves a snapshot file. The file is re-read on every load so
// edits are picked up without a restart.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) LoadEntities(ctx context.Context) ([]model.EntityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}
