package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a plan file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the decoder by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Join(ErrUnsupportedFormat, fmt.Errorf("file %q", path))
}

// document is the on-disk layout: a top-level "plans" list.
type document struct {
	Plans []Plan `yaml:"plans" toml:"plans"`
}

// Decode parses a plan document.
func Decode(format Format, data []byte) ([]Plan, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml plans: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("decode toml plans: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml plans: unknown keys %v", undecoded)
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return doc.Plans, nil
}

type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads a YAML or TOML plan file on every Load.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) ([]Plan, error) {
	format, err := FormatFromPath(s.path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Join(ErrSourceNotFound, err)
		}
		return nil, err
	}
	return Decode(format, data)
}
