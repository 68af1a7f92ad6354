// Package manifest loads page manifests: a page's metadata together with its
// governance disclaimer, stored as YAML or JSON next to the content.
package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/govgate/internal/model"
)

// Format identifies a manifest encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	// ErrInvalidShape is returned when a document does not match the manifest schema
	ErrInvalidShape = errors.New("invalid manifest shape")
)

// Manifest is one page's governance input
type Manifest struct {
	Page       model.PageMeta   `json:"page" yaml:"page"`
	Disclaimer model.Disclaimer `json:"disclaimer" yaml:"disclaimer"`

	// Path is the file the manifest was read from, empty for embedded manifests
	Path string `json:"-" yaml:"-"`
}

// Subject names the page for reports: its pathname, else the file name
func (m *Manifest) Subject() string {
	if m.Page.Pathname != "" {
		return m.Page.Pathname
	}
	if m.Path != "" {
		return filepath.Base(m.Path)
	}
	return "(unnamed)"
}

// FormatFromPath picks a format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses a manifest file
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse decodes a manifest after checking its shape against the schema
func Parse(data []byte, format Format) (*Manifest, error) {
	// 1. Decode into a generic document
	var doc interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	// 2. Normalize to JSON values so YAML and JSON validate identically
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize manifest: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(normalized, &generic); err != nil {
		return nil, fmt.Errorf("normalize manifest: %w", err)
	}

	// 3. Shape check
	if err := checkShape(generic); err != nil {
		return nil, err
	}

	// 4. Typed decode
	var m Manifest
	if err := json.Unmarshal(normalized, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Page.PageType == "" {
		m.Page.PageType = model.PageOther
	}
	return &m, nil
}

// Discover walks dir and returns every manifest file in sorted order
func Discover(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ferr := FormatFromPath(path); ferr == nil {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover manifests: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Expand resolves a batch argument: a directory is walked, a manifest file is
// returned as-is, and any other file is read as a list of paths, one per line.
// Blank lines and lines starting with # are skipped.
func Expand(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", arg, err)
	}
	if info.IsDir() {
		return Discover(arg)
	}
	if _, err := FormatFromPath(arg); err == nil {
		return []string{arg}, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}

	base := filepath.Dir(arg)
	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}
	return paths, nil
}
