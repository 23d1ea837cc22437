// Package output serializes analysis summaries to JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ursisterbtw/gh-analyzer/pkg/analyzer"
	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
)

// Format is a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML}

// ParseFormat returns the Format named by s (case-insensitive; "yml" is
// accepted for YAML). Unknown names fail with INVALID_FORMAT.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q: use json or yaml", s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string { return string(f) }

// Write encodes s to w in the given format.
// JSON is indented with two spaces.
func Write(w io.Writer, s *analyzer.Summary, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// DefaultPath returns "<repo name>_summary.<ext>".
func DefaultPath(s *analyzer.Summary, f Format) string {
	name := s.Repo.Name
	if name == "" {
		name = "repository"
	}
	return fmt.Sprintf("%s_summary.%s", filepath.Base(name), f.Ext())
}

// Export writes s to the file at path, replacing any existing file.
func Export(s *analyzer.Summary, f Format, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := Write(file, s, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
