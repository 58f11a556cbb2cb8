package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/sectionplanner/core/model"
)

// File is the on-disk layout of an academic calendar.
type File struct {
	Terms []model.AcademicTerm `json:"terms" yaml:"terms"`
}

// LoadFile reads the terms from a JSON or YAML file.
func LoadFile(path string) ([]model.AcademicTerm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	terms, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return terms, nil
}

// Decode reads the terms from r in the given format ("yaml", "yml" or "json").
func Decode(r io.Reader, format string) ([]model.AcademicTerm, error) {
	var f File
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&f); err != nil {
			return nil, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported calendar format: %s", format)
	}
	return f.Terms, nil
}
