package calendar

import (
	"context"

	"github.com/kilianp07/sectionplanner/core/factory"
	"github.com/kilianp07/sectionplanner/core/model"
)

// Source supplies the raw calendar terms.
type Source interface {
	Terms(ctx context.Context) ([]model.AcademicTerm, error)
}

// FileSource reads terms from a local JSON or YAML file.
type FileSource struct {
	Path string
}

// Terms implements Source.
func (s FileSource) Terms(context.Context) ([]model.AcademicTerm, error) {
	return LoadFile(s.Path)
}

// Paths returns the files backing the source so they can be watched.
func (s FileSource) Paths() []string { return []string{s.Path} }

var sourceRegistry = factory.NewRegistry[Source]()

func init() {
	_ = RegisterSource("file", func(conf map[string]any) (Source, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return FileSource{Path: c.Path}, nil
	})
}

// RegisterSource adds a calendar source factory identified by name.
func RegisterSource(name string, f factory.Factory[Source]) error {
	return sourceRegistry.Register(name, f)
}

// NewSource builds the calendar source described by cfg.
func NewSource(cfg factory.ModuleConfig) (Source, error) {
	return sourceRegistry.Create(cfg)
}

// Load fetches the terms from src and builds a Calendar.
func Load(ctx context.Context, src Source) (*Calendar, error) {
	terms, err := src.Terms(ctx)
	if err != nil {
		return nil, err
	}
	return New(terms)
}
