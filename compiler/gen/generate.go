package gen

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pentops/log.go/log"

	"github.com/syssam/forcegen/compiler/filter"
	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/compiler/naming"
	"github.com/syssam/forcegen/schema"
)

// Generator runs the emission pipeline: it describes a catalog, selects the
// objects to generate and renders one artifact per object. Objects are
// processed one at a time, in the order returned by the object filter.
type Generator struct {
	config *Config
}

// NewGenerator creates a generator from DefaultConfig and opts.
func NewGenerator(opts ...Option) (*Generator, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return New(c)
}

// New creates a generator from c. It fails with a ConfigError, before any
// I/O, when no template is set or when there is neither a writer provider
// nor a target directory. Missing filters default to pass-through and a
// missing selector to the entity selector.
func New(c *Config) (*Generator, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing configuration")
	}
	cfg := *c
	if cfg.Template == nil {
		return nil, NewConfigError("Template", nil, "missing template")
	}
	if cfg.Writers == nil {
		if cfg.Target == "" {
			return nil, NewConfigError("Writers", nil, "missing writer provider or target directory")
		}
		cfg.Writers = NewFileWriterProvider(&cfg)
	}
	if cfg.HasFeature(FeatureSnapshot.Name) && cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "feature "+FeatureSnapshot.Name+" requires a target directory")
	}
	if cfg.Selector == nil {
		cfg.Selector = NewEntitySelector(&cfg)
	}
	if cfg.ObjectFilter == nil {
		cfg.ObjectFilter = filter.ObjectPassThrough()
	}
	if cfg.FieldFilter == nil {
		cfg.FieldFilter = filter.FieldPassThrough()
	}
	return &Generator{config: &cfg}, nil
}

// Config returns the configuration of the generator.
func (g *Generator) Config() *Config { return g.config }

// Generate is a convenience wrapper around NewGenerator and
// Generator.Generate.
func Generate(ctx context.Context, src load.Source, opts ...Option) (int, error) {
	g, err := NewGenerator(opts...)
	if err != nil {
		return 0, err
	}
	return g.Generate(ctx, src)
}

// Generate describes the catalog of src and renders every object selected by
// the object filter. The first error aborts the run; the returned count is
// the number of artifacts completed before it.
func (g *Generator) Generate(ctx context.Context, src load.Source) (int, error) {
	ctx = log.WithField(ctx, "run", uuid.NewString())
	c := g.config

	objects, err := load.DescribeAll(ctx, src, c.BatchSize)
	if err != nil {
		log.WithError(ctx, err).Error("describing catalog")
		return 0, err
	}
	caller, err := src.Caller(ctx)
	if err != nil {
		log.WithError(ctx, err).Error("fetching caller")
		return 0, err
	}
	selected := c.ObjectFilter.Filter(objects)
	log.WithFields(ctx, map[string]interface{}{
		"described": len(objects),
		"selected":  len(selected),
	}).Info("generating objects")
	if err := checkTypeNames(selected); err != nil {
		log.WithError(ctx, err).Error("selecting objects")
		return 0, err
	}

	count := 0
	for _, o := range selected {
		if err := g.emit(ctx, caller, o); err != nil {
			actx := log.WithFields(ctx, map[string]interface{}{
				"object":    o.Name,
				"completed": count,
			})
			log.WithError(actx, err).Error("generation aborted")
			return count, err
		}
		count++
	}
	if err := g.snapshot(caller, selected); err != nil {
		log.WithError(ctx, err).Error("writing snapshot")
		return count, err
	}
	log.WithField(ctx, "count", count).Info("generated objects")
	return count, nil
}

// checkTypeNames rejects objects rendering to the type name of an earlier
// object, such as Account and Account__c. Names are compared without case
// since they also name the output files.
func checkTypeNames(objects []*schema.Object) error {
	seen := make(map[string]string, len(objects))
	for _, o := range objects {
		name := naming.ObjectName(o, false)
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return naming.NewNameError("type", name, fmt.Sprintf("rendered for both %s and %s", prev, o.Name))
		}
		seen[key] = o.Name
	}
	return nil
}

// emit renders one object. The writer, once acquired, is closed whatever
// happens during rendering.
func (g *Generator) emit(ctx context.Context, caller *load.Caller, o *schema.Object) (err error) {
	c := g.config
	ctx = log.WithField(ctx, "object", o.Name)
	tmpl := c.Template
	tmpl.Reset()

	fields, err := c.FieldFilter.Filter(o)
	if err != nil {
		return NewGenerationError(PhaseFilter, o.Name, err)
	}
	o.Fields = fields
	if err := o.Validate(); err != nil {
		return NewSchemaError(o.Name, err)
	}
	if err := c.Selector.Select(caller, o, tmpl); err != nil {
		return NewGenerationError(PhaseSelect, o.Name, err)
	}
	w, err := c.Writers.Writer(ctx, caller, o)
	if err != nil {
		return NewGenerationError(PhaseWriter, o.Name, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = NewGenerationError(PhaseClose, o.Name, cerr)
		}
	}()
	if err := tmpl.Write(w); err != nil {
		return NewGenerationError(PhaseRender, o.Name, err)
	}
	log.WithField(ctx, "fields", len(o.Fields)).Debug("generated object")
	return nil
}

// snapshot writes the generated objects when FeatureSnapshot is enabled and
// runs the cleanup of every disabled feature.
func (g *Generator) snapshot(caller *load.Caller, objects []*schema.Object) error {
	c := g.config
	if c.HasFeature(FeatureSnapshot.Name) {
		return load.WriteCatalog(filepath.Join(c.Target, SnapshotFile), &load.Catalog{
			Caller:  caller,
			Objects: objects,
		})
	}
	for _, f := range AllFeatures {
		if f.cleanup != nil && !c.HasFeature(f.Name) {
			if err := f.cleanup(c); err != nil {
				return err
			}
		}
	}
	return nil
}
