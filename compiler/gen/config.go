package gen

import (
	"slices"

	"github.com/syssam/forcegen/compiler/filter"
	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/compiler/naming"
)

// defaultHeader is written at the top of every generated file.
const defaultHeader = "Code generated by forcegen. DO NOT EDIT."

// DefaultModelPackage is the import path of the runtime base types embedded
// by generated entities.
const DefaultModelPackage = "github.com/syssam/forcegen/model"

// Config holds the global configuration of a generator run.
type Config struct {
	// Header is the comment written at the top of each file.
	Header string

	// Package is the Go package name of the generated files. When empty it
	// is derived from the organisation name of the caller.
	Package string

	// ModelPackage is the import path of the runtime base types.
	ModelPackage string

	// Target is the output directory used by the default writer provider.
	Target string

	// BatchSize is the number of objects described per source call.
	BatchSize int

	// Features are the enabled feature flags.
	Features []Feature

	// ObjectFilter selects the objects to generate.
	ObjectFilter filter.ObjectFilter

	// FieldFilter selects the fields of each generated object.
	FieldFilter filter.FieldFilter

	// Selector fills the template for each object.
	Selector Selector

	// Template renders one object.
	Template Template

	// Writers provides one output writer per object.
	Writers WriterProvider
}

// OutputConfig groups the settings that decide where and how files are
// written.
type OutputConfig struct {
	Target       string
	Package      string
	ModelPackage string
	Header       string
}

// PipelineConfig groups the collaborators of the emission pipeline.
type PipelineConfig struct {
	ObjectFilter filter.ObjectFilter
	FieldFilter  filter.FieldFilter
	Selector     Selector
	Template     Template
	Writers      WriterProvider
}

// DefaultConfig returns a configuration with default header, model package,
// batch size, features and filters. It has a template but no writer
// provider; set Target or Writers before building a generator.
func DefaultConfig() *Config {
	return &Config{
		Header:       defaultHeader,
		ModelPackage: DefaultModelPackage,
		BatchSize:    load.DefaultBatchSize,
		Features:     DefaultFeatures(),
		ObjectFilter: filter.ObjectPassThrough(),
		FieldFilter:  filter.NewFieldChain(filter.NewCommonFieldFilter()),
		Template:     NewEntityTemplate(),
	}
}

// Output returns the output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target:       c.Target,
		Package:      c.Package,
		ModelPackage: c.ModelPackage,
		Header:       c.Header,
	}
}

// Pipeline returns the pipeline collaborators.
func (c *Config) Pipeline() PipelineConfig {
	return PipelineConfig{
		ObjectFilter: c.ObjectFilter,
		FieldFilter:  c.FieldFilter,
		Selector:     c.Selector,
		Template:     c.Template,
		Writers:      c.Writers,
	}
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the template engine as follows:
//
//	{{ with $.FeatureEnabled "tablename" }}
//		...
//	{{ end }}
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if name == f.Name {
			return c.HasFeature(name), nil
		}
	}
	return false, NewConfigError("Features", name, "unknown feature name")
}

// HasFeature reports if the feature is in the enabled list.
func (c *Config) HasFeature(name string) bool {
	return slices.ContainsFunc(c.Features, func(f Feature) bool {
		return f.Name == name
	})
}

// PackageName returns the Go package name for files generated for caller.
func (c *Config) PackageName(caller *load.Caller) (string, error) {
	if c.Package != "" {
		return c.Package, nil
	}
	if caller == nil {
		return naming.DefaultPackage, nil
	}
	return naming.PackageName(caller.OrganizationName)
}
