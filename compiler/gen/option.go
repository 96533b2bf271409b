package gen

import (
	"errors"
	"go/token"
	"slices"

	"golang.org/x/mod/module"

	"github.com/syssam/forcegen/compiler/filter"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the Go package name of the generated files.
// For example: "acmemodel".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		switch {
		case pkg == "":
			return NewConfigError("Package", nil, "package cannot be empty")
		case !token.IsIdentifier(pkg) || token.IsKeyword(pkg):
			return NewConfigError("Package", pkg, "package must be a valid Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithModelPackage sets the import path of the runtime base types.
// For example: "github.com/org/project/model".
func WithModelPackage(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("ModelPackage", nil, "model package cannot be empty")
		}
		if err := module.CheckImportPath(path); err != nil {
			return NewConfigError("ModelPackage", path, err.Error())
		}
		c.ModelPackage = path
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithBatchSize sets the number of objects described per source call.
func WithBatchSize(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("BatchSize", n, "batch size must be positive")
		}
		c.BatchSize = n
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.HasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables specific features.
func WithoutFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			c.Features = slices.DeleteFunc(c.Features, func(e Feature) bool {
				return e.Name == f.Name
			})
		}
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := featureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature name")
			}
			if err := WithFeatures(f)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

func featureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// WithObjectFilter sets the filter selecting the objects to generate.
func WithObjectFilter(f filter.ObjectFilter) Option {
	return func(c *Config) error {
		if f == nil {
			return NewConfigError("ObjectFilter", nil, "object filter cannot be nil")
		}
		c.ObjectFilter = f
		return nil
	}
}

// WithFieldFilter sets the filter applied to the fields of each object.
func WithFieldFilter(f filter.FieldFilter) Option {
	return func(c *Config) error {
		if f == nil {
			return NewConfigError("FieldFilter", nil, "field filter cannot be nil")
		}
		c.FieldFilter = f
		return nil
	}
}

// WithSelector sets the selector filling the template.
func WithSelector(s Selector) Option {
	return func(c *Config) error {
		if s == nil {
			return NewConfigError("Selector", nil, "selector cannot be nil")
		}
		c.Selector = s
		return nil
	}
}

// WithTemplate sets the template rendering each object.
func WithTemplate(t Template) Option {
	return func(c *Config) error {
		if t == nil {
			return NewConfigError("Template", nil, "template cannot be nil")
		}
		c.Template = t
		return nil
	}
}

// WithWriterProvider sets the provider of per-object output writers.
func WithWriterProvider(w WriterProvider) Option {
	return func(c *Config) error {
		if w == nil {
			return NewConfigError("Writers", nil, "writer provider cannot be nil")
		}
		c.Writers = w
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config from DefaultConfig and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
