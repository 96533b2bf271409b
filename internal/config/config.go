// Package config handles the forcegen configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/syssam/forcegen/compiler/filter"
	"github.com/syssam/forcegen/compiler/gen"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultPath is the config file used when none is given.
const DefaultPath = "forcegen.yaml"

// AllObjects selects every object of the catalog.
const AllObjects = "*"

// SeedObject is always generated along with the requested objects.
const SeedObject = "User"

// Config represents the forcegen.yaml configuration file.
type Config struct {
	Version int `yaml:"version"`

	// Connection is a force:// URL or a ${VAR} reference to one.
	Connection string `yaml:"connection,omitempty"`
	// Catalog is a snapshot file replayed instead of connecting.
	Catalog    string `yaml:"catalog,omitempty"`
	APIVersion string `yaml:"apiVersion,omitempty"`

	Target       string `yaml:"target"`
	Package      string `yaml:"package,omitempty"`
	ModelPackage string `yaml:"modelPackage,omitempty"`
	Header       string `yaml:"header,omitempty"`
	Template     string `yaml:"template,omitempty"`
	BatchSize    int    `yaml:"batchSize,omitempty"`

	// Objects are generated with every object they reference. "*" means
	// all objects.
	Objects []string `yaml:"objects,omitempty"`
	// Exclude names objects that are neither generated nor referenced.
	Exclude  []string `yaml:"exclude,omitempty"`
	Features []string `yaml:"features,omitempty"`
}

// Default returns the configuration written by a fresh project.
func Default() *Config {
	return &Config{
		Version:    CurrentConfigVersion,
		Connection: "${FORCE_URL}",
		Target:     "internal",
		Objects:    []string{AllObjects},
	}
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Target == "" {
		return errors.New("target directory is required")
	}
	if c.Connection != "" && c.Catalog != "" {
		return errors.New("connection and catalog are mutually exclusive")
	}
	if c.BatchSize < 0 {
		return errors.New("batch size cannot be negative")
	}
	for _, name := range c.Features {
		if !slices.ContainsFunc(gen.AllFeatures, func(f gen.Feature) bool { return f.Name == name }) {
			return fmt.Errorf("unknown feature %q", name)
		}
	}
	return nil
}

// All reports if every object is selected.
func (c *Config) All() bool {
	return len(c.Objects) == 0 || slices.Contains(c.Objects, AllObjects)
}

// Seeds returns the objects the reference closure starts from.
func (c *Config) Seeds() []string {
	seeds := []string{SeedObject}
	for _, o := range c.Objects {
		if o != AllObjects && !slices.Contains(seeds, o) {
			seeds = append(seeds, o)
		}
	}
	return seeds
}

// ObjectFilter returns the filter selecting the objects to generate.
func (c *Config) ObjectFilter() filter.ObjectFilter {
	chain := filter.NewObjectChain()
	if c.All() {
		chain.Add(filter.ObjectPassThrough())
	} else {
		chain.Add(filter.WithReferences(c.Seeds()...))
	}
	if len(c.Exclude) > 0 {
		chain.Add(filter.ExcludeObjects(c.Exclude...))
	}
	return chain
}

// FieldFilter returns the filter applied to the fields of each object.
func (c *Config) FieldFilter() filter.FieldFilter {
	chain := filter.NewFieldChain(filter.NewCommonFieldFilter())
	if len(c.Exclude) > 0 {
		chain.Add(filter.ExcludeReferences(c.Exclude...))
	}
	return chain
}

// Options converts the configuration into generator options.
func (c *Config) Options() ([]gen.Option, error) {
	opts := []gen.Option{
		gen.WithTarget(c.Target),
		gen.WithObjectFilter(c.ObjectFilter()),
		gen.WithFieldFilter(c.FieldFilter()),
		gen.WithFeatureNames(c.Features...),
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.ModelPackage != "" {
		opts = append(opts, gen.WithModelPackage(c.ModelPackage))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.BatchSize > 0 {
		opts = append(opts, gen.WithBatchSize(c.BatchSize))
	}
	if c.Template != "" {
		tmpl, err := gen.ParseTextTemplate(c.Template)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithTemplate(tmpl))
	}
	return opts, nil
}
