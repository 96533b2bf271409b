package gen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-openapi/inflect"

	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/compiler/naming"
	"github.com/syssam/forcegen/schema"
)

type (
	// WriterProvider opens one output writer per generated object. The
	// generator writes once to each writer and always closes it.
	WriterProvider interface {
		Writer(ctx context.Context, caller *load.Caller, o *schema.Object) (io.WriteCloser, error)
	}

	// The WriterProviderFunc type is an adapter to allow the use of
	// ordinary functions as writer providers.
	WriterProviderFunc func(context.Context, *load.Caller, *schema.Object) (io.WriteCloser, error)
)

// Writer calls f(ctx, caller, o).
func (f WriterProviderFunc) Writer(ctx context.Context, caller *load.Caller, o *schema.Object) (io.WriteCloser, error) {
	return f(ctx, caller, o)
}

// FileWriterProvider writes each object to
// <Target>/<package>/<snake_case type name>.go.
type FileWriterProvider struct {
	config *Config
}

// NewFileWriterProvider returns a provider writing under c.Target.
func NewFileWriterProvider(c *Config) *FileWriterProvider {
	return &FileWriterProvider{config: c}
}

// Path returns the output path of o.
func (p *FileWriterProvider) Path(caller *load.Caller, o *schema.Object) (string, error) {
	pkg, err := p.config.PackageName(caller)
	if err != nil {
		return "", err
	}
	name := inflect.Underscore(naming.ObjectName(o, false)) + ".go"
	return filepath.Join(p.config.Target, pkg, name), nil
}

// Writer creates the output file of o, and its directory if needed.
func (p *FileWriterProvider) Writer(_ context.Context, caller *load.Caller, o *schema.Object) (io.WriteCloser, error) {
	path, err := p.Path(caller, o)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{File: f}, nil
}

// FileWriter is an output file that reports its path to templates.
type FileWriter struct {
	*os.File
}

// Path returns the path of the file.
func (w *FileWriter) Path() string { return w.Name() }
