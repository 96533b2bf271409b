package gen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pentops/log.go/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forcegen/compiler/filter"
	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/schema"
)

func testLogger(t *testing.T) {
	before := log.DefaultLogger
	log.DefaultLogger = log.NewTestLogger(t)
	t.Cleanup(func() {
		log.DefaultLogger = before
	})
}

// memWriter collects the output of one object.
type memWriter struct {
	bytes.Buffer
	closed   int
	writeErr error
	closeErr error
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.Buffer.Write(p)
}

func (w *memWriter) Close() error {
	w.closed++
	return w.closeErr
}

// memProvider hands out memWriters and remembers them by object name.
type memProvider struct {
	writers  map[string]*memWriter
	order    []string
	failOn   string
	writeErr map[string]error
	closeErr map[string]error
}

func newMemProvider() *memProvider {
	return &memProvider{
		writers:  make(map[string]*memWriter),
		writeErr: make(map[string]error),
		closeErr: make(map[string]error),
	}
}

func (p *memProvider) Writer(_ context.Context, _ *load.Caller, o *schema.Object) (io.WriteCloser, error) {
	if o.Name == p.failOn {
		return nil, errors.New("disk full")
	}
	w := &memWriter{writeErr: p.writeErr[o.Name], closeErr: p.closeErr[o.Name]}
	p.writers[o.Name] = w
	p.order = append(p.order, o.Name)
	return w, nil
}

func testCatalog() *load.Catalog {
	return &load.Catalog{
		Caller: &load.Caller{UserName: "admin@acme.test", OrganizationName: "Acme"},
		Objects: []*schema.Object{
			{Name: "User", Fields: []*schema.Field{
				{Name: "Id", Type: schema.TypeID},
				{Name: "Username", Type: schema.TypeString},
			}},
			{Name: "Account", Fields: []*schema.Field{
				{Name: "Id", Type: schema.TypeID},
				{Name: "Name", Type: schema.TypeString},
				{Name: "OwnerId", Type: schema.TypeReference, ReferenceTo: []string{"User"}, RelationshipName: "Owner"},
			}},
			{Name: "Contact", Fields: []*schema.Field{
				{Name: "Id", Type: schema.TypeID},
				{Name: "AccountId", Type: schema.TypeReference, Nillable: true, ReferenceTo: []string{"Account"}, RelationshipName: "Account"},
			}},
			{Name: "Lead", Fields: []*schema.Field{
				{Name: "Id", Type: schema.TypeID},
			}},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("missing template", func(t *testing.T) {
		c := DefaultConfig()
		c.Template = nil
		c.Writers = newMemProvider()
		_, err := New(c)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("missing writers and target", func(t *testing.T) {
		_, err := NewGenerator()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("snapshot needs target", func(t *testing.T) {
		_, err := NewGenerator(WithWriterProvider(newMemProvider()), WithFeatures(FeatureSnapshot))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("defaults", func(t *testing.T) {
		g, err := New(&Config{Template: NewEntityTemplate(), Target: t.TempDir()})
		require.NoError(t, err)
		c := g.Config()
		assert.IsType(t, &FileWriterProvider{}, c.Writers)
		assert.IsType(t, &EntitySelector{}, c.Selector)
		assert.NotNil(t, c.ObjectFilter)
		assert.NotNil(t, c.FieldFilter)
	})

	t.Run("does not modify config", func(t *testing.T) {
		c := &Config{Template: NewEntityTemplate(), Target: t.TempDir()}
		_, err := New(c)
		require.NoError(t, err)
		assert.Nil(t, c.Writers)
		assert.Nil(t, c.Selector)
	})
}

func TestGenerate(t *testing.T) {
	testLogger(t)
	ctx := context.Background()

	t.Run("generates closure of seeds", func(t *testing.T) {
		p := newMemProvider()
		n, err := Generate(ctx, load.NewCatalogSource(testCatalog()),
			WithWriterProvider(p),
			WithBatchSize(2),
			WithObjectFilter(filter.WithReferences("Contact")),
		)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.ElementsMatch(t, []string{"User", "Account", "Contact"}, p.order)
		for name, w := range p.writers {
			assert.Equal(t, 1, w.closed, name)
		}

		src := p.writers["Contact"].String()
		assert.Contains(t, src, "package acme")
		assert.Contains(t, src, "type Contact struct {")
		assertLine(t, src, "Account", "*Account", "`force:\"AccountId,ref,lazy\" json:\"account,omitempty\"`")
		assert.NotContains(t, src, `force:"Id`)
	})

	t.Run("field filter result is written back", func(t *testing.T) {
		p := newMemProvider()
		var seen []*schema.Object
		sel := SelectorFunc(func(caller *load.Caller, o *schema.Object, tmpl Template) error {
			seen = append(seen, o)
			tmpl.Set("name", o.Name)
			return nil
		})
		tmpl := MustParseTextTemplate("t", "package x\n\n// {{ .name }}\n")
		g, err := NewGenerator(
			WithWriterProvider(p),
			WithSelector(sel),
			WithTemplate(tmpl),
			WithObjectFilter(filter.IncludeObjects("Account")),
			WithFieldFilter(filter.NewFieldChain(
				filter.NewCommonFieldFilter(),
				filter.ExcludeReferences("User"),
			)),
		)
		require.NoError(t, err)
		n, err := g.Generate(ctx, load.NewCatalogSource(testCatalog()))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, seen, 1)
		assert.Equal(t, []string{"Name"}, seen[0].FieldNames())
		assert.Equal(t, "package x\n\n// Account\n", p.writers["Account"].String())
	})

	t.Run("template is reset between objects", func(t *testing.T) {
		p := newMemProvider()
		sel := SelectorFunc(func(_ *load.Caller, o *schema.Object, tmpl Template) error {
			if o.Name == "Account" {
				tmpl.Set("extra", "leaked")
			}
			tmpl.Set("name", o.Name)
			return nil
		})
		tmpl := MustParseTextTemplate("t", "package x\n\n// {{ .name }}{{ with .extra }} {{ . }}{{ end }}\n")
		n, err := Generate(ctx, load.NewCatalogSource(testCatalog()),
			WithWriterProvider(p),
			WithSelector(sel),
			WithTemplate(tmpl),
			WithObjectFilter(filter.IncludeObjects("Account", "Contact")),
		)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "package x\n\n// Account leaked\n", p.writers["Account"].String())
		assert.Equal(t, "package x\n\n// Contact\n", p.writers["Contact"].String())
	})

	t.Run("writer failure aborts run", func(t *testing.T) {
		p := newMemProvider()
		p.failOn = "Contact"
		n, err := Generate(ctx, load.NewCatalogSource(testCatalog()), WithWriterProvider(p))
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"User", "Account"}, p.order)
	})

	t.Run("render failure closes writer", func(t *testing.T) {
		p := newMemProvider()
		p.writeErr["Account"] = errors.New("broken pipe")
		n, err := Generate(ctx, load.NewCatalogSource(testCatalog()), WithWriterProvider(p))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, p.writers["Account"].closed)
		assert.NotContains(t, p.order, "Contact")
	})

	t.Run("close failure is reported", func(t *testing.T) {
		p := newMemProvider()
		p.closeErr["User"] = errors.New("sync failed")
		n, err := Generate(ctx, load.NewCatalogSource(testCatalog()), WithWriterProvider(p))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sync failed")
		assert.Equal(t, 0, n)
	})

	t.Run("selector failure", func(t *testing.T) {
		c := testCatalog()
		c.Objects = append(c.Objects, &schema.Object{Name: "2Fast__c", Custom: true})
		p := newMemProvider()
		n, err := Generate(ctx, load.NewCatalogSource(c), WithWriterProvider(p))
		require.Error(t, err)
		assert.True(t, IsNameError(err))
		assert.Equal(t, 4, n)
		assert.NotContains(t, p.order, "2Fast__c")
	})

	t.Run("invalid schema", func(t *testing.T) {
		c := testCatalog()
		c.Objects[0].Fields = append(c.Objects[0].Fields, &schema.Field{Name: "ManagerId", Type: schema.TypeReference})
		p := newMemProvider()
		n, err := Generate(ctx, load.NewCatalogSource(c), WithWriterProvider(p))
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.Equal(t, 0, n)
		assert.Empty(t, p.order)
	})

	t.Run("duplicate type name", func(t *testing.T) {
		c := testCatalog()
		c.Objects = append(c.Objects, &schema.Object{Name: "Account__c", Custom: true, Fields: []*schema.Field{
			{Name: "Id", Type: schema.TypeID},
		}})
		p := newMemProvider()
		n, err := Generate(ctx, load.NewCatalogSource(c), WithWriterProvider(p))
		require.Error(t, err)
		assert.True(t, IsNameError(err))
		assert.ErrorIs(t, err, ErrInvalidName)
		assert.Contains(t, err.Error(), "Account and Account__c")
		assert.Zero(t, n)
		assert.Empty(t, p.order)
	})

	t.Run("source failure", func(t *testing.T) {
		src := &failingSource{err: errors.New("session expired")}
		n, err := Generate(ctx, src, WithWriterProvider(newMemProvider()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session expired")
		assert.Zero(t, n)
	})
}

type failingSource struct{ err error }

func (s *failingSource) ObjectNames(context.Context) ([]string, error) { return nil, s.err }

func (s *failingSource) Describe(context.Context, []string) ([]*schema.Object, error) {
	return nil, s.err
}

func (s *failingSource) Caller(context.Context) (*load.Caller, error) { return nil, s.err }

func TestGenerateFiles(t *testing.T) {
	testLogger(t)
	ctx := context.Background()
	target := t.TempDir()

	n, err := Generate(ctx, load.NewCatalogSource(testCatalog()),
		WithTarget(target),
		WithFeatures(FeatureSnapshot),
		WithObjectFilter(filter.WithReferences("Account")),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, name := range []string{"user.go", "account.go"} {
		_, err := os.Stat(filepath.Join(target, "acme", name))
		require.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(target, "acme", "contact.go"))
	assert.True(t, os.IsNotExist(err))

	snapshot, err := load.ReadCatalog(filepath.Join(target, SnapshotFile))
	require.NoError(t, err)
	assert.Equal(t, "Acme", snapshot.Caller.OrganizationName)
	require.Len(t, snapshot.Objects, 2)

	t.Run("snapshot removed when disabled", func(t *testing.T) {
		_, err := Generate(ctx, load.NewCatalogSource(testCatalog()),
			WithTarget(target),
			WithObjectFilter(filter.WithReferences("Account")),
		)
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(target, SnapshotFile))
		assert.True(t, os.IsNotExist(err))
	})
}
