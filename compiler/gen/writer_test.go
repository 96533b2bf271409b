package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/schema"
)

func TestFileWriterProvider(t *testing.T) {
	target := t.TempDir()
	p := NewFileWriterProvider(MustNewConfig(WithTarget(target)))
	caller := &load.Caller{OrganizationName: "Acme Corp"}

	t.Run("path", func(t *testing.T) {
		path, err := p.Path(caller, &schema.Object{Name: "AccountContactRole"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(target, "acmecorp", "account_contact_role.go"), path)

		path, err = p.Path(nil, &schema.Object{Name: "Invoice__c", Custom: true})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(target, "model", "invoice.go"), path)
	})

	t.Run("writer creates file", func(t *testing.T) {
		w, err := p.Writer(context.Background(), caller, &schema.Object{Name: "Account"})
		require.NoError(t, err)
		_, err = w.Write([]byte("package acmecorp\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := filepath.Join(target, "acmecorp", "account.go")
		assert.Equal(t, path, w.(*FileWriter).Path())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "package acmecorp\n", string(data))
	})

	t.Run("invalid package", func(t *testing.T) {
		_, err := p.Writer(context.Background(), &load.Caller{OrganizationName: "!!"}, &schema.Object{Name: "Account"})
		require.Error(t, err)
		assert.True(t, IsNameError(err))
	})
}
