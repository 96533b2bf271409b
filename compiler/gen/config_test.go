package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/compiler/naming"
)

func TestOutputConfig(t *testing.T) {
	c := &Config{
		Header:       "header",
		Package:      "acme",
		ModelPackage: "github.com/acme/model",
		Target:       "./out",
	}
	assert.Equal(t, OutputConfig{
		Target:       "./out",
		Package:      "acme",
		ModelPackage: "github.com/acme/model",
		Header:       "header",
	}, c.Output())
}

func TestPipelineConfig(t *testing.T) {
	c := DefaultConfig()
	p := c.Pipeline()
	assert.Equal(t, c.ObjectFilter, p.ObjectFilter)
	assert.Equal(t, c.FieldFilter, p.FieldFilter)
	assert.Equal(t, c.Template, p.Template)
	assert.Nil(t, p.Selector)
	assert.Nil(t, p.Writers)
}

func TestConfigFeatureEnabled(t *testing.T) {
	t.Run("enabled feature", func(t *testing.T) {
		c := &Config{Features: []Feature{FeatureSnapshot}}
		enabled, err := c.FeatureEnabled(FeatureSnapshot.Name)
		require.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("disabled feature", func(t *testing.T) {
		c := &Config{}
		enabled, err := c.FeatureEnabled(FeatureSnapshot.Name)
		require.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("unknown feature", func(t *testing.T) {
		c := &Config{}
		_, err := c.FeatureEnabled("unknown")
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("all features are known", func(t *testing.T) {
		c := &Config{Features: AllFeatures}
		for _, f := range AllFeatures {
			enabled, err := c.FeatureEnabled(f.Name)
			require.NoError(t, err, f.Name)
			assert.True(t, enabled, f.Name)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, defaultHeader, c.Header)
	assert.Equal(t, DefaultModelPackage, c.ModelPackage)
	assert.Equal(t, load.DefaultBatchSize, c.BatchSize)
	assert.True(t, c.HasFeature(FeatureJSONTags.Name))
	assert.True(t, c.HasFeature(FeatureTableName.Name))
	assert.False(t, c.HasFeature(FeatureEnumValues.Name))
	assert.False(t, c.HasFeature(FeatureSnapshot.Name))
	assert.NotNil(t, c.ObjectFilter)
	assert.NotNil(t, c.FieldFilter)
	assert.NotNil(t, c.Template)
	assert.Empty(t, c.Target)
}

func TestConfigPackageName(t *testing.T) {
	t.Run("explicit package", func(t *testing.T) {
		c := &Config{Package: "acme"}
		pkg, err := c.PackageName(&load.Caller{OrganizationName: "Other Inc"})
		require.NoError(t, err)
		assert.Equal(t, "acme", pkg)
	})

	t.Run("from organisation", func(t *testing.T) {
		pkg, err := (&Config{}).PackageName(&load.Caller{OrganizationName: "Acme Corp."})
		require.NoError(t, err)
		assert.Equal(t, "acmecorp", pkg)
	})

	t.Run("no caller", func(t *testing.T) {
		pkg, err := (&Config{}).PackageName(nil)
		require.NoError(t, err)
		assert.Equal(t, naming.DefaultPackage, pkg)
	})

	t.Run("unusable organisation", func(t *testing.T) {
		_, err := (&Config{}).PackageName(&load.Caller{OrganizationName: "---"})
		require.Error(t, err)
		assert.True(t, IsNameError(err))
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}
