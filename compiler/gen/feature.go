package gen

import (
	"os"
	"path/filepath"
)

// SnapshotFile is the name of the catalog snapshot written by FeatureSnapshot.
const SnapshotFile = "catalog.json"

var (
	// FeatureJSONTags adds json struct tags to generated entity fields.
	FeatureJSONTags = Feature{
		Name:        "jsontags",
		Stage:       Stable,
		Default:     true,
		Description: "Adds json tags with lower-camel names to entity fields",
	}

	// FeatureTableName generates a TableName method returning the object
	// name of each entity.
	FeatureTableName = Feature{
		Name:        "tablename",
		Stage:       Stable,
		Default:     true,
		Description: "Generates a TableName method on every entity",
	}

	// FeatureEnumValues generates a slice listing the enabled members of
	// every picklist enum.
	FeatureEnumValues = Feature{
		Name:        "enumvalues",
		Stage:       Beta,
		Default:     false,
		Description: "Generates a <Enum>Values slice for every picklist enum",
	}

	// FeatureSnapshot stores the selected objects, after field filtering, as a
	// catalog snapshot next to the generated code.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Experimental,
		Default:     false,
		Description: "Writes the generated objects to " + SnapshotFile + " in the target directory",
		cleanup: func(c *Config) error {
			return remove(c.Target, SnapshotFile)
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureJSONTags,
		FeatureTableName,
		FeatureEnumValues,
		FeatureSnapshot,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete but may still change their output.
	Alpha

	// Beta features are documented and not expected to change.
	Beta

	// Stable features have been in use for a while.
	Stable
)

// A Feature of the codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the output of a feature when it is disabled.
	cleanup func(*Config) error
}

// DefaultFeatures returns the features enabled by default.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if dir == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
