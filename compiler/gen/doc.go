// Package gen generates Go entity types from a described catalog.
//
// # Pipeline
//
// A Generator runs one pass over a catalog:
//
//	Source (REST API or snapshot file)
//	        ↓
//	   load.DescribeAll (batched describe calls)
//	        ↓
//	   ObjectFilter (which objects)
//	        ↓
//	   per object: FieldFilter → Selector → Template → WriterProvider
//
// Objects are processed one after the other. For each object the template
// is reset, the field filter result is written back to the object, the
// selector fills the template, and the rendered output goes to a writer
// that is always closed. The first error aborts the run and Generate
// returns the number of artifacts completed before it.
//
// # Key Types
//
//   - Config: global configuration, built with functional options
//   - Type: template view of one entity, with its Fields and Enums
//   - Field: Go name, GoType, struct tag options and comments of one field
//   - Selector: fills a Template from an object (EntitySelector)
//   - Template: renders one object (EntityTemplate, TextTemplate)
//   - WriterProvider: opens one writer per object (FileWriterProvider)
//
// # Error Handling
//
// The package provides structured error types:
//
//   - ConfigError: invalid configuration, reported before any I/O
//   - SchemaError: object breaking the reference-target invariant
//   - GenerationError: failure while emitting one object, naming the phase
//
// Names that cannot be emitted as Go identifiers are reported as
// naming.NameError and can be matched with IsNameError or ErrInvalidName.
//
//	n, err := gen.Generate(ctx, src, gen.WithTarget("./model"))
//	if gen.IsNameError(err) {
//	    // rename or exclude the object
//	}
//
// # Configuration
//
//	g, err := gen.NewGenerator(
//	    gen.WithTarget("./internal"),
//	    gen.WithObjectFilter(filter.WithReferences("User", "Account")),
//	    gen.WithFeatures(gen.FeatureEnumValues),
//	)
//
// # Generated Output
//
//	{target}/
//	├── catalog.json          // snapshot feature only
//	└── {package}/
//	    └── {entity}.go       // entity struct, TableName, picklist enums
//
// The package name is derived from the organisation of the caller unless
// WithPackage is used.
//
// # Features
//
//   - jsontags: json struct tags on entity fields
//   - tablename: TableName method on every entity
//   - enumvalues: <Enum>Values slice for every picklist enum
//   - snapshot: catalog snapshot of the generated objects
package gen
