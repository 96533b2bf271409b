package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Object is a named entity of the remote catalog, analogous to a table.
type Object struct {
	Name   string   `json:"name" yaml:"name" msgpack:"name"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Custom bool     `json:"custom,omitempty" yaml:"custom,omitempty" msgpack:"custom,omitempty"`
	Fields []*Field `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	// Inherited lists the storage names of fields dropped by a filter
	// because the generated type inherits them from its base type.
	Inherited []string `json:"inherited,omitempty" yaml:"inherited,omitempty" msgpack:"inherited,omitempty"`
}

// Field is a named, typed attribute of an object.
type Field struct {
	// Name is the field name as seen by generators. Filters may rename it to
	// avoid identifier collisions.
	Name string `json:"name" yaml:"name" msgpack:"name"`
	// APIName is the name the remote service knows the field by. It is
	// empty until a filter renames the field.
	APIName           string      `json:"apiName,omitempty" yaml:"apiName,omitempty" msgpack:"apiName,omitempty"`
	Label             string      `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Type              Type        `json:"type" yaml:"type" msgpack:"type"`
	Custom            bool        `json:"custom,omitempty" yaml:"custom,omitempty" msgpack:"custom,omitempty"`
	Nillable          bool        `json:"nillable,omitempty" yaml:"nillable,omitempty" msgpack:"nillable,omitempty"`
	DefaultedOnCreate bool        `json:"defaultedOnCreate,omitempty" yaml:"defaultedOnCreate,omitempty" msgpack:"defaultedOnCreate,omitempty"`
	ReferenceTo       []string    `json:"referenceTo,omitempty" yaml:"referenceTo,omitempty" msgpack:"referenceTo,omitempty"`
	RelationshipName  string      `json:"relationshipName,omitempty" yaml:"relationshipName,omitempty" msgpack:"relationshipName,omitempty"`
	PicklistValues    []EnumEntry `json:"picklistValues,omitempty" yaml:"picklistValues,omitempty" msgpack:"picklistValues,omitempty"`
	// RestrictedPicklist is set when only PicklistValues may be stored.
	RestrictedPicklist bool `json:"restrictedPicklist,omitempty" yaml:"restrictedPicklist,omitempty" msgpack:"restrictedPicklist,omitempty"`
}

// EnumEntry is one value of a picklist field.
type EnumEntry struct {
	Value   string  `json:"value" yaml:"value" msgpack:"value"`
	Label   *string `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Active  bool    `json:"active,omitempty" yaml:"active,omitempty" msgpack:"active,omitempty"`
	Default bool    `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" msgpack:"defaultValue,omitempty"`
}

// Entry returns an EnumEntry with the given value and label. An empty label
// is stored as absent.
func Entry(value, label string, active, dflt bool) EnumEntry {
	e := EnumEntry{Value: value, Active: active, Default: dflt}
	if label != "" {
		e.Label = &label
	}
	return e
}

// Field returns the field with the given name, or nil. Names are matched
// case-insensitively, as the remote service does.
func (o *Object) Field(name string) *Field {
	for _, f := range o.Fields {
		if strings.EqualFold(f.Name, name) || strings.EqualFold(f.APIName, name) {
			return f
		}
	}
	return nil
}

// FieldNames returns the names of the object fields in order.
func (o *Object) FieldNames() []string {
	names := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		names[i] = f.Name
	}
	return names
}

// References returns the distinct reference targets of all reference fields
// of the object, in field order.
func (o *Object) References() []string {
	var (
		refs []string
		seen = make(map[string]struct{})
	)
	for _, f := range o.Fields {
		if !f.IsReference() {
			continue
		}
		for _, target := range f.ReferenceTo {
			if _, ok := seen[target]; ok {
				continue
			}
			seen[target] = struct{}{}
			refs = append(refs, target)
		}
	}
	return refs
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	c := *o
	c.Inherited = slices.Clone(o.Inherited)
	c.Fields = make([]*Field, len(o.Fields))
	for i, f := range o.Fields {
		c.Fields[i] = f.Clone()
	}
	return &c
}

// Validate checks the field invariants of the object: reference fields, and
// only them, name at least one target.
func (o *Object) Validate() error {
	for _, f := range o.Fields {
		switch {
		case f.Type == TypeReference && len(f.ReferenceTo) == 0:
			return fmt.Errorf("forcegen: reference field %s.%s has no targets", o.Name, f.Name)
		case f.Type != TypeReference && len(f.ReferenceTo) > 0:
			return fmt.Errorf("forcegen: %s field %s.%s has reference targets", f.Type, o.Name, f.Name)
		}
	}
	return nil
}

// IsReference reports if the field references other objects.
func (f *Field) IsReference() bool {
	return f.Type == TypeReference
}

// IsPolymorphic reports if the field may reference more than one object.
func (f *Field) IsPolymorphic() bool {
	return f.IsReference() && len(f.ReferenceTo) > 1
}

// UsesRelationshipName reports if generators name the field after its
// relationship rather than the field itself. This holds for single-target
// references that carry a relationship name.
func (f *Field) UsesRelationshipName() bool {
	return f.IsReference() && f.RelationshipName != "" && len(f.ReferenceTo) == 1
}

// IsRestrictedEnum reports if the field is a restricted picklist with at
// least one value.
func (f *Field) IsRestrictedEnum() bool {
	return f.Type.Enumerated() && f.RestrictedPicklist && len(f.PicklistValues) > 0
}

// StorageName returns the name the remote service stores the field under.
func (f *Field) StorageName() string {
	if f.APIName != "" {
		return f.APIName
	}
	return f.Name
}

// Rename changes the generator-facing name of the field, keeping the
// storage name intact.
func (f *Field) Rename(name string) {
	if f.APIName == "" {
		f.APIName = f.Name
	}
	f.Name = name
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := *f
	c.ReferenceTo = slices.Clone(f.ReferenceTo)
	c.PicklistValues = slices.Clone(f.PicklistValues)
	return &c
}
