package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/syssam/forcegen/compiler/filter"
	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/compiler/naming"
	"github.com/syssam/forcegen/schema"
)

// Base types of the model package embedded by generated entities.
const (
	BaseObject         = "Object"
	BaseStandardObject = "StandardObject"
	BaseCustomObject   = "CustomObject"
)

type (
	// Type is the template view of one generated entity.
	Type struct {
		*Config
		// Object is the filtered object the type is generated from.
		Object *schema.Object
		// Caller is the identity the catalog was fetched with.
		Caller *load.Caller
		// Package is the Go package name of the generated file.
		Package string
		// Name is the Go type name.
		Name string
		// Fields are the struct fields, in object field order.
		Fields []*Field
		// Enums are the picklist enums declared next to the type.
		Enums []*Enum
	}

	// Enum is a picklist enum declared for one field.
	Enum struct {
		// Name is the Go name of the enum type.
		Name string
		// Members are the rendered members, disabled ones included.
		Members []naming.EnumMember
	}
)

// NewType creates the view of o. Names that cannot be emitted as Go
// identifiers are rejected with a naming.NameError.
func NewType(c *Config, caller *load.Caller, o *schema.Object) (*Type, error) {
	pkg, err := c.PackageName(caller)
	if err != nil {
		return nil, err
	}
	t := &Type{
		Config:  c,
		Object:  o,
		Caller:  caller,
		Package: pkg,
		Name:    naming.ObjectName(o, false),
		Fields:  make([]*Field, 0, len(o.Fields)),
	}
	if err := naming.ValidIdentifier("type", t.Name); err != nil {
		return nil, err
	}
	seen := make(map[string]*schema.Field, len(o.Fields))
	if c.HasFeature(FeatureTableName.Name) {
		seen["TableName"] = nil
	}
	for _, sf := range o.Fields {
		f, err := newField(t, sf)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[f.Name]; ok {
			with := "the TableName method"
			if prev != nil {
				with = "field " + prev.StorageName()
			}
			return nil, naming.NewNameError("field", f.Name, "conflicts with "+with+" of "+o.Name)
		}
		seen[f.Name] = sf
		t.Fields = append(t.Fields, f)
		if f.Enum != nil {
			t.Enums = append(t.Enums, f.Enum)
		}
	}
	return t, nil
}

// Label returns the object label, or its name when it has none.
func (t Type) Label() string {
	if t.Object.Label != "" {
		return t.Object.Label
	}
	return t.Object.Name
}

// Table returns the name of the object backing the type.
func (t Type) Table() string { return t.Object.Name }

// Receiver returns the receiver name of the type methods.
func (t Type) Receiver() string {
	r, _ := utf8.DecodeRuneInString(t.Name)
	return string(unicode.ToLower(r))
}

// Base returns the model base type embedded by the entity.
func (t Type) Base() string { return BaseType(t.Object) }

// HasEnums reports if the type declares picklist enums.
func (t Type) HasEnums() bool { return len(t.Enums) > 0 }

// BaseType returns the base type for o: CustomObject for custom objects,
// StandardObject for standard objects carrying every common field and
// Object otherwise.
func BaseType(o *schema.Object) string {
	switch {
	case o.Custom:
		return BaseCustomObject
	case filter.HasAllCommonFields(o):
		return BaseStandardObject
	default:
		return BaseObject
	}
}

// MemberName returns the Go name of an enum member.
func (e *Enum) MemberName(m naming.EnumMember) string {
	return e.Name + "_" + m.Name
}

// Enabled returns the members that are not disabled duplicates.
func (e *Enum) Enabled() []naming.EnumMember {
	var ms []naming.EnumMember
	for _, m := range e.Members {
		if !m.Disabled {
			ms = append(ms, m)
		}
	}
	return ms
}

// ValuesName returns the name of the slice listing the enabled members.
func (e *Enum) ValuesName() string { return e.Name + "Values" }

// lowerFirst is used for template helpers.
func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return strings.ToLower(string(r)) + s[n:]
}
