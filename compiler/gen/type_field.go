package gen

import (
	"fmt"
	"path"
	"strings"

	"github.com/syssam/forcegen/compiler/naming"
	"github.com/syssam/forcegen/schema"
)

// Import paths of non-builtin Go types used by generated fields.
const (
	decimalPkg = "github.com/shopspring/decimal"
	timePkg    = "time"
	urlPkg     = "net/url"
)

type (
	// Field is the template view of one struct field.
	Field struct {
		typ *Type
		// Schema is the catalog field.
		Schema *schema.Field
		// Name is the Go field name.
		Name string
		// Type is the Go type of the field.
		Type GoType
		// Options are the options of the force struct tag, in order.
		Options []string
		// Comment holds the comment lines written above the field.
		Comment []string
		// Enum is set for restricted picklists.
		Enum *Enum
	}

	// GoType describes the Go type of a generated field.
	GoType struct {
		// Name of the type, e.g. "Time" or "AccountTypeEnum".
		Name string
		// PkgPath is the import path of the package declaring the type;
		// empty for builtins and types of the generated package.
		PkgPath string
		// Pointer is set for pointer types.
		Pointer bool
		// Slice is set for slice types.
		Slice bool
	}
)

func newField(t *Type, f *schema.Field) (*Field, error) {
	tf := &Field{
		typ:    t,
		Schema: f,
		Name:   naming.FieldName(f, false),
	}
	if err := naming.ValidIdentifier("field", tf.Name); err != nil {
		return nil, err
	}
	if f.IsRestrictedEnum() {
		tf.Enum = &Enum{
			Name:    t.Name + tf.Name + "Enum",
			Members: naming.BuildEnum(f.PicklistValues),
		}
		for _, m := range tf.Enum.Members {
			if err := naming.ValidIdentifier("enum member", tf.Enum.MemberName(m)); err != nil {
				return nil, err
			}
		}
	}
	tf.Type = goType(f, tf.Enum)
	tf.Options = tagOptions(f)
	if f.IsPolymorphic() {
		tf.Comment = append(tf.Comment, tf.Name+" possible references:")
		tf.Comment = append(tf.Comment, f.ReferenceTo...)
	}
	return tf, nil
}

func goType(f *schema.Field, enum *Enum) GoType {
	switch f.Type {
	case schema.TypeBoolean:
		return GoType{Name: "bool"}
	case schema.TypeInt:
		return GoType{Name: "int"}
	case schema.TypeDouble, schema.TypePercent:
		return GoType{Name: "float64"}
	case schema.TypeCurrency:
		return GoType{Name: "Decimal", PkgPath: decimalPkg}
	case schema.TypeDate, schema.TypeTime, schema.TypeDateTime:
		return GoType{Name: "Time", PkgPath: timePkg}
	case schema.TypeURL:
		return GoType{Name: "URL", PkgPath: urlPkg, Pointer: true}
	case schema.TypePicklist:
		if enum != nil {
			return GoType{Name: enum.Name}
		}
	case schema.TypeMultiPicklist:
		if enum != nil {
			return GoType{Name: enum.Name, Slice: true}
		}
		return GoType{Name: "string", Slice: true}
	case schema.TypeReference:
		if len(f.ReferenceTo) == 1 {
			return GoType{Name: naming.RenderIdentifier(f.ReferenceTo[0], naming.TypeSuffix, false), Pointer: true}
		}
	}
	return GoType{Name: "string"}
}

// tagOptions returns the force tag options of f in their fixed order:
// id, ref, lazy, version, enum, required.
func tagOptions(f *schema.Field) []string {
	var opts []string
	if f.Type == schema.TypeID {
		opts = append(opts, "id")
	}
	if f.IsReference() {
		opts = append(opts, "ref", "lazy")
	}
	if f.Type == schema.TypeDateTime && strings.EqualFold(f.StorageName(), "LastModifiedDate") {
		opts = append(opts, "version")
	}
	if f.IsRestrictedEnum() {
		opts = append(opts, "enum")
	}
	if !f.Nillable && !f.DefaultedOnCreate {
		opts = append(opts, "required")
	}
	return opts
}

// Column returns the storage name of the field.
func (f Field) Column() string { return f.Schema.StorageName() }

// JSONName returns the lower-camel name used in json tags.
func (f Field) JSONName() string { return lowerFirst(f.Name) }

// ForceTag returns the value of the force struct tag.
func (f Field) ForceTag() string {
	return strings.Join(append([]string{f.Column()}, f.Options...), ",")
}

// Tags returns the struct tags of the field by key.
func (f Field) Tags() map[string]string {
	tags := map[string]string{"force": f.ForceTag()}
	if f.typ == nil || f.typ.HasFeature(FeatureJSONTags.Name) {
		tags["json"] = f.JSONName() + ",omitempty"
	}
	return tags
}

// StructTag returns the struct tag literal content, e.g.
// `force:"Name,required" json:"name,omitempty"`.
func (f Field) StructTag() string {
	tag := fmt.Sprintf("force:%q", f.ForceTag())
	if json, ok := f.Tags()["json"]; ok {
		tag += fmt.Sprintf(" json:%q", json)
	}
	return tag
}

// String returns the Go spelling of the type, qualified with the last
// element of its package path.
func (t GoType) String() string {
	var b strings.Builder
	if t.Slice {
		b.WriteString("[]")
	}
	if t.Pointer {
		b.WriteString("*")
	}
	if t.PkgPath != "" {
		b.WriteString(path.Base(t.PkgPath))
		b.WriteString(".")
	}
	b.WriteString(t.Name)
	return b.String()
}
