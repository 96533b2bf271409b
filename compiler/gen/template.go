package gen

import (
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/dave/jennifer/jen"
)

// Template renders one object. It is reset before each object and must not
// carry attributes from one object to the next.
type Template interface {
	// Reset clears every attribute.
	Reset()
	// Set stores an attribute.
	Set(key string, v any)
	// Write renders the current attributes into w.
	Write(w io.Writer) error
}

// Attrs holds the attributes of a template.
type Attrs map[string]any

// Reset clears every attribute.
func (a Attrs) Reset() { clear(a) }

// Set stores an attribute.
func (a Attrs) Set(key string, v any) { a[key] = v }

// Get returns the attribute stored under key.
func (a Attrs) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Clone returns a copy of the attributes.
func (a Attrs) Clone() Attrs { return maps.Clone(a) }

// typeAttr returns the *Type attribute set by the entity selector.
func typeAttr(a Attrs) (*Type, error) {
	v, ok := a[KeyType]
	if !ok {
		return nil, fmt.Errorf("forcegen: template attribute %q is not set", KeyType)
	}
	t, ok := v.(*Type)
	if !ok || t == nil {
		return nil, fmt.Errorf("forcegen: template attribute %q is %T, want *gen.Type", KeyType, v)
	}
	return t, nil
}

// EntityTemplate renders the entity struct of a type, together with its
// picklist enums, using jennifer.
type EntityTemplate struct {
	Attrs
}

// NewEntityTemplate returns an empty entity template.
func NewEntityTemplate() *EntityTemplate {
	return &EntityTemplate{Attrs: make(Attrs)}
}

// Write renders the entity file into w.
func (e *EntityTemplate) Write(w io.Writer) error {
	t, err := typeAttr(e.Attrs)
	if err != nil {
		return err
	}
	return File(t).Render(w)
}

// File builds the Go file declaring t.
func File(t *Type) *jen.File {
	f := jen.NewFile(t.Package)
	if t.Header != "" {
		f.HeaderComment(t.Header)
	}
	f.Commentf("%s is generated from the %s object (%s).", t.Name, t.Table(), t.Label())
	f.Type().Id(t.Name).Struct(structFields(t)...)
	if t.HasFeature(FeatureTableName.Name) {
		f.Line()
		f.Comment("TableName returns the name of the object backing the entity.")
		f.Func().Params(jen.Id(t.Receiver()).Id(t.Name)).Id("TableName").Params().String().Block(
			jen.Return(jen.Lit(t.Table())),
		)
	}
	for _, enum := range t.Enums {
		genEnum(f, t, enum)
	}
	return f
}

func structFields(t *Type) []jen.Code {
	fields := make([]jen.Code, 0, len(t.Fields)*2+1)
	fields = append(fields, jen.Qual(t.ModelPackage, t.Base()))
	if len(t.Fields) > 0 {
		fields = append(fields, jen.Line())
	}
	for _, f := range t.Fields {
		for _, c := range f.Comment {
			fields = append(fields, jen.Comment(c))
		}
		fields = append(fields, jen.Id(f.Name).Add(f.Type.Code()).Tag(f.Tags()))
	}
	return fields
}

func genEnum(f *jen.File, t *Type, e *Enum) {
	f.Line()
	f.Commentf("%s is a value of the %s picklist.", e.Name, t.Name)
	f.Type().Id(e.Name).Struct(jen.Qual(t.ModelPackage, "PicklistValue"))
	f.Line()
	var (
		members  []jen.Code
		disabled []string
	)
	for _, m := range e.Members {
		label := jen.Nil()
		if m.Entry.Label != nil {
			label = jen.Qual(t.ModelPackage, "Label").Call(jen.Lit(*m.Entry.Label))
		}
		stmt := jen.Id(e.MemberName(m)).Op("=").Id(e.Name).Values(
			jen.Qual(t.ModelPackage, "NewPicklistValue").Call(
				jen.Lit(m.Entry.Active),
				jen.Lit(m.Entry.Default),
				label,
				jen.Lit(m.Entry.Value),
			),
		)
		if m.Disabled {
			disabled = append(disabled, strings.TrimSpace(stmt.GoString()))
			continue
		}
		members = append(members, stmt)
	}
	// Disabled members are listed in the doc comment of the block, never
	// between its specs.
	if len(disabled) > 0 {
		f.Commentf("Disabled %s members, repeating an earlier name:", e.Name)
		f.Comment("//")
		for _, d := range disabled {
			f.Comment("//\t" + d)
		}
	}
	f.Var().Defs(members...)
	if t.HasFeature(FeatureEnumValues.Name) {
		f.Line()
		f.Commentf("%s lists the values of %s.", e.ValuesName(), e.Name)
		f.Var().Id(e.ValuesName()).Op("=").Index().Id(e.Name).ValuesFunc(func(g *jen.Group) {
			for _, m := range e.Enabled() {
				g.Id(e.MemberName(m))
			}
		})
	}
}

// Code returns the jennifer code of the type.
func (t GoType) Code() jen.Code {
	s := &jen.Statement{}
	if t.Slice {
		s.Index()
	}
	if t.Pointer {
		s.Op("*")
	}
	if t.PkgPath != "" {
		return s.Qual(t.PkgPath, t.Name)
	}
	return s.Id(t.Name)
}
