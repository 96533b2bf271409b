// Package naming turns raw catalog names into Go identifiers.
//
// RenderIdentifier is the single conversion used for object, field and
// relationship names. BuildEnum turns picklist values into enum members.
// Both are pure: the same input always produces the same output.
package naming

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/forcegen/schema"
)

// Suffixes appended to identifiers that collide with a reserved word.
// Types and fields use different suffixes so that an object and a field
// rendered from the same reserved word stay distinguishable.
const (
	TypeSuffix  = "Entity"
	FieldSuffix = "Field"
)

// DefaultPackage is used when no organisation name is known.
const DefaultPackage = "model"

// Marker suffixes stripped from custom field and relationship names.
var markers = []string{"__c", "__r"}

// reserved holds the Go keywords. Rendered identifiers are compared against
// it in lower case.
var reserved = map[string]struct{}{
	"break":       {},
	"case":        {},
	"chan":        {},
	"const":       {},
	"continue":    {},
	"default":     {},
	"defer":       {},
	"else":        {},
	"fallthrough": {},
	"for":         {},
	"func":        {},
	"go":          {},
	"goto":        {},
	"if":          {},
	"import":      {},
	"interface":   {},
	"map":         {},
	"package":     {},
	"range":       {},
	"return":      {},
	"select":      {},
	"struct":      {},
	"switch":      {},
	"type":        {},
	"var":         {},
}

// IsReserved reports if s, lower-cased, is a reserved identifier.
func IsReserved(s string) bool {
	_, ok := reserved[strings.ToLower(s)]
	return ok
}

// RenderIdentifier converts a raw catalog name into an identifier:
//
//  1. a trailing "__c" or "__r" marker is removed,
//  2. the first letter and every letter following "_" is upper-cased,
//     then all "_" are dropped,
//  3. suffix is appended if the result is a reserved word,
//  4. the first letter is lower-cased if lowerFirst is set, otherwise
//     upper-cased.
//
// Digit-leading results are returned as is.
func RenderIdentifier(raw, suffix string, lowerFirst bool) string {
	for _, m := range markers {
		if strings.HasSuffix(raw, m) {
			raw = raw[:len(raw)-len(m)]
			break
		}
	}
	var (
		b     strings.Builder
		upper = true
	)
	b.Grow(len(raw) + len(suffix))
	for _, r := range raw {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	s := b.String()
	if IsReserved(s) {
		s += suffix
	}
	return adjustFirst(s, lowerFirst)
}

func adjustFirst(s string, lower bool) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	if lower {
		r = unicode.ToLower(r)
	} else {
		r = unicode.ToUpper(r)
	}
	return string(r) + s[n:]
}

// ObjectName renders the identifier of an object type.
func ObjectName(o *schema.Object, lowerFirst bool) string {
	return RenderIdentifier(o.Name, TypeSuffix, lowerFirst)
}

// FieldName renders the identifier of a field. Single-target references
// with a relationship name are named after the relationship.
func FieldName(f *schema.Field, lowerFirst bool) string {
	name := f.Name
	if f.UsesRelationshipName() {
		name = f.RelationshipName
	}
	return RenderIdentifier(name, FieldSuffix, lowerFirst)
}

// ErrInvalidName indicates a name that cannot be turned into a valid Go
// identifier.
var ErrInvalidName = errors.New("forcegen: invalid name")

// NameError reports a name rejected by the generator.
type NameError struct {
	Kind    string // "package", "type", "field", ...
	Name    string
	Message string
}

// Error implements the error interface.
func (e *NameError) Error() string {
	return fmt.Sprintf("forcegen: invalid %s name %q: %s", e.Kind, e.Name, e.Message)
}

// Is reports whether the target matches the sentinel error for NameError.
func (e *NameError) Is(target error) bool {
	return target == ErrInvalidName
}

// NewNameError creates a new NameError.
func NewNameError(kind, name, message string) *NameError {
	return &NameError{Kind: kind, Name: name, Message: message}
}

// IsNameError reports whether the error is a NameError.
func IsNameError(err error) bool {
	var nameErr *NameError
	return errors.As(err, &nameErr)
}

// ValidIdentifier checks that name can be emitted as a Go identifier.
func ValidIdentifier(kind, name string) error {
	switch {
	case name == "":
		return NewNameError(kind, name, "name cannot be empty")
	case !token.IsIdentifier(name):
		return NewNameError(kind, name, "not a valid Go identifier")
	}
	return nil
}

// PackageName derives a Go package name from an organisation name. Only
// letters and digits are kept, lower-cased. A digit-leading result gets an
// "org" prefix and a keyword gets a "model" suffix. An empty organisation
// name yields DefaultPackage.
func PackageName(org string) (string, error) {
	if strings.TrimSpace(org) == "" {
		return DefaultPackage, nil
	}
	var b strings.Builder
	for _, r := range cases.Lower(language.Und).String(org) {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	switch {
	case name == "":
		return "", NewNameError("package", org, "no letters or digits left after sanitizing")
	case unicode.IsDigit(rune(name[0])):
		name = "org" + name
	case token.IsKeyword(name):
		name += DefaultPackage
	}
	return name, nil
}
