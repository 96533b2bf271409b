package naming

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/syssam/forcegen/schema"
)

// ValuePrefix is prepended to enum member names that start with a digit.
const ValuePrefix = "VALUE_"

// EnumMember is one rendered member of a picklist enum.
type EnumMember struct {
	Name string
	// Disabled marks a member whose name was already produced earlier in the
	// same enum. It is still emitted, as an inert declaration.
	Disabled bool
	Entry    schema.EnumEntry
}

// Attrs returns the positional attributes of the member as Go literals,
// in order: active flag, default flag, label (or nil), value.
func (m EnumMember) Attrs() []string {
	label := "nil"
	if m.Entry.Label != nil {
		label = strconv.Quote(*m.Entry.Label)
	}
	return []string{
		strconv.FormatBool(m.Entry.Active),
		strconv.FormatBool(m.Entry.Default),
		label,
		strconv.Quote(m.Entry.Value),
	}
}

// EnumBuilder renders the members of one enum, remembering the names it has
// produced so far.
type EnumBuilder struct {
	seen    map[string]struct{}
	members []EnumMember
}

// NewEnumBuilder returns an empty builder.
func NewEnumBuilder() *EnumBuilder {
	return &EnumBuilder{seen: make(map[string]struct{})}
}

// Add renders the next entry of the enum. A name seen before yields a
// disabled member.
func (b *EnumBuilder) Add(e schema.EnumEntry) EnumMember {
	m := EnumMember{Name: EnumMemberName(e), Entry: e}
	if _, ok := b.seen[m.Name]; ok {
		m.Disabled = true
	} else {
		b.seen[m.Name] = struct{}{}
	}
	b.members = append(b.members, m)
	return m
}

// Members returns the members added so far, in input order.
func (b *EnumBuilder) Members() []EnumMember {
	return b.members
}

// BuildEnum renders one member per entry, preserving order.
func BuildEnum(entries []schema.EnumEntry) []EnumMember {
	b := NewEnumBuilder()
	for _, e := range entries {
		b.Add(e)
	}
	return b.Members()
}

// EnumMemberName renders the member name of a single entry. One-character
// values are named after their label when there is one.
func EnumMemberName(e schema.EnumEntry) string {
	name := e.Value
	if e.Label != nil && utf8.RuneCountInString(e.Value) == 1 {
		name = *e.Label
	}
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = ValuePrefix + name
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isWordRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.ToUpper(b.String())
}

func isWordRune(r rune) bool {
	return r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
