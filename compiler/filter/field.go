package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/forcegen/compiler/naming"
	"github.com/syssam/forcegen/schema"
)

// ReferenceFilter keeps or drops reference fields by their targets.
// Non-reference fields always pass.
type ReferenceFilter struct {
	include bool
	names   nameSet
}

// NewReferenceFilter returns a filter that removes a reference field as
// soon as one of its targets fails the test "include equals target is in
// names".
func NewReferenceFilter(include bool, names ...string) *ReferenceFilter {
	return &ReferenceFilter{include: include, names: newNameSet(names)}
}

// IncludeReferences keeps only references whose targets are all named.
func IncludeReferences(names ...string) *ReferenceFilter { return NewReferenceFilter(true, names...) }

// ExcludeReferences drops references that target any of the names.
func ExcludeReferences(names ...string) *ReferenceFilter { return NewReferenceFilter(false, names...) }

// Filter implements FieldFilter.
func (f *ReferenceFilter) Filter(o *schema.Object) ([]*schema.Field, error) {
	if o == nil {
		return nil, nil
	}
	kept := make([]*schema.Field, 0, len(o.Fields))
	for _, fd := range o.Fields {
		if fd.IsReference() && !f.accepts(fd.ReferenceTo) {
			continue
		}
		kept = append(kept, fd)
	}
	return kept, nil
}

func (f *ReferenceFilter) accepts(targets []string) bool {
	for _, t := range targets {
		if f.names.has(t) != f.include {
			return false
		}
	}
	return true
}

// Common field sets, lower-cased.
var (
	standardFields = []string{
		"id", "name", "ownerid", "isdeleted", "createdbyid", "createddate",
		"lastmodifiedbyid", "lastmodifieddate", "systemmodstamp",
	}
	// AllObjectCommonFields are present on every object.
	AllObjectCommonFields map[string]struct{} = newNameSet([]string{"id"})
	// StandardObjectCommonFields are present on full standard objects.
	StandardObjectCommonFields map[string]struct{} = without(standardFields, "createdbyid", "lastmodifiedbyid", "isdeleted")
	// CustomObjectCommonFields are present on every custom object.
	CustomObjectCommonFields map[string]struct{} = without(standardFields, "createdbyid", "lastmodifiedbyid")
)

func without(names []string, drop ...string) nameSet {
	s := newNameSet(names)
	for _, d := range drop {
		delete(s, d)
	}
	return s
}

// Disambiguation suffixes for renamed fields.
const (
	RelationshipSuffix = "Relationship"
	CustomSuffix       = "Custom"
)

// HasAllCommonFields reports if o carries, or inherits, every field of the
// standard object common field set. Custom objects always do.
func HasAllCommonFields(o *schema.Object) bool {
	if o.Custom {
		return true
	}
	names := make(nameSet, len(o.Fields)+len(o.Inherited))
	for _, f := range o.Fields {
		names[strings.ToLower(f.StorageName())] = struct{}{}
	}
	for _, n := range o.Inherited {
		names[strings.ToLower(n)] = struct{}{}
	}
	for n := range StandardObjectCommonFields {
		if !names.has(n) {
			return false
		}
	}
	return true
}

// CommonFields returns the common field set skipped for o.
func CommonFields(o *schema.Object) map[string]struct{} {
	switch {
	case o.Custom:
		return CustomObjectCommonFields
	case HasAllCommonFields(o):
		return StandardObjectCommonFields
	default:
		return AllObjectCommonFields
	}
}

// CommonFieldFilter drops the fields every generated entity inherits from
// its base type, recording them in Object.Inherited, and renames later
// fields whose identifier collides with an earlier one.
type CommonFieldFilter struct{}

// NewCommonFieldFilter returns the default field filter.
func NewCommonFieldFilter() *CommonFieldFilter { return &CommonFieldFilter{} }

// Filter implements FieldFilter. Standard fields are expected before custom
// ones, so the later, custom field is the one renamed: single-target
// references get RelationshipSuffix on their relationship name, other fields
// get CustomSuffix on their name. Only one rename per identifier is
// supported; a field colliding with a renamed field, or still colliding
// after its own rename, returns a CollisionError. Renames are applied only
// once every field has been checked, so an error leaves o untouched.
func (*CommonFieldFilter) Filter(o *schema.Object) ([]*schema.Field, error) {
	if o == nil {
		return nil, nil
	}
	var (
		skip    = nameSet(CommonFields(o))
		dropped []string
		kept    = make([]*schema.Field, 0, len(o.Fields))
		taken   = make(map[string]*schema.Field, len(o.Fields))
		renames = make(map[*schema.Field]*schema.Field)
	)
	for _, f := range o.Fields {
		if skip.has(strings.ToLower(f.StorageName())) {
			dropped = append(dropped, f.StorageName())
			continue
		}
		ident := naming.FieldName(f, true)
		if prev, ok := taken[ident]; ok {
			if _, ok := renames[prev]; ok {
				return nil, NewCollisionError(o.Name, f.StorageName(), ident, prev.StorageName())
			}
			next := renamed(f, ident)
			ident = naming.FieldName(next, true)
			if other, ok := taken[ident]; ok {
				return nil, NewCollisionError(o.Name, f.StorageName(), ident, prev.StorageName(), other.StorageName())
			}
			renames[f] = next
		}
		taken[ident] = f
		kept = append(kept, f)
	}
	for f, next := range renames {
		f.Name = next.Name
		f.APIName = next.APIName
		f.RelationshipName = next.RelationshipName
	}
	for _, n := range dropped {
		if !slices.Contains(o.Inherited, n) {
			o.Inherited = append(o.Inherited, n)
		}
	}
	return kept, nil
}

// renamed returns a copy of f carrying the disambiguated name for ident.
func renamed(f *schema.Field, ident string) *schema.Field {
	next := f.Clone()
	if next.UsesRelationshipName() {
		next.RelationshipName = ident + RelationshipSuffix
	} else {
		next.Rename(ident + CustomSuffix)
	}
	return next
}

// ErrNameCollision indicates that collision renaming did not produce a
// unique identifier.
var ErrNameCollision = errors.New("forcegen: unresolvable field name collision")

// CollisionError reports a field whose identifier still collides after it
// was renamed.
type CollisionError struct {
	Object     string
	Field      string
	Identifier string
	// Conflicts names the fields that already hold the identifier before
	// and after the rename.
	Conflicts []string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("forcegen: field %s.%s renders to %q which is taken (conflicts: %s)",
		e.Object, e.Field, e.Identifier, strings.Join(e.Conflicts, ", "))
}

// Is reports whether the target matches the sentinel error for CollisionError.
func (e *CollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// NewCollisionError creates a new CollisionError.
func NewCollisionError(object, field, ident string, conflicts ...string) *CollisionError {
	return &CollisionError{Object: object, Field: field, Identifier: ident, Conflicts: conflicts}
}

// IsCollisionError reports whether the error is a CollisionError.
func IsCollisionError(err error) bool {
	var collErr *CollisionError
	return errors.As(err, &collErr)
}
