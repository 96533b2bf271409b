package filter

import (
	"github.com/syssam/forcegen/schema"
)

// nameSet is a set of exact object names.
type nameSet map[string]struct{}

func newNameSet(names []string) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// NameFilter keeps objects by exact name.
type NameFilter struct {
	include bool
	names   nameSet
}

// NewNameFilter returns a filter keeping the objects for which include
// equals "name is in names".
func NewNameFilter(include bool, names ...string) *NameFilter {
	return &NameFilter{include: include, names: newNameSet(names)}
}

// IncludeObjects keeps only the named objects.
func IncludeObjects(names ...string) *NameFilter { return NewNameFilter(true, names...) }

// ExcludeObjects drops the named objects.
func ExcludeObjects(names ...string) *NameFilter { return NewNameFilter(false, names...) }

// Filter implements ObjectFilter.
func (f *NameFilter) Filter(objects []*schema.Object) []*schema.Object {
	if objects == nil {
		return nil
	}
	kept := make([]*schema.Object, 0, len(objects))
	for _, o := range objects {
		if f.names.has(o.Name) == f.include {
			kept = append(kept, o)
		}
	}
	return kept
}

// ClosureFilter keeps the seed objects and every object they reach
// through reference fields. The closure is computed over the whole list
// passed to Filter.
type ClosureFilter struct {
	seeds []string
}

// WithReferences returns a filter keeping the closure of the named objects.
func WithReferences(names ...string) *ClosureFilter {
	return &ClosureFilter{seeds: names}
}

// Filter implements ObjectFilter.
func (f *ClosureFilter) Filter(objects []*schema.Object) []*schema.Object {
	if objects == nil {
		return nil
	}
	return Closure(f.seeds, objects)
}
