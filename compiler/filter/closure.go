package filter

import (
	"slices"

	"github.com/syssam/forcegen/schema"
)

// Closure returns the objects of catalog reachable from the seed names by
// following reference fields, seeds included. Names missing from catalog
// are ignored. Every object appears at most once, even when references form
// cycles.
//
// Objects are returned in breadth-first order; within one level names are
// visited in sorted order.
func Closure(seeds []string, catalog []*schema.Object) []*schema.Object {
	index := make(map[string]*schema.Object, len(catalog))
	for _, o := range catalog {
		index[o.Name] = o
	}
	var (
		result   []*schema.Object
		visited  = make(map[string]struct{})
		frontier = dedupSorted(seeds)
	)
	for len(frontier) > 0 {
		var next []string
		for _, name := range frontier {
			if _, ok := visited[name]; ok {
				continue
			}
			visited[name] = struct{}{}
			o, ok := index[name]
			if !ok {
				continue
			}
			result = append(result, o)
			next = append(next, o.References()...)
		}
		frontier = frontier[:0]
		for _, name := range dedupSorted(next) {
			if _, ok := visited[name]; !ok {
				frontier = append(frontier, name)
			}
		}
	}
	return result
}

// ClosureNames is like Closure but returns object names.
func ClosureNames(seeds []string, catalog []*schema.Object) []string {
	objects := Closure(seeds, catalog)
	names := make([]string, len(objects))
	for i, o := range objects {
		names[i] = o.Name
	}
	return names
}

func dedupSorted(names []string) []string {
	s := slices.Clone(names)
	slices.Sort(s)
	return slices.Compact(s)
}
